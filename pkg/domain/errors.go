// Package domain defines the error taxonomy shared by the ledger
// services and the infrastructure layer. Repositories translate
// storage errors into these sentinels so callers can branch with
// errors.Is without importing gorm.
package domain

import "errors"

var (
	// ErrNotFound is returned when a target user, post or product does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when a unique constraint rejects a create.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidSelfReference is returned when a user attempts to follow themselves.
	ErrInvalidSelfReference = errors.New("cannot reference yourself")

	// ErrInsufficientFunds is returned when a debit would drive a wallet below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrStoreUnavailable is returned when the backing store fails mid-operation.
	// The enclosing transaction is rolled back; no partial state survives.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrConcurrentConflict is returned when a concurrent writer won a race on
	// the same relation key and the losing write cannot be reconciled.
	ErrConcurrentConflict = errors.New("concurrent conflict")
)
