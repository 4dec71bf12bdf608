package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestUoWAccessors(t *testing.T) {

	mockDb, _, _ := sqlmock.New()
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	uow := NewUoW(db)

	assert.IsType(t, &userRepository{}, uow.Users())
	assert.IsType(t, &relationRepository{}, uow.Relations())
	assert.IsType(t, &postRepository{}, uow.Posts())
	assert.IsType(t, &productRepository{}, uow.Products())
	assert.IsType(t, &purchaseRepository{}, uow.Purchases())
}
