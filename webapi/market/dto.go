package market

// PurchaseRequest buys quantity units of a product with points.
// Quantity defaults to 1 when omitted and is capped per request so a
// single call cannot ask for an absurd number of purchase rows.
type PurchaseRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int64  `json:"quantity" validate:"omitempty,gt=0,lte=1000"`
}

// CreateProductRequest adds a product to the catalog.
type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,min=1"`
	Image       string `json:"image" validate:"required,url"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	Description string `json:"description" validate:"omitempty"`
}

// UpdateProductRequest patches a product; omitted fields are left alone.
type UpdateProductRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Image       *string `json:"image" validate:"omitempty,url"`
	Price       *int64  `json:"price" validate:"omitempty,gt=0"`
	Description *string `json:"description" validate:"omitempty"`
}
