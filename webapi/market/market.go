// Package market exposes the product and purchase endpoints.
package market

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/sociomart/backend/config"
	"github.com/sociomart/backend/pkg/middleware"
	"github.com/sociomart/backend/pkg/repository"
	marketsvc "github.com/sociomart/backend/pkg/service/market"
	"github.com/sociomart/backend/webapi/common"
)

// Routes registers the marketplace endpoints.
//
//   - POST   /purchases     : buy a product with points
//   - GET    /purchases     : the caller's purchases grouped by product
//   - GET    /products      : list the catalog
//   - POST   /products      : add a product
//   - PATCH  /products/:id  : patch a product
//   - DELETE /products/:id  : remove a product
func Routes(app *fiber.App, svc *marketsvc.Service, cfg *config.AppConfig) {
	protected := middleware.JwtProtected(cfg.Jwt.Secret)
	app.Post("/purchases", protected, Purchase(svc))
	app.Get("/purchases", protected, ListPurchases(svc))
	app.Get("/products", ListProducts(svc))
	app.Post("/products", protected, CreateProduct(svc))
	app.Patch("/products/:id", protected, UpdateProduct(svc))
	app.Delete("/products/:id", protected, DeleteProduct(svc))
}

// Purchase buys the requested quantity of a product for the caller,
// debiting their wallet atomically with the purchase records.
func Purchase(svc *marketsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		buyerID, err := middleware.CurrentUserID(c)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		input, err := common.BindAndValidate[PurchaseRequest](c)
		if input == nil {
			return err // error response already written
		}
		productID, err := uuid.Parse(input.ProductID)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid product_id", err.Error())
		}
		if err := svc.Purchase(c.UserContext(), buyerID, productID, input.Quantity); err != nil {
			log.Errorf("Failed to purchase: %v", err)
			return common.DomainErrorJSON(c, "Failed to purchase", err)
		}
		return c.JSON(fiber.Map{"message": "Product purchased successfully"})
	}
}

// ListPurchases returns the caller's purchase history grouped by
// product.
func ListPurchases(svc *marketsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		buyerID, err := middleware.CurrentUserID(c)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		if raw := c.Query("user_id"); raw != "" {
			buyerID, err = uuid.Parse(raw)
			if err != nil {
				return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid user_id", err.Error())
			}
		}
		groups, err := svc.ListPurchases(c.UserContext(), buyerID)
		if err != nil {
			log.Errorf("Failed to list purchases: %v", err)
			return common.DomainErrorJSON(c, "Failed to list purchases", err)
		}
		return c.JSON(groups)
	}
}

// ListProducts returns the catalog, newest first.
func ListProducts(svc *marketsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		products, err := svc.ListProducts(c.UserContext())
		if err != nil {
			log.Errorf("Failed to list products: %v", err)
			return common.DomainErrorJSON(c, "Failed to list products", err)
		}
		return c.JSON(products)
	}
}

// CreateProduct adds a product to the catalog.
func CreateProduct(svc *marketsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateProductRequest](c)
		if input == nil {
			return err // error response already written
		}
		product, err := svc.CreateProduct(c.UserContext(), marketsvc.CreateProductInput{
			Name:        input.Name,
			ImageURL:    input.Image,
			Price:       input.Price,
			Description: input.Description,
		})
		if err != nil {
			log.Errorf("Failed to create product: %v", err)
			return common.DomainErrorJSON(c, "Failed to create product", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Product created", product)
	}
}

// UpdateProduct patches a product's fields.
func UpdateProduct(svc *marketsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		productID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid product ID", err.Error())
		}
		input, err := common.BindAndValidate[UpdateProductRequest](c)
		if input == nil {
			return err // error response already written
		}
		product, err := svc.UpdateProduct(c.UserContext(), productID, repository.ProductUpdate{
			Name:        input.Name,
			ImageURL:    input.Image,
			Price:       input.Price,
			Description: input.Description,
		})
		if err != nil {
			log.Errorf("Failed to update product: %v", err)
			return common.DomainErrorJSON(c, "Failed to update product", err)
		}
		return c.JSON(product)
	}
}

// DeleteProduct removes a product from the catalog.
func DeleteProduct(svc *marketsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		productID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid product ID", err.Error())
		}
		if err := svc.DeleteProduct(c.UserContext(), productID); err != nil {
			log.Errorf("Failed to delete product: %v", err)
			return common.DomainErrorJSON(c, "Failed to delete product", err)
		}
		return c.JSON(fiber.Map{"message": "Product deleted successfully"})
	}
}
