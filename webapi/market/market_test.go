package market_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sociomart/backend/config"
	"github.com/sociomart/backend/internal/fixtures/ledgertest"
	"github.com/sociomart/backend/pkg/testutils"
	"github.com/stretchr/testify/suite"
)

type MarketTestSuite struct {
	suite.Suite
	app   *fiber.App
	store *ledgertest.Store
	cfg   *config.AppConfig

	buyer uuid.UUID
	token string
}

func (s *MarketTestSuite) SetupTest() {
	s.app, s.store, s.cfg = testutils.SetupTestApp(s.T())
	s.buyer = s.store.SeedUser("buyer", 100)
	s.token = testutils.SignToken(s.T(), s.cfg, s.buyer)
}

func TestMarketTestSuite(t *testing.T) {
	suite.Run(t, new(MarketTestSuite))
}

func (s *MarketTestSuite) TestPurchase() {
	productID := s.store.SeedProduct("mug", 30)
	body := fmt.Sprintf(`{"product_id":%q,"quantity":3}`, productID)

	s.Run("purchase debits the wallet", func() {
		resp := testutils.MakeRequest(s.app, "POST", "/purchases", body, s.token)
		defer resp.Body.Close() //nolint: errcheck
		s.Assert().Equal(fiber.StatusOK, resp.StatusCode)
		s.Assert().Equal(int64(10), s.store.Wallet(s.buyer))
		s.Assert().Equal(3, s.store.PurchaseCount(s.buyer))
	})

	s.Run("purchase beyond the balance is refused whole", func() {
		resp := testutils.MakeRequest(s.app, "POST", "/purchases", body, s.token)
		defer resp.Body.Close() //nolint: errcheck
		s.Assert().Equal(fiber.StatusPaymentRequired, resp.StatusCode)
		s.Assert().Equal(int64(10), s.store.Wallet(s.buyer))
		s.Assert().Equal(3, s.store.PurchaseCount(s.buyer))
	})

	s.Run("quantity defaults to one", func() {
		oneBody := fmt.Sprintf(`{"product_id":%q}`, productID)
		resp := testutils.MakeRequest(s.app, "POST", "/purchases", oneBody, s.token)
		defer resp.Body.Close() //nolint: errcheck
		s.Assert().Equal(fiber.StatusPaymentRequired, resp.StatusCode) // 10 < 30
	})

	s.Run("unknown product", func() {
		unknownBody := fmt.Sprintf(`{"product_id":%q}`, uuid.New())
		resp := testutils.MakeRequest(s.app, "POST", "/purchases", unknownBody, s.token)
		defer resp.Body.Close() //nolint: errcheck
		s.Assert().Equal(fiber.StatusNotFound, resp.StatusCode)
	})

	s.Run("without auth", func() {
		resp := testutils.MakeRequest(s.app, "POST", "/purchases", body, "")
		defer resp.Body.Close() //nolint: errcheck
		s.Assert().NotEqual(fiber.StatusOK, resp.StatusCode)
	})
}

func (s *MarketTestSuite) TestListPurchases() {
	mug := s.store.SeedProduct("mug", 10)
	pen := s.store.SeedProduct("pen", 5)

	for _, body := range []string{
		fmt.Sprintf(`{"product_id":%q,"quantity":2}`, mug),
		fmt.Sprintf(`{"product_id":%q}`, pen),
	} {
		resp := testutils.MakeRequest(s.app, "POST", "/purchases", body, s.token)
		s.Require().Equal(fiber.StatusOK, resp.StatusCode)
		resp.Body.Close() //nolint: errcheck
	}

	resp := testutils.MakeRequest(s.app, "GET", "/purchases", "", s.token)
	defer resp.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusOK, resp.StatusCode)

	var out []map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	s.Require().Len(out, 2)

	// Most recently bought product first.
	first, ok := out[0]["product"].(map[string]any)
	s.Require().True(ok)
	s.Assert().Equal(pen.String(), first["id"])
	s.Assert().Equal(float64(1), out[0]["quantity"])

	second, ok := out[1]["product"].(map[string]any)
	s.Require().True(ok)
	s.Assert().Equal(mug.String(), second["id"])
	s.Assert().Equal(float64(2), out[1]["quantity"])
}

func (s *MarketTestSuite) TestProductCatalog() {
	createBody := `{"name":"mug","image":"https://cdn.example.com/mug.png","price":30,"description":"a mug"}`

	var productID string
	s.Run("create", func() {
		resp := testutils.MakeRequest(s.app, "POST", "/products", createBody, s.token)
		defer resp.Body.Close() //nolint: errcheck
		s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

		var out map[string]any
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
		data, ok := out["data"].(map[string]any)
		s.Require().True(ok)
		productID, ok = data["id"].(string)
		s.Require().True(ok)
	})

	s.Run("list is public", func() {
		resp := testutils.MakeRequest(s.app, "GET", "/products", "", "")
		defer resp.Body.Close() //nolint: errcheck
		s.Assert().Equal(fiber.StatusOK, resp.StatusCode)

		var out []map[string]any
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
		s.Require().Len(out, 1)
		s.Assert().Equal("mug", out[0]["name"])
	})

	s.Run("update", func() {
		resp := testutils.MakeRequest(s.app, "PATCH", "/products/"+productID, `{"price":45}`, s.token)
		defer resp.Body.Close() //nolint: errcheck
		s.Assert().Equal(fiber.StatusOK, resp.StatusCode)
	})

	s.Run("update unknown product", func() {
		resp := testutils.MakeRequest(s.app, "PATCH", "/products/"+uuid.NewString(), `{"price":45}`, s.token)
		defer resp.Body.Close() //nolint: errcheck
		s.Assert().Equal(fiber.StatusNotFound, resp.StatusCode)
	})

	s.Run("delete", func() {
		resp := testutils.MakeRequest(s.app, "DELETE", "/products/"+productID, "", s.token)
		defer resp.Body.Close() //nolint: errcheck
		s.Assert().Equal(fiber.StatusOK, resp.StatusCode)

		resp = testutils.MakeRequest(s.app, "DELETE", "/products/"+productID, "", s.token)
		defer resp.Body.Close() //nolint: errcheck
		s.Assert().Equal(fiber.StatusNotFound, resp.StatusCode)
	})
}
