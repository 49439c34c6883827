package orderControllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/Eyiladeogo/MicroMart/controllers/cart"
	"github.com/Eyiladeogo/MicroMart/models"
	"github.com/Eyiladeogo/MicroMart/routes"
	"github.com/Eyiladeogo/MicroMart/testutil"
)

func orderRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	routes.SetupOrderRoutes(r, db)
	return r
}

func doJSON(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestOrderEndpoints(t *testing.T) {
	db := testutil.OpenDB(t)
	r := orderRouter(db)

	buyer := testutil.CreateUser(t, db, "rosa", false)
	other := testutil.CreateUser(t, db, "sven", false)
	admin := testutil.CreateUser(t, db, "tess", true)

	buyerToken := testutil.AccessToken(t, buyer)
	otherToken := testutil.AccessToken(t, other)
	adminToken := testutil.AccessToken(t, admin)

	product := testutil.CreateProduct(t, db, "Laptop", "1200.00", 10)
	if err := cartControllers.AddItem(db, buyer.ID, product.ID, 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	t.Run("unauthenticated checkout is a 401", func(t *testing.T) {
		if rec := doJSON(r, http.MethodPost, "/orders", "", ""); rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	var orderID uint
	t.Run("checkout returns the created order", func(t *testing.T) {
		rec := doJSON(r, http.MethodPost, "/orders", "", buyerToken)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		var order models.Order
		if err := json.Unmarshal(rec.Body.Bytes(), &order); err != nil {
			t.Fatalf("decode order: %v", err)
		}
		if len(order.Items) != 1 {
			t.Errorf("expected 1 order item, got %d", len(order.Items))
		}
		orderID = order.ID
	})

	t.Run("checkout on the now-empty cart is a 400", func(t *testing.T) {
		rec := doJSON(r, http.MethodPost, "/orders", "", buyerToken)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("owners see their orders, strangers see none", func(t *testing.T) {
		rec := doJSON(r, http.MethodGet, "/orders", "", buyerToken)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var mine []models.Order
		if err := json.Unmarshal(rec.Body.Bytes(), &mine); err != nil {
			t.Fatalf("decode orders: %v", err)
		}
		if len(mine) != 1 {
			t.Errorf("expected 1 order for the buyer, got %d", len(mine))
		}

		rec = doJSON(r, http.MethodGet, "/orders", "", otherToken)
		var theirs []models.Order
		if err := json.Unmarshal(rec.Body.Bytes(), &theirs); err != nil {
			t.Fatalf("decode orders: %v", err)
		}
		if len(theirs) != 0 {
			t.Errorf("expected no orders for a stranger, got %d", len(theirs))
		}

		rec = doJSON(r, http.MethodGet, "/orders", "", adminToken)
		var all []models.Order
		if err := json.Unmarshal(rec.Body.Bytes(), &all); err != nil {
			t.Fatalf("decode orders: %v", err)
		}
		if len(all) != 1 {
			t.Errorf("expected staff to see every order, got %d", len(all))
		}
	})

	t.Run("a foreign order id reads as 404", func(t *testing.T) {
		path := fmt.Sprintf("/orders/%d", orderID)
		if rec := doJSON(r, http.MethodGet, path, "", otherToken); rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
		if rec := doJSON(r, http.MethodGet, path, "", buyerToken); rec.Code != http.StatusOK {
			t.Errorf("expected 200 for the owner, got %d", rec.Code)
		}
		if rec := doJSON(r, http.MethodGet, path, "", adminToken); rec.Code != http.StatusOK {
			t.Errorf("expected 200 for staff, got %d", rec.Code)
		}
	})

	t.Run("status updates are staff only", func(t *testing.T) {
		path := fmt.Sprintf("/orders/%d/status", orderID)

		if rec := doJSON(r, http.MethodPatch, path, `{"status": "shipped"}`, buyerToken); rec.Code != http.StatusForbidden {
			t.Errorf("expected 403 for non-staff, got %d", rec.Code)
		}

		if rec := doJSON(r, http.MethodPatch, path, `{"status": "teleported"}`, adminToken); rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for an unknown status, got %d", rec.Code)
		}

		rec := doJSON(r, http.MethodPatch, path, `{"status": "shipped"}`, adminToken)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var order models.Order
		if err := db.First(&order, orderID).Error; err != nil {
			t.Fatalf("reload order: %v", err)
		}
		if order.Status != models.OrderStatusShipped {
			t.Errorf("status not updated: %q", order.Status)
		}
	})
}
