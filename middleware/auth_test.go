package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Eyiladeogo/MicroMart/auth"
	"github.com/Eyiladeogo/MicroMart/middleware"
	"github.com/Eyiladeogo/MicroMart/testutil"
)

func protectedRouter() *gin.Engine {
	r := gin.New()
	r.GET("/me", middleware.RequireAuth, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": middleware.UserID(c)})
	})
	r.GET("/admin", middleware.RequireAuth, middleware.RequireStaff, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	testutil.SetJWTSecret(t)
	db := testutil.OpenDB(t)
	r := protectedRouter()

	user := testutil.CreateUser(t, db, "eve", false)
	pair, err := auth.IssueTokenPair(user.ID, user.Username, user.IsStaff)
	if err != nil {
		t.Fatalf("issue tokens: %v", err)
	}

	t.Run("missing header", func(t *testing.T) {
		if rec := get(r, "/me", ""); rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("malformed token", func(t *testing.T) {
		if rec := get(r, "/me", "garbage"); rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("refresh token is not a bearer credential", func(t *testing.T) {
		if rec := get(r, "/me", pair.Refresh); rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("valid access token", func(t *testing.T) {
		rec := get(r, "/me", pair.Access)
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestRequireStaff(t *testing.T) {
	testutil.SetJWTSecret(t)
	db := testutil.OpenDB(t)
	r := protectedRouter()

	customer := testutil.CreateUser(t, db, "frank", false)
	admin := testutil.CreateUser(t, db, "grace", true)

	if rec := get(r, "/admin", testutil.AccessToken(t, customer)); rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for non-staff, got %d", rec.Code)
	}
	if rec := get(r, "/admin", testutil.AccessToken(t, admin)); rec.Code != http.StatusOK {
		t.Errorf("expected 200 for staff, got %d", rec.Code)
	}
}
