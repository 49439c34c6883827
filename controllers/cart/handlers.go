package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Eyiladeogo/MicroMart/middleware"
)

type AddItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type AdjustItemInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Action    string `json:"action" binding:"required,oneof=increment decrement"`
	ChangeBy  int    `json:"change_by" binding:"omitempty,min=1"`
}

type RemoveItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
}

func respondCart(c *gin.Context, db *gorm.DB, userID uint, status int, message string) {
	cart, err := LoadCart(db, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}
	view := BuildCartView(cart)
	if message == "" {
		c.JSON(status, view)
		return
	}
	c.JSON(status, gin.H{"message": message, "cart": view})
}

func mutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrCartItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
	}
}

// GET /cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondCart(c, db, middleware.UserID(c), http.StatusOK, "")
	}
}

// POST /cart
func AddItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		userID := middleware.UserID(c)
		if err := AddItem(db, userID, input.ProductID, input.Quantity); err != nil {
			mutationError(c, err)
			return
		}
		respondCart(c, db, userID, http.StatusOK, "")
	}
}

// PATCH /cart
func AdjustItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AdjustItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.ChangeBy == 0 {
			input.ChangeBy = 1
		}

		userID := middleware.UserID(c)
		removed, err := AdjustItem(db, userID, input.ProductID, input.Action, input.ChangeBy)
		if err != nil {
			mutationError(c, err)
			return
		}

		message := "Cart item quantity updated"
		if removed {
			message = "Cart item removed"
		}
		respondCart(c, db, userID, http.StatusOK, message)
	}
}

// PUT /cart
func RemoveItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RemoveItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		userID := middleware.UserID(c)
		if err := RemoveItem(db, userID, input.ProductID); err != nil {
			mutationError(c, err)
			return
		}
		respondCart(c, db, userID, http.StatusOK, "Cart item removed")
	}
}

// DELETE /cart
func ClearCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ClearCart(db, middleware.UserID(c)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
