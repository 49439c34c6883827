package cartControllers

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Eyiladeogo/MicroMart/models"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrInsufficientStock = errors.New("not enough stock")
)

const (
	ActionIncrement = "increment"
	ActionDecrement = "decrement"
)

// CartItemView is one cart line joined with its current product details.
type CartItemView struct {
	ID           uint            `json:"id"`
	ProductID    uint            `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	Quantity     int             `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// CartView is the response shape for every cart endpoint.
type CartView struct {
	ID          uint            `json:"id"`
	UserID      uint            `json:"user_id"`
	Items       []CartItemView  `json:"items"`
	TotalItems  int             `json:"total_items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// LoadCart fetches the user's cart with items and their products.
func LoadCart(db *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id") }).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// BuildCartView computes per-line subtotals and cart totals.
func BuildCartView(cart *models.Cart) CartView {
	view := CartView{
		ID:          cart.ID,
		UserID:      cart.UserID,
		Items:       make([]CartItemView, 0, len(cart.Items)),
		TotalAmount: decimal.Zero,
	}
	for _, item := range cart.Items {
		subtotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		view.Items = append(view.Items, CartItemView{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.Product.Name,
			ProductPrice: item.Product.Price,
			Quantity:     item.Quantity,
			Subtotal:     subtotal,
		})
		view.TotalItems += item.Quantity
		view.TotalAmount = view.TotalAmount.Add(subtotal)
	}
	return view
}

// AddItem creates a cart line for the product or increments an existing one.
// The quantity may never exceed the product's current stock.
func AddItem(db *gorm.DB, userID, productID uint, quantity int) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		var cart models.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			return err
		}

		var item models.CartItem
		err := tx.Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if quantity > product.Stock {
				return fmt.Errorf("%w for %s. Available: %d", ErrInsufficientStock, product.Name, product.Stock)
			}
			item = models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: quantity}
			return tx.Create(&item).Error
		}
		if err != nil {
			return err
		}

		// The stock comparison and the increment happen in one statement, so
		// a concurrent writer cannot push the quantity past the stock between
		// a read and a write.
		res := tx.Model(&models.CartItem{}).
			Where("id = ? AND quantity + ? <= (SELECT stock FROM products WHERE id = ?)",
				item.ID, quantity, product.ID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: adding %d more would exceed stock for %s. Current cart: %d, Available: %d",
				ErrInsufficientStock, quantity, product.Name, item.Quantity, product.Stock)
		}
		return nil
	})
}

// AdjustItem increments or decrements an existing cart line by changeBy.
// Decrementing below one removes the line instead of failing. The returned
// flag reports whether the line was removed.
func AdjustItem(db *gorm.DB, userID, productID uint, action string, changeBy int) (bool, error) {
	removed := false
	err := db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			return err
		}

		var item models.CartItem
		err := tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		if err != nil {
			return err
		}

		if action == ActionDecrement {
			if item.Quantity-changeBy < 1 {
				removed = true
				return tx.Delete(&item).Error
			}
			return tx.Model(&item).Update("quantity", gorm.Expr("quantity - ?", changeBy)).Error
		}

		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			return err
		}

		res := tx.Model(&models.CartItem{}).
			Where("id = ? AND quantity + ? <= (SELECT stock FROM products WHERE id = ?)",
				item.ID, changeBy, productID).
			Update("quantity", gorm.Expr("quantity + ?", changeBy))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: cannot increment %s. Current cart: %d, Available: %d",
				ErrInsufficientStock, product.Name, item.Quantity, product.Stock)
		}
		return nil
	})
	return removed, err
}

// RemoveItem deletes the cart line for the product unconditionally.
func RemoveItem(db *gorm.DB, userID, productID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			return err
		}

		res := tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).Delete(&models.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCartItemNotFound
		}
		return nil
	})
}

// ClearCart deletes every line in the user's cart. Clearing an already empty
// cart succeeds.
func ClearCart(db *gorm.DB, userID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			return err
		}
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
}
