package orderControllers

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Eyiladeogo/MicroMart/models"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("not enough stock")
)

// PlaceOrder converts the user's cart into an order: it snapshots each line's
// product name and price, decrements stock, and empties the cart, all inside
// one transaction. Either every item is recorded and every stock decremented,
// or nothing changes.
func PlaceOrder(db *gorm.DB, userID uint) (*models.Order, error) {
	var placed models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.
			Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.product_id") }).
			Preload("Items.Product").
			Where("user_id = ?", userID).
			First(&cart).Error; err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		total := decimal.Zero
		for _, item := range cart.Items {
			if item.Product.Stock < item.Quantity {
				return fmt.Errorf("%w for %s. Available: %d, Requested: %d",
					ErrInsufficientStock, item.Product.Name, item.Product.Stock, item.Quantity)
			}
			total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		order := models.Order{
			UserID:      userID,
			TotalAmount: total,
			Status:      models.OrderStatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, item := range cart.Items {
			productID := item.ProductID
			orderItem := models.OrderItem{
				OrderID:      order.ID,
				ProductID:    &productID,
				ProductName:  item.Product.Name,
				Quantity:     item.Quantity,
				PriceAtOrder: item.Product.Price,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}

			// The stock >= quantity guard re-checks availability in the same
			// statement as the decrement. The check above should make this
			// unreachable, but a concurrent checkout that committed between
			// the read and this write still cannot drive stock negative.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w for %s. Requested: %d",
					ErrInsufficientStock, item.Product.Name, item.Quantity)
			}
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		return tx.Preload("Items").First(&placed, order.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &placed, nil
}
