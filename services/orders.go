package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"CRMBackend/database"
	"CRMBackend/errorhandler"
	"CRMBackend/models"
	"CRMBackend/utils"
)

type OrderInput struct {
	CustomerID uint
	ProductIDs []uint
	OrderDate  *time.Time
}

type OrderFilter struct {
	TotalGte     *float64
	TotalLte     *float64
	OrderDateGte *time.Time
	OrderDateLte *time.Time
	CustomerName string
	ProductName  string
	ProductID    uint
}

// CreateOrder stores an order for an existing customer. The total is always
// recomputed from current DB prices; client-supplied totals are never
// trusted.
func CreateOrder(input OrderInput) (*models.Order, error) {
	if len(input.ProductIDs) == 0 {
		return nil, errorhandler.NewValidationError("At least one product must be selected.")
	}

	var customer models.Customer
	if err := database.DB.First(&customer, input.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorhandler.NewValidationError("Invalid customer ID.")
		}
		return nil, errorhandler.NewDatabaseError(err, "order customer lookup")
	}

	var products []models.Product
	if err := database.DB.Where("id IN ?", input.ProductIDs).Find(&products).Error; err != nil {
		return nil, errorhandler.NewDatabaseError(err, "order product lookup")
	}

	found := make(map[uint]bool, len(products))
	for _, p := range products {
		found[p.ID] = true
	}
	var missing []string
	for _, id := range input.ProductIDs {
		if !found[id] {
			missing = append(missing, strconv.FormatUint(uint64(id), 10))
		}
	}
	if len(missing) > 0 {
		return nil, errorhandler.NewValidationError(
			fmt.Sprintf("Invalid product ID(s): %s", strings.Join(missing, ", ")))
	}

	var total float64
	for _, p := range products {
		total += p.Price
	}

	orderDate := time.Now()
	if input.OrderDate != nil {
		orderDate = *input.OrderDate
	}

	order := &models.Order{
		CustomerID:  customer.ID,
		OrderDate:   orderDate,
		TotalAmount: total,
	}

	err := utils.WithTransaction(database.DB, func(tx *gorm.DB) error {
		if err := tx.Omit("Products").Create(order).Error; err != nil {
			return err
		}
		return tx.Model(order).Association("Products").Append(&products)
	})
	if err != nil {
		return nil, errorhandler.NewDatabaseError(err, "order create")
	}

	order.Products = products
	return order, nil
}

// ListOrders returns orders matching the filter with their products
// preloaded, oldest first.
func ListOrders(filter OrderFilter) ([]models.Order, error) {
	query := database.DB.Model(&models.Order{})

	if filter.TotalGte != nil {
		query = query.Where("orders.total_amount >= ?", *filter.TotalGte)
	}
	if filter.TotalLte != nil {
		query = query.Where("orders.total_amount <= ?", *filter.TotalLte)
	}
	if filter.OrderDateGte != nil {
		query = query.Where("orders.order_date >= ?", *filter.OrderDateGte)
	}
	if filter.OrderDateLte != nil {
		query = query.Where("orders.order_date <= ?", *filter.OrderDateLte)
	}
	if filter.CustomerName != "" {
		query = query.
			Joins("JOIN customers ON customers.id = orders.customer_id").
			Where("LOWER(customers.name) LIKE ?", "%"+strings.ToLower(filter.CustomerName)+"%")
	}
	if filter.ProductName != "" || filter.ProductID != 0 {
		query = query.
			Joins("JOIN order_products ON order_products.order_id = orders.id").
			Joins("JOIN products ON products.id = order_products.product_id")
		if filter.ProductName != "" {
			query = query.Where("LOWER(products.name) LIKE ?", "%"+strings.ToLower(filter.ProductName)+"%")
		}
		if filter.ProductID != 0 {
			query = query.Where("products.id = ?", filter.ProductID)
		}
	}

	var orders []models.Order
	if err := query.Distinct("orders.*").Preload("Products").Order("orders.id").Find(&orders).Error; err != nil {
		return nil, errorhandler.NewDatabaseError(err, "order list")
	}
	return orders, nil
}
