package services

import (
	"strings"

	"CRMBackend/database"
	"CRMBackend/errorhandler"
	"CRMBackend/models"
	"CRMBackend/utils"
)

// lowStockThreshold backs the low_stock list filter.
const lowStockThreshold = 10

type ProductInput struct {
	Name  string
	Price float64
	Stock *int
}

type ProductFilter struct {
	Name     string
	PriceGte *float64
	PriceLte *float64
	StockGte *int
	StockLte *int
	LowStock bool
}

func CreateProduct(input ProductInput) (*models.Product, error) {
	name := utils.SanitizeInput(input.Name)
	if name == "" {
		return nil, errorhandler.NewValidationError("Product name is required.")
	}
	if input.Price <= 0 {
		return nil, errorhandler.NewValidationError("Price must be a positive number.")
	}

	stock := 0
	if input.Stock != nil {
		stock = *input.Stock
	}
	if stock < 0 {
		return nil, errorhandler.NewValidationError("Stock cannot be negative.")
	}

	product := &models.Product{Name: name, Price: input.Price, Stock: stock}
	if err := database.DB.Create(product).Error; err != nil {
		return nil, errorhandler.NewDatabaseError(err, "product create")
	}
	return product, nil
}

func ListProducts(filter ProductFilter) ([]models.Product, error) {
	query := database.DB.Model(&models.Product{})

	if filter.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.PriceGte != nil {
		query = query.Where("price >= ?", *filter.PriceGte)
	}
	if filter.PriceLte != nil {
		query = query.Where("price <= ?", *filter.PriceLte)
	}
	if filter.StockGte != nil {
		query = query.Where("stock >= ?", *filter.StockGte)
	}
	if filter.StockLte != nil {
		query = query.Where("stock <= ?", *filter.StockLte)
	}
	if filter.LowStock {
		query = query.Where("stock < ?", lowStockThreshold)
	}

	var products []models.Product
	if err := query.Order("id").Find(&products).Error; err != nil {
		return nil, errorhandler.NewDatabaseError(err, "product list")
	}
	return products, nil
}
