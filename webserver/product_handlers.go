package webserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"CRMBackend/errorhandler"
	"CRMBackend/services"
)

type productRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock *int    `json:"stock"`
}

func createProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	product, err := services.CreateProduct(services.ProductInput{
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
	})
	if err != nil {
		msg, status := errorhandler.HandleError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

func listProducts(c *gin.Context) {
	filter := services.ProductFilter{
		Name:     c.Query("name"),
		LowStock: c.Query("low_stock") == "true",
	}

	var err error
	if filter.PriceGte, err = parseFloatParam(c.Query("price_gte")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price_gte value."})
		return
	}
	if filter.PriceLte, err = parseFloatParam(c.Query("price_lte")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price_lte value."})
		return
	}
	if filter.StockGte, err = parseIntParam(c.Query("stock_gte")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock_gte value."})
		return
	}
	if filter.StockLte, err = parseIntParam(c.Query("stock_lte")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock_lte value."})
		return
	}

	products, err := services.ListProducts(filter)
	if err != nil {
		msg, status := errorhandler.HandleError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

func parseFloatParam(value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func parseIntParam(value string) (*int, error) {
	if value == "" {
		return nil, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return nil, err
	}
	return &i, nil
}
