package webserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"CRMBackend/errorhandler"
	"CRMBackend/services"
)

type orderRequest struct {
	CustomerID uint       `json:"customer_id"`
	ProductIDs []uint     `json:"product_ids"`
	OrderDate  *time.Time `json:"order_date"`
}

func createOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	order, err := services.CreateOrder(services.OrderInput{
		CustomerID: req.CustomerID,
		ProductIDs: req.ProductIDs,
		OrderDate:  req.OrderDate,
	})
	if err != nil {
		msg, status := errorhandler.HandleError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

func listOrders(c *gin.Context) {
	filter := services.OrderFilter{
		CustomerName: c.Query("customer_name"),
		ProductName:  c.Query("product_name"),
	}

	var err error
	if filter.TotalGte, err = parseFloatParam(c.Query("total_gte")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid total_gte value."})
		return
	}
	if filter.TotalLte, err = parseFloatParam(c.Query("total_lte")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid total_lte value."})
		return
	}
	if filter.OrderDateGte, err = parseTimeParam(c.Query("order_date_gte")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order_date_gte date."})
		return
	}
	if filter.OrderDateLte, err = parseTimeParam(c.Query("order_date_lte")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order_date_lte date."})
		return
	}
	if raw := c.Query("product_id"); raw != "" {
		id, convErr := strconv.ParseUint(raw, 10, 32)
		if convErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id value."})
			return
		}
		filter.ProductID = uint(id)
	}

	orders, err := services.ListOrders(filter)
	if err != nil {
		msg, status := errorhandler.HandleError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
