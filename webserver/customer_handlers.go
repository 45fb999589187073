package webserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"CRMBackend/errorhandler"
	"CRMBackend/services"
)

type customerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func createCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	customer, err := services.CreateCustomer(services.CustomerInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		msg, status := errorhandler.HandleError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"customer": customer,
		"message":  "Customer created successfully.",
	})
}

func bulkCreateCustomers(c *gin.Context) {
	var reqs []customerRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	inputs := make([]services.CustomerInput, 0, len(reqs))
	for _, req := range reqs {
		inputs = append(inputs, services.CustomerInput{
			Name:  req.Name,
			Email: req.Email,
			Phone: req.Phone,
		})
	}

	created, rowErrors, err := services.BulkCreateCustomers(inputs)
	if err != nil {
		msg, status := errorhandler.HandleError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	if rowErrors == nil {
		rowErrors = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"customers": created,
		"errors":    rowErrors,
	})
}

func listCustomers(c *gin.Context) {
	filter := services.CustomerFilter{
		Name:         c.Query("name"),
		Email:        c.Query("email"),
		PhonePattern: c.Query("phone_pattern"),
	}

	var err error
	if filter.CreatedAtGte, err = parseTimeParam(c.Query("created_at_gte")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid created_at_gte date."})
		return
	}
	if filter.CreatedAtLte, err = parseTimeParam(c.Query("created_at_lte")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid created_at_lte date."})
		return
	}

	customers, err := services.ListCustomers(filter)
	if err != nil {
		msg, status := errorhandler.HandleError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

// parseTimeParam accepts a bare date or a full RFC 3339 timestamp.
func parseTimeParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
