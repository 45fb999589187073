package webserver

import (
	"database/sql"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"CRMBackend/database"
	"CRMBackend/errorhandler"
	"CRMBackend/models"
)

type Stats struct {
	TotalCustomers  int64   `json:"total_customers"`
	TotalProducts   int64   `json:"total_products"`
	TotalOrders     int64   `json:"total_orders"`
	RecentOrders    int64   `json:"recent_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
	LowStockItems   int64   `json:"low_stock_items"`
	OldestOrderDate *string `json:"oldest_order_date,omitempty"`
}

var (
	cachedStats     Stats
	cachedStatsAt   time.Time
	cachedStatsLock sync.RWMutex
)

const statsCacheInterval = time.Minute

func getStats(c *gin.Context) {
	cachedStatsLock.RLock()
	if time.Since(cachedStatsAt) < statsCacheInterval {
		stats := cachedStats
		cachedStatsLock.RUnlock()
		c.JSON(http.StatusOK, stats)
		return
	}
	cachedStatsLock.RUnlock()

	stats, err := collectStats()
	if err != nil {
		msg, status := errorhandler.HandleError(errorhandler.NewDatabaseError(err, "stats collection"))
		c.JSON(status, gin.H{"error": msg})
		return
	}

	cachedStatsLock.Lock()
	cachedStats = stats
	cachedStatsAt = time.Now()
	cachedStatsLock.Unlock()

	c.JSON(http.StatusOK, stats)
}

func collectStats() (Stats, error) {
	var stats Stats
	db := database.DB

	if err := db.Model(&models.Customer{}).Count(&stats.TotalCustomers).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return stats, err
	}

	weekAgo := time.Now().Add(-7 * 24 * time.Hour)
	if err := db.Model(&models.Order{}).Where("order_date >= ?", weekAgo).Count(&stats.RecentOrders).Error; err != nil {
		return stats, err
	}

	var revenue sql.NullFloat64
	if err := db.Model(&models.Order{}).Select("SUM(total_amount)").Scan(&revenue).Error; err != nil {
		return stats, err
	}
	if revenue.Valid {
		stats.TotalRevenue = revenue.Float64
	}

	if err := db.Model(&models.Product{}).Where("stock < ?", 10).Count(&stats.LowStockItems).Error; err != nil {
		return stats, err
	}

	var oldest sql.NullTime
	if err := db.Model(&models.Order{}).Select("MIN(order_date)").Scan(&oldest).Error; err != nil {
		return stats, err
	}
	if oldest.Valid {
		formatted := oldest.Time.Format(time.RFC3339)
		stats.OldestOrderDate = &formatted
	}

	return stats, nil
}
