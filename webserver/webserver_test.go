package webserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"CRMBackend/configuration"
	"CRMBackend/database"
	"CRMBackend/models"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "crm_test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.Product{}, &models.Order{}); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	database.DB = db

	configuration.AppConfig = configuration.Config{}
	configuration.AppConfig.Environment = "development"
	configuration.AppConfig.RateLimits.RequestsPerSecond = 1000
	configuration.AppConfig.RateLimits.Burst = 1000

	return SetupRouter()
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var out map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var out struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode error response %q: %v", w.Body.String(), err)
	}
	return out.Error
}

func TestHealthEndpoint(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected an X-Request-ID header")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("crm_http_requests_total")) {
		t.Fatal("expected the request counter to be exported")
	}
}

func TestCreateCustomerEndpoint(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/customers", map[string]string{
		"name":  "Alice",
		"email": "alice@example.com",
		"phone": "+12345678901",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	var customer models.Customer
	if err := json.Unmarshal(body["customer"], &customer); err != nil {
		t.Fatalf("decode customer: %v", err)
	}
	if customer.ID == 0 || customer.Email != "alice@example.com" {
		t.Fatalf("unexpected customer %+v", customer)
	}
}

func TestCreateCustomerEndpointValidation(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/customers", map[string]string{
		"name":  "Alice",
		"email": "not-an-email",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if msg := errorMessage(t, w); msg != "Invalid email format." {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestCreateCustomerEndpointDuplicate(t *testing.T) {
	r := setupRouter(t)

	payload := map[string]string{"name": "Alice", "email": "alice@example.com"}
	if w := doJSON(t, r, http.MethodPost, "/api/v1/customers", payload); w.Code != http.StatusCreated {
		t.Fatalf("first create failed: %d", w.Code)
	}

	w := doJSON(t, r, http.MethodPost, "/api/v1/customers", payload)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if msg := errorMessage(t, w); msg != "Email already exists." {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestBulkCreateCustomersEndpoint(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/customers/bulk", []map[string]string{
		{"name": "Alice", "email": "alice@example.com"},
		{"name": "", "email": "noname@example.com"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	var customers []models.Customer
	if err := json.Unmarshal(body["customers"], &customers); err != nil {
		t.Fatalf("decode customers: %v", err)
	}
	var rowErrors []string
	if err := json.Unmarshal(body["errors"], &rowErrors); err != nil {
		t.Fatalf("decode errors: %v", err)
	}
	if len(customers) != 1 || len(rowErrors) != 1 {
		t.Fatalf("expected 1 customer and 1 error, got %d / %d", len(customers), len(rowErrors))
	}
	if rowErrors[0] != "Row 1: Name is required." {
		t.Fatalf("unexpected row error %q", rowErrors[0])
	}
}

func TestListCustomersEndpointFilters(t *testing.T) {
	r := setupRouter(t)

	seed := []map[string]string{
		{"name": "Alice Smith", "email": "alice@example.com", "phone": "+15550001111"},
		{"name": "Bob Jones", "email": "bob@sample.org"},
	}
	for _, payload := range seed {
		if w := doJSON(t, r, http.MethodPost, "/api/v1/customers", payload); w.Code != http.StatusCreated {
			t.Fatalf("seed customer failed: %d", w.Code)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/customers?name=alice", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	var customers []models.Customer
	if err := json.Unmarshal(body["customers"], &customers); err != nil {
		t.Fatalf("decode customers: %v", err)
	}
	if len(customers) != 1 || customers[0].Name != "Alice Smith" {
		t.Fatalf("unexpected filter result %+v", customers)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/customers?created_at_gte=bogus", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a bad date, got %d", w.Code)
	}
}

func TestCreateOrderEndpoint(t *testing.T) {
	r := setupRouter(t)

	customer := models.Customer{Name: "Alice", Email: "alice@example.com"}
	product := models.Product{Name: "Widget", Price: 9.99, Stock: 5}
	if err := database.DB.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	if err := database.DB.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"customer_id": customer.ID,
		"product_ids": []uint{product.ID},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"customer_id": customer.ID,
		"product_ids": []uint{},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if msg := errorMessage(t, w); msg != "At least one product must be selected." {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestStatsEndpoint(t *testing.T) {
	r := setupRouter(t)

	// The stats cache may hold values from a previous test's database.
	cachedStatsLock.Lock()
	cachedStatsAt = time.Time{}
	cachedStatsLock.Unlock()

	if err := database.DB.Create(&models.Customer{Name: "Alice", Email: "alice@example.com"}).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var stats Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.TotalCustomers != 1 {
		t.Fatalf("expected 1 customer in stats, got %d", stats.TotalCustomers)
	}
}

func TestRateLimiting(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := setupRouter(t)
	configuration.AppConfig.RateLimits.RequestsPerSecond = 1
	configuration.AppConfig.RateLimits.Burst = 1
	r = SetupRouter()

	first := doJSON(t, r, http.MethodGet, "/health", nil)
	if first.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", first.Code)
	}

	second := doJSON(t, r, http.MethodGet, "/health", nil)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be limited, got %d", second.Code)
	}
}
