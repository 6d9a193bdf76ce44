package dashboard

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"zid-retention-server/models"
	"zid-retention-server/utils"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Merchant{}, &models.Customer{}, &models.ProductSetting{}, &models.Reminder{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	utils.RetentionDB = db

	if err := db.Create(&models.Merchant{StoreID: 1, AccessToken: "token"}).Error; err != nil {
		t.Fatalf("seed merchant failed: %v", err)
	}

	r := gin.New()
	RegisterDashboardRoutes(r)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateProductSettingValidation(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing everything", map[string]interface{}{}},
		{"missing avg days", map[string]interface{}{"store_id": 1, "offset_days": 5}},
		{"missing offset", map[string]interface{}{"store_id": 1, "avg_days_to_finish": 30}},
		{"zero avg days", map[string]interface{}{"store_id": 1, "avg_days_to_finish": 0, "offset_days": 0}},
		{"offset not below avg", map[string]interface{}{"store_id": 1, "avg_days_to_finish": 30, "offset_days": 30}},
		{"negative offset", map[string]interface{}{"store_id": 1, "avg_days_to_finish": 30, "offset_days": -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, r, "/settings/product/p1", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}

	// Nothing may be written on a rejected request.
	var count int64
	utils.RetentionDB.Model(&models.ProductSetting{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no settings written, got %d", count)
	}
}

func TestUpdateProductSettingUnknownStore(t *testing.T) {
	r := setupRouter(t)
	w := postJSON(t, r, "/settings/product/p1", map[string]interface{}{
		"store_id": 42, "avg_days_to_finish": 30, "offset_days": 5,
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestUpdateProductSettingUpsert(t *testing.T) {
	r := setupRouter(t)

	w := postJSON(t, r, "/settings/product/p1", map[string]interface{}{
		"store_id": 1, "product_name": "عسل سدر", "avg_days_to_finish": 30, "offset_days": 5,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = postJSON(t, r, "/settings/product/p1", map[string]interface{}{
		"store_id": 1, "product_name": "عسل سدر", "avg_days_to_finish": 60, "offset_days": 10,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on update, got %d: %s", w.Code, w.Body.String())
	}

	var settings []models.ProductSetting
	utils.RetentionDB.Find(&settings)
	if len(settings) != 1 {
		t.Fatalf("expected a single upserted row, got %d", len(settings))
	}
	if settings[0].AvgDaysToFinish != 60 || settings[0].OffsetDays != 10 {
		t.Errorf("expected updated values, got %+v", settings[0])
	}
}

func TestSendMessageValidation(t *testing.T) {
	r := setupRouter(t)

	customer := models.Customer{ZidCustomerID: 100, StoreID: 1, Name: "Ahmed", TotalOrders: 1, Segment: models.SegmentNew}
	if err := utils.RetentionDB.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer failed: %v", err)
	}

	w := postJSON(t, r, "/api/send-message/1", map[string]interface{}{"store_id": 1})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing segment, got %d", w.Code)
	}

	w = postJSON(t, r, "/api/send-message/1", map[string]interface{}{"store_id": 1, "segment": "ACTIVE"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unsupported tag, got %d", w.Code)
	}

	w = postJSON(t, r, "/api/send-message/999", map[string]interface{}{"store_id": 1, "segment": "NEW"})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown customer, got %d", w.Code)
	}

	w = postJSON(t, r, "/api/send-message/1", map[string]interface{}{"store_id": 1, "segment": "NEW"})
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetCustomersRequiresKnownStore(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/customers", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without store_id, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/dashboard/customers?store_id=42", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown store, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/dashboard/customers?store_id=1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}
