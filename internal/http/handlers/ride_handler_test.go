// README: Handler validation tests; exercise the paths that reject before any store access.
package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"ridedispatch/internal/http/handlers"
	"ridedispatch/internal/modules/ride"
)

// buildTestRouter wires a minimal Gin engine around the handlers.
// ride.NewService(nil) and handlers.NewDriverHandler(nil) are safe here
// because every case below fails validation before any store method is called.
func buildTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rides := handlers.NewRideHandler(ride.NewService(nil))
	drivers := handlers.NewDriverHandler(nil)
	r.POST("/api/request-ride", rides.Create)
	r.GET("/api/rides/:id", rides.Get)
	r.POST("/api/register-driver", drivers.Register)
	return r
}

func doRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestRide_InvalidJSON(t *testing.T) {
	r := buildTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/api/request-ride", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRequestRide_MissingFields(t *testing.T) {
	r := buildTestRouter()
	cases := []map[string]string{
		{"source_location": "Downtown Core", "destination_location": "Airport Terminal"},
		{"user_id": "u1", "destination_location": "Airport Terminal"},
		{"user_id": "u1", "source_location": "Downtown Core"},
	}
	for i, body := range cases {
		w := doRequest(r, http.MethodPost, "/api/request-ride", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("case %d: expected 400, got %d", i, w.Code)
		}
	}
}

func TestGetRide_InvalidID(t *testing.T) {
	r := buildTestRouter()
	w := doRequest(r, http.MethodGet, "/api/rides/not-a-number", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRegisterDriver_MissingFields(t *testing.T) {
	r := buildTestRouter()
	w := doRequest(r, http.MethodPost, "/api/register-driver", map[string]string{
		"driver_id": "DRV-1",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRegisterDriver_InvalidStatus(t *testing.T) {
	r := buildTestRouter()
	w := doRequest(r, http.MethodPost, "/api/register-driver", map[string]string{
		"driver_id":        "DRV-1",
		"name":             "Test Driver",
		"status":           "sleeping",
		"current_location": "Downtown Core",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
