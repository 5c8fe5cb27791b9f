package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/ssugameworks/brevets/constants"
)

func TestHandler_Healthy(t *testing.T) {
	RegisterHealthChecker("ok", CheckerFunc(func(ctx context.Context) error { return nil }))
	defer UnregisterHealthChecker("ok")

	rec := httptest.NewRecorder()
	Handler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, expected 200", rec.Code)
	}

	var status HealthStatus
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if status.Status != constants.HealthStatusHealthy {
		t.Errorf("Status = %s", status.Status)
	}
	if status.Checks["ok"] != constants.HealthStatusHealthy {
		t.Errorf("Checks = %v", status.Checks)
	}
	if status.Version != constants.AppVersion {
		t.Errorf("Version = %s", status.Version)
	}
}

func TestHandler_Unhealthy(t *testing.T) {
	RegisterHealthChecker("firestore", CheckerFunc(func(ctx context.Context) error {
		return fmt.Errorf("deadline exceeded")
	}))
	defer UnregisterHealthChecker("firestore")

	rec := httptest.NewRecorder()
	Handler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status code = %d, expected 503", rec.Code)
	}

	status := Evaluate(context.Background())
	if status.Checks["firestore"] != "deadline exceeded" {
		t.Errorf("Checks = %v", status.Checks)
	}
}

func TestFirestoreHealthChecker_ReadsCurrentClient(t *testing.T) {
	calls := 0
	checker := NewFirestoreHealthChecker(func() *firestore.Client {
		calls++
		return nil
	})

	for i := 0; i < 2; i++ {
		if err := checker.Check(context.Background()); err == nil {
			t.Error("Check should fail without a client")
		}
	}
	if calls != 2 {
		t.Errorf("client provider called %d times, expected once per check", calls)
	}
}
