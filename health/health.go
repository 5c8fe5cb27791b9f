package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"sort"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/ssugameworks/brevets/constants"
	"google.golang.org/api/iterator"
)

// HealthStatus 헬스체크 응답 구조체
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
	GoVersion string            `json:"go_version"`
	Memory    string            `json:"memory_usage"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Checker 외부 의존성 상태를 확인합니다
type Checker interface {
	Check(ctx context.Context) error
}

// CheckerFunc 함수를 Checker로 사용합니다
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Check(ctx context.Context) error { return f(ctx) }

var (
	startTime  = time.Now()
	checkersMu sync.RWMutex
	checkers   = map[string]Checker{}
)

// RegisterHealthChecker 이름으로 체커를 등록합니다. 같은 이름은 덮어씁니다
func RegisterHealthChecker(name string, checker Checker) {
	checkersMu.Lock()
	defer checkersMu.Unlock()
	checkers[name] = checker
}

// UnregisterHealthChecker 등록된 체커를 제거합니다
func UnregisterHealthChecker(name string) {
	checkersMu.Lock()
	defer checkersMu.Unlock()
	delete(checkers, name)
}

// FirestoreHealthChecker Firestore 읽기 가능 여부를 확인합니다.
// 재연결로 클라이언트가 바뀔 수 있으므로 검사할 때마다 현재 클라이언트를 가져옵니다
type FirestoreHealthChecker struct {
	client func() *firestore.Client
}

func NewFirestoreHealthChecker(client func() *firestore.Client) *FirestoreHealthChecker {
	return &FirestoreHealthChecker{client: client}
}

func (c *FirestoreHealthChecker) Check(ctx context.Context) error {
	client := c.client()
	if client == nil {
		return fmt.Errorf("firestore client is not available")
	}

	ctx, cancel := context.WithTimeout(ctx, constants.FirestoreHealthCheckTimeout)
	defer cancel()

	iter := client.Collection(constants.HealthCheckCollectionName).Limit(1).Documents(ctx)
	defer iter.Stop()

	if _, err := iter.Next(); err != nil && err != iterator.Done {
		return err
	}
	return nil
}

// Evaluate 등록된 모든 체커를 실행해 상태를 계산합니다
func Evaluate(ctx context.Context) HealthStatus {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	status := HealthStatus{
		Status:    constants.HealthStatusHealthy,
		Timestamp: time.Now(),
		Uptime:    time.Since(startTime).String(),
		Version:   constants.AppVersion,
		GoVersion: runtime.Version(),
		Memory:    fmt.Sprintf("%.2f MB", float64(memStats.Alloc)/constants.BytesToMB),
	}

	checkersMu.RLock()
	names := make([]string, 0, len(checkers))
	for name := range checkers {
		names = append(names, name)
	}
	sort.Strings(names)
	registered := make([]Checker, len(names))
	for i, name := range names {
		registered[i] = checkers[name]
	}
	checkersMu.RUnlock()

	if len(names) > 0 {
		status.Checks = make(map[string]string, len(names))
	}
	for i, name := range names {
		if err := registered[i].Check(ctx); err != nil {
			status.Status = constants.HealthStatusUnhealthy
			status.Checks[name] = err.Error()
			continue
		}
		status.Checks[name] = constants.HealthStatusHealthy
	}

	return status
}

// Handler 헬스체크 핸들러
func Handler(w http.ResponseWriter, r *http.Request) {
	status := Evaluate(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if status.Status != constants.HealthStatusHealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	json.NewEncoder(w).Encode(status)
}
