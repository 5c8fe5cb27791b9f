package telemetry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	monitoring "cloud.google.com/go/monitoring/apiv3/v2"
	"cloud.google.com/go/monitoring/apiv3/v2/monitoringpb"
	"github.com/ssugameworks/brevets/constants"
	"github.com/ssugameworks/brevets/utils"
	"google.golang.org/genproto/googleapis/api/metric"
	"google.golang.org/genproto/googleapis/api/monitoredres"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const metricPrefix = "custom.googleapis.com/brevets/"

// MetricsClient Google Cloud Monitoring 클라이언트를 래핑합니다
type MetricsClient struct {
	client    *monitoring.MetricClient
	projectID string
	enabled   bool
}

// NewDisabledMetricsClient 아무것도 전송하지 않는 클라이언트입니다
func NewDisabledMetricsClient() *MetricsClient {
	return &MetricsClient{enabled: false}
}

// NewMetricsClient 새로운 MetricsClient 인스턴스를 생성합니다
func NewMetricsClient(ctx context.Context, projectID string) *MetricsClient {
	if projectID == "" {
		utils.Warn("Project ID not provided, telemetry disabled")
		return NewDisabledMetricsClient()
	}

	// Firebase 인증 정보를 임시 파일로 생성하여 Google Cloud 인증에 사용
	if err := setupGoogleCloudCredentials(); err != nil {
		utils.Warn("Failed to setup Google Cloud credentials: %v", err)
		utils.Warn("Telemetry disabled - ensure Firebase credentials are available")
		return NewDisabledMetricsClient()
	}

	client, err := monitoring.NewMetricClient(ctx)
	if err != nil {
		utils.Warn("Failed to create monitoring client: %v", err)
		return NewDisabledMetricsClient()
	}

	utils.Info("Google Cloud Monitoring telemetry enabled for project: %s", projectID)
	return &MetricsClient{
		client:    client,
		projectID: projectID,
		enabled:   true,
	}
}

// Enabled 메트릭 전송 여부를 반환합니다
func (m *MetricsClient) Enabled() bool {
	return m.enabled
}

// SendCommandMetric 디스코드/HTTP 명령 사용 횟수를 전송합니다
func (m *MetricsClient) SendCommandMetric(command string, isAdmin bool) {
	if !m.enabled {
		return
	}

	if err := m.sendInt64Metric(context.Background(), "commands/usage", 1, map[string]string{
		"command":  command,
		"is_admin": strconv.FormatBool(isAdmin),
	}); err != nil {
		utils.Warn("Failed to send command metric: %v", err)
		return
	}

	utils.Debug("Command metric sent: %s (admin: %t)", command, isAdmin)
}

// SendCalculationMetric 컨트롤 시각 계산 요청을 브레베 거리별로 집계합니다
func (m *MetricsClient) SendCalculationMetric(kind string, brevetKm float64, success bool) {
	if !m.enabled {
		return
	}

	if err := m.sendInt64Metric(context.Background(), "calculations/count", 1, map[string]string{
		"kind":      kind,
		"brevet_km": strconv.FormatFloat(brevetKm, 'f', -1, 64),
		"success":   strconv.FormatBool(success),
	}); err != nil {
		utils.Warn("Failed to send calculation metric: %v", err)
		return
	}

	utils.Debug("Calculation metric sent: %s %gkm (success: %t)", kind, brevetKm, success)
}

// SendStorageMetric 저장소 작업의 소요 시간과 성공 여부를 전송합니다
func (m *MetricsClient) SendStorageMetric(operation string, duration time.Duration, success bool) {
	if !m.enabled {
		return
	}

	ctx := context.Background()

	if err := m.sendDoubleMetric(ctx, "storage/duration", duration.Seconds(), map[string]string{
		"operation": operation,
		"success":   strconv.FormatBool(success),
	}); err != nil {
		utils.Warn("Failed to send storage duration metric: %v", err)
	}

	successValue := 0.0
	if success {
		successValue = 1.0
	}
	if err := m.sendDoubleMetric(ctx, "storage/success_rate", successValue, map[string]string{
		"operation": operation,
	}); err != nil {
		utils.Warn("Failed to send storage success metric: %v", err)
	}

	utils.Debug("Storage metric sent: %s (duration: %v, success: %t)", operation, duration, success)
}

func (m *MetricsClient) sendDoubleMetric(ctx context.Context, metricType string, value float64, labels map[string]string) error {
	return m.send(ctx, metricType, labels, &monitoringpb.TypedValue{
		Value: &monitoringpb.TypedValue_DoubleValue{DoubleValue: value},
	})
}

func (m *MetricsClient) sendInt64Metric(ctx context.Context, metricType string, value int64, labels map[string]string) error {
	return m.send(ctx, metricType, labels, &monitoringpb.TypedValue{
		Value: &monitoringpb.TypedValue_Int64Value{Int64Value: value},
	})
}

func (m *MetricsClient) send(ctx context.Context, metricType string, labels map[string]string, value *monitoringpb.TypedValue) error {
	return m.client.CreateTimeSeries(ctx, buildTimeSeriesRequest(m.projectID, metricType, labels, value, time.Now()))
}

// buildTimeSeriesRequest 단일 포인트 시계열 요청을 만듭니다
func buildTimeSeriesRequest(projectID, metricType string, labels map[string]string, value *monitoringpb.TypedValue, now time.Time) *monitoringpb.CreateTimeSeriesRequest {
	if labels == nil {
		labels = make(map[string]string)
	}

	return &monitoringpb.CreateTimeSeriesRequest{
		Name: fmt.Sprintf("projects/%s", projectID),
		TimeSeries: []*monitoringpb.TimeSeries{
			{
				Metric: &metric.Metric{
					Type:   metricPrefix + metricType,
					Labels: labels,
				},
				Resource: &monitoredres.MonitoredResource{
					Type: "generic_task",
					Labels: map[string]string{
						"project_id": projectID,
						"location":   "global",
						"namespace":  constants.TelemetryNamespace,
						"job":        constants.TelemetryJobName,
						"task_id":    constants.TelemetryTaskID,
					},
				},
				Points: []*monitoringpb.Point{
					{
						Interval: &monitoringpb.TimeInterval{
							EndTime: timestamppb.New(now),
						},
						Value: value,
					},
				},
			},
		},
	}
}

// Close 클라이언트를 정리합니다
func (m *MetricsClient) Close() error {
	if !m.enabled || m.client == nil {
		return nil
	}
	return m.client.Close()
}

// setupGoogleCloudCredentials Firebase 인증 정보를 Google Cloud 인증으로 설정합니다
func setupGoogleCloudCredentials() error {
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" {
		return nil
	}

	firebaseCredentials := os.Getenv(constants.EnvFirebaseCredentials)
	if firebaseCredentials == "" {
		return fmt.Errorf("neither GOOGLE_APPLICATION_CREDENTIALS nor %s is set", constants.EnvFirebaseCredentials)
	}

	credFile := filepath.Join(os.TempDir(), constants.TelemetryCredentialsFile)
	if err := os.WriteFile(credFile, []byte(firebaseCredentials), constants.TelemetryFilePermissions); err != nil {
		return fmt.Errorf("failed to write temporary credentials file: %w", err)
	}

	os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", credFile)

	utils.Debug("Created temporary Google Cloud credentials file: %s", credFile)
	return nil
}
