package interfaces

import "time"

// MetricsRecorder 텔레메트리 전송을 위한 인터페이스입니다
type MetricsRecorder interface {
	SendCommandMetric(command string, isAdmin bool)
	SendCalculationMetric(kind string, brevetKm float64, success bool)
	SendStorageMetric(operation string, duration time.Duration, success bool)
}
