package constants

import "time"

// 시스템 관련 상수
const (
	// 애플리케이션 버전
	AppVersion = "0.3.0"

	// 네트워크 관련
	DefaultHTTPPort = "8080"

	// 메모리 관련
	BytesToMB = 1024 * 1024

	// 헬스체크 관련
	FirestoreHealthCheckTimeout = 5 * time.Second
	HealthCheckCollectionName   = "health_check"
	HealthStatusHealthy         = "healthy"
	HealthStatusUnhealthy       = "unhealthy"
)
