package constants

import "time"

// HTTP 서버 설정 상수
const (
	ServerReadTimeout     = 10 * time.Second
	ServerWriteTimeout    = 15 * time.Second
	ServerIdleTimeout     = 60 * time.Second
	ServerShutdownTimeout = 10 * time.Second

	MaxRequestBodyBytes = 1 << 20 // 1MB
)

// 저장소 재시도 설정
const (
	MaxReconnectAttempts = 3
	ReconnectDelay       = 2 * time.Second
	FirestoreBatchSize   = 400 // Firestore 배치 쓰기 한도(500)보다 작게 유지
)
