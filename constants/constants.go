package constants

import "time"

// 브레베 관련 상수
const (
	// 컨트롤 거리는 브레베 공식 거리의 최대 120%까지 허용됩니다
	MaxControlDistanceRatio = 1.2

	// 짧은 컨트롤(60km 이하)의 마감 시간 규칙
	ShortControlMaxKm     = 60.0
	ShortControlKmPerHour = 20.0
	ShortControlExtraHour = 1.0

	KmToMiles = 0.621371

	// 한 스케줄에 허용되는 최대 컨트롤 수
	MaxControlsPerSubmission = 50
)

// 날짜 형식
const (
	DateFormat     = "2006-01-02"
	TimeFormat     = "15:04"
	DateTimeFormat = "2006-01-02 15:04:05"
	// 오프셋을 항상 ±HH:MM으로 표기합니다 (UTC도 +00:00)
	ISOFormat     = "2006-01-02T15:04:05-07:00"
	DisplayFormat = "Mon 1/2 15:04"
)

// 로그 관련 상수
const (
	LogLevelDebug = "DEBUG"
	LogLevelInfo  = "INFO"
	LogLevelWarn  = "WARN"
	LogLevelError = "ERROR"
)

// Discord 관련 상수
const (
	CommandPrefix       = "!"
	CommandPrefixLength = 1 // "!" 길이

	MaxDiscordRetries = 3
	BaseRetryDelay    = 1 * time.Second

	// 저장된 스케줄 요약을 채널에 보내는 주기와 기본 시각
	SchedulerInterval = 24 * time.Hour
	DefaultDigestTime = "09:00"

	// 디스코드 메시지/임베드 길이 제한
	MaxDiscordMessageLength = 2000
	MaxEmbedFields          = 25
	MaxEmbedFieldLength     = 1024
	MaxEmbedTotalLength     = 6000

	// 명령어 처리 중 저장소 호출 제한 시간
	CommandStorageTimeout = 10 * time.Second

	BotStatusMessage = "!help · 브레베 컨트롤 계산"
)

// 이모지 상수
const (
	EmojiSuccess = "✅"
	EmojiError   = "❌"
	EmojiInfo    = "ℹ️"
	EmojiBike    = "🚴"
)

// 환경 변수 키
const (
	EnvPort                = "PORT"
	EnvConfigFile          = "CONFIG_FILE"
	EnvStorageBackend      = "STORAGE_BACKEND"
	EnvFirestoreCollection = "FIRESTORE_COLLECTION"
	EnvFirebaseCredentials = "FIREBASE_CREDENTIALS_JSON"
	EnvDiscordToken        = "DISCORD_BOT_TOKEN"
	EnvChannelID           = "DISCORD_CHANNEL_ID"
	EnvDigestTime          = "DISCORD_DIGEST_TIME"
	EnvLogLevel            = "LOG_LEVEL"
	EnvDebugMode           = "DEBUG_MODE"
	EnvJSONLogging         = "JSON_LOGGING"
	EnvTelemetryEnabled    = "TELEMETRY_ENABLED"
	EnvGoogleCloudProject  = "GOOGLE_CLOUD_PROJECT"
)

// 저장소 백엔드
const (
	StorageBackendFirestore = "firestore"
	StorageBackendMemory    = "memory"

	DefaultSubmissionCollection = "latestsubmit"
)

// 텔레메트리 관련 상수
const (
	TelemetryNamespace       = "brevets"
	TelemetryJobName         = "brevet-calculator"
	TelemetryTaskID          = "main"
	TelemetryCredentialsFile = "brevets-gcloud-credentials.json"
	TelemetryFilePermissions = 0600
)
