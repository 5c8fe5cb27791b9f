package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/ssugameworks/brevets/constants"
	"gopkg.in/yaml.v3"
)

// Config 애플리케이션의 전체 설정을 관리합니다
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Discord   DiscordConfig   `yaml:"discord"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

// StorageConfig 인증 정보는 환경변수로만 받습니다
type StorageConfig struct {
	Backend             string `yaml:"backend"`
	Collection          string `yaml:"collection"`
	FirebaseCredentials string `yaml:"-"`
}

type DiscordConfig struct {
	Token      string `yaml:"-"`
	ChannelID  string `yaml:"channel_id"`
	DigestTime string `yaml:"digest_time"` // HH:MM, 서버 로컬 시각
}

// Enabled 토큰이 있을 때만 디스코드 봇을 띄웁니다
func (d DiscordConfig) Enabled() bool {
	return d.Token != ""
}

// DigestEnabled 채널이 지정된 경우에만 매일 스케줄 요약을 보냅니다
func (d DiscordConfig) DigestEnabled() bool {
	return d.Enabled() && d.ChannelID != ""
}

// DigestClock 요약 전송 시각을 시/분으로 반환합니다
func (d DiscordConfig) DigestClock() (hour, minute int, err error) {
	t, err := time.Parse(constants.TimeFormat, d.DigestTime)
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}

type LoggingConfig struct {
	Level     string `yaml:"level"`
	DebugMode bool   `yaml:"debug_mode"`
	JSON      bool   `yaml:"json"`
}

type TelemetryConfig struct {
	Enabled   bool   `yaml:"enabled"`
	ProjectID string `yaml:"project_id"`
}

// Default 기본 설정값입니다
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: constants.DefaultHTTPPort,
		},
		Storage: StorageConfig{
			Backend:    constants.StorageBackendFirestore,
			Collection: constants.DefaultSubmissionCollection,
		},
		Discord: DiscordConfig{
			DigestTime: constants.DefaultDigestTime,
		},
		Logging: LoggingConfig{
			Level: constants.LogLevelInfo,
		},
	}
}

// Load 기본값 위에 CONFIG_FILE(YAML), 그 위에 환경변수를 덮어써 설정을 만듭니다.
// 문자열 환경변수는 빈 값이면 무시하고, 불리언 환경변수는 설정되어 있으면 false도 적용합니다.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(constants.EnvConfigFile); path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if err := mergo.Merge(cfg, fileCfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merge config file: %w", err)
		}
	}

	if err := mergo.Merge(cfg, fromEnv(), mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("merge environment config: %w", err)
	}
	applyEnvBools(cfg)

	return cfg, nil
}

// LoadFile YAML 설정 파일을 읽습니다
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

func fromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port: os.Getenv(constants.EnvPort),
		},
		Storage: StorageConfig{
			Backend:             strings.ToLower(os.Getenv(constants.EnvStorageBackend)),
			Collection:          os.Getenv(constants.EnvFirestoreCollection),
			FirebaseCredentials: os.Getenv(constants.EnvFirebaseCredentials),
		},
		Discord: DiscordConfig{
			Token:      os.Getenv(constants.EnvDiscordToken),
			ChannelID:  os.Getenv(constants.EnvChannelID),
			DigestTime: os.Getenv(constants.EnvDigestTime),
		},
		Logging: LoggingConfig{
			Level: os.Getenv(constants.EnvLogLevel),
		},
		Telemetry: TelemetryConfig{
			ProjectID: os.Getenv(constants.EnvGoogleCloudProject),
		},
	}
}

// applyEnvBools mergo는 false를 빈 값으로 보고 건너뛰므로 불리언은 병합 뒤에 따로 적용합니다
func applyEnvBools(cfg *Config) {
	cfg.Logging.DebugMode = getEnvBool(constants.EnvDebugMode, cfg.Logging.DebugMode)
	cfg.Logging.JSON = getEnvBool(constants.EnvJSONLogging, cfg.Logging.JSON)
	cfg.Telemetry.Enabled = getEnvBool(constants.EnvTelemetryEnabled, cfg.Telemetry.Enabled)
}

// Validate 설정의 유효성을 검사합니다
func (c *Config) Validate() error {
	// 포트 검증
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return &ConfigError{
			Field:   "Server.Port",
			Message: "PORT must be a number between 1 and 65535 (got: " + c.Server.Port + ")",
		}
	}

	// 저장소 검증
	switch c.Storage.Backend {
	case constants.StorageBackendFirestore:
		if c.Storage.FirebaseCredentials == "" {
			return &ConfigError{
				Field:   "Storage.FirebaseCredentials",
				Message: constants.EnvFirebaseCredentials + " is required for the firestore backend",
			}
		}
		if c.Storage.Collection == "" {
			return &ConfigError{
				Field:   "Storage.Collection",
				Message: "collection name must not be empty",
			}
		}
	case constants.StorageBackendMemory:
	default:
		return &ConfigError{
			Field:   "Storage.Backend",
			Message: "STORAGE_BACKEND must be one of: firestore, memory (got: " + c.Storage.Backend + ")",
		}
	}

	// 로그 레벨 검증
	validLogLevels := map[string]bool{
		constants.LogLevelDebug: true,
		constants.LogLevelInfo:  true,
		constants.LogLevelWarn:  true,
		constants.LogLevelError: true,
	}
	if !validLogLevels[strings.ToUpper(c.Logging.Level)] {
		return &ConfigError{
			Field:   "Logging.Level",
			Message: "LOG_LEVEL must be one of: DEBUG, INFO, WARN, ERROR (got: " + c.Logging.Level + ")",
		}
	}

	// 요약 전송 시각 검증 (채널이 지정된 경우에만)
	if c.Discord.DigestEnabled() {
		if _, _, err := c.Discord.DigestClock(); err != nil {
			return &ConfigError{
				Field:   "Discord.DigestTime",
				Message: constants.EnvDigestTime + " must be HH:MM (got: " + c.Discord.DigestTime + ")",
			}
		}
	}

	// 텔레메트리 검증 (활성화된 경우에만)
	if c.Telemetry.Enabled && c.Telemetry.ProjectID == "" {
		return &ConfigError{
			Field:   "Telemetry.ProjectID",
			Message: constants.EnvGoogleCloudProject + " is required when telemetry is enabled",
		}
	}

	return nil
}

// IsDebugMode 디버그 모드 여부를 반환합니다
func (c *Config) IsDebugMode() bool {
	return c.Logging.DebugMode || strings.ToUpper(c.Logging.Level) == constants.LogLevelDebug
}

// EffectiveLogLevel 디버그 모드면 DEBUG를 반환합니다
func (c *Config) EffectiveLogLevel() string {
	if c.IsDebugMode() {
		return constants.LogLevelDebug
	}
	return strings.ToUpper(c.Logging.Level)
}

// ConfigError 설정 관련 오류를 나타냅니다
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in " + e.Field + ": " + e.Message
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
