package utils

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ssugameworks/brevets/constants"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

type Logger struct {
	mu     sync.RWMutex
	level  LogLevel
	logger *log.Logger
	json   *slog.Logger
}

var globalLogger *Logger

func init() {
	globalLogger = NewLogger()
}

func NewLogger() *Logger {
	jsonOutput, _ := strconv.ParseBool(os.Getenv(constants.EnvJSONLogging))
	return newLogger(os.Stdout, ParseLogLevel(os.Getenv(constants.EnvLogLevel)), jsonOutput)
}

func newLogger(w io.Writer, level LogLevel, jsonOutput bool) *Logger {
	l := &Logger{
		level:  level,
		logger: log.New(w, "", 0),
	}
	if jsonOutput {
		l.json = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return l
}

// Configure 설정 로드 이후 전역 로거의 레벨과 출력 형식을 바꿉니다
func Configure(level string, jsonOutput bool) {
	ConfigureOutput(os.Stdout, level, jsonOutput)
}

// ConfigureOutput 전역 로거의 출력 대상을 교체합니다 (테스트용)
func ConfigureOutput(w io.Writer, level string, jsonOutput bool) {
	l := newLogger(w, ParseLogLevel(level), jsonOutput)
	globalLogger.mu.Lock()
	globalLogger.level = l.level
	globalLogger.logger = l.logger
	globalLogger.json = l.json
	globalLogger.mu.Unlock()
}

// ParseLogLevel 문자열 로그 레벨을 변환합니다. 알 수 없는 값은 INFO입니다
func ParseLogLevel(levelStr string) LogLevel {
	switch strings.ToUpper(levelStr) {
	case constants.LogLevelDebug:
		return DEBUG
	case constants.LogLevelInfo:
		return INFO
	case constants.LogLevelWarn:
		return WARN
	case constants.LogLevelError:
		return ERROR
	default:
		return INFO
	}
}

func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if level < l.level {
		return
	}

	message := l.filterSensitiveInfo(fmt.Sprintf(format, args...))

	if l.json != nil {
		l.json.Log(context.Background(), slogLevel(level), message)
		return
	}

	timestamp := time.Now().Format(constants.DateTimeFormat)
	l.logger.Printf("[%s] %s %s", timestamp, l.getLevelString(level), message)
}

func slogLevel(level LogLevel) slog.Level {
	switch level {
	case DEBUG:
		return slog.LevelDebug
	case WARN:
		return slog.LevelWarn
	case ERROR:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// filterSensitiveInfo 민감한 정보를 로그에서 마스킹합니다
func (l *Logger) filterSensitiveInfo(message string) string {
	sensitiveKeywords := []string{"token", "key", "secret", "password", "credentials"}
	lowerMessage := strings.ToLower(message)

	for _, keyword := range sensitiveKeywords {
		idx := strings.Index(lowerMessage, keyword)
		if idx == -1 {
			continue
		}
		remaining := message[idx+len(keyword):]
		for _, sep := range []string{"=", ":", "\""} {
			if strings.HasPrefix(remaining, sep) {
				return message[:idx+len(keyword)] + sep + "***MASKED***"
			}
		}
	}

	return message
}

func (l *Logger) getLevelString(level LogLevel) string {
	switch level {
	case DEBUG:
		return constants.LogLevelDebug
	case INFO:
		return constants.LogLevelInfo
	case WARN:
		return constants.LogLevelWarn
	case ERROR:
		return constants.LogLevelError
	default:
		return "UNKNOWN"
	}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(DEBUG, format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.log(INFO, format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(WARN, format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.log(ERROR, format, args...)
}

// 글로벌 로거 함수들
func Debug(format string, args ...interface{}) {
	globalLogger.Debug(format, args...)
}

func Info(format string, args ...interface{}) {
	globalLogger.Info(format, args...)
}

func Warn(format string, args ...interface{}) {
	globalLogger.Warn(format, args...)
}

func Error(format string, args ...interface{}) {
	globalLogger.Error(format, args...)
}
