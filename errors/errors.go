package errors

import (
	stderrors "errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/ssugameworks/brevets/constants"
	"github.com/ssugameworks/brevets/utils"
)

// ErrorType 오류의 종류를 나타냅니다
type ErrorType int

const (
	TypeValidation ErrorType = iota
	TypeNotFound
	TypePermission
	TypeStorage
	TypeSystem
)

func (t ErrorType) String() string {
	switch t {
	case TypeValidation:
		return "validation"
	case TypeNotFound:
		return "not_found"
	case TypePermission:
		return "permission"
	case TypeStorage:
		return "storage"
	case TypeSystem:
		return "system"
	default:
		return "unknown"
	}
}

// AppError 애플리케이션에서 발생하는 구조화된 오류를 표현합니다
type AppError struct {
	Type     ErrorType
	Code     string
	Message  string
	UserMsg  string
	Internal error
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Internal)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Internal
}

// GetUserMessage 사용자에게 표시할 메시지를 반환합니다
func (e *AppError) GetUserMessage() string {
	if e.UserMsg != "" {
		return e.UserMsg
	}
	return e.Message
}

// 오류 생성 함수들

// NewValidationError 입력값 검증 오류를 생성합니다
func NewValidationError(code, message, userMsg string) *AppError {
	return &AppError{
		Type:    TypeValidation,
		Code:    code,
		Message: message,
		UserMsg: userMsg,
	}
}

// NewNotFoundError 리소스를 찾을 수 없는 오류를 생성합니다
func NewNotFoundError(code, message, userMsg string) *AppError {
	return &AppError{
		Type:    TypeNotFound,
		Code:    code,
		Message: message,
		UserMsg: userMsg,
	}
}

// NewPermissionError 권한 관련 오류를 생성합니다
func NewPermissionError(code, message, userMsg string) *AppError {
	return &AppError{
		Type:    TypePermission,
		Code:    code,
		Message: message,
		UserMsg: userMsg,
	}
}

// NewStorageError 문서 저장소 연동 오류를 생성합니다
func NewStorageError(code, message string, err error) *AppError {
	return &AppError{
		Type:     TypeStorage,
		Code:     code,
		Message:  message,
		UserMsg:  constants.MsgStorageFailure,
		Internal: err,
	}
}

// NewSystemError 시스템 내부 오류를 생성합니다
func NewSystemError(code, message string, err error) *AppError {
	return &AppError{
		Type:     TypeSystem,
		Code:     code,
		Message:  message,
		UserMsg:  "시스템 오류가 발생했습니다. 관리자에게 문의해주세요.",
		Internal: err,
	}
}

// AsAppError 오류 체인에서 AppError를 찾습니다
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType 오류 체인에 지정한 종류의 AppError가 있는지 확인합니다
func IsType(err error, t ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Type == t
}

// IsValidation 입력값 검증 오류인지 확인합니다
func IsValidation(err error) bool {
	return IsType(err, TypeValidation)
}

// HasCode 오류 체인의 AppError 코드가 일치하는지 확인합니다
func HasCode(err error, code string) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// Discord 메시지 관련 헬퍼 함수들

// HandleDiscordError 오류를 처리하고 Discord 채널에 메시지를 전송합니다
func HandleDiscordError(s *discordgo.Session, channelID string, err error) {
	if appErr, ok := AsAppError(err); ok {
		if appErr.Internal != nil {
			utils.Error("%s - %s: %v", appErr.Code, appErr.Message, appErr.Internal)
		} else {
			utils.Warn("%s - %s", appErr.Code, appErr.Message)
		}

		if discordErr := SendDiscordMessageWithRetry(s, channelID, constants.EmojiError+" "+appErr.GetUserMessage()); discordErr != nil {
			utils.Error("DISCORD API ERROR: Failed to send error message after retries: %v", discordErr)
		}
		return
	}

	utils.Error("UNEXPECTED ERROR: %v", err)
	if discordErr := SendDiscordMessageWithRetry(s, channelID, constants.EmojiError+" 예상치 못한 오류가 발생했습니다."); discordErr != nil {
		utils.Error("DISCORD API ERROR: Failed to send error message after retries: %v", discordErr)
	}
}

// SendDiscordSuccess 성공 메시지를 Discord 채널에 전송합니다
func SendDiscordSuccess(s *discordgo.Session, channelID, message string) error {
	return SendDiscordMessageWithRetry(s, channelID, constants.EmojiSuccess+" "+message)
}

// SendDiscordInfo 정보 메시지를 Discord 채널에 전송합니다
func SendDiscordInfo(s *discordgo.Session, channelID, message string) error {
	return SendDiscordMessageWithRetry(s, channelID, constants.EmojiInfo+" "+message)
}

// SendDiscordMessageWithRetry Discord 메시지 전송을 재시도 로직과 함께 수행합니다
func SendDiscordMessageWithRetry(s *discordgo.Session, channelID, message string) error {
	const maxRetries = constants.MaxDiscordRetries
	const baseDelay = constants.BaseRetryDelay

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := s.ChannelMessageSend(channelID, message)
		if err == nil {
			if attempt > 0 {
				utils.Info("Discord message sent successfully after %d retries", attempt)
			}
			return nil
		}

		lastErr = err
		if attempt < maxRetries-1 {
			delay := time.Duration(1<<attempt) * baseDelay // 1s, 2s, 4s
			utils.Warn("Discord API call failed (attempt %d/%d): %v. Retrying in %v...",
				attempt+1, maxRetries, err, delay)
			time.Sleep(delay)
		}
	}

	utils.Error("DISCORD API ERROR: All retry attempts failed: %v", lastErr)
	return lastErr
}
