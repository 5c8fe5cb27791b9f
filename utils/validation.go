package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ssugameworks/brevets/constants"
)

// 오프셋이 없는 입력은 UTC로 해석합니다
var startTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseDistance 킬로미터 거리 문자열을 파싱합니다
func ParseDistance(s string) (float64, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(strings.ToLower(s)), "km")
	if trimmed == "" {
		return 0, fmt.Errorf("empty distance")
	}

	km, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid distance %q: %w", s, err)
	}
	if math.IsNaN(km) || math.IsInf(km, 0) {
		return 0, fmt.Errorf("invalid distance %q", s)
	}
	if km < 0 {
		return 0, fmt.Errorf("negative distance %q", s)
	}
	return km, nil
}

// ParseStartTime 브레베 출발 시각을 파싱합니다
func ParseStartTime(s string) (time.Time, error) {
	value := strings.TrimSpace(s)
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized start time %q", s)
}

// ParseUTCOffset "+09:00", "-0800", "Z" 형식의 오프셋을 고정 시간대로 변환합니다
func ParseUTCOffset(s string) (*time.Location, error) {
	value := strings.TrimSpace(s)
	if value == "" || value == "Z" || strings.EqualFold(value, "UTC") {
		return time.UTC, nil
	}
	if len(value) < 3 || (value[0] != '+' && value[0] != '-') {
		return nil, fmt.Errorf("invalid utc offset %q", s)
	}

	sign := 1
	if value[0] == '-' {
		sign = -1
	}
	digits := strings.ReplaceAll(value[1:], ":", "")
	if len(digits) == 2 {
		digits += "00"
	}
	if len(digits) != 4 || !isDigits(digits) {
		return nil, fmt.Errorf("invalid utc offset %q", s)
	}

	hours, err := strconv.Atoi(digits[:2])
	if err != nil || hours > 14 {
		return nil, fmt.Errorf("invalid utc offset %q", s)
	}
	minutes, err := strconv.Atoi(digits[2:])
	if err != nil || minutes > 59 {
		return nil, fmt.Errorf("invalid utc offset %q", s)
	}

	seconds := sign * (hours*3600 + minutes*60)
	return time.FixedZone(value, seconds), nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// CombineDateTime 날짜, 시각, 오프셋 입력을 하나의 출발 시각으로 합칩니다
func CombineDateTime(date, clock, offset string) (time.Time, error) {
	loc, err := ParseUTCOffset(offset)
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.ParseInLocation(constants.DateFormat+" "+constants.TimeFormat,
		strings.TrimSpace(date)+" "+strings.TrimSpace(clock), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid begin date/time %q %q: %w", date, clock, err)
	}
	return t, nil
}

// IsValidLocation 컨트롤 위치 이름을 검증합니다. 빈 값은 허용됩니다
func IsValidLocation(name string) bool {
	if name == "" {
		return true
	}
	if utf8.RuneCountInString(name) > constants.MaxLocationLength {
		return false
	}
	return !containsMaliciousPattern(name)
}

// containsMaliciousPattern 악의적인 패턴을 감지합니다
func containsMaliciousPattern(input string) bool {
	lowerInput := strings.ToLower(input)
	for _, pattern := range constants.SecurityMaliciousPatterns {
		if strings.Contains(lowerInput, pattern) {
			return true
		}
	}

	for _, char := range input {
		if char < constants.ControlCharMin && char != constants.ControlCharTab && char != constants.ControlCharLF && char != constants.ControlCharCR {
			return true
		}
	}

	return false
}

// SanitizeString 앞뒤 공백과 연속 공백을 정리합니다
func SanitizeString(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
