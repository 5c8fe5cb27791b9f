package utils

import (
	"time"

	"github.com/ssugameworks/brevets/constants"
)

// FormatISO 오프셋을 포함한 ISO-8601 문자열로 포맷팅합니다
func FormatISO(t time.Time) string {
	return t.Format(constants.ISOFormat)
}

// FormatDisplay 디스코드 표 출력용 짧은 형식입니다
func FormatDisplay(t time.Time) string {
	return t.Format(constants.DisplayFormat)
}

// ParseISO FormatISO로 저장한 문자열을 오프셋을 유지한 채 다시 읽습니다
func ParseISO(s string) (time.Time, error) {
	return time.Parse(constants.ISOFormat, s)
}
