package acptimes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ssugameworks/brevets/constants"
	"github.com/ssugameworks/brevets/errors"
)

// speedRange 거리 구간 [Low, High]와 해당 구간의 속도(km/h)입니다
type speedRange struct {
	Low       float64
	High      float64
	KmPerHour float64
}

// 구간은 Low 오름차순으로 연속되어야 하며 런타임에 수정하지 않습니다
var (
	maxSpeeds = []speedRange{
		{Low: 0, High: 200, KmPerHour: 34},
		{Low: 200, High: 400, KmPerHour: 32},
		{Low: 400, High: 600, KmPerHour: 30},
		{Low: 600, High: 1000, KmPerHour: 28},
		{Low: 1000, High: 1300, KmPerHour: 26},
	}

	minSpeeds = []speedRange{
		{Low: 0, High: 600, KmPerHour: 15},
		{Low: 600, High: 1000, KmPerHour: 11.428},
		{Low: 1000, High: 1300, KmPerHour: 13.333},
	}
)

type timeLimit struct {
	BrevetKm float64
	Hours    float64
}

// 공식 브레베 거리별 완주 제한 시간
var timeLimits = []timeLimit{
	{BrevetKm: 200, Hours: 13.5},
	{BrevetKm: 300, Hours: 20},
	{BrevetKm: 400, Hours: 27},
	{BrevetKm: 600, Hours: 40},
	{BrevetKm: 1000, Hours: 75},
	{BrevetKm: 1200, Hours: 90},
	{BrevetKm: 1400, Hours: 116.4},
	{BrevetKm: 2200, Hours: 220},
}

// TimeLimit 공식 브레베 거리의 완주 제한 시간(시간 단위)을 반환합니다
func TimeLimit(brevetKm float64) (float64, error) {
	for _, limit := range timeLimits {
		if limit.BrevetKm == brevetKm {
			return limit.Hours, nil
		}
	}
	return 0, unknownBrevetError(brevetKm)
}

// IsOfficialDistance 공식 브레베 거리인지 확인합니다
func IsOfficialDistance(brevetKm float64) bool {
	_, err := TimeLimit(brevetKm)
	return err == nil
}

// OfficialDistances 공식 브레베 거리 목록을 오름차순으로 반환합니다
func OfficialDistances() []float64 {
	distances := make([]float64, len(timeLimits))
	for i, limit := range timeLimits {
		distances[i] = limit.BrevetKm
	}
	return distances
}

func officialDistanceList() string {
	parts := make([]string, len(timeLimits))
	for i, limit := range timeLimits {
		parts[i] = strconv.FormatFloat(limit.BrevetKm, 'f', -1, 64)
	}
	return strings.Join(parts, ", ")
}

func unknownBrevetError(brevetKm float64) *errors.AppError {
	return errors.NewValidationError(CodeUnknownBrevet,
		fmt.Sprintf("%g km is not an official brevet distance", brevetKm),
		fmt.Sprintf(constants.MsgInvalidBrevet, officialDistanceList()))
}
