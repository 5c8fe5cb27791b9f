// Package acptimes ACP 규정에 따라 브레베 컨트롤의 오픈/마감 시각을 계산합니다.
// 규칙: https://rusa.org/octime_alg.html
package acptimes

import (
	"fmt"
	"math"
	"time"

	"github.com/ssugameworks/brevets/constants"
	"github.com/ssugameworks/brevets/errors"
	"github.com/ssugameworks/brevets/interfaces"
	"github.com/ssugameworks/brevets/models"
)

// 계산기 오류 코드
const (
	CodeInvalidControl  = "INVALID_CONTROL_DISTANCE"
	CodeUnknownBrevet   = "UNKNOWN_BREVET_DISTANCE"
	CodeNoControls      = "NO_CONTROLS"
	CodeTooManyControls = "TOO_MANY_CONTROLS"
	CodeInvalidLocation = "INVALID_LOCATION"
)

// Calculator 상태가 없으므로 여러 고루틴에서 공유해도 안전합니다
type Calculator struct{}

func NewCalculator() interfaces.ControlTimeCalculator {
	return &Calculator{}
}

func (c *Calculator) OpenTime(controlKm, brevetKm float64, start time.Time) (time.Time, error) {
	return OpenTime(controlKm, brevetKm, start)
}

func (c *Calculator) CloseTime(controlKm, brevetKm float64, start time.Time) (time.Time, error) {
	return CloseTime(controlKm, brevetKm, start)
}

func (c *Calculator) BuildSchedule(brevetKm float64, start time.Time, controls []models.ControlInput) (*models.Submission, error) {
	return BuildSchedule(brevetKm, start, controls)
}

// OpenTime 최고 속도 표를 따라 달렸을 때 컨트롤에 가장 빨리 도착할 수 있는 시각입니다.
// 브레베 거리를 넘는 컨트롤은 브레베 거리로 잘라 계산합니다.
func OpenTime(controlKm, brevetKm float64, start time.Time) (time.Time, error) {
	if err := checkControlDistance(controlKm, brevetKm); err != nil {
		return time.Time{}, err
	}

	if controlKm > brevetKm {
		controlKm = brevetKm
	}

	return shiftHours(start, accumulateHours(maxSpeeds, controlKm)), nil
}

// CloseTime 컨트롤 마감 시각을 계산합니다.
//   - 컨트롤이 브레베 거리 이상이면 완주 제한 시간을 그대로 사용합니다
//   - 60km 이하 컨트롤은 20km/h + 1시간 규칙을 사용합니다
//   - 그 외에는 최저 속도 표를 따라 누적합니다
func CloseTime(controlKm, brevetKm float64, start time.Time) (time.Time, error) {
	if err := checkControlDistance(controlKm, brevetKm); err != nil {
		return time.Time{}, err
	}

	var hours float64
	switch {
	case controlKm >= brevetKm:
		limit, err := TimeLimit(brevetKm)
		if err != nil {
			return time.Time{}, err
		}
		hours = limit
	case controlKm <= constants.ShortControlMaxKm:
		hours = controlKm/constants.ShortControlKmPerHour + constants.ShortControlExtraHour
	default:
		hours = accumulateHours(minSpeeds, controlKm)
	}

	return shiftHours(start, hours), nil
}

// accumulateHours 구간을 순서대로 훑으며 km까지 걸리는 시간을 누적합니다.
// km이 구간 경계와 같으면 먼저 만나는 아래 구간에서 멈춥니다.
// 표의 마지막 구간(1300km)을 넘는 거리는 더 이상 시간이 늘지 않습니다.
func accumulateHours(table []speedRange, km float64) float64 {
	hours := 0.0
	for _, r := range table {
		if r.Low <= km && km <= r.High {
			return hours + (km-r.Low)/r.KmPerHour
		}
		if km > r.High {
			hours += (r.High - r.Low) / r.KmPerHour
		}
	}
	return hours
}

// shiftHours 소수 시간을 정수 시간 + 분(round-half-to-even)으로 바꿔 더합니다.
// time.Time.Add는 출발 시각의 Location을 그대로 유지합니다.
func shiftHours(start time.Time, hours float64) time.Time {
	whole, fraction := math.Modf(hours)
	minutes := math.RoundToEven(fraction * 60)
	return start.Add(time.Duration(whole)*time.Hour + time.Duration(minutes)*time.Minute)
}

func checkControlDistance(controlKm, brevetKm float64) error {
	maxKm := brevetKm * constants.MaxControlDistanceRatio
	// NaN도 여기서 걸러집니다
	if !(controlKm >= 0 && controlKm <= maxKm) {
		return errors.NewValidationError(CodeInvalidControl,
			fmt.Sprintf("control distance %g km outside [0, %g] for %g km brevet", controlKm, maxKm, brevetKm),
			fmt.Sprintf(constants.MsgInvalidDistance, maxKm))
	}
	return nil
}
