package interfaces

import (
	"time"

	"github.com/ssugameworks/brevets/models"
)

// ControlTimeCalculator 컨트롤 오픈/마감 시각 계산을 위한 인터페이스입니다
type ControlTimeCalculator interface {
	OpenTime(controlKm, brevetKm float64, start time.Time) (time.Time, error)
	CloseTime(controlKm, brevetKm float64, start time.Time) (time.Time, error)
	BuildSchedule(brevetKm float64, start time.Time, controls []models.ControlInput) (*models.Submission, error)
}
