package acptimes

import (
	"fmt"
	"math"
	"time"

	"github.com/ssugameworks/brevets/constants"
	"github.com/ssugameworks/brevets/errors"
	"github.com/ssugameworks/brevets/models"
	"github.com/ssugameworks/brevets/utils"
)

// ControlTimes 한 컨트롤의 오픈/마감 시각을 함께 계산합니다
func ControlTimes(controlKm, brevetKm float64, start time.Time) (openAt, closeAt time.Time, err error) {
	if openAt, err = OpenTime(controlKm, brevetKm, start); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if closeAt, err = CloseTime(controlKm, brevetKm, start); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return openAt, closeAt, nil
}

// ValidateBrevet 사용자 입력 브레베 거리가 공식 거리인지 검증합니다
func ValidateBrevet(brevetKm float64) error {
	if !IsOfficialDistance(brevetKm) {
		return unknownBrevetError(brevetKm)
	}
	return nil
}

// BuildSchedule 여러 컨트롤의 시각을 계산해 저장 가능한 스케줄 문서를 만듭니다.
// 컨트롤 순서는 입력 순서를 유지합니다.
func BuildSchedule(brevetKm float64, start time.Time, controls []models.ControlInput) (*models.Submission, error) {
	if err := ValidateBrevet(brevetKm); err != nil {
		return nil, err
	}

	if len(controls) == 0 {
		return nil, errors.NewValidationError(CodeNoControls, "no controls to schedule", constants.MsgNoControls)
	}
	if len(controls) > constants.MaxControlsPerSubmission {
		return nil, errors.NewValidationError(CodeTooManyControls,
			fmt.Sprintf("%d controls exceeds limit %d", len(controls), constants.MaxControlsPerSubmission),
			fmt.Sprintf(constants.MsgTooManyCtrls, constants.MaxControlsPerSubmission))
	}

	scheduled := make([]models.Control, 0, len(controls))
	for _, control := range controls {
		location := utils.SanitizeString(control.Location)
		if !utils.IsValidLocation(location) {
			return nil, errors.NewValidationError(CodeInvalidLocation,
				fmt.Sprintf("invalid control location %q", control.Location),
				"컨트롤 위치 이름에 사용할 수 없는 문자가 포함되어 있습니다.")
		}

		openAt, closeAt, err := ControlTimes(control.Km, brevetKm, start)
		if err != nil {
			return nil, err
		}

		scheduled = append(scheduled, models.Control{
			Km:       control.Km,
			Miles:    KmToMiles(control.Km),
			Location: location,
			Open:     utils.FormatISO(openAt),
			Close:    utils.FormatISO(closeAt),
		})
	}

	return &models.Submission{
		BrevetKm:    brevetKm,
		BeginDate:   utils.FormatISO(start),
		Controls:    scheduled,
		SubmittedAt: time.Now().UTC(),
	}, nil
}

// KmToMiles 킬로미터를 마일로 바꾸고 소수 첫째 자리로 반올림합니다
func KmToMiles(km float64) float64 {
	return math.Round(km*constants.KmToMiles*10) / 10
}
