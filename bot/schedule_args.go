package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/ssugameworks/brevets/constants"
	"github.com/ssugameworks/brevets/errors"
	"github.com/ssugameworks/brevets/models"
	"github.com/ssugameworks/brevets/utils"
)

// scheduleArgs `<브레베거리> <출발시각> <컨트롤km>...` 형식의 명령어 인자입니다
type scheduleArgs struct {
	BrevetKm float64
	Start    time.Time
	Controls []models.ControlInput
}

// parseScheduleArgs 명령어 인자를 파싱합니다.
// 컨트롤은 `60` 또는 `60:위치이름` 형식으로 받습니다.
func parseScheduleArgs(params []string, usage string) (*scheduleArgs, error) {
	if len(params) < 3 {
		return nil, errors.NewValidationError("SCHEDULE_INVALID_PARAMS",
			fmt.Sprintf("expected at least 3 params, got %d", len(params)), usage)
	}

	brevetKm, err := utils.ParseDistance(params[0])
	if err != nil {
		return nil, errors.NewValidationError("INVALID_BREVET_PARAM", err.Error(),
			fmt.Sprintf(constants.MsgInvalidKm, params[0]))
	}

	start, err := utils.ParseStartTime(params[1])
	if err != nil {
		return nil, errors.NewValidationError("INVALID_START_TIME", err.Error(), constants.MsgInvalidStart)
	}

	controls := make([]models.ControlInput, 0, len(params)-2)
	for _, token := range params[2:] {
		kmText, location, _ := strings.Cut(token, ":")
		km, err := utils.ParseDistance(kmText)
		if err != nil {
			return nil, errors.NewValidationError("INVALID_CONTROL_PARAM", err.Error(),
				fmt.Sprintf(constants.MsgInvalidKm, token))
		}
		controls = append(controls, models.ControlInput{
			Km:       km,
			Location: strings.ReplaceAll(location, "_", " "),
		})
	}

	return &scheduleArgs{BrevetKm: brevetKm, Start: start, Controls: controls}, nil
}
