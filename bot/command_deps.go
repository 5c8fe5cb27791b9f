package bot

import (
	"github.com/ssugameworks/brevets/interfaces"
)

// CommandDependencies 명령어 핸들러가 필요로 하는 모든 의존성을 묶어서 관리합니다
type CommandDependencies struct {
	Storage       interfaces.StorageRepository
	Calculator    interfaces.ControlTimeCalculator
	ScheduleBoard *ScheduleBoard
	MetricsClient interfaces.MetricsRecorder // nil이면 텔레메트리를 보내지 않습니다
}

// NewCommandDependencies 새로운 CommandDependencies 인스턴스를 생성합니다
func NewCommandDependencies(
	storage interfaces.StorageRepository,
	calculator interfaces.ControlTimeCalculator,
	metricsClient interfaces.MetricsRecorder,
) *CommandDependencies {
	return &CommandDependencies{
		Storage:       storage,
		Calculator:    calculator,
		ScheduleBoard: NewScheduleBoard(storage),
		MetricsClient: metricsClient,
	}
}
