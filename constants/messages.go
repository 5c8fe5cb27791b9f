package constants

// 사용자 인터페이스 메시지
const (
	// 계산 관련
	MsgCalcUsage       = "사용법: `!calc <브레베거리> <출발시각> <컨트롤km>...` (예: `!calc 200 2018-11-17T06:00+00:00 0 60 200`)"
	MsgCalcTitle       = "%s %gkm 브레베 · 출발 %s"
	MsgCalcRow         = "`%7.1fkm` 오픈 %s · 마감 %s"
	MsgInvalidDistance = "컨트롤 거리는 0km 이상, 브레베 거리의 120%% (%gkm) 이하이어야 합니다."
	MsgInvalidBrevet   = "브레베 거리는 다음 중 하나여야 합니다: %s"
	MsgInvalidStart    = "출발 시각 형식이 올바르지 않습니다. (예: 2018-11-17T06:00+09:00)"
	MsgInvalidKm       = "'%s'은(는) 올바른 거리 값이 아닙니다."

	// 제출 관련
	MsgSubmitUsage   = "사용법: `!submit <브레베거리> <출발시각> <컨트롤km>...`"
	MsgSubmitSuccess = "**스케줄 저장 완료**\n🚴 %gkm 브레베 · 컨트롤 %d개"
	MsgNoControls    = "제출할 컨트롤이 없습니다."
	MsgTooManyCtrls  = "컨트롤은 최대 %d개까지 제출할 수 있습니다."

	// 조회/삭제 관련
	MsgDisplayEmpty = "저장된 스케줄이 없습니다."
	MsgDisplayTitle = "📋 저장된 스케줄 (%d건)"
	MsgClearSuccess = "**저장된 스케줄 삭제 완료**\n🗑️ %d건 삭제"
	MsgDisplayMore  = "외 %d건은 `/export.xlsx`로 확인하세요."
	MsgDigestTitle  = "📅 오늘의 브레베 스케줄 요약"
	MsgBoardTitle   = "🚴 ACP 브레베 스케줄"

	// 권한 관련
	MsgInsufficientPermissions = "❌ 관리자 권한이 필요합니다."

	// 저장소 관련
	MsgStorageFailure = "스케줄 저장소에 접근할 수 없습니다. 잠시 후 다시 시도해주세요."

	// 기본 응답
	MsgPong = "Pong! 🏓"
)

// 도움말 메시지
const HelpMessage = `🚴 **ACP 브레베 컨트롤 시간 계산기**

**명령어:**
• ` + "`!calc <브레베거리> <출발시각> <컨트롤km>...`" + ` - 컨트롤 오픈/마감 시각 계산
• ` + "`!submit <브레베거리> <출발시각> <컨트롤km>...`" + ` - 계산 결과 저장
• ` + "`!display`" + ` - 저장된 스케줄 보기

**관리자 명령어:**
• ` + "`!clear`" + ` - 저장된 스케줄 모두 삭제

**기타:**
• ` + "`!ping`" + ` - 봇 응답 확인
• ` + "`!도움말`" + ` - 도움말 표시

브레베 거리: 200, 300, 400, 600, 1000, 1200, 1400, 2200
출발시각 예: 2018-11-17T06:00+09:00`
