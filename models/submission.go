package models

import (
	"time"
)

// Control 하나의 컨트롤 지점과 계산된 오픈/마감 시각입니다.
// 시각은 출발 시각의 UTC 오프셋을 유지한 ISO-8601 문자열로 저장합니다.
type Control struct {
	Km       float64 `firestore:"km" json:"km"`
	Miles    float64 `firestore:"miles" json:"miles"`
	Location string  `firestore:"location,omitempty" json:"location,omitempty"`
	Open     string  `firestore:"open" json:"open"`
	Close    string  `firestore:"close" json:"close"`
}

// Submission 사용자가 제출한 브레베 컨트롤 스케줄 문서입니다
type Submission struct {
	ID          string    `firestore:"-" json:"id"` // 문서 ID, firestore 필드에서는 제외
	BrevetKm    float64   `firestore:"brevetKm" json:"brevet_dist_km"`
	BeginDate   string    `firestore:"beginDate" json:"begin_date"`
	Controls    []Control `firestore:"controls" json:"controls"`
	SubmittedAt time.Time `firestore:"submittedAt" json:"submitted_at"`
	SubmittedBy string    `firestore:"submittedBy,omitempty" json:"submitted_by,omitempty"`
}

// ControlInput 스케줄 계산을 요청할 때의 컨트롤 입력입니다
type ControlInput struct {
	Km       float64 `json:"km"`
	Location string  `json:"location,omitempty"`
}
