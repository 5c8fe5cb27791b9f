package scheduler

import (
	"testing"
	"time"

	"github.com/ssugameworks/brevets/bot"
	"github.com/ssugameworks/brevets/storage"
)

func TestNextRunDelay(t *testing.T) {
	loc := time.FixedZone("KST", 9*3600)

	tests := []struct {
		name     string
		now      time.Time
		hour     int
		minute   int
		expected time.Duration
	}{
		{"later today", time.Date(2024, 5, 1, 8, 0, 0, 0, loc), 9, 0, time.Hour},
		{"already passed", time.Date(2024, 5, 1, 10, 0, 0, 0, loc), 9, 0, 23 * time.Hour},
		{"exactly now runs tomorrow", time.Date(2024, 5, 1, 9, 0, 0, 0, loc), 9, 0, 24 * time.Hour},
		{"minutes", time.Date(2024, 5, 1, 9, 15, 30, 0, loc), 9, 45, 29*time.Minute + 30*time.Second},
	}

	for _, test := range tests {
		if got := nextRunDelay(test.now, test.hour, test.minute); got != test.expected {
			t.Errorf("%s: nextRunDelay = %v, 예상값 %v", test.name, got, test.expected)
		}
	}
}

func TestStartAndStop(t *testing.T) {
	s := NewScheduler(nil, "channel", bot.NewScheduleBoard(storage.NewInMemoryStorage()))

	now := time.Now()
	s.StartCustomSchedule(now.Hour(), now.Minute()) // 다음 실행은 약 24시간 뒤
	s.StartCustomSchedule(now.Hour(), now.Minute()) // 재시작해도 이전 고루틴을 정리해야 합니다

	done := make(chan struct{})
	go func() {
		s.Stop()
		s.Stop() // 두 번 호출해도 안전해야 합니다
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}
