package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/ssugameworks/brevets/bot"
	"github.com/ssugameworks/brevets/constants"
	"github.com/ssugameworks/brevets/utils"
)

// Scheduler 매일 정해진 시각에 저장된 스케줄 요약을 채널에 보냅니다
type Scheduler struct {
	session   *discordgo.Session
	channelID string
	board     *bot.ScheduleBoard

	mu       sync.Mutex
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewScheduler(session *discordgo.Session, channelID string, board *bot.ScheduleBoard) *Scheduler {
	return &Scheduler{
		session:   session,
		channelID: channelID,
		board:     board,
	}
}

// nextRunDelay now 이후 처음 hour:minute이 될 때까지의 시간입니다
func nextRunDelay(now time.Time, hour, minute int) time.Duration {
	nextRun := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !nextRun.After(now) {
		nextRun = nextRun.Add(constants.SchedulerInterval)
	}
	return nextRun.Sub(now)
}

// StartCustomSchedule 매일 hour:minute(서버 로컬 시각)에 요약을 보냅니다
func (s *Scheduler) StartCustomSchedule(hour, minute int) {
	// 기존 스케줄러가 있다면 정리
	s.Stop()

	s.mu.Lock()
	stop := make(chan struct{})
	s.stopChan = stop
	s.mu.Unlock()

	delay := nextRunDelay(time.Now(), hour, minute)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		// 첫 실행까지 대기, 중단 신호 체크
		select {
		case <-time.After(delay):
			s.sendDailyDigest()
		case <-stop:
			return
		}

		ticker := time.NewTicker(constants.SchedulerInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sendDailyDigest()
			case <-stop:
				return
			}
		}
	}()

	utils.Info("Daily digest scheduler set to run daily at %02d:%02d", hour, minute)
}

func (s *Scheduler) sendDailyDigest() {
	if s.channelID == "" {
		utils.Error("Cannot send daily digest: channel ID not configured")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.CommandStorageTimeout)
	defer cancel()

	if err := s.board.SendDailyDigest(ctx, s.session, s.channelID); err != nil {
		utils.Error("Failed to send daily digest: %v", err)
		return
	}

	utils.Debug("Daily digest handled for channel %s", s.channelID)
}

// Stop 실행 중인 스케줄을 멈추고 고루틴이 끝날 때까지 기다립니다
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopChan != nil {
		close(s.stopChan)
		s.stopChan = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}
