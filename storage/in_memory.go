package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/ssugameworks/brevets/models"
)

// InMemoryStorage 테스트/개발용 비영구 저장소 구현
type InMemoryStorage struct {
	mu          sync.RWMutex
	submissions []models.Submission // 삽입 순서 유지
}

// NewInMemoryStorage 새 인메모리 저장소 생성
func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{}
}

// Insert 스케줄 추가
func (s *InMemoryStorage) Insert(ctx context.Context, submission models.Submission) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	submission.ID = uuid.NewString()
	submission.Controls = append([]models.Control(nil), submission.Controls...)
	s.submissions = append(s.submissions, submission)
	return submission.ID, nil
}

// ListAll 전체 조회. 호출자가 결과를 수정해도 저장소에는 영향이 없습니다
func (s *InMemoryStorage) ListAll(ctx context.Context) ([]models.Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]models.Submission, len(s.submissions))
	for i, submission := range s.submissions {
		submission.Controls = append([]models.Control(nil), submission.Controls...)
		res[i] = submission
	}
	return res, nil
}

// DeleteAll 전체 삭제
func (s *InMemoryStorage) DeleteAll(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.submissions)
	s.submissions = nil
	return n, nil
}

// Close no-op
func (s *InMemoryStorage) Close() error { return nil }
