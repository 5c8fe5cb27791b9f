package storage

import (
	"context"
	"time"

	"github.com/ssugameworks/brevets/interfaces"
	"github.com/ssugameworks/brevets/models"
	"github.com/ssugameworks/brevets/utils"
)

// InstrumentedStorage 저장소 호출마다 소요 시간과 성공 여부를 메트릭으로 남깁니다
type InstrumentedStorage struct {
	next    interfaces.StorageRepository
	metrics interfaces.MetricsRecorder
}

// NewInstrumentedStorage metrics가 nil이면 next를 그대로 반환합니다
func NewInstrumentedStorage(next interfaces.StorageRepository, metrics interfaces.MetricsRecorder) interfaces.StorageRepository {
	if metrics == nil {
		return next
	}
	return &InstrumentedStorage{next: next, metrics: metrics}
}

// GetClient 내부 저장소의 클라이언트를 노출합니다 (헬스체크용)
func (s *InstrumentedStorage) GetClient() interface{} {
	if provider, ok := s.next.(interface{ GetClient() interface{} }); ok {
		return provider.GetClient()
	}
	return nil
}

func (s *InstrumentedStorage) Insert(ctx context.Context, submission models.Submission) (string, error) {
	started := time.Now()
	id, err := s.next.Insert(ctx, submission)
	s.record("insert", started, err)
	return id, err
}

func (s *InstrumentedStorage) ListAll(ctx context.Context) ([]models.Submission, error) {
	started := time.Now()
	submissions, err := s.next.ListAll(ctx)
	s.record("list_all", started, err)
	return submissions, err
}

func (s *InstrumentedStorage) DeleteAll(ctx context.Context) (int, error) {
	started := time.Now()
	n, err := s.next.DeleteAll(ctx)
	s.record("delete_all", started, err)
	return n, err
}

func (s *InstrumentedStorage) Close() error {
	return s.next.Close()
}

func (s *InstrumentedStorage) record(operation string, started time.Time, err error) {
	elapsed := time.Since(started)
	utils.Debug("storage %s took %v (err: %v)", operation, elapsed, err)
	s.metrics.SendStorageMetric(operation, elapsed, err == nil)
}
