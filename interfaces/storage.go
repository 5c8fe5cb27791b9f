package interfaces

import (
	"context"

	"github.com/ssugameworks/brevets/models"
)

// StorageRepository 제출된 스케줄 문서 저장소 작업을 위한 인터페이스입니다
type StorageRepository interface {
	Insert(ctx context.Context, submission models.Submission) (string, error)
	ListAll(ctx context.Context) ([]models.Submission, error)
	DeleteAll(ctx context.Context) (int, error)

	// 리소스 정리
	Close() error
}
