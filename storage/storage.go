package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"github.com/ssugameworks/brevets/constants"
	"github.com/ssugameworks/brevets/errors"
	"github.com/ssugameworks/brevets/interfaces"
	"github.com/ssugameworks/brevets/models"
	"github.com/ssugameworks/brevets/utils"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// FirebaseStorage Firestore 컬렉션에 제출된 스케줄을 저장합니다.
type FirebaseStorage struct {
	client         *firestore.Client
	app            *firebase.App
	collection     string
	reconnectMutex sync.RWMutex
}

// Options 저장소 생성 옵션입니다
type Options struct {
	Backend             string
	Collection          string
	FirebaseCredentials string
}

// New 설정된 백엔드에 맞는 저장소를 생성합니다.
func New(ctx context.Context, opts Options) (interfaces.StorageRepository, error) {
	switch opts.Backend {
	case constants.StorageBackendMemory:
		utils.Info("Using in-memory submission storage")
		return NewInMemoryStorage(), nil
	case constants.StorageBackendFirestore, "":
		return NewFirebaseStorage(ctx, opts.FirebaseCredentials, opts.Collection)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}

// NewFirebaseStorage 새로운 FirebaseStorage 인스턴스를 생성하고 Firestore에 연결합니다.
func NewFirebaseStorage(ctx context.Context, credentialsJSON, collection string) (*FirebaseStorage, error) {
	utils.Info("Initializing Firebase storage system")
	errHelper := utils.NewErrorHelper("firebase storage")

	if credentialsJSON == "" {
		return nil, errHelper.CreateErrorf("%s environment variable not set", constants.EnvFirebaseCredentials)
	}
	if collection == "" {
		collection = constants.DefaultSubmissionCollection
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON([]byte(credentialsJSON)))
	if err != nil {
		return nil, errHelper.WrapError(err, "error initializing app")
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, errHelper.WrapError(err, "error initializing Firestore client")
	}

	utils.Info("Firebase storage system initialized (collection: %s)", collection)
	return &FirebaseStorage{
		client:     client,
		app:        app,
		collection: collection,
	}, nil
}

// GetClient Firestore 클라이언트를 반환합니다 (헬스체크용)
func (s *FirebaseStorage) GetClient() interface{} {
	s.reconnectMutex.RLock()
	defer s.reconnectMutex.RUnlock()
	return s.client
}

func (s *FirebaseStorage) submissions() *firestore.CollectionRef {
	s.reconnectMutex.RLock()
	defer s.reconnectMutex.RUnlock()
	return s.client.Collection(s.collection)
}

// reconnectFirestore Firestore 클라이언트를 재연결합니다
func (s *FirebaseStorage) reconnectFirestore(ctx context.Context) error {
	s.reconnectMutex.Lock()
	defer s.reconnectMutex.Unlock()

	utils.Warn("Attempting to reconnect to Firestore")

	for attempt := 1; attempt <= constants.MaxReconnectAttempts; attempt++ {
		if s.client != nil {
			s.client.Close()
		}

		newClient, err := s.app.Firestore(ctx)
		if err != nil {
			utils.Warn("Firestore reconnection attempt %d/%d failed: %v", attempt, constants.MaxReconnectAttempts, err)
			if attempt < constants.MaxReconnectAttempts {
				time.Sleep(constants.ReconnectDelay * time.Duration(attempt)) // 점진적 지연
			}
			continue
		}

		s.client = newClient
		utils.Info("Successfully reconnected to Firestore on attempt %d", attempt)
		return nil
	}

	return fmt.Errorf("failed to reconnect to Firestore after %d attempts", constants.MaxReconnectAttempts)
}

// executeWithRetry 연결 오류가 나면 재연결 후 한 번 더 실행합니다
func (s *FirebaseStorage) executeWithRetry(ctx context.Context, operation func() error) error {
	err := operation()
	if err != nil && utils.IsConnectionError(err) {
		utils.Warn("Detected Firestore connection error, attempting reconnection: %v", err)
		if reconnectErr := s.reconnectFirestore(ctx); reconnectErr != nil {
			utils.NewErrorHelper("firestore reconnect").LogError(reconnectErr, "giving up")
			return fmt.Errorf("operation failed and reconnection failed: %v (original: %w)", reconnectErr, err)
		}
		return operation()
	}
	return err
}

// Insert 스케줄 문서를 추가하고 생성된 문서 ID를 반환합니다.
func (s *FirebaseStorage) Insert(ctx context.Context, submission models.Submission) (string, error) {
	var id string
	err := s.executeWithRetry(ctx, func() error {
		ref, _, err := s.submissions().Add(ctx, submission)
		if err != nil {
			return err
		}
		id = ref.ID
		return nil
	})
	if err != nil {
		return "", errors.NewStorageError("STORAGE_INSERT_FAILED", "failed to insert submission", err)
	}

	utils.Info("Stored submission %s (%gkm, %d controls)", id, submission.BrevetKm, len(submission.Controls))
	return id, nil
}

// ListAll 저장된 모든 스케줄을 제출 시각 순으로 조회합니다.
func (s *FirebaseStorage) ListAll(ctx context.Context) ([]models.Submission, error) {
	var submissions []models.Submission
	err := s.executeWithRetry(ctx, func() error {
		submissions = submissions[:0]
		iter := s.submissions().OrderBy("submittedAt", firestore.Asc).Documents(ctx)
		defer iter.Stop()

		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				return nil
			}
			if err != nil {
				return err
			}

			var submission models.Submission
			if err := doc.DataTo(&submission); err != nil {
				utils.Warn("Skipping malformed submission %s: %v", doc.Ref.ID, err)
				continue
			}
			submission.ID = doc.Ref.ID
			submissions = append(submissions, submission)
		}
	})
	if err != nil {
		return nil, errors.NewStorageError("STORAGE_LIST_FAILED", "failed to list submissions", err)
	}
	return submissions, nil
}

// DeleteAll 컬렉션의 모든 문서를 삭제하고 삭제한 개수를 반환합니다.
func (s *FirebaseStorage) DeleteAll(ctx context.Context) (int, error) {
	deleted := 0
	err := s.executeWithRetry(ctx, func() error {
		for {
			n, err := s.deleteBatch(ctx)
			deleted += n
			if err != nil {
				return err
			}
			if n < constants.FirestoreBatchSize {
				return nil
			}
		}
	})
	if err != nil {
		return deleted, errors.NewStorageError("STORAGE_DELETE_FAILED", "failed to delete submissions", err)
	}

	utils.Info("Deleted %d submissions from Firestore", deleted)
	return deleted, nil
}

// deleteBatch 최대 FirestoreBatchSize개의 문서를 BulkWriter로 삭제합니다
func (s *FirebaseStorage) deleteBatch(ctx context.Context) (int, error) {
	iter := s.submissions().Limit(constants.FirestoreBatchSize).Documents(ctx)
	defer iter.Stop()

	s.reconnectMutex.RLock()
	writer := s.client.BulkWriter(ctx)
	s.reconnectMutex.RUnlock()

	var jobs []*firestore.BulkWriterJob
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			writer.End()
			return 0, err
		}
		job, err := writer.Delete(doc.Ref)
		if err != nil {
			writer.End()
			return 0, err
		}
		jobs = append(jobs, job)
	}
	writer.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return 0, err
		}
	}
	return len(jobs), nil
}

// Close Firestore 클라이언트를 종료합니다
func (s *FirebaseStorage) Close() error {
	s.reconnectMutex.Lock()
	defer s.reconnectMutex.Unlock()
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	return err
}
