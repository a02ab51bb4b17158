package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vkuznecovs/minutekeeper/internal/client/repositories/repomanager"
	"github.com/vkuznecovs/minutekeeper/internal/dbx"
	"github.com/vkuznecovs/minutekeeper/internal/models"
	"github.com/vkuznecovs/minutekeeper/internal/shared"
)

type TranscriptInput struct {
	MeetingID string
	Content   string
	Language  string
}

type TranscriptUpdate struct {
	Content  *string
	Language *string
}

// TranscriptService is the write path used by the capture pipeline (an
// external producer of finished transcripts) as well as the UI.
type TranscriptService interface {
	Create(ctx context.Context, input TranscriptInput) (string, error)
	Update(ctx context.Context, id string, changes TranscriptUpdate) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	PermanentDelete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Transcript, error)
	GetAll(ctx context.Context) ([]models.Transcript, error)
	GetByMeetingID(ctx context.Context, meetingID string) ([]models.Transcript, error)
	GetDeleted(ctx context.Context) ([]models.Transcript, error)
	Search(ctx context.Context, q string) ([]models.Transcript, error)
}

type transcriptService struct {
	db    *sql.DB
	repos repomanager.Manager
}

func NewTranscriptService(db *sql.DB, repos repomanager.Manager) TranscriptService {
	return &transcriptService{db: db, repos: repos}
}

func (s *transcriptService) Create(ctx context.Context, input TranscriptInput) (string, error) {
	if strings.TrimSpace(input.MeetingID) == "" {
		return "", fmt.Errorf("%w: transcript requires a meeting id", shared.ErrValidation)
	}

	now := time.Now().UTC()
	t := &models.Transcript{
		ID:        uuid.NewString(),
		MeetingID: input.MeetingID,
		Content:   input.Content,
		Language:  input.Language,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.Transcripts(tx).Save(ctx, t); err != nil {
			return err
		}
		return enqueue(ctx, s.repos.Queue(tx), models.KindTranscript, t.ID, models.OpCreate, t)
	})
	if err != nil {
		return "", err
	}
	return t.ID, nil
}

func (s *transcriptService) Update(ctx context.Context, id string, changes TranscriptUpdate) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Transcripts(tx)
		t, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if changes.Content != nil {
			t.Content = *changes.Content
		}
		if changes.Language != nil {
			t.Language = *changes.Language
		}
		t.UpdatedAt = time.Now().UTC()

		if err := repo.Save(ctx, t); err != nil {
			return err
		}
		return enqueue(ctx, s.repos.Queue(tx), models.KindTranscript, t.ID, models.OpUpdate, t)
	})
}

func (s *transcriptService) SoftDelete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Transcripts(tx)
		t, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		t.DeletedAt = &now
		t.UpdatedAt = now

		if err := repo.Save(ctx, t); err != nil {
			return err
		}
		return enqueue(ctx, s.repos.Queue(tx), models.KindTranscript, t.ID, models.OpDelete, t)
	})
}

func (s *transcriptService) Restore(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Transcripts(tx)
		t, err := repo.GetAny(ctx, id)
		if err != nil {
			return err
		}

		t.DeletedAt = nil
		t.UpdatedAt = time.Now().UTC()

		if err := repo.Save(ctx, t); err != nil {
			return err
		}
		return enqueue(ctx, s.repos.Queue(tx), models.KindTranscript, t.ID, models.OpUpdate, t)
	})
}

func (s *transcriptService) PermanentDelete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repos.Transcripts(tx).DeleteByID(ctx, id)
	})
}

func (s *transcriptService) GetByID(ctx context.Context, id string) (*models.Transcript, error) {
	return s.repos.Transcripts(s.db).GetByID(ctx, id)
}

func (s *transcriptService) GetAll(ctx context.Context) ([]models.Transcript, error) {
	return s.repos.Transcripts(s.db).GetAll(ctx)
}

func (s *transcriptService) GetByMeetingID(ctx context.Context, meetingID string) ([]models.Transcript, error) {
	return s.repos.Transcripts(s.db).GetByMeetingID(ctx, meetingID)
}

func (s *transcriptService) GetDeleted(ctx context.Context) ([]models.Transcript, error) {
	return s.repos.Transcripts(s.db).GetDeleted(ctx)
}

func (s *transcriptService) Search(ctx context.Context, q string) ([]models.Transcript, error) {
	return s.repos.Transcripts(s.db).Search(ctx, q)
}
