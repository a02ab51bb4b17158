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

type AnalysisInput struct {
	MeetingID   string
	Summary     string
	ActionItems string
	Sentiment   string
}

type AnalysisUpdate struct {
	Summary     *string
	ActionItems *string
	Sentiment   *string
}

// AnalysisService is the write path for AI-produced meeting analyses; the
// prompt pipeline that generates them is an external collaborator.
type AnalysisService interface {
	Create(ctx context.Context, input AnalysisInput) (string, error)
	Update(ctx context.Context, id string, changes AnalysisUpdate) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	PermanentDelete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.MeetingAnalysis, error)
	GetAll(ctx context.Context) ([]models.MeetingAnalysis, error)
	GetByMeetingID(ctx context.Context, meetingID string) ([]models.MeetingAnalysis, error)
	GetDeleted(ctx context.Context) ([]models.MeetingAnalysis, error)
	Search(ctx context.Context, q string) ([]models.MeetingAnalysis, error)
}

type analysisService struct {
	db    *sql.DB
	repos repomanager.Manager
}

func NewAnalysisService(db *sql.DB, repos repomanager.Manager) AnalysisService {
	return &analysisService{db: db, repos: repos}
}

func (s *analysisService) Create(ctx context.Context, input AnalysisInput) (string, error) {
	if strings.TrimSpace(input.MeetingID) == "" {
		return "", fmt.Errorf("%w: analysis requires a meeting id", shared.ErrValidation)
	}

	now := time.Now().UTC()
	a := &models.MeetingAnalysis{
		ID:          uuid.NewString(),
		MeetingID:   input.MeetingID,
		Summary:     input.Summary,
		ActionItems: input.ActionItems,
		Sentiment:   input.Sentiment,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.Analyses(tx).Save(ctx, a); err != nil {
			return err
		}
		return enqueue(ctx, s.repos.Queue(tx), models.KindAnalysis, a.ID, models.OpCreate, a)
	})
	if err != nil {
		return "", err
	}
	return a.ID, nil
}

func (s *analysisService) Update(ctx context.Context, id string, changes AnalysisUpdate) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Analyses(tx)
		a, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if changes.Summary != nil {
			a.Summary = *changes.Summary
		}
		if changes.ActionItems != nil {
			a.ActionItems = *changes.ActionItems
		}
		if changes.Sentiment != nil {
			a.Sentiment = *changes.Sentiment
		}
		a.UpdatedAt = time.Now().UTC()

		if err := repo.Save(ctx, a); err != nil {
			return err
		}
		return enqueue(ctx, s.repos.Queue(tx), models.KindAnalysis, a.ID, models.OpUpdate, a)
	})
}

func (s *analysisService) SoftDelete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Analyses(tx)
		a, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		a.DeletedAt = &now
		a.UpdatedAt = now

		if err := repo.Save(ctx, a); err != nil {
			return err
		}
		return enqueue(ctx, s.repos.Queue(tx), models.KindAnalysis, a.ID, models.OpDelete, a)
	})
}

func (s *analysisService) Restore(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Analyses(tx)
		a, err := repo.GetAny(ctx, id)
		if err != nil {
			return err
		}

		a.DeletedAt = nil
		a.UpdatedAt = time.Now().UTC()

		if err := repo.Save(ctx, a); err != nil {
			return err
		}
		return enqueue(ctx, s.repos.Queue(tx), models.KindAnalysis, a.ID, models.OpUpdate, a)
	})
}

func (s *analysisService) PermanentDelete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repos.Analyses(tx).DeleteByID(ctx, id)
	})
}

func (s *analysisService) GetByID(ctx context.Context, id string) (*models.MeetingAnalysis, error) {
	return s.repos.Analyses(s.db).GetByID(ctx, id)
}

func (s *analysisService) GetAll(ctx context.Context) ([]models.MeetingAnalysis, error) {
	return s.repos.Analyses(s.db).GetAll(ctx)
}

func (s *analysisService) GetByMeetingID(ctx context.Context, meetingID string) ([]models.MeetingAnalysis, error) {
	return s.repos.Analyses(s.db).GetByMeetingID(ctx, meetingID)
}

func (s *analysisService) GetDeleted(ctx context.Context) ([]models.MeetingAnalysis, error) {
	return s.repos.Analyses(s.db).GetDeleted(ctx)
}

func (s *analysisService) Search(ctx context.Context, q string) ([]models.MeetingAnalysis, error) {
	return s.repos.Analyses(s.db).Search(ctx, q)
}
