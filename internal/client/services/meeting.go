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

// MeetingInput holds the caller-provided fields for a new meeting.
type MeetingInput struct {
	Title          string
	Date           string
	Location       string
	Notes          string
	StakeholderIDs []string
}

// MeetingUpdate is a partial change set; nil fields are left untouched.
type MeetingUpdate struct {
	Title          *string
	Date           *string
	Location       *string
	Notes          *string
	StakeholderIDs *[]string
}

type MeetingService interface {
	Create(ctx context.Context, input MeetingInput) (string, error)
	Update(ctx context.Context, id string, changes MeetingUpdate) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	PermanentDelete(ctx context.Context, id string) error
	GetAll(ctx context.Context) ([]models.Meeting, error)
	GetByID(ctx context.Context, id string) (*models.Meeting, error)
	GetDeleted(ctx context.Context) ([]models.Meeting, error)
	Search(ctx context.Context, q string) ([]models.Meeting, error)
}

type meetingService struct {
	db    *sql.DB
	repos repomanager.Manager
}

func NewMeetingService(db *sql.DB, repos repomanager.Manager) MeetingService {
	return &meetingService{db: db, repos: repos}
}

func (s *meetingService) Create(ctx context.Context, input MeetingInput) (string, error) {
	if strings.TrimSpace(input.Title) == "" {
		return "", fmt.Errorf("%w: meeting title is required", shared.ErrValidation)
	}

	now := time.Now().UTC()
	m := &models.Meeting{
		ID:             uuid.NewString(),
		Title:          input.Title,
		Date:           input.Date,
		Location:       input.Location,
		Notes:          input.Notes,
		StakeholderIDs: input.StakeholderIDs,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if m.StakeholderIDs == nil {
		m.StakeholderIDs = []string{}
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.Meetings(tx).Save(ctx, m); err != nil {
			return err
		}
		return enqueue(ctx, s.repos.Queue(tx), models.KindMeeting, m.ID, models.OpCreate, m)
	})
	if err != nil {
		return "", err
	}
	return m.ID, nil
}

func (s *meetingService) Update(ctx context.Context, id string, changes MeetingUpdate) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Meetings(tx)
		m, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if changes.Title != nil {
			m.Title = *changes.Title
		}
		if changes.Date != nil {
			m.Date = *changes.Date
		}
		if changes.Location != nil {
			m.Location = *changes.Location
		}
		if changes.Notes != nil {
			m.Notes = *changes.Notes
		}
		if changes.StakeholderIDs != nil {
			m.StakeholderIDs = *changes.StakeholderIDs
		}
		m.UpdatedAt = time.Now().UTC()

		if err := repo.Save(ctx, m); err != nil {
			return err
		}
		return enqueue(ctx, s.repos.Queue(tx), models.KindMeeting, m.ID, models.OpUpdate, m)
	})
}

func (s *meetingService) SoftDelete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Meetings(tx)
		m, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		m.DeletedAt = &now
		m.UpdatedAt = now

		if err := repo.Save(ctx, m); err != nil {
			return err
		}
		// The tombstoned payload is how deletion reaches the relay; there is
		// no separate delete wire operation.
		return enqueue(ctx, s.repos.Queue(tx), models.KindMeeting, m.ID, models.OpDelete, m)
	})
}

func (s *meetingService) Restore(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Meetings(tx)
		m, err := repo.GetAny(ctx, id)
		if err != nil {
			return err
		}

		m.DeletedAt = nil
		m.UpdatedAt = time.Now().UTC()

		if err := repo.Save(ctx, m); err != nil {
			return err
		}
		// Restoration is an ordinary update on the wire.
		return enqueue(ctx, s.repos.Queue(tx), models.KindMeeting, m.ID, models.OpUpdate, m)
	})
}

// PermanentDelete removes the meeting and all of its dependents (audio
// recordings, transcripts, analyses) in one transaction. Local-only: the
// relay is not told, so another device keeps the row until a later update
// touches it.
func (s *meetingService) PermanentDelete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.Meetings(tx).DeleteByID(ctx, id); err != nil {
			return err
		}
		if err := s.repos.Transcripts(tx).DeleteByMeetingID(ctx, id); err != nil {
			return err
		}
		if err := s.repos.Analyses(tx).DeleteByMeetingID(ctx, id); err != nil {
			return err
		}
		return s.repos.Recordings(tx).DeleteByMeetingID(ctx, id)
	})
}

func (s *meetingService) GetAll(ctx context.Context) ([]models.Meeting, error) {
	return s.repos.Meetings(s.db).GetAll(ctx)
}

func (s *meetingService) GetByID(ctx context.Context, id string) (*models.Meeting, error) {
	return s.repos.Meetings(s.db).GetByID(ctx, id)
}

func (s *meetingService) GetDeleted(ctx context.Context) ([]models.Meeting, error) {
	return s.repos.Meetings(s.db).GetDeleted(ctx)
}

func (s *meetingService) Search(ctx context.Context, q string) ([]models.Meeting, error) {
	return s.repos.Meetings(s.db).Search(ctx, q)
}
