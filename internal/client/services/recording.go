package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vkuznecovs/minutekeeper/internal/client/repositories/repomanager"
	"github.com/vkuznecovs/minutekeeper/internal/models"
	"github.com/vkuznecovs/minutekeeper/internal/shared"
)

type RecordingInput struct {
	MeetingID   string
	Path        string
	DurationSec int
}

// RecordingService tracks local audio files. Recordings never enter the sync
// queue or any backup; they disappear with their meeting's permanent delete.
type RecordingService interface {
	Create(ctx context.Context, input RecordingInput) (string, error)
	GetByMeetingID(ctx context.Context, meetingID string) ([]models.AudioRecording, error)
	Delete(ctx context.Context, id string) error
}

type recordingService struct {
	db    *sql.DB
	repos repomanager.Manager
}

func NewRecordingService(db *sql.DB, repos repomanager.Manager) RecordingService {
	return &recordingService{db: db, repos: repos}
}

func (s *recordingService) Create(ctx context.Context, input RecordingInput) (string, error) {
	if strings.TrimSpace(input.MeetingID) == "" {
		return "", fmt.Errorf("%w: recording requires a meeting id", shared.ErrValidation)
	}
	if strings.TrimSpace(input.Path) == "" {
		return "", fmt.Errorf("%w: recording requires a file path", shared.ErrValidation)
	}

	rec := &models.AudioRecording{
		ID:          uuid.NewString(),
		MeetingID:   input.MeetingID,
		Path:        input.Path,
		DurationSec: input.DurationSec,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repos.Recordings(s.db).Save(ctx, rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (s *recordingService) GetByMeetingID(ctx context.Context, meetingID string) ([]models.AudioRecording, error) {
	return s.repos.Recordings(s.db).GetByMeetingID(ctx, meetingID)
}

func (s *recordingService) Delete(ctx context.Context, id string) error {
	return s.repos.Recordings(s.db).DeleteByID(ctx, id)
}
