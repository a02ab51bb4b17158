package transcripts

import (
	"context"

	"github.com/vkuznecovs/minutekeeper/internal/models"
)

// Repository describes row-level persistence for transcripts. Transcripts are
// children of a meeting and are removed together with it by the meeting
// cascade.
type Repository interface {
	Save(ctx context.Context, t *models.Transcript) error
	GetByID(ctx context.Context, id string) (*models.Transcript, error)
	GetAny(ctx context.Context, id string) (*models.Transcript, error)
	GetAll(ctx context.Context) ([]models.Transcript, error)
	GetDeleted(ctx context.Context) ([]models.Transcript, error)
	ListAll(ctx context.Context) ([]models.Transcript, error)
	Search(ctx context.Context, q string) ([]models.Transcript, error)
	GetByMeetingID(ctx context.Context, meetingID string) ([]models.Transcript, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByMeetingID(ctx context.Context, meetingID string) error
}
