package analyses

import (
	"context"

	"github.com/vkuznecovs/minutekeeper/internal/models"
)

// Repository describes row-level persistence for meeting analyses. Analyses
// are children of a meeting and are removed together with it by the meeting
// cascade.
type Repository interface {
	Save(ctx context.Context, a *models.MeetingAnalysis) error
	GetByID(ctx context.Context, id string) (*models.MeetingAnalysis, error)
	GetAny(ctx context.Context, id string) (*models.MeetingAnalysis, error)
	GetAll(ctx context.Context) ([]models.MeetingAnalysis, error)
	GetDeleted(ctx context.Context) ([]models.MeetingAnalysis, error)
	ListAll(ctx context.Context) ([]models.MeetingAnalysis, error)
	Search(ctx context.Context, q string) ([]models.MeetingAnalysis, error)
	GetByMeetingID(ctx context.Context, meetingID string) ([]models.MeetingAnalysis, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByMeetingID(ctx context.Context, meetingID string) error
}
