package meetings

import (
	"context"

	"github.com/vkuznecovs/minutekeeper/internal/models"
)

// Repository describes row-level persistence for meetings. Visibility rules
// (active vs. tombstoned) live here; timestamps, validation, cascades, and
// outbox entries are the services' job.
type Repository interface {
	// Save inserts the meeting or fully overwrites the stored row with the
	// given field values, timestamps included.
	Save(ctx context.Context, m *models.Meeting) error

	// GetByID returns an active meeting or shared.ErrNotFound when the id is
	// missing or tombstoned.
	GetByID(ctx context.Context, id string) (*models.Meeting, error)

	// GetAny returns the meeting regardless of tombstone state.
	GetAny(ctx context.Context, id string) (*models.Meeting, error)

	// GetAll lists active meetings.
	GetAll(ctx context.Context) ([]models.Meeting, error)

	// GetDeleted lists tombstoned meetings (the trash view).
	GetDeleted(ctx context.Context) ([]models.Meeting, error)

	// ListAll lists every row, active and tombstoned. Used by export and by
	// the full-resync push.
	ListAll(ctx context.Context) ([]models.Meeting, error)

	// Search lists active meetings whose title, notes, or location contain q
	// (case-insensitive).
	Search(ctx context.Context, q string) ([]models.Meeting, error)

	// DeleteByID physically removes the row.
	DeleteByID(ctx context.Context, id string) error
}
