package categories

import (
	"context"

	"github.com/vkuznecovs/minutekeeper/internal/models"
)

// Repository describes row-level persistence for stakeholder categories.
type Repository interface {
	Save(ctx context.Context, c *models.StakeholderCategory) error
	GetByID(ctx context.Context, id string) (*models.StakeholderCategory, error)
	GetAny(ctx context.Context, id string) (*models.StakeholderCategory, error)
	GetAll(ctx context.Context) ([]models.StakeholderCategory, error)
	GetDeleted(ctx context.Context) ([]models.StakeholderCategory, error)
	ListAll(ctx context.Context) ([]models.StakeholderCategory, error)
	Search(ctx context.Context, q string) ([]models.StakeholderCategory, error)
	DeleteByID(ctx context.Context, id string) error
}
