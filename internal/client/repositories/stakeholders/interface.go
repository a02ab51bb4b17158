package stakeholders

import (
	"context"

	"github.com/vkuznecovs/minutekeeper/internal/models"
)

// Repository describes row-level persistence for stakeholders. See the
// meetings package for the contract conventions shared by all repositories.
type Repository interface {
	Save(ctx context.Context, s *models.Stakeholder) error
	GetByID(ctx context.Context, id string) (*models.Stakeholder, error)
	GetAny(ctx context.Context, id string) (*models.Stakeholder, error)
	GetAll(ctx context.Context) ([]models.Stakeholder, error)
	GetDeleted(ctx context.Context) ([]models.Stakeholder, error)
	ListAll(ctx context.Context) ([]models.Stakeholder, error)
	Search(ctx context.Context, q string) ([]models.Stakeholder, error)
	DeleteByID(ctx context.Context, id string) error
}
