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

type CategoryInput struct {
	Name        string
	Color       string
	Description string
}

type CategoryUpdate struct {
	Name        *string
	Color       *string
	Description *string
}

type CategoryService interface {
	Create(ctx context.Context, input CategoryInput) (string, error)
	Update(ctx context.Context, id string, changes CategoryUpdate) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	PermanentDelete(ctx context.Context, id string) error
	GetAll(ctx context.Context) ([]models.StakeholderCategory, error)
	GetByID(ctx context.Context, id string) (*models.StakeholderCategory, error)
	GetDeleted(ctx context.Context) ([]models.StakeholderCategory, error)
	Search(ctx context.Context, q string) ([]models.StakeholderCategory, error)
}

type categoryService struct {
	db    *sql.DB
	repos repomanager.Manager
}

func NewCategoryService(db *sql.DB, repos repomanager.Manager) CategoryService {
	return &categoryService{db: db, repos: repos}
}

func (s *categoryService) Create(ctx context.Context, input CategoryInput) (string, error) {
	if strings.TrimSpace(input.Name) == "" {
		return "", fmt.Errorf("%w: category name is required", shared.ErrValidation)
	}
	if !models.ValidCategoryColor(input.Color) {
		return "", fmt.Errorf("%w: color %q is not in the palette", shared.ErrValidation, input.Color)
	}

	now := time.Now().UTC()
	c := &models.StakeholderCategory{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Color:       input.Color,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.Categories(tx).Save(ctx, c); err != nil {
			return err
		}
		return enqueue(ctx, s.repos.Queue(tx), models.KindCategory, c.ID, models.OpCreate, c)
	})
	if err != nil {
		return "", err
	}
	return c.ID, nil
}

func (s *categoryService) Update(ctx context.Context, id string, changes CategoryUpdate) error {
	if changes.Color != nil && !models.ValidCategoryColor(*changes.Color) {
		return fmt.Errorf("%w: color %q is not in the palette", shared.ErrValidation, *changes.Color)
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Categories(tx)
		c, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if changes.Name != nil {
			c.Name = *changes.Name
		}
		if changes.Color != nil {
			c.Color = *changes.Color
		}
		if changes.Description != nil {
			c.Description = *changes.Description
		}
		c.UpdatedAt = time.Now().UTC()

		if err := repo.Save(ctx, c); err != nil {
			return err
		}
		return enqueue(ctx, s.repos.Queue(tx), models.KindCategory, c.ID, models.OpUpdate, c)
	})
}

func (s *categoryService) SoftDelete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Categories(tx)
		c, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		c.DeletedAt = &now
		c.UpdatedAt = now

		if err := repo.Save(ctx, c); err != nil {
			return err
		}
		return enqueue(ctx, s.repos.Queue(tx), models.KindCategory, c.ID, models.OpDelete, c)
	})
}

func (s *categoryService) Restore(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Categories(tx)
		c, err := repo.GetAny(ctx, id)
		if err != nil {
			return err
		}

		c.DeletedAt = nil
		c.UpdatedAt = time.Now().UTC()

		if err := repo.Save(ctx, c); err != nil {
			return err
		}
		return enqueue(ctx, s.repos.Queue(tx), models.KindCategory, c.ID, models.OpUpdate, c)
	})
}

// PermanentDelete removes the category and strips its id from every
// stakeholder's category list in one transaction. Local-only; no outbox
// entry is written.
func (s *categoryService) PermanentDelete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.Categories(tx).DeleteByID(ctx, id); err != nil {
			return err
		}

		stakeholderRepo := s.repos.Stakeholders(tx)
		all, err := stakeholderRepo.ListAll(ctx)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		for i := range all {
			ids, removed := removeID(all[i].CategoryIDs, id)
			if !removed {
				continue
			}
			all[i].CategoryIDs = ids
			all[i].UpdatedAt = now
			if err := stakeholderRepo.Save(ctx, &all[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *categoryService) GetAll(ctx context.Context) ([]models.StakeholderCategory, error) {
	return s.repos.Categories(s.db).GetAll(ctx)
}

func (s *categoryService) GetByID(ctx context.Context, id string) (*models.StakeholderCategory, error) {
	return s.repos.Categories(s.db).GetByID(ctx, id)
}

func (s *categoryService) GetDeleted(ctx context.Context) ([]models.StakeholderCategory, error) {
	return s.repos.Categories(s.db).GetDeleted(ctx)
}

func (s *categoryService) Search(ctx context.Context, q string) ([]models.StakeholderCategory, error) {
	return s.repos.Categories(s.db).Search(ctx, q)
}
