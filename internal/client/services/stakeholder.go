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

type StakeholderInput struct {
	Name        string
	Role        string
	Company     string
	Email       string
	Notes       string
	CategoryIDs []string
}

type StakeholderUpdate struct {
	Name        *string
	Role        *string
	Company     *string
	Email       *string
	Notes       *string
	CategoryIDs *[]string
}

type StakeholderService interface {
	Create(ctx context.Context, input StakeholderInput) (string, error)
	Update(ctx context.Context, id string, changes StakeholderUpdate) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	PermanentDelete(ctx context.Context, id string) error
	GetAll(ctx context.Context) ([]models.Stakeholder, error)
	GetByID(ctx context.Context, id string) (*models.Stakeholder, error)
	GetDeleted(ctx context.Context) ([]models.Stakeholder, error)
	Search(ctx context.Context, q string) ([]models.Stakeholder, error)
}

type stakeholderService struct {
	db    *sql.DB
	repos repomanager.Manager
}

func NewStakeholderService(db *sql.DB, repos repomanager.Manager) StakeholderService {
	return &stakeholderService{db: db, repos: repos}
}

func (s *stakeholderService) Create(ctx context.Context, input StakeholderInput) (string, error) {
	if strings.TrimSpace(input.Name) == "" {
		return "", fmt.Errorf("%w: stakeholder name is required", shared.ErrValidation)
	}

	now := time.Now().UTC()
	sh := &models.Stakeholder{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Role:        input.Role,
		Company:     input.Company,
		Email:       input.Email,
		Notes:       input.Notes,
		CategoryIDs: input.CategoryIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if sh.CategoryIDs == nil {
		sh.CategoryIDs = []string{}
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.Stakeholders(tx).Save(ctx, sh); err != nil {
			return err
		}
		return enqueue(ctx, s.repos.Queue(tx), models.KindStakeholder, sh.ID, models.OpCreate, sh)
	})
	if err != nil {
		return "", err
	}
	return sh.ID, nil
}

func (s *stakeholderService) Update(ctx context.Context, id string, changes StakeholderUpdate) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Stakeholders(tx)
		sh, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if changes.Name != nil {
			sh.Name = *changes.Name
		}
		if changes.Role != nil {
			sh.Role = *changes.Role
		}
		if changes.Company != nil {
			sh.Company = *changes.Company
		}
		if changes.Email != nil {
			sh.Email = *changes.Email
		}
		if changes.Notes != nil {
			sh.Notes = *changes.Notes
		}
		if changes.CategoryIDs != nil {
			sh.CategoryIDs = *changes.CategoryIDs
		}
		sh.UpdatedAt = time.Now().UTC()

		if err := repo.Save(ctx, sh); err != nil {
			return err
		}
		return enqueue(ctx, s.repos.Queue(tx), models.KindStakeholder, sh.ID, models.OpUpdate, sh)
	})
}

func (s *stakeholderService) SoftDelete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Stakeholders(tx)
		sh, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		sh.DeletedAt = &now
		sh.UpdatedAt = now

		if err := repo.Save(ctx, sh); err != nil {
			return err
		}
		return enqueue(ctx, s.repos.Queue(tx), models.KindStakeholder, sh.ID, models.OpDelete, sh)
	})
}

func (s *stakeholderService) Restore(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Stakeholders(tx)
		sh, err := repo.GetAny(ctx, id)
		if err != nil {
			return err
		}

		sh.DeletedAt = nil
		sh.UpdatedAt = time.Now().UTC()

		if err := repo.Save(ctx, sh); err != nil {
			return err
		}
		return enqueue(ctx, s.repos.Queue(tx), models.KindStakeholder, sh.ID, models.OpUpdate, sh)
	})
}

// PermanentDelete removes the stakeholder and strips its id from every
// meeting's stakeholder list, bumping those meetings' updatedAt, all in one
// transaction. Local-only; no outbox entry is written.
func (s *stakeholderService) PermanentDelete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.Stakeholders(tx).DeleteByID(ctx, id); err != nil {
			return err
		}

		meetingRepo := s.repos.Meetings(tx)
		all, err := meetingRepo.ListAll(ctx)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		for i := range all {
			ids, removed := removeID(all[i].StakeholderIDs, id)
			if !removed {
				continue
			}
			all[i].StakeholderIDs = ids
			all[i].UpdatedAt = now
			if err := meetingRepo.Save(ctx, &all[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *stakeholderService) GetAll(ctx context.Context) ([]models.Stakeholder, error) {
	return s.repos.Stakeholders(s.db).GetAll(ctx)
}

func (s *stakeholderService) GetByID(ctx context.Context, id string) (*models.Stakeholder, error) {
	return s.repos.Stakeholders(s.db).GetByID(ctx, id)
}

func (s *stakeholderService) GetDeleted(ctx context.Context) ([]models.Stakeholder, error) {
	return s.repos.Stakeholders(s.db).GetDeleted(ctx)
}

func (s *stakeholderService) Search(ctx context.Context, q string) ([]models.Stakeholder, error) {
	return s.repos.Stakeholders(s.db).Search(ctx, q)
}
