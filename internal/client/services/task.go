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

type TaskInput struct {
	Title     string
	MeetingID string
	DueDate   string
}

type TaskUpdate struct {
	Title   *string
	Done    *bool
	DueDate *string
}

// TaskService manages local-only to-dos. Same soft-delete lifecycle as the
// replicated entities, but no outbox entries are ever written.
type TaskService interface {
	Create(ctx context.Context, input TaskInput) (string, error)
	Update(ctx context.Context, id string, changes TaskUpdate) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	PermanentDelete(ctx context.Context, id string) error
	GetAll(ctx context.Context) ([]models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	GetDeleted(ctx context.Context) ([]models.Task, error)
	Search(ctx context.Context, q string) ([]models.Task, error)
}

type taskService struct {
	db    *sql.DB
	repos repomanager.Manager
}

func NewTaskService(db *sql.DB, repos repomanager.Manager) TaskService {
	return &taskService{db: db, repos: repos}
}

func (s *taskService) Create(ctx context.Context, input TaskInput) (string, error) {
	if strings.TrimSpace(input.Title) == "" {
		return "", fmt.Errorf("%w: task title is required", shared.ErrValidation)
	}

	now := time.Now().UTC()
	t := &models.Task{
		ID:        uuid.NewString(),
		Title:     input.Title,
		MeetingID: input.MeetingID,
		DueDate:   input.DueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repos.Tasks(s.db).Save(ctx, t); err != nil {
		return "", err
	}
	return t.ID, nil
}

func (s *taskService) Update(ctx context.Context, id string, changes TaskUpdate) error {
	repo := s.repos.Tasks(s.db)
	t, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if changes.Title != nil {
		t.Title = *changes.Title
	}
	if changes.Done != nil {
		t.Done = *changes.Done
	}
	if changes.DueDate != nil {
		t.DueDate = *changes.DueDate
	}
	t.UpdatedAt = time.Now().UTC()

	return repo.Save(ctx, t)
}

func (s *taskService) SoftDelete(ctx context.Context, id string) error {
	repo := s.repos.Tasks(s.db)
	t, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	t.DeletedAt = &now
	t.UpdatedAt = now
	return repo.Save(ctx, t)
}

func (s *taskService) Restore(ctx context.Context, id string) error {
	repo := s.repos.Tasks(s.db)
	t, err := repo.GetAny(ctx, id)
	if err != nil {
		return err
	}

	t.DeletedAt = nil
	t.UpdatedAt = time.Now().UTC()
	return repo.Save(ctx, t)
}

func (s *taskService) PermanentDelete(ctx context.Context, id string) error {
	return s.repos.Tasks(s.db).DeleteByID(ctx, id)
}

func (s *taskService) GetAll(ctx context.Context) ([]models.Task, error) {
	return s.repos.Tasks(s.db).GetAll(ctx)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*models.Task, error) {
	return s.repos.Tasks(s.db).GetByID(ctx, id)
}

func (s *taskService) GetDeleted(ctx context.Context) ([]models.Task, error) {
	return s.repos.Tasks(s.db).GetDeleted(ctx)
}

func (s *taskService) Search(ctx context.Context, q string) ([]models.Task, error) {
	return s.repos.Tasks(s.db).Search(ctx, q)
}
