package service

import (
	"context"
	"strings"

	"github.com/classpress/forumcore/internal/model"
	"github.com/classpress/forumcore/internal/repository"
	"github.com/classpress/forumcore/pkg/apperror"
)

type ThreadService interface {
	Add(ctx context.Context, name string) (*model.Thread, error)
	Rename(ctx context.Context, id uint, newName string) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*model.Thread, error)
	FindByName(ctx context.Context, name string) (*model.Thread, error)
}

type threadService struct {
	repo repository.ThreadRepository
}

func NewThreadService(repo repository.ThreadRepository) ThreadService {
	return &threadService{repo: repo}
}

// Add is idempotent: adding a name that already exists returns the
// existing thread.
func (s *threadService) Add(ctx context.Context, name string) (*model.Thread, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.New("thread name must not be empty", apperror.ErrInvalidInput)
	}
	return s.repo.GetOrCreate(ctx, name)
}

func (s *threadService) Rename(ctx context.Context, id uint, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return apperror.New("thread name must not be empty", apperror.ErrInvalidInput)
	}
	return s.repo.Rename(ctx, id, newName)
}

func (s *threadService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *threadService) List(ctx context.Context) ([]*model.Thread, error) {
	return s.repo.FindAll(ctx)
}

func (s *threadService) FindByName(ctx context.Context, name string) (*model.Thread, error) {
	return s.repo.FindByName(ctx, name)
}
