package service

import (
	"context"

	"github.com/classpress/forumcore/internal/model"
	"github.com/classpress/forumcore/internal/repository"
	"github.com/classpress/forumcore/pkg/apperror"
)

type CreateRequestInput struct {
	Requester string `validate:"required"`
	Title     string `validate:"required,max=255"`
	Content   string
}

type RequestService interface {
	Create(ctx context.Context, input CreateRequestInput) (*model.SystemRequest, error)
	ListAll(ctx context.Context) ([]*model.SystemRequest, error)
	ListByRequester(ctx context.Context, requester string) ([]*model.SystemRequest, error)
	SetChecked(ctx context.Context, id uint, checked bool) error
	Delete(ctx context.Context, id uint) error
}

type requestService struct {
	requests repository.RequestRepository
	users    repository.UserRepository
}

func NewRequestService(requests repository.RequestRepository, users repository.UserRepository) RequestService {
	return &requestService{requests: requests, users: users}
}

func (s *requestService) Create(ctx context.Context, input CreateRequestInput) (*model.SystemRequest, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	exists, err := s.users.Exists(ctx, input.Requester)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.New("user "+input.Requester+" does not exist", apperror.ErrForeignKey)
	}

	requester := input.Requester
	req := &model.SystemRequest{
		Requester: &requester,
		Title:     input.Title,
		Content:   input.Content,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *requestService) ListAll(ctx context.Context) ([]*model.SystemRequest, error) {
	return s.requests.FindAll(ctx)
}

func (s *requestService) ListByRequester(ctx context.Context, requester string) ([]*model.SystemRequest, error) {
	return s.requests.FindByRequester(ctx, requester)
}

func (s *requestService) SetChecked(ctx context.Context, id uint, checked bool) error {
	return s.requests.SetChecked(ctx, id, checked)
}

func (s *requestService) Delete(ctx context.Context, id uint) error {
	return s.requests.Delete(ctx, id)
}
