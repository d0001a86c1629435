package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/classpress/forumcore/internal/model"
	"github.com/classpress/forumcore/pkg/apperror"
)

type RequestRepository interface {
	Create(ctx context.Context, req *model.SystemRequest) error
	FindByID(ctx context.Context, id uint) (*model.SystemRequest, error)
	FindAll(ctx context.Context) ([]*model.SystemRequest, error)
	FindByRequester(ctx context.Context, requester string) ([]*model.SystemRequest, error)
	SetChecked(ctx context.Context, id uint, checked bool) error
	Delete(ctx context.Context, id uint) error
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *model.SystemRequest) error {
	return apperror.Translate(r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(req).Error)
}

func (r *requestRepository) FindByID(ctx context.Context, id uint) (*model.SystemRequest, error) {
	var req model.SystemRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, apperror.Translate(err)
	}
	return &req, nil
}

func (r *requestRepository) FindAll(ctx context.Context) ([]*model.SystemRequest, error) {
	var reqs []*model.SystemRequest
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&reqs).Error; err != nil {
		return nil, apperror.Translate(err)
	}
	return reqs, nil
}

func (r *requestRepository) FindByRequester(ctx context.Context, requester string) ([]*model.SystemRequest, error) {
	var reqs []*model.SystemRequest
	if err := r.db.WithContext(ctx).
		Where("requester = ?", requester).
		Order("created_at ASC").
		Find(&reqs).Error; err != nil {
		return nil, apperror.Translate(err)
	}
	return reqs, nil
}

func (r *requestRepository) SetChecked(ctx context.Context, id uint, checked bool) error {
	res := r.db.WithContext(ctx).
		Model(&model.SystemRequest{}).
		Where("id = ?", id).
		Update("checked", checked)
	if res.Error != nil {
		return apperror.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *requestRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.SystemRequest{}, id)
	if res.Error != nil {
		return apperror.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}
