package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/classpress/forumcore/internal/model"
	"github.com/classpress/forumcore/pkg/apperror"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	FindByID(ctx context.Context, id uint) (*model.Message, error)
	FindByReceiver(ctx context.Context, receiver string) ([]*model.Message, error)
	FindBySender(ctx context.Context, sender string) ([]*model.Message, error)
	MarkRead(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *model.Message) error {
	return apperror.Translate(r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(msg).Error)
}

func (r *messageRepository) FindByID(ctx context.Context, id uint) (*model.Message, error) {
	var msg model.Message
	if err := r.db.WithContext(ctx).First(&msg, id).Error; err != nil {
		return nil, apperror.Translate(err)
	}
	return &msg, nil
}

func (r *messageRepository) FindByReceiver(ctx context.Context, receiver string) ([]*model.Message, error) {
	var msgs []*model.Message
	if err := r.db.WithContext(ctx).
		Where("receiver = ?", receiver).
		Order("created_at DESC").
		Find(&msgs).Error; err != nil {
		return nil, apperror.Translate(err)
	}
	return msgs, nil
}

func (r *messageRepository) FindBySender(ctx context.Context, sender string) ([]*model.Message, error) {
	var msgs []*model.Message
	if err := r.db.WithContext(ctx).
		Where("sender = ?", sender).
		Order("created_at DESC").
		Find(&msgs).Error; err != nil {
		return nil, apperror.Translate(err)
	}
	return msgs, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("id = ?", id).
		Update("is_read", true)
	if res.Error != nil {
		return apperror.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Message{}, id)
	if res.Error != nil {
		return apperror.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}
