package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/classpress/forumcore/internal/model"
	"github.com/classpress/forumcore/pkg/apperror"
)

type ReplyRepository interface {
	Create(ctx context.Context, reply *model.Reply) error
	FindByID(ctx context.Context, id uint) (*model.Reply, error)
	FindByPostID(ctx context.Context, postID uint) ([]*model.Reply, error)
	FindByOwner(ctx context.Context, owner string) ([]*model.Reply, error)
	FindOrphans(ctx context.Context) ([]*model.Reply, error)
	UpdateContent(ctx context.Context, id uint, content string) error
	Delete(ctx context.Context, id uint) error
}

type replyRepository struct {
	db *gorm.DB
}

func NewReplyRepository(db *gorm.DB) ReplyRepository {
	return &replyRepository{db: db}
}

func (r *replyRepository) Create(ctx context.Context, reply *model.Reply) error {
	return apperror.Translate(r.db.WithContext(ctx).Create(reply).Error)
}

func (r *replyRepository) FindByID(ctx context.Context, id uint) (*model.Reply, error) {
	var reply model.Reply
	if err := r.db.WithContext(ctx).First(&reply, id).Error; err != nil {
		return nil, apperror.Translate(err)
	}
	return &reply, nil
}

func (r *replyRepository) FindByPostID(ctx context.Context, postID uint) ([]*model.Reply, error) {
	var replies []*model.Reply
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&replies).Error; err != nil {
		return nil, apperror.Translate(err)
	}
	return replies, nil
}

func (r *replyRepository) FindByOwner(ctx context.Context, owner string) ([]*model.Reply, error) {
	var replies []*model.Reply
	if err := r.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("created_at ASC").
		Find(&replies).Error; err != nil {
		return nil, apperror.Translate(err)
	}
	return replies, nil
}

// FindOrphans lists replies whose post has been deleted; they remain
// readable and are flagged via Reply.Orphaned.
func (r *replyRepository) FindOrphans(ctx context.Context) ([]*model.Reply, error) {
	var replies []*model.Reply
	if err := r.db.WithContext(ctx).
		Where("post_id IS NULL").
		Order("created_at ASC").
		Find(&replies).Error; err != nil {
		return nil, apperror.Translate(err)
	}
	return replies, nil
}

func (r *replyRepository) UpdateContent(ctx context.Context, id uint, content string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Reply{}).
		Where("id = ?", id).
		Update("content", content)
	if res.Error != nil {
		return apperror.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *replyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reply_id = ?", id).
			Delete(&model.ReplyReadStatus{}).Error; err != nil {
			return apperror.Translate(err)
		}
		res := tx.Delete(&model.Reply{}, id)
		if res.Error != nil {
			return apperror.Translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperror.ErrNotFound
		}
		return nil
	})
}
