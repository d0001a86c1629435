package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/classpress/forumcore/internal/model"
	"github.com/classpress/forumcore/pkg/apperror"
)

// StatusRepository is the read/upvote tracker. Each (user, post) and
// (user, reply) pair has at most one row, created lazily by upsert. The
// upvote path is a single insert-or-increment statement so concurrent
// upvotes on the same key never lose an update.
type StatusRepository interface {
	MarkPostRead(ctx context.Context, username string, postID uint) error
	UpvotePost(ctx context.Context, username string, postID uint) error
	GetPostStatus(ctx context.Context, username string, postID uint) (*model.PostReadStatus, error)
	HasReadPost(ctx context.Context, username string, postID uint) (bool, error)
	PostViews(ctx context.Context, postID uint) (int64, error)
	PostUpvotes(ctx context.Context, postID uint) (int64, error)

	MarkReplyRead(ctx context.Context, username string, replyID uint) error
	GetReplyStatus(ctx context.Context, username string, replyID uint) (*model.ReplyReadStatus, error)
	UnreadReplies(ctx context.Context, username string, postID uint) ([]*model.Reply, error)
}

type statusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) StatusRepository {
	return &statusRepository{db: db}
}

// MarkPostRead upserts is_read=true, leaving any accumulated upvotes
// untouched on conflict.
func (r *statusRepository) MarkPostRead(ctx context.Context, username string, postID uint) error {
	row := model.PostReadStatus{Username: username, PostID: postID, IsRead: true}
	return apperror.Translate(r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}, {Name: "post_id"}},
			DoUpdates: clause.Assignments(map[string]any{"is_read": true}),
		}).
		Create(&row).Error)
}

// UpvotePost inserts the row at one upvote or increments the stored count.
// The increment happens inside the upsert statement itself; there is no
// read-modify-write window.
func (r *statusRepository) UpvotePost(ctx context.Context, username string, postID uint) error {
	row := model.PostReadStatus{Username: username, PostID: postID, IsRead: true, Upvotes: 1}
	return apperror.Translate(r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "username"}, {Name: "post_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"is_read": true,
				"upvotes": gorm.Expr("post_read_statuses.upvotes + 1"),
			}),
		}).
		Create(&row).Error)
}

// GetPostStatus returns ErrNotFound for a pair the user never touched,
// which is distinct from a stored row with is_read=false.
func (r *statusRepository) GetPostStatus(ctx context.Context, username string, postID uint) (*model.PostReadStatus, error) {
	var status model.PostReadStatus
	if err := r.db.WithContext(ctx).
		Where("username = ? AND post_id = ?", username, postID).
		First(&status).Error; err != nil {
		return nil, apperror.Translate(err)
	}
	return &status, nil
}

func (r *statusRepository) HasReadPost(ctx context.Context, username string, postID uint) (bool, error) {
	status, err := r.GetPostStatus(ctx, username, postID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return status.IsRead, nil
}

func (r *statusRepository) PostViews(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.PostReadStatus{}).
		Where("post_id = ? AND is_read = ?", postID, true).
		Count(&count).Error
	return count, apperror.Translate(err)
}

func (r *statusRepository) PostUpvotes(ctx context.Context, postID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.PostReadStatus{}).
		Where("post_id = ?", postID).
		Select("COALESCE(SUM(upvotes), 0)").
		Scan(&total).Error
	return total, apperror.Translate(err)
}

func (r *statusRepository) MarkReplyRead(ctx context.Context, username string, replyID uint) error {
	row := model.ReplyReadStatus{Username: username, ReplyID: replyID, IsRead: true}
	return apperror.Translate(r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}, {Name: "reply_id"}},
			DoUpdates: clause.Assignments(map[string]any{"is_read": true}),
		}).
		Create(&row).Error)
}

func (r *statusRepository) GetReplyStatus(ctx context.Context, username string, replyID uint) (*model.ReplyReadStatus, error) {
	var status model.ReplyReadStatus
	if err := r.db.WithContext(ctx).
		Where("username = ? AND reply_id = ?", username, replyID).
		First(&status).Error; err != nil {
		return nil, apperror.Translate(err)
	}
	return &status, nil
}

// UnreadReplies counts a reply as unread when the user's status row is
// absent or carries is_read=false, hence the outer join.
func (r *statusRepository) UnreadReplies(ctx context.Context, username string, postID uint) ([]*model.Reply, error) {
	var replies []*model.Reply
	err := r.db.WithContext(ctx).
		Model(&model.Reply{}).
		Joins("LEFT JOIN reply_read_statuses rrs ON rrs.reply_id = replies.id AND rrs.username = ?", username).
		Where("replies.post_id = ? AND (rrs.id IS NULL OR rrs.is_read = ?)", postID, false).
		Order("replies.created_at ASC").
		Find(&replies).Error
	if err != nil {
		return nil, apperror.Translate(err)
	}
	return replies, nil
}
