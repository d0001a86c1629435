package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/classpress/forumcore/internal/model"
	"github.com/classpress/forumcore/pkg/apperror"
)

// StudentAggregates are the feedback counters recomputed from live data
// before every reputation read.
type StudentAggregates struct {
	Posts           int
	Replies         int
	ViewsReceived   int
	RepliesReceived int
	UpvotesReceived int
}

type StudentRepository interface {
	Get(ctx context.Context, username string) (*model.StudentStatus, error)
	Ensure(ctx context.Context, username string) error
	SaveCounters(ctx context.Context, username string, agg StudentAggregates) error
	AdjustPromotions(ctx context.Context, username string, delta int) error
	AdjustViolations(ctx context.Context, username string, delta int) error
	Aggregates(ctx context.Context, username string) (StudentAggregates, error)
	Delete(ctx context.Context, username string) error
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Get(ctx context.Context, username string) (*model.StudentStatus, error) {
	var status model.StudentStatus
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&status).Error; err != nil {
		return nil, apperror.Translate(err)
	}
	return &status, nil
}

// Ensure creates the zeroed counter row if it does not exist yet.
func (r *studentRepository) Ensure(ctx context.Context, username string) error {
	status := model.StudentStatus{Username: username}
	return apperror.Translate(r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&status).Error)
}

// SaveCounters writes back the refreshed aggregates. Promotions and
// violations are deliberately left alone: those move only on staff action.
func (r *studentRepository) SaveCounters(ctx context.Context, username string, agg StudentAggregates) error {
	res := r.db.WithContext(ctx).
		Model(&model.StudentStatus{}).
		Where("username = ?", username).
		Updates(map[string]any{
			"posts":            agg.Posts,
			"replies":          agg.Replies,
			"views_received":   agg.ViewsReceived,
			"replies_received": agg.RepliesReceived,
			"upvotes_received": agg.UpvotesReceived,
		})
	if res.Error != nil {
		return apperror.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *studentRepository) AdjustPromotions(ctx context.Context, username string, delta int) error {
	return r.adjustCounter(ctx, username, "promotions", delta)
}

func (r *studentRepository) AdjustViolations(ctx context.Context, username string, delta int) error {
	return r.adjustCounter(ctx, username, "violations", delta)
}

// adjustCounter applies the staff-controlled increment/decrement, clamped
// at zero. Runs in a transaction on the single shared handle.
func (r *studentRepository) adjustCounter(ctx context.Context, username, column string, delta int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var status model.StudentStatus
		if err := tx.Where("username = ?", username).First(&status).Error; err != nil {
			return apperror.Translate(err)
		}

		current := status.Promotions
		if column == "violations" {
			current = status.Violations
		}
		next := current + delta
		if next < 0 {
			next = 0
		}

		return apperror.Translate(tx.Model(&model.StudentStatus{}).
			Where("username = ?", username).
			Update(column, next).Error)
	})
}

// Aggregates recomputes the student's live counters: own posts and replies,
// plus views, replies and upvotes received on their posts.
func (r *studentRepository) Aggregates(ctx context.Context, username string) (StudentAggregates, error) {
	var agg StudentAggregates
	var count int64

	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Post{}).
		Where("owner = ?", username).
		Count(&count).Error; err != nil {
		return agg, apperror.Translate(err)
	}
	agg.Posts = int(count)

	if err := db.Model(&model.Reply{}).
		Where("owner = ?", username).
		Count(&count).Error; err != nil {
		return agg, apperror.Translate(err)
	}
	agg.Replies = int(count)

	if err := db.Model(&model.PostReadStatus{}).
		Joins("JOIN posts ON posts.id = post_read_statuses.post_id").
		Where("posts.owner = ? AND post_read_statuses.is_read = ?", username, true).
		Count(&count).Error; err != nil {
		return agg, apperror.Translate(err)
	}
	agg.ViewsReceived = int(count)

	if err := db.Model(&model.Reply{}).
		Joins("JOIN posts ON posts.id = replies.post_id").
		Where("posts.owner = ?", username).
		Count(&count).Error; err != nil {
		return agg, apperror.Translate(err)
	}
	agg.RepliesReceived = int(count)

	if err := db.Model(&model.PostReadStatus{}).
		Joins("JOIN posts ON posts.id = post_read_statuses.post_id").
		Where("posts.owner = ?", username).
		Select("COALESCE(SUM(post_read_statuses.upvotes), 0)").
		Scan(&count).Error; err != nil {
		return agg, apperror.Translate(err)
	}
	agg.UpvotesReceived = int(count)

	return agg, nil
}

func (r *studentRepository) Delete(ctx context.Context, username string) error {
	res := r.db.WithContext(ctx).
		Where("username = ?", username).
		Delete(&model.StudentStatus{})
	if res.Error != nil {
		return apperror.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}
