package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/classpress/forumcore/internal/model"
	"github.com/classpress/forumcore/pkg/apperror"
)

var postUpdatableFields = map[string]string{
	"title":    "title",
	"subtitle": "subtitle",
	"content":  "content",
	"thread":   "thread_id",
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uint) (*model.Post, error)
	FindByTitle(ctx context.Context, title string) (*model.Post, error)
	FindByThreadID(ctx context.Context, threadID uint) ([]*model.Post, error)
	FindByOwner(ctx context.Context, owner string) ([]*model.Post, error)
	FindAll(ctx context.Context) ([]*model.Post, error)
	UpdateField(ctx context.Context, id uint, field string, value any) error
	UpdateTags(ctx context.Context, id uint, tags []string) error
	SetGrade(ctx context.Context, id uint, grade float64, feedback, gradedBy string) error
	ReleaseAllGrades(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return apperror.Translate(r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(post).Error)
}

func (r *postRepository) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).
		Preload("Thread").
		First(&post, id).Error; err != nil {
		return nil, apperror.Translate(err)
	}
	return &post, nil
}

func (r *postRepository) FindByTitle(ctx context.Context, title string) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).
		Where("title = ?", title).
		First(&post).Error; err != nil {
		return nil, apperror.Translate(err)
	}
	return &post, nil
}

func (r *postRepository) FindByThreadID(ctx context.Context, threadID uint) ([]*model.Post, error) {
	var posts []*model.Post
	if err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("created_at ASC").
		Find(&posts).Error; err != nil {
		return nil, apperror.Translate(err)
	}
	return posts, nil
}

func (r *postRepository) FindByOwner(ctx context.Context, owner string) ([]*model.Post, error) {
	var posts []*model.Post
	if err := r.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("created_at ASC").
		Find(&posts).Error; err != nil {
		return nil, apperror.Translate(err)
	}
	return posts, nil
}

func (r *postRepository) FindAll(ctx context.Context) ([]*model.Post, error) {
	var posts []*model.Post
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&posts).Error; err != nil {
		return nil, apperror.Translate(err)
	}
	return posts, nil
}

func (r *postRepository) UpdateField(ctx context.Context, id uint, field string, value any) error {
	column, ok := postUpdatableFields[field]
	if !ok {
		return apperror.New("unknown post field "+field, apperror.ErrInvalidInput)
	}
	res := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		Update(column, value)
	if res.Error != nil {
		return apperror.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

// UpdateTags rewrites the whole tag set; individual tag add/remove is
// composed at the service layer from the decoded list.
func (r *postRepository) UpdateTags(ctx context.Context, id uint, tags []string) error {
	var post model.Post
	post.SetTagList(tags)
	res := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		Update("tags", post.Tags)
	if res.Error != nil {
		return apperror.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

// SetGrade overwrites any previous grade; staff may re-grade freely.
func (r *postRepository) SetGrade(ctx context.Context, id uint, grade float64, feedback, gradedBy string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"grade":     grade,
			"feedback":  feedback,
			"graded_by": gradedBy,
		})
	if res.Error != nil {
		return apperror.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

// ReleaseAllGrades flips grade_released on every graded post in one batch.
// There is no per-post release and no way back.
func (r *postRepository) ReleaseAllGrades(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("grade IS NOT NULL AND grade_released = ?", false).
		Update("grade_released", true)
	return res.RowsAffected, apperror.Translate(res.Error)
}

// Delete removes the post and its read-status rows. Replies are not
// deleted: their post_id is nulled and they live on as orphans.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).
			Delete(&model.PostReadStatus{}).Error; err != nil {
			return apperror.Translate(err)
		}
		if err := tx.Model(&model.Reply{}).
			Where("post_id = ?", id).
			Update("post_id", nil).Error; err != nil {
			return apperror.Translate(err)
		}

		res := tx.Delete(&model.Post{}, id)
		if res.Error != nil {
			return apperror.Translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperror.ErrNotFound
		}
		return nil
	})
}
