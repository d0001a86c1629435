package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/classpress/forumcore/internal/model"
	"github.com/classpress/forumcore/pkg/apperror"
)

type ThreadRepository interface {
	GetOrCreate(ctx context.Context, name string) (*model.Thread, error)
	FindByID(ctx context.Context, id uint) (*model.Thread, error)
	FindByName(ctx context.Context, name string) (*model.Thread, error)
	FindAll(ctx context.Context) ([]*model.Thread, error)
	Rename(ctx context.Context, id uint, newName string) error
	Delete(ctx context.Context, id uint) error
}

type threadRepository struct {
	db *gorm.DB
}

func NewThreadRepository(db *gorm.DB) ThreadRepository {
	return &threadRepository{db: db}
}

// GetOrCreate is the upsert-by-name insert: adding an existing name hands
// back the existing row. Creating any thread also guarantees the default
// "General" thread exists so deletions always have a fallback target.
func (r *threadRepository) GetOrCreate(ctx context.Context, name string) (*model.Thread, error) {
	var thread model.Thread
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if name != model.DefaultThreadName {
			var def model.Thread
			if err := tx.Where(model.Thread{Name: model.DefaultThreadName}).
				FirstOrCreate(&def).Error; err != nil {
				return apperror.Translate(err)
			}
		}
		return apperror.Translate(tx.Where(model.Thread{Name: name}).
			FirstOrCreate(&thread).Error)
	})
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

func (r *threadRepository) FindByID(ctx context.Context, id uint) (*model.Thread, error) {
	var thread model.Thread
	if err := r.db.WithContext(ctx).First(&thread, id).Error; err != nil {
		return nil, apperror.Translate(err)
	}
	return &thread, nil
}

func (r *threadRepository) FindByName(ctx context.Context, name string) (*model.Thread, error) {
	var thread model.Thread
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&thread).Error; err != nil {
		return nil, apperror.Translate(err)
	}
	return &thread, nil
}

func (r *threadRepository) FindAll(ctx context.Context) ([]*model.Thread, error) {
	var threads []*model.Thread
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&threads).Error; err != nil {
		return nil, apperror.Translate(err)
	}
	return threads, nil
}

func (r *threadRepository) Rename(ctx context.Context, id uint, newName string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Thread{}).
		Where("id = ?", id).
		Update("name", newName)
	if res.Error != nil {
		return apperror.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

// Delete reassigns the thread's posts to the default thread before removing
// the row, so no post is ever orphaned. The default thread itself cannot be
// deleted.
func (r *threadRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var thread model.Thread
		if err := tx.First(&thread, id).Error; err != nil {
			return apperror.Translate(err)
		}
		if thread.Name == model.DefaultThreadName {
			return apperror.New("the default thread cannot be deleted", apperror.ErrInvalidInput)
		}

		var def model.Thread
		if err := tx.Where(model.Thread{Name: model.DefaultThreadName}).
			FirstOrCreate(&def).Error; err != nil {
			return apperror.Translate(err)
		}
		if err := tx.Model(&model.Post{}).
			Where("thread_id = ?", id).
			Update("thread_id", def.ID).Error; err != nil {
			return apperror.Translate(err)
		}

		return apperror.Translate(tx.Delete(&model.Thread{}, id).Error)
	})
}
