package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/classpress/forumcore/internal/model"
	"github.com/classpress/forumcore/pkg/apperror"
)

// userUpdatableFields whitelists the columns UpdateField may touch. Every
// write goes through parameterized statements; the whitelist keeps column
// names out of caller control entirely.
var userUpdatableFields = map[string]string{
	"password":       "password",
	"first_name":     "first_name",
	"middle_name":    "middle_name",
	"last_name":      "last_name",
	"preferred_name": "preferred_name",
	"email":          "email",
}

var roleColumns = map[model.Role]string{
	model.RoleAdmin:   "is_admin",
	model.RoleStudent: "is_student",
	model.RoleStaff:   "is_staff",
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	UpdateField(ctx context.Context, username, field string, value any) error
	SetRole(ctx context.Context, username string, role model.Role, enabled bool) error
	Delete(ctx context.Context, username string) error
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			return apperror.Translate(err)
		}
		// Students get their zeroed counter row in the same transaction.
		if user.IsStudent {
			status := model.StudentStatus{Username: user.Username}
			if err := tx.Omit(clause.Associations).Create(&status).Error; err != nil {
				return apperror.Translate(err)
			}
		}
		return nil
	})
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error; err != nil {
		return nil, apperror.Translate(err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, apperror.Translate(err)
	}
	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	if err := r.db.WithContext(ctx).
		Order("username ASC").
		Find(&users).Error; err != nil {
		return nil, apperror.Translate(err)
	}
	return users, nil
}

func (r *userRepository) Exists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, apperror.Translate(err)
	}
	return count > 0, nil
}

func (r *userRepository) UpdateField(ctx context.Context, username, field string, value any) error {
	column, ok := userUpdatableFields[field]
	if !ok {
		return apperror.New("unknown user field "+field, apperror.ErrInvalidInput)
	}
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("username = ?", username).
		Update(column, value)
	if res.Error != nil {
		return apperror.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *userRepository) SetRole(ctx context.Context, username string, role model.Role, enabled bool) error {
	column, ok := roleColumns[role]
	if !ok {
		return apperror.New("unknown role "+string(role), apperror.ErrInvalidInput)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.User{}).
			Where("username = ?", username).
			Update(column, enabled)
		if res.Error != nil {
			return apperror.Translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperror.ErrNotFound
		}
		// Granting the student role late still needs the counter row.
		if role == model.RoleStudent && enabled {
			status := model.StudentStatus{Username: username}
			if err := tx.Omit(clause.Associations).
				Clauses(clause.OnConflict{DoNothing: true}).
				Create(&status).Error; err != nil {
				return apperror.Translate(err)
			}
		}
		return nil
	})
}

// Delete removes the account and everything keyed on it: read-status rows
// and the student counter row go with the user, while messages and system
// requests survive with the reference nulled. The cascade is spelled out
// here so behavior is identical across dialects.
func (r *userRepository) Delete(ctx context.Context, username string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("username = ?", username).
			Delete(&model.PostReadStatus{}).Error; err != nil {
			return apperror.Translate(err)
		}
		if err := tx.Where("username = ?", username).
			Delete(&model.ReplyReadStatus{}).Error; err != nil {
			return apperror.Translate(err)
		}
		if err := tx.Where("username = ?", username).
			Delete(&model.StudentStatus{}).Error; err != nil {
			return apperror.Translate(err)
		}
		if err := tx.Model(&model.Message{}).
			Where("sender = ?", username).
			Update("sender", nil).Error; err != nil {
			return apperror.Translate(err)
		}
		if err := tx.Model(&model.Message{}).
			Where("receiver = ?", username).
			Update("receiver", nil).Error; err != nil {
			return apperror.Translate(err)
		}
		if err := tx.Model(&model.SystemRequest{}).
			Where("requester = ?", username).
			Update("requester", nil).Error; err != nil {
			return apperror.Translate(err)
		}

		res := tx.Where("username = ?", username).Delete(&model.User{})
		if res.Error != nil {
			return apperror.Translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperror.ErrNotFound
		}
		return nil
	})
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, apperror.Translate(err)
	}
	return count, nil
}
