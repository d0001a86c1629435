package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/classpress/forumcore/internal/model"
	"github.com/classpress/forumcore/pkg/apperror"
)

// CodeRepository stores the two ephemeral credential tables: invitation
// codes and one-time passcodes. Rows leave by redemption, consumption or
// the expiry sweep.
type CodeRepository interface {
	CreateInvitation(ctx context.Context, inv *model.InvitationCode) error
	FindInvitation(ctx context.Context, code string) (*model.InvitationCode, error)
	DeleteInvitation(ctx context.Context, code string) (int64, error)

	UpsertPasscode(ctx context.Context, email, passcode string) error
	FindPasscode(ctx context.Context, email string) (*model.OneTimePasscode, error)
	DeletePasscode(ctx context.Context, passcode string) (int64, error)

	DeleteExpired(ctx context.Context, cutoff time.Time) error
}

type codeRepository struct {
	db *gorm.DB
}

func NewCodeRepository(db *gorm.DB) CodeRepository {
	return &codeRepository{db: db}
}

func (r *codeRepository) CreateInvitation(ctx context.Context, inv *model.InvitationCode) error {
	return apperror.Translate(r.db.WithContext(ctx).Create(inv).Error)
}

func (r *codeRepository) FindInvitation(ctx context.Context, code string) (*model.InvitationCode, error) {
	var inv model.InvitationCode
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&inv).Error; err != nil {
		return nil, apperror.Translate(err)
	}
	return &inv, nil
}

func (r *codeRepository) DeleteInvitation(ctx context.Context, code string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("code = ?", code).
		Delete(&model.InvitationCode{})
	return res.RowsAffected, apperror.Translate(res.Error)
}

// UpsertPasscode replaces any passcode previously issued for the email and
// restarts its TTL.
func (r *codeRepository) UpsertPasscode(ctx context.Context, email, passcode string) error {
	otp := model.OneTimePasscode{
		Email:     email,
		Passcode:  passcode,
		CreatedAt: time.Now(),
	}
	return apperror.Translate(r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "email"}},
			DoUpdates: clause.Assignments(map[string]any{
				"passcode":   passcode,
				"created_at": otp.CreatedAt,
			}),
		}).
		Create(&otp).Error)
}

func (r *codeRepository) FindPasscode(ctx context.Context, email string) (*model.OneTimePasscode, error) {
	var otp model.OneTimePasscode
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&otp).Error; err != nil {
		return nil, apperror.Translate(err)
	}
	return &otp, nil
}

func (r *codeRepository) DeletePasscode(ctx context.Context, passcode string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("passcode = ?", passcode).
		Delete(&model.OneTimePasscode{})
	return res.RowsAffected, apperror.Translate(res.Error)
}

// DeleteExpired drops rows from both tables created before the cutoff.
// Safe to run repeatedly.
func (r *codeRepository) DeleteExpired(ctx context.Context, cutoff time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("created_at < ?", cutoff).
			Delete(&model.InvitationCode{}).Error; err != nil {
			return apperror.Translate(err)
		}
		if err := tx.Where("created_at < ?", cutoff).
			Delete(&model.OneTimePasscode{}).Error; err != nil {
			return apperror.Translate(err)
		}
		return nil
	})
}
