package bootstrap

import (
	"gorm.io/gorm"

	"github.com/classpress/forumcore/internal/model"
)

// Migrate creates or updates the schema. AutoMigrate is create-if-absent,
// so running it on every startup is safe.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.InvitationCode{},
		&model.OneTimePasscode{},
		&model.Thread{},
		&model.Post{},
		&model.Reply{},
		&model.PostReadStatus{},
		&model.ReplyReadStatus{},
		&model.StudentStatus{},
		&model.SystemRequest{},
		&model.Message{},
	)
}

// SeedDefaults makes sure the default thread exists. Idempotent.
func SeedDefaults(db *gorm.DB) error {
	var thread model.Thread
	return db.Where(model.Thread{Name: model.DefaultThreadName}).
		FirstOrCreate(&thread).Error
}
