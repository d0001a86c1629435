package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/classpress/forumcore/internal/bootstrap"
	"github.com/classpress/forumcore/internal/model"
	"github.com/classpress/forumcore/pkg/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect("sqlite://:memory:")
	require.NoError(t, err)
	require.NoError(t, bootstrap.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, roles ...model.Role) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Password: "secret",
		Email:    username + "@example.edu",
	}
	for _, role := range roles {
		switch role {
		case model.RoleAdmin:
			user.IsAdmin = true
		case model.RoleStudent:
			user.IsStudent = true
		case model.RoleStaff:
			user.IsStaff = true
		}
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func seedThread(t *testing.T, db *gorm.DB, name string) *model.Thread {
	t.Helper()
	thread, err := NewThreadRepository(db).GetOrCreate(context.Background(), name)
	require.NoError(t, err)
	return thread
}

func seedPost(t *testing.T, db *gorm.DB, title, owner string, threadID uint) *model.Post {
	t.Helper()
	post := &model.Post{
		Title:    title,
		Content:  "content of " + title,
		Owner:    owner,
		ThreadID: threadID,
	}
	require.NoError(t, NewPostRepository(db).Create(context.Background(), post))
	return post
}

func seedReply(t *testing.T, db *gorm.DB, owner string, postID uint) *model.Reply {
	t.Helper()
	id := postID
	reply := &model.Reply{
		Content: "a reply",
		Owner:   owner,
		PostID:  &id,
	}
	require.NoError(t, NewReplyRepository(db).Create(context.Background(), reply))
	return reply
}
