package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/classpress/forumcore/internal/bootstrap"
	"github.com/classpress/forumcore/internal/model"
	"github.com/classpress/forumcore/internal/repository"
	"github.com/classpress/forumcore/pkg/database"
)

type testEnv struct {
	db       *gorm.DB
	users    UserService
	access   AccessService
	threads  ThreadService
	posts    PostService
	tracker  TrackerService
	grades   GradeBook
	messages MessageService
	requests RequestService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Connect("sqlite://:memory:")
	require.NoError(t, err)
	require.NoError(t, bootstrap.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	codeRepo := repository.NewCodeRepository(db)
	threadRepo := repository.NewThreadRepository(db)
	postRepo := repository.NewPostRepository(db)
	replyRepo := repository.NewReplyRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	requestRepo := repository.NewRequestRepository(db)

	return &testEnv{
		db:       db,
		users:    NewUserService(userRepo, false),
		access:   NewAccessService(codeRepo, testCodeTTL, nil),
		threads:  NewThreadService(threadRepo),
		posts:    NewPostService(postRepo, replyRepo, threadRepo),
		tracker:  NewTrackerService(statusRepo, postRepo, replyRepo),
		grades:   NewGradeBook(studentRepo),
		messages: NewMessageService(messageRepo, userRepo),
		requests: NewRequestService(requestRepo, userRepo),
	}
}

const testCodeTTL = 24 * time.Hour

func (e *testEnv) registerStudent(t *testing.T, username string) *model.User {
	t.Helper()
	user, err := e.users.Register(context.Background(), RegisterInput{
		Username: username,
		Password: "password1",
		Email:    username + "@example.edu",
		Roles:    []model.Role{model.RoleStudent},
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) createPost(t *testing.T, title, owner string, threadID uint) *model.Post {
	t.Helper()
	post, err := e.posts.CreatePost(context.Background(), CreatePostInput{
		Title:    title,
		Content:  "content",
		Owner:    owner,
		ThreadID: threadID,
	})
	require.NoError(t, err)
	return post
}
