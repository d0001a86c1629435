package service

import (
	"context"
	"errors"

	"github.com/classpress/forumcore/internal/model"
	"github.com/classpress/forumcore/internal/repository"
	"github.com/classpress/forumcore/pkg/apperror"
)

type CreatePostInput struct {
	Title    string `validate:"required,max=255"`
	Subtitle string `validate:"max=255"`
	Content  string `validate:"required"`
	Owner    string `validate:"required"`
	ThreadID uint   `validate:"required"`
	Tags     []string
}

type CreateReplyInput struct {
	Content string `validate:"required"`
	Owner   string `validate:"required"`
	PostID  uint   `validate:"required"`
}

// GradeView is what a post owner sees once staff has released grades.
type GradeView struct {
	Grade    float64
	Feedback string
	GradedBy string
}

type PostService interface {
	CreatePost(ctx context.Context, input CreatePostInput) (*model.Post, error)
	GetPost(ctx context.Context, id uint) (*model.Post, error)
	ListByThread(ctx context.Context, threadID uint) ([]*model.Post, error)
	ListByOwner(ctx context.Context, owner string) ([]*model.Post, error)
	UpdateField(ctx context.Context, id uint, field string, value any) error
	DeletePost(ctx context.Context, id uint) error

	Tags(ctx context.Context, id uint) ([]string, error)
	AddTag(ctx context.Context, id uint, tag string) error
	RemoveTag(ctx context.Context, id uint, tag string) error

	SetGrade(ctx context.Context, id uint, grade float64, feedback, gradedBy string) error
	ReleaseAllGrades(ctx context.Context) (int64, error)
	ReleasedGrade(ctx context.Context, id uint) (*GradeView, error)

	CreateReply(ctx context.Context, input CreateReplyInput) (*model.Reply, error)
	UpdateReply(ctx context.Context, id uint, content string) error
	DeleteReply(ctx context.Context, id uint) error
	RepliesForPost(ctx context.Context, postID uint) ([]*model.Reply, error)
	OrphanReplies(ctx context.Context) ([]*model.Reply, error)
}

type postService struct {
	posts   repository.PostRepository
	replies repository.ReplyRepository
	threads repository.ThreadRepository
}

func NewPostService(posts repository.PostRepository, replies repository.ReplyRepository, threads repository.ThreadRepository) PostService {
	return &postService{posts: posts, replies: replies, threads: threads}
}

// CreatePost verifies the target thread before inserting so a dangling
// thread id surfaces as ErrForeignKey rather than a driver error.
func (s *postService) CreatePost(ctx context.Context, input CreatePostInput) (*model.Post, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if _, err := s.threads.FindByID(ctx, input.ThreadID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.New("thread does not exist", apperror.ErrForeignKey)
		}
		return nil, err
	}

	post := &model.Post{
		Title:    input.Title,
		Subtitle: input.Subtitle,
		Content:  input.Content,
		Owner:    input.Owner,
		ThreadID: input.ThreadID,
	}
	post.SetTagList(input.Tags)

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) GetPost(ctx context.Context, id uint) (*model.Post, error) {
	return s.posts.FindByID(ctx, id)
}

func (s *postService) ListByThread(ctx context.Context, threadID uint) ([]*model.Post, error) {
	return s.posts.FindByThreadID(ctx, threadID)
}

func (s *postService) ListByOwner(ctx context.Context, owner string) ([]*model.Post, error) {
	return s.posts.FindByOwner(ctx, owner)
}

func (s *postService) UpdateField(ctx context.Context, id uint, field string, value any) error {
	return s.posts.UpdateField(ctx, id, field, value)
}

func (s *postService) DeletePost(ctx context.Context, id uint) error {
	return s.posts.Delete(ctx, id)
}

func (s *postService) Tags(ctx context.Context, id uint) ([]string, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return post.TagList(), nil
}

// AddTag and RemoveTag rebuild the whole tag set from the stored value and
// rewrite it in one update; tags are never patched individually.
func (s *postService) AddTag(ctx context.Context, id uint, tag string) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return s.posts.UpdateTags(ctx, id, append(post.TagList(), tag))
}

func (s *postService) RemoveTag(ctx context.Context, id uint, tag string) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	tags := post.TagList()
	kept := tags[:0]
	for _, t := range tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	return s.posts.UpdateTags(ctx, id, kept)
}

func (s *postService) SetGrade(ctx context.Context, id uint, grade float64, feedback, gradedBy string) error {
	return s.posts.SetGrade(ctx, id, grade, feedback, gradedBy)
}

func (s *postService) ReleaseAllGrades(ctx context.Context) (int64, error) {
	return s.posts.ReleaseAllGrades(ctx)
}

// ReleasedGrade returns the grade only once staff has released it;
// an unreleased or ungraded post reads as ErrNotFound.
func (s *postService) ReleasedGrade(ctx context.Context, id uint) (*GradeView, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.Grade == nil || !post.GradeReleased {
		return nil, apperror.ErrNotFound
	}
	view := &GradeView{Grade: *post.Grade}
	if post.Feedback != nil {
		view.Feedback = *post.Feedback
	}
	if post.GradedBy != nil {
		view.GradedBy = *post.GradedBy
	}
	return view, nil
}

func (s *postService) CreateReply(ctx context.Context, input CreateReplyInput) (*model.Reply, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if _, err := s.posts.FindByID(ctx, input.PostID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.New("post does not exist", apperror.ErrForeignKey)
		}
		return nil, err
	}

	postID := input.PostID
	reply := &model.Reply{
		Content: input.Content,
		Owner:   input.Owner,
		PostID:  &postID,
	}
	if err := s.replies.Create(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *postService) UpdateReply(ctx context.Context, id uint, content string) error {
	return s.replies.UpdateContent(ctx, id, content)
}

func (s *postService) DeleteReply(ctx context.Context, id uint) error {
	return s.replies.Delete(ctx, id)
}

func (s *postService) RepliesForPost(ctx context.Context, postID uint) ([]*model.Reply, error) {
	return s.replies.FindByPostID(ctx, postID)
}

func (s *postService) OrphanReplies(ctx context.Context) ([]*model.Reply, error) {
	return s.replies.FindOrphans(ctx)
}
