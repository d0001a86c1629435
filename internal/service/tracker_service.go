package service

import (
	"context"
	"errors"

	"github.com/classpress/forumcore/internal/model"
	"github.com/classpress/forumcore/internal/repository"
	"github.com/classpress/forumcore/pkg/apperror"
)

// TrackerService fronts the read/upvote tracker, validating that the post
// or reply exists before a status row is lazily created for it.
type TrackerService interface {
	MarkPostRead(ctx context.Context, username string, postID uint) error
	UpvotePost(ctx context.Context, username string, postID uint) error
	HasReadPost(ctx context.Context, username string, postID uint) (bool, error)
	PostStatus(ctx context.Context, username string, postID uint) (*model.PostReadStatus, error)
	PostViews(ctx context.Context, postID uint) (int64, error)
	PostUpvotes(ctx context.Context, postID uint) (int64, error)

	MarkReplyRead(ctx context.Context, username string, replyID uint) error
	UnreadReplies(ctx context.Context, username string, postID uint) ([]*model.Reply, error)
}

type trackerService struct {
	statuses repository.StatusRepository
	posts    repository.PostRepository
	replies  repository.ReplyRepository
}

func NewTrackerService(statuses repository.StatusRepository, posts repository.PostRepository, replies repository.ReplyRepository) TrackerService {
	return &trackerService{statuses: statuses, posts: posts, replies: replies}
}

func (s *trackerService) MarkPostRead(ctx context.Context, username string, postID uint) error {
	if err := s.requirePost(ctx, postID); err != nil {
		return err
	}
	return s.statuses.MarkPostRead(ctx, username, postID)
}

func (s *trackerService) UpvotePost(ctx context.Context, username string, postID uint) error {
	if err := s.requirePost(ctx, postID); err != nil {
		return err
	}
	return s.statuses.UpvotePost(ctx, username, postID)
}

func (s *trackerService) HasReadPost(ctx context.Context, username string, postID uint) (bool, error) {
	return s.statuses.HasReadPost(ctx, username, postID)
}

func (s *trackerService) PostStatus(ctx context.Context, username string, postID uint) (*model.PostReadStatus, error) {
	return s.statuses.GetPostStatus(ctx, username, postID)
}

func (s *trackerService) PostViews(ctx context.Context, postID uint) (int64, error) {
	return s.statuses.PostViews(ctx, postID)
}

func (s *trackerService) PostUpvotes(ctx context.Context, postID uint) (int64, error) {
	return s.statuses.PostUpvotes(ctx, postID)
}

func (s *trackerService) MarkReplyRead(ctx context.Context, username string, replyID uint) error {
	if _, err := s.replies.FindByID(ctx, replyID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.New("reply does not exist", apperror.ErrForeignKey)
		}
		return err
	}
	return s.statuses.MarkReplyRead(ctx, username, replyID)
}

func (s *trackerService) UnreadReplies(ctx context.Context, username string, postID uint) ([]*model.Reply, error) {
	return s.statuses.UnreadReplies(ctx, username, postID)
}

func (s *trackerService) requirePost(ctx context.Context, postID uint) error {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.New("post does not exist", apperror.ErrForeignKey)
		}
		return err
	}
	return nil
}
