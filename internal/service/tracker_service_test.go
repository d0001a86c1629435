package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpress/forumcore/pkg/apperror"
)

func TestTrackerRejectsMissingPost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.registerStudent(t, "alice")

	err := env.tracker.MarkPostRead(ctx, "alice", 999)
	assert.ErrorIs(t, err, apperror.ErrForeignKey)

	err = env.tracker.UpvotePost(ctx, "alice", 999)
	assert.ErrorIs(t, err, apperror.ErrForeignKey)

	err = env.tracker.MarkReplyRead(ctx, "alice", 999)
	assert.ErrorIs(t, err, apperror.ErrForeignKey)
}

func TestTrackerViewAndUpvoteFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.registerStudent(t, "alice")
	env.registerStudent(t, "bob")
	thread, err := env.threads.Add(ctx, "Homework")
	require.NoError(t, err)
	post := env.createPost(t, "Week 1", "alice", thread.ID)

	read, err := env.tracker.HasReadPost(ctx, "bob", post.ID)
	require.NoError(t, err)
	assert.False(t, read)

	require.NoError(t, env.tracker.MarkPostRead(ctx, "bob", post.ID))
	require.NoError(t, env.tracker.UpvotePost(ctx, "bob", post.ID))

	read, err = env.tracker.HasReadPost(ctx, "bob", post.ID)
	require.NoError(t, err)
	assert.True(t, read)

	views, err := env.tracker.PostViews(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), views)

	upvotes, err := env.tracker.PostUpvotes(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), upvotes)

	// bob replies; alice hasn't read it yet.
	reply, err := env.posts.CreateReply(ctx, CreateReplyInput{
		Content: "nice post",
		Owner:   "bob",
		PostID:  post.ID,
	})
	require.NoError(t, err)

	unread, err := env.tracker.UnreadReplies(ctx, "alice", post.ID)
	require.NoError(t, err)
	require.Len(t, unread, 1)

	require.NoError(t, env.tracker.MarkReplyRead(ctx, "alice", reply.ID))
	unread, err = env.tracker.UnreadReplies(ctx, "alice", post.ID)
	require.NoError(t, err)
	assert.Empty(t, unread)
}
