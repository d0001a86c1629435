package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpress/forumcore/internal/model"
	"github.com/classpress/forumcore/pkg/apperror"
)

func TestMarkPostReadIsUpsert(t *testing.T) {
	db := newTestDB(t)
	repo := NewStatusRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice", model.RoleStudent)
	seedUser(t, db, "bob", model.RoleStudent)
	thread := seedThread(t, db, "Homework")
	post := seedPost(t, db, "Week 1", "alice", thread.ID)

	require.NoError(t, repo.MarkPostRead(ctx, "bob", post.ID))
	require.NoError(t, repo.MarkPostRead(ctx, "bob", post.ID))

	status, err := repo.GetPostStatus(ctx, "bob", post.ID)
	require.NoError(t, err)
	assert.True(t, status.IsRead)
	assert.Zero(t, status.Upvotes)

	// Still exactly one row for the pair.
	views, err := repo.PostViews(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), views)
}

func TestUpvoteIncrementsNotSets(t *testing.T) {
	db := newTestDB(t)
	repo := NewStatusRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice", model.RoleStudent)
	seedUser(t, db, "bob", model.RoleStudent)
	thread := seedThread(t, db, "Homework")
	post := seedPost(t, db, "Week 1", "alice", thread.ID)

	require.NoError(t, repo.UpvotePost(ctx, "bob", post.ID))
	require.NoError(t, repo.UpvotePost(ctx, "bob", post.ID))

	status, err := repo.GetPostStatus(ctx, "bob", post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, status.Upvotes)
	assert.True(t, status.IsRead)
}

func TestUpvoteMarkReadPreservesCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewStatusRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice", model.RoleStudent)
	seedUser(t, db, "bob", model.RoleStudent)
	thread := seedThread(t, db, "Homework")
	post := seedPost(t, db, "Week 1", "alice", thread.ID)

	require.NoError(t, repo.UpvotePost(ctx, "bob", post.ID))
	require.NoError(t, repo.MarkPostRead(ctx, "bob", post.ID))

	status, err := repo.GetPostStatus(ctx, "bob", post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, status.Upvotes)
}

func TestConcurrentUpvotesSettleAtTwo(t *testing.T) {
	db := newTestDB(t)
	repo := NewStatusRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice", model.RoleStudent)
	seedUser(t, db, "userx", model.RoleStudent)
	thread := seedThread(t, db, "Homework")
	post := seedPost(t, db, "Post 7", "alice", thread.ID)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.UpvotePost(ctx, "userx", post.ID)
		}(i)
	}
	wg.Wait()
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	status, err := repo.GetPostStatus(ctx, "userx", post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, status.Upvotes)
}

func TestPostViewsAndUpvoteAggregates(t *testing.T) {
	db := newTestDB(t)
	repo := NewStatusRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice", model.RoleStudent)
	seedUser(t, db, "bob", model.RoleStudent)
	seedUser(t, db, "carol", model.RoleStudent)
	thread := seedThread(t, db, "Homework")
	post := seedPost(t, db, "Week 1", "alice", thread.ID)

	require.NoError(t, repo.MarkPostRead(ctx, "bob", post.ID))
	require.NoError(t, repo.UpvotePost(ctx, "carol", post.ID))
	require.NoError(t, repo.UpvotePost(ctx, "carol", post.ID))

	views, err := repo.PostViews(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), views)

	upvotes, err := repo.PostUpvotes(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), upvotes)
}

func TestHasReadDistinguishesNoRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewStatusRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice", model.RoleStudent)
	seedUser(t, db, "bob", model.RoleStudent)
	thread := seedThread(t, db, "Homework")
	post := seedPost(t, db, "Week 1", "alice", thread.ID)

	// Never touched: no row at all.
	_, err := repo.GetPostStatus(ctx, "bob", post.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	read, err := repo.HasReadPost(ctx, "bob", post.ID)
	require.NoError(t, err)
	assert.False(t, read)

	require.NoError(t, repo.MarkPostRead(ctx, "bob", post.ID))
	read, err = repo.HasReadPost(ctx, "bob", post.ID)
	require.NoError(t, err)
	assert.True(t, read)
}

func TestUnreadRepliesOuterJoin(t *testing.T) {
	db := newTestDB(t)
	repo := NewStatusRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice", model.RoleStudent)
	seedUser(t, db, "bob", model.RoleStudent)
	thread := seedThread(t, db, "Homework")
	post := seedPost(t, db, "Week 1", "alice", thread.ID)

	first := seedReply(t, db, "bob", post.ID)
	second := seedReply(t, db, "bob", post.ID)
	third := seedReply(t, db, "bob", post.ID)

	// alice reads only the second reply.
	require.NoError(t, repo.MarkReplyRead(ctx, "alice", second.ID))

	unread, err := repo.UnreadReplies(ctx, "alice", post.ID)
	require.NoError(t, err)
	require.Len(t, unread, 2)
	assert.Equal(t, first.ID, unread[0].ID)
	assert.Equal(t, third.ID, unread[1].ID)

	// bob never touched any reply: all three count as unread.
	unread, err = repo.UnreadReplies(ctx, "bob", post.ID)
	require.NoError(t, err)
	assert.Len(t, unread, 3)
}
