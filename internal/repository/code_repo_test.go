package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpress/forumcore/internal/model"
	"github.com/classpress/forumcore/pkg/apperror"
)

func TestInvitationLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewCodeRepository(db)
	ctx := context.Background()

	inv := &model.InvitationCode{Code: "abc123", Email: "bob@x.com", Role: "Student"}
	require.NoError(t, repo.CreateInvitation(ctx, inv))

	err := repo.CreateInvitation(ctx, &model.InvitationCode{Code: "abc123", Email: "x@y.com", Role: "Staff"})
	assert.ErrorIs(t, err, apperror.ErrDuplicateKey)

	found, err := repo.FindInvitation(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "bob@x.com", found.Email)

	deleted, err := repo.DeleteInvitation(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = repo.DeleteInvitation(ctx, "abc123")
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestPasscodeUpsertReplacesPrevious(t *testing.T) {
	db := newTestDB(t)
	repo := NewCodeRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.UpsertPasscode(ctx, "bob@x.com", "first00001"))
	require.NoError(t, repo.UpsertPasscode(ctx, "bob@x.com", "second0002"))

	otp, err := repo.FindPasscode(ctx, "bob@x.com")
	require.NoError(t, err)
	assert.Equal(t, "second0002", otp.Passcode)

	// The replaced passcode no longer deletes anything.
	deleted, err := repo.DeletePasscode(ctx, "first00001")
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestDeleteExpiredSweepsBothTables(t *testing.T) {
	db := newTestDB(t)
	repo := NewCodeRepository(db)
	ctx := context.Background()

	old := time.Now().Add(-25 * time.Hour)
	require.NoError(t, repo.CreateInvitation(ctx, &model.InvitationCode{
		Code: "stale1", Email: "old@x.com", Role: "Student", CreatedAt: old,
	}))
	require.NoError(t, repo.CreateInvitation(ctx, &model.InvitationCode{
		Code: "fresh1", Email: "new@x.com", Role: "Student",
	}))
	require.NoError(t, db.Create(&model.OneTimePasscode{
		Email: "old@x.com", Passcode: "stalestale", CreatedAt: old,
	}).Error)
	require.NoError(t, repo.UpsertPasscode(ctx, "new@x.com", "freshfresh"))

	require.NoError(t, repo.DeleteExpired(ctx, time.Now().Add(-24*time.Hour)))

	_, err := repo.FindInvitation(ctx, "stale1")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = repo.FindInvitation(ctx, "fresh1")
	assert.NoError(t, err)

	_, err = repo.FindPasscode(ctx, "old@x.com")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = repo.FindPasscode(ctx, "new@x.com")
	assert.NoError(t, err)

	// Idempotent: sweeping again is a no-op.
	require.NoError(t, repo.DeleteExpired(ctx, time.Now().Add(-24*time.Hour)))
}
