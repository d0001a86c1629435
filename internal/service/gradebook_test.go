package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpress/forumcore/internal/model"
)

func TestParticipationCapsAtFive(t *testing.T) {
	assert.InDelta(t, 100.0, Participation(5, 5), 1e-9)
	assert.Equal(t, Participation(5, 5), Participation(10, 10))
	assert.InDelta(t, 52.0, Participation(3, 2), 1e-9)
	assert.Zero(t, Participation(0, 0))
}

func TestPerformanceZeroPosts(t *testing.T) {
	status := model.StudentStatus{
		Posts:           0,
		RepliesReceived: 50,
		ViewsReceived:   50,
		UpvotesReceived: 50,
	}
	assert.Zero(t, Performance(status))
}

func TestPerformanceBaseCase(t *testing.T) {
	// One reply and one view per post, upvotes at the cap: full marks.
	status := model.StudentStatus{
		Posts:           4,
		RepliesReceived: 4,
		ViewsReceived:   4,
		UpvotesReceived: 5,
	}
	assert.InDelta(t, 100.0, Performance(status), 1e-9)
}

func TestPerformanceDiminishingExtraCredit(t *testing.T) {
	// Two replies and two views per post: the second unit only earns
	// 10% resp. 5% of the first.
	status := model.StudentStatus{
		Posts:           2,
		RepliesReceived: 4,
		ViewsReceived:   4,
		UpvotesReceived: 0,
	}
	want := (1.1*0.3 + 1.05*0.6) * 100
	assert.InDelta(t, want, Performance(status), 1e-9)
}

func TestPerformanceNotClamped(t *testing.T) {
	// Violations can take the score negative.
	bad := model.StudentStatus{Posts: 1, Violations: 3}
	assert.Less(t, Performance(bad), 0.0)

	// Heavy feedback plus promotions can push past 100.
	good := model.StudentStatus{
		Posts:           1,
		RepliesReceived: 20,
		ViewsReceived:   40,
		UpvotesReceived: 9,
		Promotions:      2,
	}
	assert.Greater(t, Performance(good), 100.0)
}

func TestPerformanceUpvoteCap(t *testing.T) {
	five := model.StudentStatus{Posts: 1, UpvotesReceived: 5}
	fifty := model.StudentStatus{Posts: 1, UpvotesReceived: 50}
	assert.Equal(t, Performance(five), Performance(fifty))
}

func TestTotalGradeWeights(t *testing.T) {
	assert.InDelta(t, 84.0, TotalGrade(100, 20), 1e-9)
}

func TestLetterMarkBoundaries(t *testing.T) {
	cases := []struct {
		grade float64
		want  string
	}{
		{97.0, "A+"},
		{96.999, "A"},
		{93.0, "A"},
		{92.999, "A-"},
		{90.0, "A-"},
		{87.0, "B+"},
		{83.0, "B"},
		{80.0, "B-"},
		{77.0, "C+"},
		{73.0, "C"},
		{70.0, "C-"},
		{69.999, "D"},
		{60.0, "D"},
		{59.999, "F"},
		{-12.5, "F"},
		{104.2, "A+"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, LetterMark(tc.grade), "grade %v", tc.grade)
	}
}

func TestReportScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.registerStudent(t, "alice")
	env.registerStudent(t, "viewer")

	thread, err := env.threads.Add(ctx, "Homework")
	require.NoError(t, err)

	// alice authors 3 posts and 2 replies (to someone else's post).
	p1 := env.createPost(t, "Post 1", "alice", thread.ID)
	p2 := env.createPost(t, "Post 2", "alice", thread.ID)
	p3 := env.createPost(t, "Post 3", "alice", thread.ID)
	other := env.createPost(t, "Other", "viewer", thread.ID)
	for i := 0; i < 2; i++ {
		_, err := env.posts.CreateReply(ctx, CreateReplyInput{
			Content: "reply", Owner: "alice", PostID: other.ID,
		})
		require.NoError(t, err)
	}

	// Another user views and upvotes each of alice's posts once.
	for _, post := range []*model.Post{p1, p2, p3} {
		require.NoError(t, env.tracker.UpvotePost(ctx, "viewer", post.ID))
	}

	report, err := env.grades.Report(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(t, 3, report.Status.Posts)
	assert.Equal(t, 2, report.Status.Replies)
	assert.Equal(t, 3, report.Status.ViewsReceived)
	assert.Equal(t, 0, report.Status.RepliesReceived)
	assert.Equal(t, 3, report.Status.UpvotesReceived)

	assert.InDelta(t, 52.0, report.Participation, 1e-9)
	// rdp=0, vdp=1, up=3: (0*0.3 + 3/5*0.1 + 1*0.6) * 100
	assert.InDelta(t, 66.0, report.Performance, 1e-9)
	assert.InDelta(t, 52.0*0.8+66.0*0.2, report.TotalGrade, 1e-9)
	assert.Equal(t, LetterMark(report.TotalGrade), report.Letter)
}

func TestRefreshWritesCountersBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.registerStudent(t, "alice")
	thread, err := env.threads.Add(ctx, "Homework")
	require.NoError(t, err)
	env.createPost(t, "Only post", "alice", thread.ID)

	status, err := env.grades.Refresh(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, status.Posts)

	// Promotions survive a refresh untouched.
	require.NoError(t, env.grades.Promote(ctx, "alice"))
	status, err = env.grades.Refresh(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, status.Promotions)
}
