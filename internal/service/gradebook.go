package service

import (
	"context"

	"github.com/classpress/forumcore/internal/model"
	"github.com/classpress/forumcore/internal/repository"
)

// Scoring weights. Participation rewards the student's own activity,
// capped at five posts and five replies; performance rewards the feedback
// their posts attract, with diminishing extra credit past one reply/view
// per post. Performance is deliberately unclamped: extra credit can push
// it past 100 and violations can drive it negative.
const (
	participationPostCap  = 5
	participationReplyCap = 5
	upvoteCap             = 5
)

// Participation scores the student's own post and reply counts on a 0-100
// scale, 60/40 weighted, capped at five each.
func Participation(posts, replies int) float64 {
	p := min(posts, participationPostCap)
	r := min(replies, participationReplyCap)
	return (float64(p)/participationPostCap*0.6 + float64(r)/participationReplyCap*0.4) * 100
}

// Performance scores the feedback received on the student's posts plus the
// staff-controlled promotion/violation adjustments. A student with no
// posts scores zero.
func Performance(status model.StudentStatus) float64 {
	if status.Posts == 0 {
		return 0
	}

	posts := float64(status.Posts)
	rdp := float64(status.RepliesReceived) / posts
	vdp := float64(status.ViewsReceived) / posts
	up := float64(min(status.UpvotesReceived, upvoteCap))

	if rdp > 1 {
		rdp = 1 + (rdp-1)*0.1
	}
	if vdp > 1 {
		vdp = 1 + (vdp-1)*0.05
	}

	score := rdp*0.3 + up/upvoteCap*0.1 + vdp*0.6 +
		float64(status.Promotions)*0.05 - float64(status.Violations)*0.1
	return score * 100
}

// TotalGrade weighs participation 80/20 against performance.
func TotalGrade(participation, performance float64) float64 {
	return participation*0.8 + performance*0.2
}

var letterMarks = []struct {
	floor float64
	mark  string
}{
	{97, "A+"},
	{93, "A"},
	{90, "A-"},
	{87, "B+"},
	{83, "B"},
	{80, "B-"},
	{77, "C+"},
	{73, "C"},
	{70, "C-"},
	{60, "D"},
}

// LetterMark maps a total grade onto the letter scale. Thresholds are
// inclusive lower bounds, checked highest first.
func LetterMark(grade float64) string {
	for _, lm := range letterMarks {
		if grade >= lm.floor {
			return lm.mark
		}
	}
	return "F"
}

// StudentReport is the refreshed snapshot plus its derived scores.
type StudentReport struct {
	Status        model.StudentStatus
	Participation float64
	Performance   float64
	TotalGrade    float64
	Letter        string
}

// GradeBook computes student reputation. Refresh recomputes the aggregate
// counters from live posts/replies/status rows and writes them back;
// Report always refreshes before reading so scores never go stale.
type GradeBook interface {
	Refresh(ctx context.Context, username string) (*model.StudentStatus, error)
	Report(ctx context.Context, username string) (*StudentReport, error)
	Promote(ctx context.Context, username string) error
	Demote(ctx context.Context, username string) error
	RecordViolation(ctx context.Context, username string) error
	ExcuseViolation(ctx context.Context, username string) error
}

type gradeBook struct {
	students repository.StudentRepository
}

func NewGradeBook(students repository.StudentRepository) GradeBook {
	return &gradeBook{students: students}
}

func (g *gradeBook) Refresh(ctx context.Context, username string) (*model.StudentStatus, error) {
	agg, err := g.students.Aggregates(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := g.students.SaveCounters(ctx, username, agg); err != nil {
		return nil, err
	}
	return g.students.Get(ctx, username)
}

func (g *gradeBook) Report(ctx context.Context, username string) (*StudentReport, error) {
	status, err := g.Refresh(ctx, username)
	if err != nil {
		return nil, err
	}

	participation := Participation(status.Posts, status.Replies)
	performance := Performance(*status)
	total := TotalGrade(participation, performance)

	return &StudentReport{
		Status:        *status,
		Participation: participation,
		Performance:   performance,
		TotalGrade:    total,
		Letter:        LetterMark(total),
	}, nil
}

func (g *gradeBook) Promote(ctx context.Context, username string) error {
	return g.students.AdjustPromotions(ctx, username, 1)
}

func (g *gradeBook) Demote(ctx context.Context, username string) error {
	return g.students.AdjustPromotions(ctx, username, -1)
}

func (g *gradeBook) RecordViolation(ctx context.Context, username string) error {
	return g.students.AdjustViolations(ctx, username, 1)
}

func (g *gradeBook) ExcuseViolation(ctx context.Context, username string) error {
	return g.students.AdjustViolations(ctx, username, -1)
}
