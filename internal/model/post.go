package model

import (
	"strings"
	"time"
)

const tagSeparator = ","

// Post belongs to a thread and a user. Owner is kept as a plain username
// column: content outlives its author, so no FK constraint is declared.
// Grade, Feedback and GradedBy stay null until staff grades the post.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"size:255;uniqueIndex;not null" json:"title"`
	Subtitle string `gorm:"size:255" json:"subtitle"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Owner    string `gorm:"size:50;index;not null" json:"owner"`
	ThreadID uint   `gorm:"index;not null" json:"thread_id"`
	Thread   Thread `json:"thread,omitempty"`

	// Tags is the serialized form; use TagList/SetTagList at the API
	// boundary. Stored comma-joined for compatibility with existing rows.
	Tags string `gorm:"type:text" json:"-"`

	Grade         *float64 `json:"grade,omitempty"`
	Feedback      *string  `gorm:"type:text" json:"feedback,omitempty"`
	GradedBy      *string  `gorm:"size:50" json:"graded_by,omitempty"`
	GradeReleased bool     `gorm:"not null;default:false" json:"grade_released"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TagList decodes the stored tags into a duplicate-free list, first
// occurrence order preserved.
func (p *Post) TagList() []string {
	return splitTags(p.Tags)
}

// SetTagList encodes tags for storage, dropping empties and duplicates.
func (p *Post) SetTagList(tags []string) {
	p.Tags = joinTags(tags)
}

func splitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, tagSeparator)
	tags := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

func joinTags(tags []string) string {
	clean := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		clean = append(clean, tag)
	}
	return strings.Join(clean, tagSeparator)
}

// Reply hangs off a post. PostID is nulled when the post is deleted; the
// reply itself survives as an orphan and stays readable.
type Reply struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Content string `gorm:"type:text;not null" json:"content"`
	Owner   string `gorm:"size:50;index;not null" json:"owner"`
	PostID  *uint  `gorm:"index" json:"post_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Orphaned reports whether the reply's post has been deleted.
func (r *Reply) Orphaned() bool {
	return r.PostID == nil
}
