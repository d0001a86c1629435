package model

// DefaultThreadName is the thread posts fall back to when their own thread
// is deleted. It is created as soon as any thread exists.
const DefaultThreadName = "General"

type Thread struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}
