package tag

import "time"

// Tag labels a post. Tags come into existence on first use and are
// never deleted by this service.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:120" json:"name"`
	Slug      string    `gorm:"uniqueIndex;size:120" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}
