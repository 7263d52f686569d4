package domain

// Community Model
type Community struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`      // UUID primary key
	Name        string `gorm:"unique;not null" json:"name"`       // Community name
	Description string `gorm:"type:text" json:"description"`      // Free-text description
	Members     int    `gorm:"not null;default:0" json:"members"` // Member count
	Type        string `gorm:"index;default:EDU" json:"type"`     // Network tier the community belongs to
}
