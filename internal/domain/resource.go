package domain

import (
	"database/sql/driver" // Valuer/Scanner interfaces for custom column types
	"encoding/json"       // Tags are stored as a JSON array column
	"errors"              // Scan error values
	"time"                // Upload timestamp
)

// Resource visibility tiers. EDU and GENERAL mirror the network tiers;
// PUBLIC resources cross both networks.
const (
	VisibilityEDU     = NetworkEDU     // Visible to the EDU network only
	VisibilityGeneral = NetworkGeneral // Visible to the GENERAL network only
	VisibilityPublic  = "PUBLIC"       // Visible to everyone
)

// Resource categories (closed enum)
const (
	CategoryQuestionPaper = "Question Paper" // Past/sample exam papers
	CategoryClassNotes    = "Class Notes"    // Lecture notes
	CategoryStudyMaterial = "Study Material" // General study material
	CategoryReferenceBook = "Reference Book" // Reference books
	CategoryProjectReport = "Project Report" // Project reports
	CategoryAssignment    = "Assignment"     // Assignments
)

// Categories lists every valid resource category.
var Categories = []string{
	CategoryQuestionPaper,
	CategoryClassNotes,
	CategoryStudyMaterial,
	CategoryReferenceBook,
	CategoryProjectReport,
	CategoryAssignment,
}

// ValidCategory reports whether category is one of the closed enum values.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true // Known category
		}
	}
	return false // Unknown category
}

// ValidVisibility reports whether v is one of the three visibility tags.
func ValidVisibility(v string) bool {
	return v == VisibilityEDU || v == VisibilityGeneral || v == VisibilityPublic
}

// TagList is a set of tags stored as a JSON array column.
// Matching is order-insensitive; insertion order is preserved for display.
type TagList []string

// Value serializes the tag list for storage.
func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		t = TagList{} // Store an empty array, not NULL
	}
	return json.Marshal(t)
}

// Scan deserializes the tag list from storage.
func (t *TagList) Scan(value any) error {
	if value == nil {
		*t = TagList{} // Treat NULL as empty
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	}
	return errors.New("unsupported tag list column type")
}

// Resource Model
type Resource struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`        // UUID primary key
	Title        string    `gorm:"not null" json:"title"`               // Resource title
	Description  string    `gorm:"type:text" json:"description"`        // Free-text description
	UploaderID   string    `gorm:"size:36;index" json:"uploaderId"`     // References User.ID
	UploaderName string    `json:"uploaderName"`                        // Denormalized for display
	Category     string    `gorm:"index" json:"category"`               // One of the Category* constants
	Subject      string    `json:"subject"`                             // Subject/topic
	Semester     int       `json:"semester"`                            // 1-8
	UploadDate   time.Time `gorm:"autoCreateTime" json:"uploadDate"`    // Timestamp of publish
	Rating       float64   `gorm:"default:0" json:"rating"`             // 0.0-5.0
	Downloads    int       `gorm:"not null;default:0" json:"downloads"` // Download counter
	Tags         TagList   `gorm:"type:json" json:"tags"`               // Search keywords
	AISummary    string    `gorm:"type:text" json:"aiSummary,omitempty"` // Optional generated summary
	FileKey      string    `json:"-"`                                   // Object storage key, resolved to a URL on download
	Visibility   string    `gorm:"index;default:EDU" json:"visibility"` // EDU, GENERAL or PUBLIC; fixed at creation
}
