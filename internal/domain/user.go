package domain

// User roles
const (
	RoleStudent  = "STUDENT"  // Enrolled student (EDU network)
	RoleTeacher  = "TEACHER"  // Faculty member (EDU network)
	RoleAdmin    = "ADMIN"    // Platform administrator (EDU network)
	RoleOutsider = "OUTSIDER" // Community learner (GENERAL network)
)

// Network tiers
const (
	NetworkEDU     = "EDU"     // Institution-verified network
	NetworkGeneral = "GENERAL" // Public community network
)

// User Model
type User struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`     // UUID primary key
	Name     string `gorm:"not null" json:"name"`             // Display name
	Email    string `gorm:"unique;not null" json:"email"`     // Unique email (login identity)
	Password string `gorm:"not null" json:"-"`                // Hashed password, never serialized
	Role     string `gorm:"default:STUDENT" json:"role"`      // One of the Role* constants
	Network  string `gorm:"default:EDU" json:"network"`       // Derived from Role, see NetworkForRole
	Points   int    `gorm:"not null;default:0" json:"points"` // Spendable merit currency
	XP       int    `gorm:"not null;default:0" json:"xp"`     // Non-decreasing experience counter

	// Descriptive profile fields, not part of core logic
	CollegeName string `json:"collegeName,omitempty"` // College or institution name
	Department  string `json:"department,omitempty"`  // Department
	Semester    int    `json:"semester,omitempty"`    // Current semester (students)
	Bio         string `json:"bio,omitempty"`         // Free-text bio
}

// NetworkForRole derives the network tier from a role.
// OUTSIDER accounts live on the GENERAL network, everyone else on EDU.
// The network is fixed at registration and never mutated independently of the role.
func NetworkForRole(role string) string {
	if role == RoleOutsider {
		return NetworkGeneral // Outsiders join the public network
	}
	return NetworkEDU // Students, teachers and admins are institution-verified
}

// ValidRole reports whether role is one of the known role constants.
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleTeacher, RoleAdmin, RoleOutsider:
		return true // Known role
	}
	return false // Anything else is rejected at registration
}
