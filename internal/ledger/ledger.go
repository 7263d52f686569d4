// Package ledger implements merit-point and XP accounting for the two
// economic actions in the system: uploading a resource and downloading one.
// All operations are deterministic computations over the user record; the
// caller is responsible for persisting the resulting balance.
package ledger

import (
	"errors" // Sentinel error value

	"cognihub/internal/domain" // User and Resource models
)

// Reward and cost constants
const (
	UploadPoints = 50  // Points granted per published resource
	UploadXP     = 100 // XP granted per published resource
	DownloadXP   = 20  // XP granted per download
	DownloadFee  = 10  // Points charged per download for cost-bearing roles
)

// ErrInsufficientMerit is returned when a user cannot afford a download.
// It is a recoverable, user-facing condition, never a system fault.
var ErrInsufficientMerit = errors.New("insufficient merit points")

// DownloadCost returns the point cost of a download for a role.
// Students and outsiders pay the fee; teachers and admins download free.
func DownloadCost(role string) int {
	if role == domain.RoleStudent || role == domain.RoleOutsider {
		return DownloadFee
	}
	return 0
}

// ApplyUpload grants the upload reward. It never fails: once a publish
// succeeds upstream the reward is unconditional, for every role.
func ApplyUpload(u *domain.User) {
	u.Points += UploadPoints
	u.XP += UploadXP
}

// ApplyDownload charges the user for a download and bumps the resource's
// download counter. When the user cannot afford the cost it returns
// ErrInsufficientMerit and mutates neither the user nor the resource.
// Each call is a distinct economic event: the ledger does not deduplicate
// repeated calls for what the caller considers a single download.
func ApplyDownload(u *domain.User, r *domain.Resource) error {
	cost := DownloadCost(u.Role)
	if u.Points < cost {
		return ErrInsufficientMerit
	}
	u.Points -= cost
	u.XP += DownloadXP
	r.Downloads++
	return nil
}
