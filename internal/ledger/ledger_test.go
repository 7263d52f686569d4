package ledger

import (
	"testing"

	"cognihub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyUpload_EveryRole(t *testing.T) {
	roles := []string{domain.RoleStudent, domain.RoleTeacher, domain.RoleAdmin, domain.RoleOutsider}
	for _, role := range roles {
		u := domain.User{Role: role, Points: 7, XP: 30}
		ApplyUpload(&u)
		assert.Equal(t, 57, u.Points, "role %s", role)
		assert.Equal(t, 130, u.XP, "role %s", role)
	}
}

func TestDownloadCost_PerRole(t *testing.T) {
	assert.Equal(t, 10, DownloadCost(domain.RoleStudent))
	assert.Equal(t, 10, DownloadCost(domain.RoleOutsider))
	assert.Equal(t, 0, DownloadCost(domain.RoleTeacher))
	assert.Equal(t, 0, DownloadCost(domain.RoleAdmin))
}

func TestApplyDownload_InsufficientMerit(t *testing.T) {
	u := domain.User{Role: domain.RoleStudent, Points: 5, XP: 40}
	r := domain.Resource{Downloads: 12}

	err := ApplyDownload(&u, &r)
	require.ErrorIs(t, err, ErrInsufficientMerit)

	// Nothing may change on failure.
	assert.Equal(t, 5, u.Points)
	assert.Equal(t, 40, u.XP)
	assert.Equal(t, 12, r.Downloads)
}

func TestApplyDownload_StudentPays(t *testing.T) {
	u := domain.User{Role: domain.RoleStudent, Points: 100, XP: 40}
	r := domain.Resource{Downloads: 12}

	require.NoError(t, ApplyDownload(&u, &r))
	assert.Equal(t, 90, u.Points)
	assert.Equal(t, 60, u.XP)
	assert.Equal(t, 13, r.Downloads)
}

func TestApplyDownload_ExactBalance(t *testing.T) {
	u := domain.User{Role: domain.RoleOutsider, Points: DownloadFee}
	r := domain.Resource{}

	require.NoError(t, ApplyDownload(&u, &r))
	assert.Equal(t, 0, u.Points)
}

func TestApplyDownload_FreeRoles(t *testing.T) {
	for _, role := range []string{domain.RoleTeacher, domain.RoleAdmin} {
		u := domain.User{Role: role, Points: 0, XP: 5}
		r := domain.Resource{Downloads: 1}

		require.NoError(t, ApplyDownload(&u, &r), "role %s", role)
		assert.Equal(t, 0, u.Points, "role %s", role)
		assert.Equal(t, 25, u.XP, "role %s", role)
		assert.Equal(t, 2, r.Downloads, "role %s", role)
	}
}

func TestApplyDownload_TwoCallsAreTwoEvents(t *testing.T) {
	u := domain.User{Role: domain.RoleStudent, Points: 25}
	r := domain.Resource{}

	require.NoError(t, ApplyDownload(&u, &r))
	require.NoError(t, ApplyDownload(&u, &r))
	assert.Equal(t, 5, u.Points)
	assert.Equal(t, 2, r.Downloads)

	// Third call must now fail.
	require.ErrorIs(t, ApplyDownload(&u, &r), ErrInsufficientMerit)
	assert.Equal(t, 5, u.Points)
	assert.Equal(t, 2, r.Downloads)
}
