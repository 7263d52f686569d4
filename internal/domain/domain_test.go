package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkForRole(t *testing.T) {
	assert.Equal(t, NetworkGeneral, NetworkForRole(RoleOutsider))
	assert.Equal(t, NetworkEDU, NetworkForRole(RoleStudent))
	assert.Equal(t, NetworkEDU, NetworkForRole(RoleTeacher))
	assert.Equal(t, NetworkEDU, NetworkForRole(RoleAdmin))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleStudent))
	assert.True(t, ValidRole(RoleOutsider))
	assert.False(t, ValidRole("student"))
	assert.False(t, ValidRole(""))
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, ValidCategory(c))
	}
	assert.False(t, ValidCategory("Lab Manual"))
	assert.False(t, ValidCategory("all"))
}

func TestValidVisibility(t *testing.T) {
	assert.True(t, ValidVisibility(VisibilityEDU))
	assert.True(t, ValidVisibility(VisibilityGeneral))
	assert.True(t, ValidVisibility(VisibilityPublic))
	assert.False(t, ValidVisibility("private"))
}

func TestTagList_RoundTrip(t *testing.T) {
	tags := TagList{"Algorithms", "Internal"}

	v, err := tags.Value()
	require.NoError(t, err)

	var decoded TagList
	require.NoError(t, decoded.Scan(v))
	assert.Equal(t, tags, decoded)
}

func TestTagList_NilValuesAreEmptyArrays(t *testing.T) {
	var tags TagList
	v, err := tags.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v.([]byte))

	var decoded TagList
	require.NoError(t, decoded.Scan(nil))
	assert.Empty(t, decoded)
}
