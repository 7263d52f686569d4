package catalog

import (
	"testing"

	"cognihub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCatalogue() []domain.Resource {
	return []domain.Resource{
		{ID: "r1", Title: "Algorithms Final PYQ 2025", Subject: "Computer Science", Category: domain.CategoryQuestionPaper, Visibility: domain.VisibilityEDU},
		{ID: "r2", Title: "Public Data Science Basics", Subject: "Data Science", Category: domain.CategoryStudyMaterial, Visibility: domain.VisibilityGeneral},
		{ID: "r3", Title: "Academic Ethics Handbook", Subject: "General Ethics", Category: domain.CategoryReferenceBook, Visibility: domain.VisibilityPublic},
	}
}

func TestFilter_NetworkPartition(t *testing.T) {
	resources := sampleCatalogue()

	edu := Filter(resources, domain.NetworkEDU, "", CategoryAll)
	require.Len(t, edu, 2)
	assert.Equal(t, "r1", edu[0].ID)
	assert.Equal(t, "r3", edu[1].ID)

	general := Filter(resources, domain.NetworkGeneral, "", CategoryAll)
	require.Len(t, general, 2)
	assert.Equal(t, "r2", general[0].ID)
	assert.Equal(t, "r3", general[1].ID)
}

func TestFilter_IdentityUnderNullPredicates(t *testing.T) {
	resources := sampleCatalogue()

	// Empty query and the All facet must return exactly the
	// network-partitioned subset, in the original order.
	out := Filter(resources, domain.NetworkGeneral, "", CategoryAll)
	require.Len(t, out, 2)
	for _, r := range out {
		assert.Contains(t, []string{domain.VisibilityGeneral, domain.VisibilityPublic}, r.Visibility)
	}
}

func TestFilter_SearchMatchesTitleOrSubject(t *testing.T) {
	resources := sampleCatalogue()

	byTitle := Filter(resources, domain.NetworkEDU, "algorithms", CategoryAll)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "r1", byTitle[0].ID)

	bySubject := Filter(resources, domain.NetworkEDU, "ETHICS", CategoryAll)
	require.Len(t, bySubject, 1)
	assert.Equal(t, "r3", bySubject[0].ID)

	assert.Empty(t, Filter(resources, domain.NetworkEDU, "quantum", CategoryAll))
}

func TestFilter_SearchNeverCrossesNetworks(t *testing.T) {
	resources := sampleCatalogue()

	// r2 matches the query but sits on the GENERAL network.
	out := Filter(resources, domain.NetworkEDU, "data science", CategoryAll)
	assert.Empty(t, out)
}

func TestFilter_CategoryFacet(t *testing.T) {
	resources := sampleCatalogue()

	out := Filter(resources, domain.NetworkEDU, "", domain.CategoryReferenceBook)
	require.Len(t, out, 1)
	assert.Equal(t, "r3", out[0].ID)
}

func TestFilter_UnknownCategoryMatchesNothing(t *testing.T) {
	resources := sampleCatalogue()

	// An unrecognized facet value must yield an empty result, not fall
	// back to All.
	assert.Empty(t, Filter(resources, domain.NetworkEDU, "", "Lab Manual"))
}

func TestFilter_EmptyCatalogue(t *testing.T) {
	assert.Empty(t, Filter(nil, domain.NetworkEDU, "", CategoryAll))
}

func TestFilter_Idempotent(t *testing.T) {
	resources := sampleCatalogue()

	first := Filter(resources, domain.NetworkEDU, "a", CategoryAll)
	second := Filter(resources, domain.NetworkEDU, "a", CategoryAll)
	assert.Equal(t, first, second)
}

func TestFilter_PreservesInputOrder(t *testing.T) {
	resources := []domain.Resource{
		{ID: "p1", Visibility: domain.VisibilityPublic},
		{ID: "e1", Visibility: domain.VisibilityEDU},
		{ID: "p2", Visibility: domain.VisibilityPublic},
		{ID: "e2", Visibility: domain.VisibilityEDU},
	}

	out := Filter(resources, domain.NetworkEDU, "", CategoryAll)
	require.Len(t, out, 4)
	assert.Equal(t, []string{"p1", "e1", "p2", "e2"}, []string{out[0].ID, out[1].ID, out[2].ID, out[3].ID})
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	resources := sampleCatalogue()
	Filter(resources, domain.NetworkEDU, "", domain.CategoryQuestionPaper)

	require.Len(t, resources, 3)
	assert.Equal(t, "r1", resources[0].ID)
	assert.Equal(t, "r2", resources[1].ID)
	assert.Equal(t, "r3", resources[2].ID)
}
