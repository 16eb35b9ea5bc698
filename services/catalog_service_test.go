package services

import (
	"context"
	"testing"
	"time"

	"github.com/anjiri1684/college_review/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInstitutionsSortedAndCached(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.ledger.AddBatch(ctx, models.CollectionColleges, []map[string]interface{}{
		{"name": "Delhi University"},
		{"name": "Anna University"},
		{"type": "Private"},
		{"name": "BITS Pilani"},
	})
	require.NoError(t, err)

	names, err := f.svc.GetInstitutions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Anna University", "BITS Pilani", "Delhi University"}, names)

	// Served from cache while the ledger is down.
	f.ledger.setDown(true)
	names, err = f.svc.GetInstitutions(ctx)
	require.NoError(t, err)
	assert.Len(t, names, 3)

	f.advance(2 * time.Hour)
	names, err = f.svc.GetInstitutions(ctx)
	assert.ErrorIs(t, err, errLedgerDown)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestImportCollegesInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	names, err := f.svc.GetInstitutions(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	n, err := f.svc.ImportColleges(ctx)
	require.NoError(t, err)
	assert.Greater(t, n, 0)

	names, err = f.svc.GetInstitutions(ctx)
	require.NoError(t, err)
	assert.Len(t, names, n)
	assert.IsNonDecreasing(t, names)
}

func TestGetCategoriesSorted(t *testing.T) {
	f := newFixture(t)

	list, err := f.svc.GetCategories()
	require.NoError(t, err)
	require.NotEmpty(t, list)
	assert.IsNonDecreasing(t, list)
}

func TestParseColleges(t *testing.T) {
	colleges, err := ParseColleges([]byte(`[
		{"name": "IIT Kanpur", "type": "Public", "location": {"city": "Kanpur", "country": "India"}},
		{"type": "Private"},
		{"name": "Ashoka University"}
	]`))
	require.NoError(t, err)
	require.Len(t, colleges, 2)

	assert.Equal(t, "IIT Kanpur", colleges[0].Name)
	require.NotNil(t, colleges[0].Location)
	assert.Equal(t, "Kanpur", colleges[0].Location.City)
	assert.Nil(t, colleges[1].Location)

	assert.Equal(t, map[string]interface{}{
		"name": "IIT Kanpur",
		"type": "Public",
		"location": map[string]interface{}{
			"city":    "Kanpur",
			"country": "India",
		},
	}, collegeDocument(colleges[0]))
	assert.Equal(t, map[string]interface{}{"name": "Ashoka University"}, collegeDocument(colleges[1]))

	_, err = ParseColleges([]byte(`{`))
	assert.Error(t, err)
}

func TestParseCategories(t *testing.T) {
	list, err := ParseCategories([]byte(`["Placements", "Faculty", "Hostel"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Faculty", "Hostel", "Placements"}, list)

	_, err = ParseCategories([]byte(`"Hostel"`))
	assert.Error(t, err)
}
