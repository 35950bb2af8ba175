package match

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propbind/access"
)

func TestRankCandidates(t *testing.T) {
	intType := reflect.TypeFor[int]()
	int64Type := reflect.TypeFor[int64]()
	stringType := reflect.TypeFor[string]()

	known := []Property{
		{Name: "CustomerID", Type: int64Type},
		{Name: "customer_id", Type: intType},
		{Name: "CustomerName", Type: stringType},
		{Name: "ID", Type: int64Type},
	}

	candidates := RankCandidates("CustomerID", int64Type, known)
	require.Len(t, candidates, 4)

	// Best match should be "CustomerID" (exact match)
	assert.Equal(t, "CustomerID", candidates[0].Property.Name)
	assert.GreaterOrEqual(t, candidates[0].Score, 0.9)
	assert.Equal(t, access.TypeIdentical, candidates[0].TypeCompat)

	// Second best should be "customer_id" (same name after normalization)
	assert.Equal(t, "customer_id", candidates[1].Property.Name)
}

func TestRankCandidates_NamesOnly(t *testing.T) {
	candidates := RankCandidates("Titel", nil, []Property{{Name: "Subtitle"}, {Name: "Title"}})
	require.Len(t, candidates, 2)

	assert.Equal(t, "Title", candidates[0].Property.Name)
	assert.Equal(t, candidates[0].NameScore, candidates[0].Score)
}

func TestSuggest(t *testing.T) {
	known := []string{"Name", "Title", "Total", "DataContext"}

	assert.Equal(t, []string{"Title", "Total"}, Suggest("Titl", known, 2))
	assert.Equal(t, []string{"DataContext"}, Suggest("data_context", known, 3))
	assert.Empty(t, Suggest("Zzzzzz", known, 3))
	assert.Empty(t, Suggest("Name", nil, 3))
}

func TestCandidateList_Top(t *testing.T) {
	candidates := CandidateList{
		{Property: Property{Name: "A"}, Score: 0.9},
		{Property: Property{Name: "B"}, Score: 0.8},
		{Property: Property{Name: "C"}, Score: 0.7},
	}

	assert.Len(t, candidates.Top(2), 2)
	assert.Len(t, candidates.Top(10), 3, "requesting more than available returns all")
	assert.Equal(t, "A", candidates.Best().Property.Name)
	assert.Nil(t, CandidateList{}.Best())
}

func TestCandidateList_Above(t *testing.T) {
	candidates := CandidateList{
		{Property: Property{Name: "A"}, Score: 0.9},
		{Property: Property{Name: "B"}, Score: 0.7},
		{Property: Property{Name: "C"}, Score: 0.5},
		{Property: Property{Name: "D"}, Score: 0.3},
	}

	assert.Len(t, candidates.Above(0.6), 2)
	assert.Len(t, candidates.Above(0.1), 4)
	assert.Empty(t, candidates.Above(0.95))
}
