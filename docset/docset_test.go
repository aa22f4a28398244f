package docset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/docgo/filter"
	"github.com/hupe1980/docgo/model"
	"github.com/hupe1980/docgo/query"
)

func populationComparator() query.DocumentComparator {
	population := model.NewFieldPath("population")
	return query.New(model.NewResourcePath("cities")).
		AddingFilter(filter.Gt(population, model.Int(0))).
		Comparator()
}

func city(id string, population int64) model.Document {
	return model.NewDocument(
		model.DocumentKeyFromString("cities/"+id),
		map[string]model.Value{"population": model.Int(population)},
	)
}

func keys(s DocumentSet) []string {
	out := make([]string, 0, s.Len())
	for doc := range s.Documents() {
		out = append(out, doc.Key().DocumentID())
	}
	return out
}

func TestDocumentSetOrdering(t *testing.T) {
	set := FromDocuments(populationComparator(),
		city("LA", 4_000_000),
		city("SF", 860_000),
		city("NYC", 8_000_000),
		city("OAK", 440_000),
	)

	assert.Equal(t, []string{"OAK", "SF", "LA", "NYC"}, keys(set))

	first, ok := set.First()
	require.True(t, ok)
	assert.Equal(t, "OAK", first.Key().DocumentID())

	last, ok := set.Last()
	require.True(t, ok)
	assert.Equal(t, "NYC", last.Key().DocumentID())
}

func TestDocumentSetKeyTieBreak(t *testing.T) {
	set := FromDocuments(populationComparator(),
		city("SF", 860_000),
		city("NYC", 860_000),
		city("LA", 860_000),
	)

	// Equal populations fall back to key order.
	assert.Equal(t, []string{"LA", "NYC", "SF"}, keys(set))
}

func TestDocumentSetMembership(t *testing.T) {
	set := FromDocuments(populationComparator(),
		city("SF", 860_000),
		city("LA", 4_000_000),
	)

	sfKey := model.DocumentKeyFromString("cities/SF")

	assert.True(t, set.Contains(sfKey))
	assert.Equal(t, 0, set.IndexOf(sfKey))
	assert.Equal(t, 1, set.IndexOf(model.DocumentKeyFromString("cities/LA")))
	assert.Equal(t, -1, set.IndexOf(model.DocumentKeyFromString("cities/XX")))

	got, ok := set.Get(sfKey)
	require.True(t, ok)
	assert.Equal(t, "SF", got.Key().DocumentID())

	_, ok = set.Get(model.DocumentKeyFromString("cities/XX"))
	assert.False(t, ok)
}

func TestDocumentSetAddReplacesByKey(t *testing.T) {
	set := FromDocuments(populationComparator(),
		city("SF", 860_000),
		city("LA", 4_000_000),
	)

	// A local write moves SF past LA; the set re-sorts the entry.
	grown := set.Add(city("SF", 5_000_000))

	assert.Equal(t, 2, grown.Len())
	assert.Equal(t, []string{"LA", "SF"}, keys(grown))

	got, ok := grown.Get(model.DocumentKeyFromString("cities/SF"))
	require.True(t, ok)
	population, _ := got.Field(model.NewFieldPath("population"))
	assert.True(t, model.Equal(population, model.Int(5_000_000)))
}

func TestDocumentSetDelete(t *testing.T) {
	set := FromDocuments(populationComparator(),
		city("SF", 860_000),
		city("LA", 4_000_000),
	)

	smaller := set.Delete(model.DocumentKeyFromString("cities/SF"))
	assert.Equal(t, []string{"LA"}, keys(smaller))
	assert.False(t, smaller.Contains(model.DocumentKeyFromString("cities/SF")))

	same := set.Delete(model.DocumentKeyFromString("cities/XX"))
	assert.True(t, same.Equal(set))
}

func TestDocumentSetImmutability(t *testing.T) {
	base := FromDocuments(populationComparator(), city("SF", 860_000))

	_ = base.Add(city("LA", 4_000_000))
	_ = base.Delete(model.DocumentKeyFromString("cities/SF"))

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, []string{"SF"}, keys(base))

	slice := base.Slice()
	slice[0] = city("XX", 1)
	assert.Equal(t, []string{"SF"}, keys(base))
}

func TestDocumentSetEqual(t *testing.T) {
	cmp := populationComparator()

	a := FromDocuments(cmp, city("SF", 860_000), city("LA", 4_000_000))
	b := FromDocuments(cmp, city("LA", 4_000_000), city("SF", 860_000))
	assert.True(t, a.Equal(b), "insertion order is irrelevant")

	c := FromDocuments(cmp, city("SF", 860_000))
	assert.False(t, a.Equal(c))

	d := FromDocuments(cmp, city("SF", 1), city("LA", 4_000_000))
	assert.False(t, a.Equal(d), "field changes are detected")
}

func TestDocumentSetEmpty(t *testing.T) {
	set := New(populationComparator())

	assert.True(t, set.IsEmpty())
	assert.Zero(t, set.Len())

	_, ok := set.First()
	assert.False(t, ok)
	_, ok = set.Last()
	assert.False(t, ok)

	count := 0
	for range set.Documents() {
		count++
	}
	assert.Zero(t, count)
}

func TestNewPanicsWithoutComparator(t *testing.T) {
	assert.Panics(t, func() {
		New(nil)
	})
}

func TestDocumentSetIterationStops(t *testing.T) {
	set := FromDocuments(populationComparator(),
		city("SF", 1), city("LA", 2), city("NYC", 3),
	)

	seen := 0
	for range set.Documents() {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}
