package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/docgo/filter"
	"github.com/hupe1980/docgo/model"
)

func docAt(path string, fields map[string]model.Value) model.Document {
	return model.NewDocument(model.DocumentKeyFromString(path), fields)
}

func orderByStrings(orderBys []OrderBy) []string {
	out := make([]string, len(orderBys))
	for i, orderBy := range orderBys {
		out[i] = orderBy.CanonicalString()
	}
	return out
}

func TestOrderBysDerivation(t *testing.T) {
	cities := model.NewResourcePath("cities")
	population := model.NewFieldPath("population")
	name := model.NewFieldPath("name")

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{
			name:  "no filters and no ordering",
			query: New(cities),
			want:  []string{"__name__ asc"},
		},
		{
			name:  "inequality without explicit ordering leads with its field",
			query: New(cities).AddingFilter(filter.Gt(population, model.Int(1_000_000))),
			want:  []string{"population asc", "__name__ asc"},
		},
		{
			name: "inequality on the key field collapses to the key",
			query: New(cities).AddingFilter(
				filter.Gte(model.KeyFieldPath(), model.Ref(model.DocumentKeyFromString("cities/M"))),
			),
			want: []string{"__name__ asc"},
		},
		{
			name:  "tie-break follows the last explicit direction",
			query: New(cities).AddingOrderBy(NewOrderBy(name, Descending)),
			want:  []string{"name desc", "__name__ desc"},
		},
		{
			name: "tie-break follows the last of several explicit entries",
			query: New(cities).
				AddingOrderBy(NewOrderBy(population, Ascending)).
				AddingOrderBy(NewOrderBy(name, Descending)),
			want: []string{"population asc", "name desc", "__name__ desc"},
		},
		{
			name:  "explicit key ordering is not duplicated",
			query: New(cities).AddingOrderBy(NewOrderBy(model.KeyFieldPath(), Descending)),
			want:  []string{"__name__ desc"},
		},
		{
			name: "inequality with matching explicit ordering keeps the explicit entries",
			query: New(cities).
				AddingFilter(filter.Lt(population, model.Int(1_000_000))).
				AddingOrderBy(NewOrderBy(population, Descending)),
			want: []string{"population desc", "__name__ desc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orderByStrings(tt.query.OrderBys()))
		})
	}
}

func TestOrderBysAlwaysTotal(t *testing.T) {
	cities := model.NewResourcePath("cities")
	population := model.NewFieldPath("population")

	queries := []Query{
		New(cities),
		New(model.NewResourcePath("cities", "SF")),
		NewCollectionGroup(model.NewResourcePath(), "cities"),
		New(cities).AddingFilter(filter.Eq(population, model.Int(1))),
		New(cities).AddingFilter(filter.Gt(population, model.Int(1))),
		New(cities).AddingOrderBy(NewOrderBy(population, Descending)),
	}

	for _, q := range queries {
		orderBys := q.OrderBys()
		require.NotEmpty(t, orderBys)

		hasKey := false
		for _, orderBy := range orderBys {
			if orderBy.Field().IsKeyFieldPath() {
				hasKey = true
			}
		}
		assert.True(t, hasKey, "ordering %v lacks a key entry", orderByStrings(orderBys))

		// Repeated reads agree.
		assert.Equal(t, orderByStrings(orderBys), orderByStrings(q.OrderBys()))
	}
}

func TestBuilderInvariants(t *testing.T) {
	cities := model.NewResourcePath("cities")
	population := model.NewFieldPath("population")
	name := model.NewFieldPath("name")

	t.Run("second inequality field is rejected", func(t *testing.T) {
		q := New(cities).AddingFilter(filter.Gt(population, model.Int(1)))
		assert.Panics(t, func() {
			q.AddingFilter(filter.Lt(name, model.String("Z")))
		})
	})

	t.Run("same inequality field is allowed", func(t *testing.T) {
		q := New(cities).AddingFilter(filter.Gt(population, model.Int(1)))
		assert.NotPanics(t, func() {
			q.AddingFilter(filter.Lt(population, model.Int(100)))
		})
	})

	t.Run("equality on another field is allowed", func(t *testing.T) {
		q := New(cities).AddingFilter(filter.Gt(population, model.Int(1)))
		assert.NotPanics(t, func() {
			q.AddingFilter(filter.Eq(name, model.String("LA")))
		})
	})

	t.Run("document queries accept no filters", func(t *testing.T) {
		q := New(model.NewResourcePath("cities", "SF"))
		assert.Panics(t, func() {
			q.AddingFilter(filter.Eq(name, model.String("SF")))
		})
	})

	t.Run("document queries accept no ordering", func(t *testing.T) {
		q := New(model.NewResourcePath("cities", "SF"))
		assert.Panics(t, func() {
			q.AddingOrderBy(NewOrderBy(name, Ascending))
		})
	})

	t.Run("first order by must match the inequality field", func(t *testing.T) {
		q := New(cities).AddingFilter(filter.Gt(population, model.Int(1)))
		assert.Panics(t, func() {
			q.AddingOrderBy(NewOrderBy(name, Ascending))
		})
	})

	t.Run("later order bys are unconstrained", func(t *testing.T) {
		q := New(cities).
			AddingFilter(filter.Gt(population, model.Int(1))).
			AddingOrderBy(NewOrderBy(population, Ascending))
		assert.NotPanics(t, func() {
			q.AddingOrderBy(NewOrderBy(name, Descending))
		})
	})

	t.Run("inequality filter after matching order by is allowed", func(t *testing.T) {
		q := New(cities).AddingOrderBy(NewOrderBy(population, Ascending))
		assert.NotPanics(t, func() {
			q.AddingFilter(filter.Gt(population, model.Int(1)))
		})
	})

	t.Run("nil filter is rejected", func(t *testing.T) {
		assert.Panics(t, func() {
			New(cities).AddingFilter(nil)
		})
	})
}

func TestMatchesScope(t *testing.T) {
	sf := docAt("cities/SF", nil)
	la := docAt("cities/LA", nil)
	soma := docAt("cities/SF/districts/soma", nil)
	westLA := docAt("regions/west/cities/LA", nil)
	west := docAt("regions/west", nil)

	t.Run("shallow collection", func(t *testing.T) {
		q := New(model.NewResourcePath("cities"))
		assert.True(t, q.Matches(sf))
		assert.True(t, q.Matches(la))
		assert.False(t, q.Matches(soma), "grandchildren are out of scope")
		assert.False(t, q.Matches(west))
	})

	t.Run("document query", func(t *testing.T) {
		q := New(model.NewResourcePath("cities", "SF"))
		assert.True(t, q.IsDocumentQuery())
		assert.True(t, q.Matches(sf))
		assert.False(t, q.Matches(la), "siblings are out of scope")
		assert.False(t, q.Matches(soma))
	})

	t.Run("collection group at root", func(t *testing.T) {
		q := NewCollectionGroup(model.NewResourcePath(), "cities")
		assert.True(t, q.Matches(sf))
		assert.True(t, q.Matches(westLA), "nested collections with the group id match")
		assert.False(t, q.Matches(west), "other collection ids do not match")
		assert.False(t, q.Matches(soma))
	})

	t.Run("collection group under a prefix", func(t *testing.T) {
		q := NewCollectionGroup(model.NewResourcePath("regions", "west"), "cities")
		assert.True(t, q.Matches(westLA))
		assert.False(t, q.Matches(sf), "documents outside the prefix do not match")
	})
}

func TestMatchesOrderByFieldPresence(t *testing.T) {
	name := model.NewFieldPath("name")
	q := New(model.NewResourcePath("cities")).AddingOrderBy(NewOrderBy(name, Descending))

	withName := docAt("cities/SF", map[string]model.Value{"name": model.String("SF")})
	withoutName := docAt("cities/XX", nil)

	assert.True(t, q.Matches(withName))
	assert.False(t, q.Matches(withoutName), "explicitly ordered fields must be present")

	// The key field is always present.
	byKey := New(model.NewResourcePath("cities")).AddingOrderBy(NewOrderBy(model.KeyFieldPath(), Ascending))
	assert.True(t, byKey.Matches(withoutName))
}

func TestMatchesFilters(t *testing.T) {
	population := model.NewFieldPath("population")
	q := New(model.NewResourcePath("cities")).
		AddingFilter(filter.Gt(population, model.Int(1_000_000)))

	assert.Equal(t,
		[]string{"population asc", "__name__ asc"},
		orderByStrings(q.OrderBys()),
	)

	small := docAt("cities/SF", map[string]model.Value{"population": model.Int(900_000)})
	large := docAt("cities/LA", map[string]model.Value{"population": model.Int(4_000_000)})
	missing := docAt("cities/XX", nil)

	assert.False(t, q.Matches(small))
	assert.True(t, q.Matches(large))
	assert.False(t, q.Matches(missing))
}

func TestMatchesBounds(t *testing.T) {
	population := model.NewFieldPath("population")
	base := New(model.NewResourcePath("cities")).
		AddingOrderBy(NewOrderBy(population, Ascending))

	small := docAt("cities/SF", map[string]model.Value{"population": model.Int(900_000)})
	exact := docAt("cities/LA", map[string]model.Value{"population": model.Int(1_000_000)})
	large := docAt("cities/NY", map[string]model.Value{"population": model.Int(8_000_000)})

	t.Run("inclusive start", func(t *testing.T) {
		q := base.StartingAt(NewBound([]model.Value{model.Int(1_000_000)}, true))
		assert.False(t, q.Matches(small))
		assert.True(t, q.Matches(exact))
		assert.True(t, q.Matches(large))
	})

	t.Run("exclusive start", func(t *testing.T) {
		q := base.StartingAt(NewBound([]model.Value{model.Int(1_000_000)}, false))
		assert.False(t, q.Matches(exact))
		assert.True(t, q.Matches(large))
	})

	t.Run("exclusive end", func(t *testing.T) {
		q := base.EndingAt(NewBound([]model.Value{model.Int(1_000_000)}, true))
		assert.True(t, q.Matches(small))
		assert.False(t, q.Matches(exact), "a before end bound excludes ties")
		assert.False(t, q.Matches(large))
	})

	t.Run("inclusive end", func(t *testing.T) {
		q := base.EndingAt(NewBound([]model.Value{model.Int(1_000_000)}, false))
		assert.True(t, q.Matches(small))
		assert.True(t, q.Matches(exact), "an after end bound includes ties")
		assert.False(t, q.Matches(large))
	})

	t.Run("start and end together", func(t *testing.T) {
		q := base.
			StartingAt(NewBound([]model.Value{model.Int(1_000_000)}, true)).
			EndingAt(NewBound([]model.Value{model.Int(5_000_000)}, false))
		assert.False(t, q.Matches(small))
		assert.True(t, q.Matches(exact))
		assert.False(t, q.Matches(large))
	})
}

func TestBuildersDoNotMutateReceiver(t *testing.T) {
	cities := model.NewResourcePath("cities")
	population := model.NewFieldPath("population")

	base := New(cities)
	_ = base.AddingFilter(filter.Gt(population, model.Int(1)))
	_ = base.AddingOrderBy(NewOrderBy(population, Descending))
	_ = base.WithLimit(10)
	_ = base.StartingAt(NewBound([]model.Value{model.Int(1)}, true))
	_ = base.AsCollectionQueryAtPath(model.NewResourcePath("regions"))

	assert.Empty(t, base.Filters())
	assert.Empty(t, base.ExplicitOrderBys())
	assert.False(t, base.HasLimit())
	_, ok := base.StartAt()
	assert.False(t, ok)
	assert.Equal(t, "cities", base.Path().String())
}

func TestWithLimit(t *testing.T) {
	q := New(model.NewResourcePath("cities"))

	limited := q.WithLimit(10)
	assert.True(t, limited.HasLimit())
	assert.Equal(t, int64(10), limited.Limit())

	cleared := limited.WithLimit(-1)
	assert.False(t, cleared.HasLimit())
	assert.Equal(t, NoLimit, cleared.Limit())

	zero := q.WithLimit(0)
	assert.True(t, zero.HasLimit())
	assert.Equal(t, int64(0), zero.Limit())
}

func TestAsCollectionQueryAtPath(t *testing.T) {
	population := model.NewFieldPath("population")

	group := NewCollectionGroup(model.NewResourcePath(), "cities").
		AddingFilter(filter.Gt(population, model.Int(1))).
		WithLimit(5)
	require.True(t, group.IsCollectionGroupQuery())

	pinned := group.AsCollectionQueryAtPath(model.NewResourcePath("regions", "west", "cities"))

	assert.False(t, pinned.IsCollectionGroupQuery())
	assert.Equal(t, "regions/west/cities", pinned.Path().String())
	assert.Len(t, pinned.Filters(), 1)
	assert.Equal(t, int64(5), pinned.Limit())

	inLA := docAt("regions/west/cities/LA", map[string]model.Value{"population": model.Int(2)})
	inSF := docAt("cities/SF", map[string]model.Value{"population": model.Int(2)})
	assert.True(t, pinned.Matches(inLA))
	assert.False(t, pinned.Matches(inSF))
}

func TestQueryEqual(t *testing.T) {
	cities := model.NewResourcePath("cities")
	population := model.NewFieldPath("population")

	t.Run("same construction", func(t *testing.T) {
		a := New(cities).AddingFilter(filter.Gt(population, model.Int(1))).WithLimit(10)
		b := New(cities).AddingFilter(filter.Gt(population, model.Int(1))).WithLimit(10)
		assert.True(t, a.Equal(b))
	})

	t.Run("derived ordering equivalence", func(t *testing.T) {
		// Spelling out the ordering an inequality implies produces an
		// equal query.
		implicit := New(cities).AddingFilter(filter.Gt(population, model.Int(1)))
		explicit := New(cities).
			AddingFilter(filter.Gt(population, model.Int(1))).
			AddingOrderBy(NewOrderBy(population, Ascending))
		assert.True(t, implicit.Equal(explicit))
	})

	t.Run("differences are detected", func(t *testing.T) {
		base := New(cities).AddingFilter(filter.Gt(population, model.Int(1)))

		assert.False(t, base.Equal(New(cities)))
		assert.False(t, base.Equal(base.WithLimit(10)))
		assert.False(t, base.Equal(base.StartingAt(NewBound([]model.Value{model.Int(1)}, true))))
		assert.False(t, base.Equal(New(model.NewResourcePath("regions")).AddingFilter(filter.Gt(population, model.Int(1)))))
		assert.False(t, New(cities).Equal(NewCollectionGroup(model.NewResourcePath("cities"), "cities")))
	})

	t.Run("bound inclusivity matters", func(t *testing.T) {
		inclusive := New(cities).StartingAt(NewBound([]model.Value{model.Int(1)}, true))
		exclusive := New(cities).StartingAt(NewBound([]model.Value{model.Int(1)}, false))
		assert.False(t, inclusive.Equal(exclusive))
		assert.True(t, inclusive.Equal(New(cities).StartingAt(NewBound([]model.Value{model.Int(1)}, true))))
	})
}

func TestCanonicalID(t *testing.T) {
	cities := model.NewResourcePath("cities")
	population := model.NewFieldPath("population")

	q := New(cities).
		AddingFilter(filter.Gt(population, model.Int(1_000_000))).
		WithLimit(10).
		StartingAt(NewBound([]model.Value{model.Int(2_000_000)}, true))

	assert.Equal(t,
		"cities|f:population>i:1000000|ob:population asc,__name__ asc|l:10|lb:b:[i:2000000]",
		q.CanonicalID(),
	)

	same := New(cities).
		AddingFilter(filter.Gt(population, model.Int(1_000_000))).
		WithLimit(10).
		StartingAt(NewBound([]model.Value{model.Int(2_000_000)}, true))
	assert.Equal(t, q.CanonicalID(), same.CanonicalID())

	assert.NotEqual(t, q.CanonicalID(), q.WithLimit(20).CanonicalID())
	assert.NotEqual(t, New(cities).CanonicalID(), NewCollectionGroup(cities, "cities").CanonicalID())
}

func TestComparator(t *testing.T) {
	population := model.NewFieldPath("population")

	sf := docAt("cities/SF", map[string]model.Value{"population": model.Int(860_000)})
	la := docAt("cities/LA", map[string]model.Value{"population": model.Int(4_000_000)})
	nyc := docAt("cities/NYC", map[string]model.Value{"population": model.Int(860_000)})

	t.Run("field then key", func(t *testing.T) {
		cmp := New(model.NewResourcePath("cities")).
			AddingFilter(filter.Gt(population, model.Int(0))).
			Comparator()

		assert.Negative(t, cmp(sf, la))
		assert.Positive(t, cmp(la, sf))
		// Equal populations fall back to the key: NYC before SF.
		assert.Negative(t, cmp(nyc, sf))
		assert.Zero(t, cmp(sf, sf))
	})

	t.Run("descending", func(t *testing.T) {
		cmp := New(model.NewResourcePath("cities")).
			AddingOrderBy(NewOrderBy(population, Descending)).
			Comparator()

		assert.Negative(t, cmp(la, sf))
		// Tie broken by descending key: SF before NYC.
		assert.Negative(t, cmp(sf, nyc))
	})

	t.Run("key only", func(t *testing.T) {
		cmp := New(model.NewResourcePath("cities")).Comparator()
		assert.Negative(t, cmp(la, sf))
	})
}

func TestQueryAccessorsCopy(t *testing.T) {
	population := model.NewFieldPath("population")
	q := New(model.NewResourcePath("cities")).
		AddingFilter(filter.Gt(population, model.Int(1))).
		AddingOrderBy(NewOrderBy(population, Ascending))

	filters := q.Filters()
	filters[0] = filter.Eq(population, model.Int(2))
	assert.Equal(t, "population>i:1", q.Filters()[0].CanonicalString())

	orderBys := q.OrderBys()
	orderBys[0] = NewOrderBy(model.KeyFieldPath(), Descending)
	assert.Equal(t, "population asc", q.OrderBys()[0].CanonicalString())
}
