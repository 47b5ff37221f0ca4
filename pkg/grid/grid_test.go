package grid

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_Distance(t *testing.T) {
	tests := []struct {
		name string
		a    Location
		b    Location
		want int
	}{
		{
			name: "same_point",
			a:    Location{X: 3, Y: 4},
			b:    Location{X: 3, Y: 4},
			want: 0,
		},
		{
			name: "axis_aligned",
			a:    Location{X: 0, Y: 0},
			b:    Location{X: 5, Y: 0},
			want: 5,
		},
		{
			name: "diagonal",
			a:    Location{X: 1, Y: 1},
			b:    Location{X: 4, Y: 5},
			want: 7,
		},
		{
			name: "negative_coordinates",
			a:    Location{X: -2, Y: -3},
			b:    Location{X: 2, Y: 3},
			want: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Distance(tt.b))
			assert.Equal(t, tt.want, tt.b.Distance(tt.a))
		})
	}
}

func TestLocation_Less(t *testing.T) {
	locs := []Location{
		{X: 2, Y: 1},
		{X: 0, Y: 2},
		{X: 1, Y: 0},
		{X: 0, Y: 0},
		{X: 1, Y: 1},
	}

	sort.Slice(locs, func(i, j int) bool { return locs[i].Less(locs[j]) })

	want := []Location{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: 2, Y: 1},
		{X: 0, Y: 2},
	}
	assert.Equal(t, want, locs)
}

func TestGrid_GetSet(t *testing.T) {
	g := New[int](3, 2)

	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 2, g.Height())
	assert.Equal(t, 0, g.Get(Location{X: 2, Y: 1}))

	g.Set(Location{X: 2, Y: 1}, 42)
	assert.Equal(t, 42, g.Get(Location{X: 2, Y: 1}))

	assert.True(t, g.InBounds(Location{X: 0, Y: 0}))
	assert.False(t, g.InBounds(Location{X: 3, Y: 0}))
	assert.False(t, g.InBounds(Location{X: 0, Y: -1}))

	assert.Panics(t, func() { g.Get(Location{X: 3, Y: 0}) })
	assert.Panics(t, func() { New[int](0, 5) })
}

func TestGrid_All_RowOrder(t *testing.T) {
	g := New[string](2, 2)
	g.Set(Location{X: 0, Y: 0}, "a")
	g.Set(Location{X: 1, Y: 0}, "b")
	g.Set(Location{X: 0, Y: 1}, "c")
	g.Set(Location{X: 1, Y: 1}, "d")

	var locs []Location
	var vals []string
	for l, v := range g.All() {
		locs = append(locs, l)
		vals = append(vals, v)
	}

	assert.Equal(t, []Location{
		{X: 0, Y: 0}, {X: 1, Y: 0},
		{X: 0, Y: 1}, {X: 1, Y: 1},
	}, locs)
	assert.Equal(t, []string{"a", "b", "c", "d"}, vals)
}

func TestGrid_Neighbors(t *testing.T) {
	g := New[int](3, 3)
	for l := range g.All() {
		g.Set(l, l.Y*3+l.X)
	}

	tests := []struct {
		name     string
		loc      Location
		diagonal bool
		want     []Location
	}{
		{
			name: "center_cardinal",
			loc:  Location{X: 1, Y: 1},
			want: []Location{
				{X: 2, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 2}, {X: 1, Y: 0},
			},
		},
		{
			name: "corner_cardinal",
			loc:  Location{X: 0, Y: 0},
			want: []Location{
				{X: 1, Y: 0}, {X: 0, Y: 1},
			},
		},
		{
			name:     "center_all",
			loc:      Location{X: 1, Y: 1},
			diagonal: true,
			want: []Location{
				{X: 2, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 2}, {X: 1, Y: 0},
				{X: 2, Y: 2}, {X: 2, Y: 0}, {X: 0, Y: 2}, {X: 0, Y: 0},
			},
		},
		{
			name:     "corner_all",
			loc:      Location{X: 2, Y: 2},
			diagonal: true,
			want: []Location{
				{X: 1, Y: 2}, {X: 2, Y: 1}, {X: 1, Y: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cells []Cell[int]
			if tt.diagonal {
				cells = g.NeighborsAll(tt.loc)
			} else {
				cells = g.Neighbors(tt.loc)
			}

			require.Len(t, cells, len(tt.want))
			for i, c := range cells {
				assert.Equal(t, tt.want[i], c.Loc)
				assert.Equal(t, c.Loc.Y*3+c.Loc.X, c.Value)
			}
		})
	}
}

func TestRender(t *testing.T) {
	g := New[rune](2, 2)
	g.Set(Location{X: 0, Y: 0}, '#')
	g.Set(Location{X: 1, Y: 0}, '.')
	g.Set(Location{X: 0, Y: 1}, '.')
	g.Set(Location{X: 1, Y: 1}, '#')

	got := Render(g, func(r rune) string { return string(r) })
	assert.Equal(t, "#.\n.#\n", got)
}
