package grid

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"setgrid/internal/model"
)

var t0 = time.Date(2026, 1, 5, 7, 0, 0, 0, time.UTC)

func newTestStore(items []model.GridItem) (*Store, *Geometry) {
	geo := &Geometry{Columns: 3, ItemHeight: 100, Layout: &Layout{Width: 300}}
	s := NewStore(geo)
	s.Sync(items, "", t0, 0)
	return s, geo
}

func pinnedTiles(n int, pinned ...int) []model.GridItem {
	isPinned := map[int]bool{}
	for _, p := range pinned {
		isPinned[p] = true
	}
	out := make([]model.GridItem, 0, n)
	for i := 0; i < n; i++ {
		it := model.GridItem{Key: fmt.Sprintf("k%d", i)}
		if isPinned[i] {
			it.Key = fmt.Sprintf("pin%d", i)
			it.DisabledReSorted = true
			it.DisabledDrag = true
		}
		out = append(out, it)
	}
	return out
}

func TestStore_SyncIndexesItems(t *testing.T) {
	s, _ := newTestStore(tiles("a", "b", "c", "d"))

	require.Equal(t, 4, s.Len())
	o, ok := s.Order("c")
	require.True(t, ok)
	assert.Equal(t, 2, o)

	k, ok := s.GetKeyByOrder(3)
	require.True(t, ok)
	assert.Equal(t, "d", k)

	assert.Equal(t, []string{"a", "b", "c", "d"}, s.Keys())
	assert.Equal(t, Point{X: 0, Y: 100}, s.SlotPosition("d"))
	assert.Equal(t, Point{X: 0, Y: 100}, s.Handle("d").Value())
	assert.Nil(t, s.Handle("zzz"))
}

func TestStore_SyncDropsDuplicatesAndPrunesStale(t *testing.T) {
	s, _ := newTestStore(tiles("a", "b", "c"))
	s.Handle("c")

	items := append(tiles("b", "a"), model.GridItem{Key: "b"}, model.GridItem{})
	s.Sync(items, "", t0, 0)

	assert.Equal(t, []string{"b", "a"}, s.Keys())
	assert.Nil(t, s.Handle("c"))
	assert.Equal(t, Point{X: 100}, s.Handle("a").Value())
}

func TestStore_SyncLeavesActiveHandleAlone(t *testing.T) {
	s, _ := newTestStore(tiles("a", "b", "c"))
	h := s.Handle("a")
	h.Delta = Point{X: 42, Y: 7}

	present := s.Sync(tiles("b", "a", "c"), "a", t0, 0)
	require.True(t, present)
	assert.Equal(t, Point{X: 42, Y: 7}, h.Value())
	assert.Equal(t, Point{}, s.Handle("b").Value())

	present = s.Sync(tiles("b", "c"), "a", t0, 0)
	assert.False(t, present)
}

func TestStore_SyncAnimatesWhenHeightsChange(t *testing.T) {
	heights := map[string]float64{"a": 50, "b": 50, "c": 50}
	geo := &Geometry{
		Columns:  1,
		HeightOf: func(it model.GridItem) float64 { return heights[it.Key] },
		Layout:   &Layout{Width: 100},
	}
	s := NewStore(geo)
	s.Sync(tiles("a", "b", "c"), "", t0, 0)

	heights["a"] = 80
	s.Sync(tiles("a", "b", "c"), "", t0, 100*time.Millisecond)
	assert.True(t, s.Animating())
	assert.Equal(t, Point{Y: 50}, s.Handle("b").Value())
	assert.Equal(t, Point{Y: 80}, s.Handle("b").Target())

	s.Step(t0.Add(100 * time.Millisecond))
	assert.False(t, s.Animating())
	assert.Equal(t, Point{Y: 130}, s.Handle("c").Value())
	assert.Equal(t, 80.0, s.HeightByKey("a"))
}

func TestStore_MoveArrayMove(t *testing.T) {
	s, _ := newTestStore(tiles("a", "b", "c", "d", "e"))

	changed, ok := s.Move("a", 3)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, changed)
	assert.Equal(t, []string{"b", "c", "d", "a", "e"}, s.Keys())

	_, ok = s.Move("a", 3)
	assert.False(t, ok)
	_, ok = s.Move("a", 9)
	assert.False(t, ok)
}

func TestStore_MoveKeepsPinnedSlots(t *testing.T) {
	items := pinnedTiles(10, 4, 9)

	for from := 0; from < 10; from++ {
		for to := 0; to < 10; to++ {
			s, _ := newTestStore(items)
			key, _ := s.GetKeyByOrder(from)
			_, ok := s.Move(key, to)

			wantOK := from != to && from != 4 && from != 9 && to != 4 && to != 9
			require.Equalf(t, wantOK, ok, "move %d -> %d", from, to)

			o4, _ := s.Order("pin4")
			o9, _ := s.Order("pin9")
			assert.Equal(t, 4, o4)
			assert.Equal(t, 9, o9)

			seen := map[int]bool{}
			for _, k := range s.Keys() {
				o, _ := s.Order(k)
				require.Falsef(t, seen[o], "duplicate order %d after %d -> %d", o, from, to)
				seen[o] = true
			}
			assert.Len(t, seen, 10)

			if ok {
				got, _ := s.Order(key)
				assert.Equal(t, to, got)
			}
		}
	}
}

func TestStore_MoveSkipsOverPinned(t *testing.T) {
	items := []model.GridItem{{Key: "a"}, {Key: "b"}, {Key: "p", DisabledReSorted: true}, {Key: "c"}}
	s, _ := newTestStore(items)

	_, ok := s.Move("a", 3)
	require.True(t, ok)
	assert.Equal(t, []string{"b", "c", "p", "a"}, s.Keys())
}

func TestStore_RevertRestoresSyncedOrder(t *testing.T) {
	s, _ := newTestStore(tiles("a", "b", "c", "d"))

	_, ok := s.Move("a", 2)
	require.True(t, ok)
	require.Equal(t, []string{"b", "c", "a", "d"}, s.Keys())

	changed := s.Revert()
	assert.ElementsMatch(t, []string{"a", "b", "c"}, changed)
	assert.Equal(t, []string{"a", "b", "c", "d"}, s.Keys())
	assert.Empty(t, s.Revert())
}

func TestHandle_AnimateTo(t *testing.T) {
	h := &Handle{}
	calls := 0
	h.AnimateTo(Point{X: 100}, 200*time.Millisecond, t0, func() { calls++ })
	require.True(t, h.Animating())
	assert.Equal(t, Point{X: 100}, h.Target())

	assert.Nil(t, h.Step(t0.Add(100*time.Millisecond)))
	assert.InDelta(t, 50, h.Value().X, 0.001)

	done := h.Step(t0.Add(250 * time.Millisecond))
	require.NotNil(t, done)
	done()
	assert.Equal(t, 1, calls)
	assert.Equal(t, Point{X: 100}, h.Value())
	assert.False(t, h.Animating())
}

func TestHandle_SupersededAnimationStillCompletes(t *testing.T) {
	h := &Handle{}
	var order []string
	h.AnimateTo(Point{X: 100}, time.Second, t0, func() { order = append(order, "first") })
	h.AnimateTo(Point{Y: 50}, 0, t0, func() { order = append(order, "second") })

	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, Point{Y: 50}, h.Value())
}

func TestHandle_SetFinishesAnimation(t *testing.T) {
	h := &Handle{}
	fired := false
	h.AnimateTo(Point{X: 10}, time.Second, t0, func() { fired = true })
	h.Set(Point{X: 3})

	assert.True(t, fired)
	assert.Equal(t, Point{X: 3}, h.Value())
}

func TestHandle_Flatten(t *testing.T) {
	h := &Handle{Offset: Point{X: 1, Y: 2}, Delta: Point{X: 10, Y: 20}}
	h.Flatten()
	assert.Equal(t, Point{X: 11, Y: 22}, h.Offset)
	assert.Equal(t, Point{}, h.Delta)
}
