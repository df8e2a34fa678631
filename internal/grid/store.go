package grid

import (
	"sort"
	"time"

	"setgrid/internal/logger"
	"setgrid/internal/model"
)

// Store mirrors the externally supplied item list into key-indexed maps: key -> item,
// key -> slot order, key -> animated handle. One Store belongs to one Grid.
type Store struct {
	geo *Geometry

	items   []model.GridItem
	byKey   map[string]model.GridItem
	order   map[string]int
	handles map[string]*Handle
	heights map[string]float64
}

func NewStore(geo *Geometry) *Store {
	return &Store{
		geo:     geo,
		byKey:   map[string]model.GridItem{},
		order:   map[string]int{},
		handles: map[string]*Handle{},
		heights: map[string]float64{},
	}
}

func (s *Store) Len() int { return len(s.items) }

func (s *Store) Item(key string) (model.GridItem, bool) {
	it, ok := s.byKey[key]
	return it, ok
}

func (s *Store) Order(key string) (int, bool) {
	o, ok := s.order[key]
	return o, ok
}

// GetKeyByOrder scans the order map; grids are small enough that an index is not worth keeping.
func (s *Store) GetKeyByOrder(order int) (string, bool) {
	for k, o := range s.order {
		if o == order {
			return k, true
		}
	}
	return "", false
}

// Keys returns keys in slot order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.order))
	for k := range s.order {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return s.order[keys[i]] < s.order[keys[j]] })
	return keys
}

// Sorted returns the items in slot order.
func (s *Store) Sorted() []model.GridItem {
	keys := s.Keys()
	out := make([]model.GridItem, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.byKey[k])
	}
	return out
}

func (s *Store) GetPositionByIndex(index int) Point {
	return s.geo.PositionForIndex(index, s.Sorted())
}

// SlotPosition is where key rests given the current order map.
func (s *Store) SlotPosition(key string) Point {
	o, ok := s.order[key]
	if !ok {
		return Point{}
	}
	return s.GetPositionByIndex(o)
}

func (s *Store) HeightForItem(it model.GridItem) float64 { return s.geo.HeightFor(it) }

func (s *Store) HeightByKey(key string) float64 {
	if h, ok := s.heights[key]; ok {
		return h
	}
	it, ok := s.byKey[key]
	if !ok {
		return 0
	}
	return s.geo.HeightFor(it)
}

// Handle returns key's animated position, creating it at the key's slot on first use.
func (s *Store) Handle(key string) *Handle {
	if h, ok := s.handles[key]; ok {
		return h
	}
	if _, ok := s.order[key]; !ok {
		return nil
	}
	h := &Handle{Offset: s.SlotPosition(key)}
	s.handles[key] = h
	return h
}

// Sync reconciles the store with an externally supplied list. Stale keys are pruned, new
// keys get a handle at the slot implied by their index, and existing idle handles follow
// their new slots: animated when any tile's height changed, snapped otherwise. The handle
// of activeKey is never touched. It reports whether activeKey is still present.
func (s *Store) Sync(items []model.GridItem, activeKey string, now time.Time, dur time.Duration) bool {
	next := make([]model.GridItem, 0, len(items))
	byKey := make(map[string]model.GridItem, len(items))
	order := make(map[string]int, len(items))
	for _, it := range items {
		if it.Key == "" {
			logger.Warn("grid: dropping item without key", "name", it.Title())
			continue
		}
		if _, dup := byKey[it.Key]; dup {
			logger.Warn("grid: dropping duplicate key", "key", it.Key)
			continue
		}
		order[it.Key] = len(next)
		byKey[it.Key] = it
		next = append(next, it)
	}

	for k := range s.handles {
		if _, ok := byKey[k]; !ok {
			delete(s.handles, k)
			delete(s.heights, k)
		}
	}

	s.items = next
	s.byKey = byKey
	s.order = order

	heightChanged := false
	for _, it := range next {
		h := s.geo.HeightFor(it)
		if prev, ok := s.heights[it.Key]; ok && prev != h {
			heightChanged = true
		}
		s.heights[it.Key] = h
	}

	sorted := next
	for i, it := range sorted {
		if it.Key == activeKey {
			continue
		}
		target := s.geo.PositionForIndex(i, sorted)
		h, ok := s.handles[it.Key]
		if !ok {
			s.handles[it.Key] = &Handle{Offset: target}
			continue
		}
		if h.Target() == target {
			continue
		}
		if heightChanged {
			h.AnimateTo(target, dur, now, nil)
		} else {
			h.Set(target)
		}
	}

	_, present := byKey[activeKey]
	return present
}

// Relayout moves every handle except skip to its slot position.
func (s *Store) Relayout(skip string, animate bool, now time.Time, dur time.Duration) {
	sorted := s.Sorted()
	for i, it := range sorted {
		if it.Key == skip {
			continue
		}
		h := s.Handle(it.Key)
		target := s.geo.PositionForIndex(i, sorted)
		if h.Target() == target {
			continue
		}
		if animate {
			h.AnimateTo(target, dur, now, nil)
		} else {
			h.Set(target)
		}
	}
}

// Revert drops uncommitted moves: every key goes back to its index in the last synced list.
// It returns the keys whose order changed.
func (s *Store) Revert() []string {
	var changed []string
	for i, it := range s.items {
		if s.order[it.Key] != i {
			s.order[it.Key] = i
			changed = append(changed, it.Key)
		}
	}
	return changed
}

// Move gives key the slot `to` with array-move semantics over the non-pinned slots: tiles
// between the old and new slot shift one step toward the vacated slot, pinned tiles stay put.
// It returns the keys whose order changed (including key itself).
func (s *Store) Move(key string, to int) ([]string, bool) {
	from, ok := s.order[key]
	if !ok || to < 0 || to >= len(s.order) || from == to {
		return nil, false
	}
	keys := s.Keys()
	if s.byKey[key].Pinned() || s.byKey[keys[to]].Pinned() {
		return nil, false
	}

	free := make([]int, 0, len(keys))
	seq := make([]string, 0, len(keys))
	fi, ti := -1, -1
	for i, k := range keys {
		if s.byKey[k].Pinned() {
			continue
		}
		if i == from {
			fi = len(free)
		}
		if i == to {
			ti = len(free)
		}
		free = append(free, i)
		seq = append(seq, k)
	}
	if fi < 0 || ti < 0 {
		return nil, false
	}

	moved := seq[fi]
	seq = append(seq[:fi], seq[fi+1:]...)
	seq = append(seq[:ti], append([]string{moved}, seq[ti:]...)...)

	changed := make([]string, 0, len(seq))
	for j, slot := range free {
		k := seq[j]
		if s.order[k] != slot {
			s.order[k] = slot
			changed = append(changed, k)
		}
	}
	return changed, true
}

// Step advances every handle's animation and returns the completion callbacks that became due.
func (s *Store) Step(now time.Time) []func() {
	var done []func()
	for _, h := range s.handles {
		if fn := h.Step(now); fn != nil {
			done = append(done, fn)
		}
	}
	return done
}

func (s *Store) Animating() bool {
	for _, h := range s.handles {
		if h.Animating() {
			return true
		}
	}
	return false
}
