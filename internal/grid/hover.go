package grid

import (
	"time"

	"setgrid/internal/logger"
)

// hover tracks the merge candidate under the dragged tile. A candidate becomes the grouped
// key only after it has been hovered continuously for the dwell duration.
type hover struct {
	key     string
	due     time.Time
	pending bool
	// grouped is the committed merge target checked at release.
	grouped string
}

func (h hover) active() bool { return h.key != "" }

// updateHover re-evaluates the merge candidate for a tile at pos.
func (g *Grid) updateHover(pos Point, now time.Time) {
	target, ok := g.mergeCandidate(pos)
	if !ok {
		if g.hov.active() {
			logger.Debug("grid: hover cleared", "key", g.hov.key)
		}
		g.hov = hover{}
		return
	}
	if target == g.hov.key {
		return
	}
	g.hov = hover{key: target, due: now.Add(g.opts.DwellDuration), pending: true}
	logger.Debug("grid: hover start", "key", g.sess.key, "target", target)
	g.fireDue(now)
}

// fireDue commits a pending hover whose dwell elapsed.
func (g *Grid) fireDue(now time.Time) {
	if !g.hov.pending || now.Before(g.hov.due) {
		return
	}
	g.hov.pending = false
	g.hov.grouped = g.hov.key
	logger.Debug("grid: hover committed", "key", g.sess.key, "target", g.hov.grouped)
}

func (g *Grid) mergeCandidate(pos Point) (string, bool) {
	active, ok := g.store.Item(g.sess.key)
	if !ok {
		return "", false
	}
	sorted := g.store.Sorted()
	size := g.geo.ItemSize(active)
	o := g.geo.OrderForPosition(pos, size, sorted)
	if o < 0 || o >= len(sorted) {
		return "", false
	}
	target := sorted[o]
	if !CanMerge(sorted, active.Key, target.Key) {
		return "", false
	}
	tpos := g.store.SlotPosition(target.Key)
	if !IsOverlappingCenter(pos, size, tpos, g.geo.ItemSize(target), g.opts.OverlapFraction) {
		return "", false
	}
	return target.Key, true
}
