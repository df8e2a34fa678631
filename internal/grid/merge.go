package grid

import "setgrid/internal/model"

const (
	DefaultGroupName  = "Superset"
	DefaultGroupColor = "#7c3aed"
)

type MergeResult struct {
	Items   []model.GridItem
	Group   model.GridItem
	Dragged model.GridItem
	Target  model.GridItem
}

// CanMerge reports whether dragged may be dropped onto target. Groups never merge into
// groups, fixed tiles are never targets, and a child cannot be dropped on its own group.
func CanMerge(items []model.GridItem, draggedKey, targetKey string) bool {
	if draggedKey == "" || targetKey == "" || draggedKey == targetKey {
		return false
	}
	ti := indexOf(items, targetKey)
	if ti < 0 {
		return false
	}
	target := items[ti]
	if target.Pinned() || target.DisabledDrag {
		return false
	}
	dragged, parent, ok := find(items, draggedKey)
	if !ok {
		return false
	}
	if dragged.IsGroup && target.IsGroup {
		return false
	}
	return parent != targetKey
}

// Merge moves the dragged tile (root level or inside any group) onto the root-level target.
//
//   - target is a group: dragged is appended to its children.
//   - dragged is a group: the group absorbs target, children [target, dragged...], and takes
//     the target's slot.
//   - otherwise a new group with children [target, dragged] replaces target.
//
// A donor group left with a single child is dissolved into that child.
func Merge(items []model.GridItem, draggedKey, targetKey, newKey string) (MergeResult, bool) {
	if !CanMerge(items, draggedKey, targetKey) {
		return MergeResult{}, false
	}
	out := model.CloneItems(items)
	target := out[indexOf(out, targetKey)]

	dragged, out, ok := extract(out, draggedKey)
	if !ok {
		return MergeResult{}, false
	}
	ti := indexOf(out, targetKey)
	if ti < 0 {
		return MergeResult{}, false
	}

	var group model.GridItem
	switch {
	case target.IsGroup:
		out[ti].Children = append(out[ti].Children, dragged)
		group = out[ti]
	case dragged.IsGroup:
		group = dragged
		group.Children = append([]model.GridItem{target}, dragged.Children...)
		out[ti] = group
	default:
		group = model.GridItem{
			Key:      newKey,
			IsGroup:  true,
			Name:     DefaultGroupName,
			Color:    DefaultGroupColor,
			Children: []model.GridItem{target, dragged},
		}
		out[ti] = group
	}

	return MergeResult{Items: out, Group: group, Dragged: dragged, Target: target}, true
}

// Ungroup takes childKey out of groupKey and reinserts it at the root right after the group.
// The group dissolves when one child remains.
func Ungroup(items []model.GridItem, groupKey, childKey string) ([]model.GridItem, bool) {
	gi := indexOf(items, groupKey)
	if gi < 0 || !items[gi].IsGroup {
		return nil, false
	}
	ci := indexOf(items[gi].Children, childKey)
	if ci < 0 {
		return nil, false
	}
	out := model.CloneItems(items)
	g := out[gi]
	child := g.Children[ci]
	g.Children = append(g.Children[:ci], g.Children[ci+1:]...)

	var head []model.GridItem
	switch len(g.Children) {
	case 0:
		head = nil
	case 1:
		head = []model.GridItem{g.Children[0]}
	default:
		head = []model.GridItem{g}
	}

	res := make([]model.GridItem, 0, len(out)+1)
	res = append(res, out[:gi]...)
	res = append(res, head...)
	res = append(res, child)
	res = append(res, out[gi+1:]...)
	return res, true
}

// Remove deletes key from the root or from inside a group, dissolving an emptied group.
func Remove(items []model.GridItem, key string) ([]model.GridItem, bool) {
	_, out, ok := extract(model.CloneItems(items), key)
	return out, ok
}

// ReplaceChildren sets a group's children (e.g. after reordering inside the group panel).
func ReplaceChildren(items []model.GridItem, groupKey string, children []model.GridItem) ([]model.GridItem, bool) {
	gi := indexOf(items, groupKey)
	if gi < 0 || !items[gi].IsGroup {
		return nil, false
	}
	out := model.CloneItems(items)
	out[gi].Children = model.CloneItems(children)
	return Normalize(out), true
}

// Normalize collapses groups with fewer than two children.
func Normalize(items []model.GridItem) []model.GridItem {
	out := make([]model.GridItem, 0, len(items))
	for _, it := range items {
		if !it.IsGroup {
			out = append(out, it)
			continue
		}
		switch len(it.Children) {
		case 0:
		case 1:
			out = append(out, it.Children[0])
		default:
			out = append(out, it)
		}
	}
	return out
}

func indexOf(items []model.GridItem, key string) int {
	for i := range items {
		if items[i].Key == key {
			return i
		}
	}
	return -1
}

// find looks for key at the root and one level down. parent is the group key for nested hits.
func find(items []model.GridItem, key string) (it model.GridItem, parent string, ok bool) {
	for _, x := range items {
		if x.Key == key {
			return x, "", true
		}
	}
	for _, g := range items {
		if !g.IsGroup {
			continue
		}
		for _, c := range g.Children {
			if c.Key == key {
				return c, g.Key, true
			}
		}
	}
	return model.GridItem{}, "", false
}

// extract removes key from items (which it may modify) and applies the dissolution rule to
// the donor group.
func extract(items []model.GridItem, key string) (model.GridItem, []model.GridItem, bool) {
	if i := indexOf(items, key); i >= 0 {
		it := items[i]
		return it, append(items[:i], items[i+1:]...), true
	}
	for gi := range items {
		if !items[gi].IsGroup {
			continue
		}
		ci := indexOf(items[gi].Children, key)
		if ci < 0 {
			continue
		}
		children := items[gi].Children
		it := children[ci]
		items[gi].Children = append(children[:ci], children[ci+1:]...)
		switch len(items[gi].Children) {
		case 0:
			items = append(items[:gi], items[gi+1:]...)
		case 1:
			items[gi] = items[gi].Children[0]
		}
		return it, items, true
	}
	return model.GridItem{}, items, false
}
