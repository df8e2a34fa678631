package model

// GridItem is one tile of a reorderable grid.
//
// Key is the identity across renders. A group (superset) is a synthetic tile whose Children
// hold the grouped exercises; groups with fewer than two children are never valid end states.
type GridItem struct {
	Key string `json:"key"`

	// DisabledDrag tiles cannot be picked up.
	DisabledDrag bool `json:"disabledDrag,omitempty"`
	// DisabledReSorted tiles keep their slot; other tiles never displace them.
	DisabledReSorted bool `json:"disabledReSorted,omitempty"`

	IsGroup  bool       `json:"isGroup,omitempty"`
	Children []GridItem `json:"children,omitempty"`

	// Payload. Opaque to the grid.
	Name     string    `json:"name,omitempty"`
	Color    string    `json:"color,omitempty"`
	Exercise *Exercise `json:"exercise,omitempty"`
}

// Pinned reports whether the tile's slot is immovable.
func (it GridItem) Pinned() bool { return it.DisabledReSorted }

// Title is the display label for a tile.
func (it GridItem) Title() string {
	if it.Name != "" {
		return it.Name
	}
	if it.Exercise != nil && it.Exercise.Name != "" {
		return it.Exercise.Name
	}
	return it.Key
}

// Clone returns a deep copy (children are copied, exercise pointers are shared).
func (it GridItem) Clone() GridItem {
	out := it
	if len(it.Children) > 0 {
		out.Children = CloneItems(it.Children)
	}
	return out
}

func CloneItems(items []GridItem) []GridItem {
	if items == nil {
		return nil
	}
	out := make([]GridItem, len(items))
	for i := range items {
		out[i] = items[i].Clone()
	}
	return out
}

// Keys returns the keys of items in order.
func Keys(items []GridItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Key)
	}
	return out
}
