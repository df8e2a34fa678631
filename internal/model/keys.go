package model

import "github.com/google/uuid"

// NewGroupKey mints the key of a synthesized superset.
func NewGroupKey() string { return "group-" + uuid.NewString() }

// NewItemKey mints the key of an exercise tile added from the catalog.
func NewItemKey() string { return "ex-" + uuid.NewString() }

const AddTileKey = "add"

// AddTile is the fixed trailing tile that opens the exercise catalog.
func AddTile() GridItem {
	return GridItem{
		Key:              AddTileKey,
		Name:             "+ add exercise",
		DisabledDrag:     true,
		DisabledReSorted: true,
	}
}

// WithAddTile returns items with exactly one add tile, in the last slot.
func WithAddTile(items []GridItem) []GridItem {
	out := WithoutAddTile(items)
	return append(out, AddTile())
}

// WithoutAddTile strips the add tile wherever it is.
func WithoutAddTile(items []GridItem) []GridItem {
	out := make([]GridItem, 0, len(items)+1)
	for _, it := range items {
		if it.Key == AddTileKey {
			continue
		}
		out = append(out, it)
	}
	return out
}
