package grid

import (
	"maps"
	"slices"
)

// GlyphSet maps glyph names to the segment IDs that draw them.
// Glyph definitions are authored content and may reference segments
// that no longer exist in the layout; consumers skip unknown IDs.
type GlyphSet map[string][]string

// Names returns all glyph names in sorted order.
func (gs GlyphSet) Names() []string {
	return slices.Sorted(maps.Keys(gs))
}

// Active returns the segment-ID set for a named glyph and true, or an
// empty set and false when the glyph is not defined.
func (gs GlyphSet) Active(name string) (map[string]struct{}, bool) {
	ids, ok := gs[name]
	if !ok {
		return map[string]struct{}{}, false
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, true
}

// Unknown returns the IDs referenced by the named glyph that are absent
// from the grid, sorted. Used by validation tooling; planners simply
// skip these at use sites.
func (gs GlyphSet) Unknown(name string, g *Grid) []string {
	var missing []string
	for _, id := range gs[name] {
		if _, ok := g.Segment(id); !ok {
			missing = append(missing, id)
		}
	}
	slices.Sort(missing)
	return slices.Compact(missing)
}
