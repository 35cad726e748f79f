package engine

// SpecialFor returns the special kind a pattern leaves behind.
// Three in a row and no match leave nothing.
func SpecialFor(p Pattern) SpecialKind {
	switch p {
	case PatternMatch4Horizontal:
		return SpecialStripedHorizontal
	case PatternMatch4Vertical:
		return SpecialStripedVertical
	case PatternMatch5:
		return SpecialColorBomb
	case PatternMatchL, PatternMatchT:
		return SpecialWrapped
	default:
		return SpecialNone
	}
}

// SpawnSpecial places the special tile earned by match at its epicenter.
// It does nothing for PatternNone, PatternMatch3 or an epicenter off the
// board.
func (e *Engine) SpawnSpecial(match MatchResult) {
	kind := SpecialFor(match.Pattern)
	if kind == SpecialNone {
		return
	}
	if !e.grid.InBounds(match.Epicenter) {
		return
	}
	e.grid.Set(match.Epicenter, Cell{Type: match.ItemType, Special: kind})
}
