package game

// HasChanged reports whether the current free-game set differs from the
// previously persisted one. A length mismatch is always a change. With equal
// lengths the normalized title sets are compared: reordering the same games
// is not a change. Two distinct promotions sharing a normalized title are
// treated as identical, a deliberate simplification.
func HasChanged(current, previous []FreeGame) bool {
	if len(current) != len(previous) {
		return true
	}

	currentTitles := titleSet(current)
	previousTitles := titleSet(previous)

	if len(currentTitles) != len(previousTitles) {
		return true
	}
	for title := range currentTitles {
		if !previousTitles[title] {
			return true
		}
	}
	return false
}

func titleSet(games []FreeGame) map[string]bool {
	set := make(map[string]bool, len(games))
	for _, g := range games {
		set[NormalizeTitle(g.Title)] = true
	}
	return set
}
