package ecs

type idLister interface {
	store
	ids() []entityID
}

// smallest returns the ids of the smallest set; intersections iterate it.
func smallest(sets ...idLister) []entityID {
	var best idLister
	for _, s := range sets {
		if best == nil || s.len() < best.len() {
			best = s
		}
	}
	if best == nil {
		return nil
	}
	return best.ids()
}
