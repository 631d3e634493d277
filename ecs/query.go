package ecs

import "github.com/milk9111/platformer/ecs/component"

// Count reports how many live entities have kind.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	n := 0
	ForEach(w, kind, func(Entity, *T) { n++ })
	return n
}

// Single returns the component of the only entity having kind. It reports
// false when there is none or more than one.
func Single[T any](w *World, kind component.ComponentKind[T]) (Entity, *T, bool) {
	matches := w.Query(kind)
	if len(matches) != 1 {
		return 0, nil, false
	}
	v, ok := Get(w, matches[0], kind)
	return matches[0], v, ok
}
