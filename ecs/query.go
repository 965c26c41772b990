package ecs

import "github.com/milk9111/platformer/ecs/component"

// KindID is satisfied by every component.ComponentKind.
type KindID interface {
	ID() component.ComponentID
}

// Query returns the entities that have every listed component, in the
// order of the smallest store.
func (w *World) Query(kinds ...KindID) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	stores := make([]componentStore, 0, len(kinds))
	for _, k := range kinds {
		s, ok := w.stores[k.ID()]
		if !ok || s.len() == 0 {
			return nil
		}
		stores = append(stores, s)
	}

	smallest := 0
	for i, s := range stores {
		if s.len() < stores[smallest].len() {
			smallest = i
		}
	}

	var out []Entity
	for _, e := range stores[smallest].Entities() {
		match := true
		for i, s := range stores {
			if i != smallest && !s.Has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first entity holding kind.
func (w *World) First(kind KindID) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s, ok := w.stores[kind.ID()]
	if !ok || s.len() == 0 {
		return 0, false
	}
	return s.Entities()[0], true
}
