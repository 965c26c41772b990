package ecs

import "github.com/milk9111/platformer/ecs/component"

func store[T any](w *World, kind component.ComponentKind[T], create bool) *SparseSet[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	if s, ok := w.stores[kind.ID()]; ok {
		return s.(*SparseSet[T])
	}
	if !create {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]componentStore)
	}
	s := &SparseSet[T]{}
	w.stores[kind.ID()] = s
	return s
}

// Add attaches value to e, replacing any previous value of the same kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	store(w, kind, true).Set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	s := store(w, kind, false)
	if s == nil {
		return false
	}
	return s.remove(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return store(w, kind, false).Has(e)
}

// Get returns a pointer to the stored component. Mutations are visible to
// every later reader; calling Add again is only needed to replace it.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	v := store(w, kind, false).Get(e)
	return v, v != nil
}

// First returns the first entity that has kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	s := store(w, kind, false)
	if s.len() == 0 {
		return 0, false
	}
	return s.dense[0], true
}

// ForEach iterates a snapshot, so fn may add or remove components.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := store(w, kind, false)
	for _, e := range s.Entities() {
		if v := s.Get(e); v != nil {
			fn(e, v)
		}
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa := store(w, ka, false)
	sb := store(w, kb, false)
	if sa.len() == 0 || sb.len() == 0 {
		return
	}
	for _, e := range sa.Entities() {
		a := sa.Get(e)
		b := sb.Get(e)
		if a != nil && b != nil {
			fn(e, a, b)
		}
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa := store(w, ka, false)
	sb := store(w, kb, false)
	sc := store(w, kc, false)
	if sa.len() == 0 || sb.len() == 0 || sc.len() == 0 {
		return
	}
	for _, e := range sa.Entities() {
		a := sa.Get(e)
		b := sb.Get(e)
		c := sc.Get(e)
		if a != nil && b != nil && c != nil {
			fn(e, a, b, c)
		}
	}
}
