// Package probe runs ordered fallible strategies and keeps the first
// success.
package probe

// Strategy is one way of obtaining a value. Run reports false when the
// strategy found nothing conclusive.
type Strategy[T any] struct {
	Name string
	Run  func() (T, bool)
}

// Result carries the value together with the name of the strategy that
// produced it.
type Result[T any] struct {
	Value T
	By    string
}

func First[T any](strategies ...Strategy[T]) (Result[T], bool) {
	for _, s := range strategies {
		if s.Run == nil {
			continue
		}
		if v, ok := s.Run(); ok {
			return Result[T]{Value: v, By: s.Name}, true
		}
	}
	return Result[T]{}, false
}

// FirstOr is First with a fallback value.
func FirstOr[T any](def T, strategies ...Strategy[T]) T {
	if r, ok := First(strategies...); ok {
		return r.Value
	}
	return def
}
