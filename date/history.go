package date

import "iter"

// History stores a series of values, each associated with a specific date.
//
// Points are kept in insertion order and dates may repeat: a History is a
// faithful record of what was read, not a sorted index.
type History[T any] struct {
	days   []Date
	values []T
}

// Latest returns the point with the most recent date in the history.
//
// When several points share the most recent date, the first inserted one wins.
// If the history is empty, it returns zero values and false.
func (h *History[T]) Latest() (day Date, value T, ok bool) {
	best := -1
	for i, on := range h.days {
		if best < 0 || on.After(h.days[best]) {
			best = i
		}
	}
	if best < 0 {
		return Date{}, value, false
	}
	return h.days[best], h.values[best], true
}

// Len returns the number of items in the history.
func (h *History[T]) Len() int { return len(h.days) }

// Append adds a point at the end of the history.
func (h *History[T]) Append(on Date, v T) *History[T] {
	h.days, h.values = append(h.days, on), append(h.values, v)
	return h
}

// Values returns an iterator over all date/value pairs in the history, in insertion order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// At returns the i-th point of the history.
func (h *History[T]) At(i int) (Date, T) { return h.days[i], h.values[i] }
