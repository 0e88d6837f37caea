package tui

import (
	"cmp"
	"slices"
	"strings"

	"github.com/d-kuro/todo-mcp/internal/collections"
	"github.com/d-kuro/todo-mcp/internal/todo"
)

// Filter selects todos by completion state.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

var filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// Next cycles to the following filter.
func (f Filter) Next() Filter { return next(filters, f) }

func (f Filter) match(t todo.Todo) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// SortOrder orders the visible list.
type SortOrder string

const (
	SortDate   SortOrder = "date"
	SortTitle  SortOrder = "title"
	SortStatus SortOrder = "status"
)

var sortOrders = []SortOrder{SortDate, SortTitle, SortStatus}

// Next cycles to the following sort order.
func (s SortOrder) Next() SortOrder { return next(sortOrders, s) }

func next[T comparable](all []T, cur T) T {
	i := slices.Index(all, cur)
	return all[(i+1)%len(all)]
}

// Visible returns the todos that pass filter and query, ordered by sort.
// The input slice is not modified.
func Visible(todos []todo.Todo, filter Filter, query string, order SortOrder) []todo.Todo {
	query = strings.ToLower(strings.TrimSpace(query))

	out := collections.Filter(todos, func(t todo.Todo) bool {
		return filter.match(t) && (query == "" || matchesQuery(t, query))
	})
	slices.SortStableFunc(out, compareFunc(order))
	return out
}

func matchesQuery(t todo.Todo, lowered string) bool {
	return strings.Contains(strings.ToLower(t.Title), lowered) ||
		strings.Contains(strings.ToLower(t.Description), lowered)
}

func newestFirst(a, b todo.Todo) int {
	return b.CreatedAt.Compare(a.CreatedAt)
}

func compareFunc(order SortOrder) func(a, b todo.Todo) int {
	switch order {
	case SortTitle:
		return func(a, b todo.Todo) int {
			if c := cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)); c != 0 {
				return c
			}
			return newestFirst(a, b)
		}
	case SortStatus:
		// pending before completed
		return func(a, b todo.Todo) int {
			if a.Completed != b.Completed {
				if a.Completed {
					return 1
				}
				return -1
			}
			return newestFirst(a, b)
		}
	default:
		return newestFirst
	}
}

// Counts reports how many todos are done and pending.
func Counts(todos []todo.Todo) (done, pending int) {
	done = collections.Count(todos, func(t todo.Todo) bool { return t.Completed })
	return done, len(todos) - done
}
