package tasks

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Outcome is the tagged result of one task in a [Group].
type Outcome[T any] struct {
	Value T
	Err   error
}

// OK reports whether the task succeeded.
func (o Outcome[T]) OK() bool { return o.Err == nil }

// Group runs a fixed number of tasks concurrently and keeps every outcome.
//
// Unlike a bare errgroup, a failing task never cancels or hides its siblings:
// each task's error is recorded in its own slot and Wait returns all of them,
// indexed in submission order.
type Group[T any] struct {
	eg       errgroup.Group
	outcomes []Outcome[T]
}

// NewGroup creates a [Group] for n tasks. A limit > 0 bounds how many run at once.
func NewGroup[T any](n, limit int) *Group[T] {
	g := &Group[T]{outcomes: make([]Outcome[T], n)}
	if limit > 0 {
		g.eg.SetLimit(limit)
	}
	return g
}

// Go starts task i. Panics are recovered into the task's outcome.
func (g *Group[T]) Go(i int, fn func() (T, error)) {
	g.eg.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				g.outcomes[i] = Outcome[T]{Err: fmt.Errorf("task %d panicked: %v", i, r)}
			}
		}()

		v, err := fn()
		g.outcomes[i] = Outcome[T]{Value: v, Err: err}
		return nil
	})
}

// Wait blocks until every started task returns and yields the outcomes by index.
func (g *Group[T]) Wait() []Outcome[T] {
	_ = g.eg.Wait()
	return g.outcomes
}
