// Package graphcycle finds cycles in small directed graphs given as an
// adjacency function.
package graphcycle

import (
	"fmt"
	"slices"
)

type visitState uint8

const (
	stateVisiting visitState = iota + 1
	stateDone
)

// CycleError reports a cycle. Path lists the keys along the cycle and ends
// with the key it started from.
type CycleError[K comparable] struct {
	Path []K
}

// Error returns the error string.
func (e *CycleError[K]) Error() string {
	return fmt.Sprintf("cycle detected: %v", e.Path)
}

// Detect walks the edges returned by next from each key in starts and
// returns a *CycleError for the first cycle reached, or nil.
func Detect[K comparable](starts []K, next func(K) []K) error {
	if next == nil {
		return fmt.Errorf("cycle detect: next function is nil")
	}
	states := make(map[K]visitState, len(starts))
	var stack []K

	var visit func(key K) error
	visit = func(key K) error {
		switch states[key] {
		case stateVisiting:
			start := slices.Index(stack, key)
			path := append(slices.Clone(stack[start:]), key)
			return &CycleError[K]{Path: path}
		case stateDone:
			return nil
		}
		states[key] = stateVisiting
		stack = append(stack, key)
		for _, n := range next(key) {
			if err := visit(n); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		states[key] = stateDone
		return nil
	}

	for _, start := range starts {
		if err := visit(start); err != nil {
			return err
		}
	}
	return nil
}
