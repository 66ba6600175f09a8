package graphcycle

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func edges(graph map[string][]string) func(string) []string {
	return func(k string) []string { return graph[k] }
}

func TestDetectCycle(t *testing.T) {
	graph := map[string][]string{
		"#/definitions/a": {"#/definitions/b"},
		"#/definitions/b": {"#/definitions/c"},
		"#/definitions/c": {"#/definitions/a"},
	}
	err := Detect([]string{"#/definitions/a"}, edges(graph))
	var cycle *CycleError[string]
	if !errors.As(err, &cycle) {
		t.Fatalf("Detect() error = %v, want *CycleError[string]", err)
	}
	want := []string{"#/definitions/a", "#/definitions/b", "#/definitions/c", "#/definitions/a"}
	if diff := cmp.Diff(want, cycle.Path); diff != "" {
		t.Fatalf("cycle path mismatch (-want +got):\n%s", diff)
	}
}

func TestDetectCycleReachedFromTail(t *testing.T) {
	graph := map[int][]int{
		1: {2},
		2: {3},
		3: {2},
	}
	err := Detect([]int{1}, func(k int) []int { return graph[k] })
	var cycle *CycleError[int]
	if !errors.As(err, &cycle) {
		t.Fatalf("Detect() error = %v, want cycle", err)
	}
	if diff := cmp.Diff([]int{2, 3, 2}, cycle.Path); diff != "" {
		t.Fatalf("cycle path mismatch (-want +got):\n%s", diff)
	}
}

func TestDetectSelfLoop(t *testing.T) {
	err := Detect([]string{"#"}, edges(map[string][]string{"#": {"#"}}))
	var cycle *CycleError[string]
	if !errors.As(err, &cycle) || len(cycle.Path) != 2 {
		t.Fatalf("Detect() error = %v, want self loop", err)
	}
}

func TestDetectAcyclic(t *testing.T) {
	graph := map[string][]string{
		"a": {"b", "c"},
		"b": {"d"},
		"c": {"d"},
	}
	if err := Detect([]string{"a", "c"}, edges(graph)); err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
}

func TestDetectNilNext(t *testing.T) {
	if err := Detect[string]([]string{"a"}, nil); err == nil {
		t.Fatalf("Detect(nil next) error = nil")
	}
}
