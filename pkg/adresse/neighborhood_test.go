package adresse

import (
	"slices"
	"testing"
)

func TestNeighborhood(t *testing.T) {
	got := slices.Collect(Neighborhood(slices.Values([]string{"a", "b", "c"}), "^", "$"))
	want := []Window[string]{
		{Prev: "^", Cur: "a", Next: "b"},
		{Prev: "a", Cur: "b", Next: "c"},
		{Prev: "b", Cur: "c", Next: "$"},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Neighborhood = %v, want %v", got, want)
	}
}

func TestNeighborhoodSingle(t *testing.T) {
	got := slices.Collect(Neighborhood(slices.Values([]int{7}), -1, -2))
	want := []Window[int]{{Prev: -1, Cur: 7, Next: -2}}
	if !slices.Equal(got, want) {
		t.Errorf("Neighborhood = %v, want %v", got, want)
	}
}

func TestNeighborhoodEmpty(t *testing.T) {
	got := slices.Collect(Neighborhood(slices.Values([]string(nil)), "^", "$"))
	if len(got) != 0 {
		t.Errorf("Neighborhood(empty) = %v, want nothing", got)
	}
}

func TestNeighborhoodRestartable(t *testing.T) {
	seq := Neighborhood(slices.Values([]int{1, 2, 3}), 0, 0)
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !slices.Equal(first, second) {
		t.Errorf("second pass = %v, want %v", second, first)
	}
}

func TestNeighborhoodStopsEarly(t *testing.T) {
	var seen []int
	for w := range Neighborhood(slices.Values([]int{1, 2, 3, 4}), 0, 0) {
		seen = append(seen, w.Cur)
		if w.Cur == 2 {
			break
		}
	}
	if !slices.Equal(seen, []int{1, 2}) {
		t.Errorf("seen = %v, want [1 2]", seen)
	}
}
