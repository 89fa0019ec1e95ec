package grip

import "testing"

func TestMatchSelector(t *testing.T) {
	tests := []struct {
		selector string
		name     string
		id       string
		classes  []string
		want     bool
	}{
		{"box", "box", "", nil, true},
		{"box", "panel", "", nil, false},
		{"#win", "box", "win", nil, true},
		{"#win", "box", "other", nil, false},
		{"#win", "win", "", nil, false}, // name never satisfies an id selector
		{".drag-handle", "box", "", []string{"drag-handle"}, true},
		{".drag-handle", "box", "", []string{"other", "drag-handle"}, true},
		{".drag-handle", "drag-handle", "", nil, false},
		{".a, .b", "box", "", []string{"b"}, true},
		{"#x, .y, box", "box", "", nil, true},
		{" .a , #b ", "box", "b", nil, true},
		{"", "box", "id", []string{"c"}, false},
		{",,", "box", "", nil, false},
		{".", "box", "", []string{""}, true}, // degenerate but consistent
	}
	for _, tt := range tests {
		if got := MatchSelector(tt.selector, tt.name, tt.id, tt.classes); got != tt.want {
			t.Errorf("MatchSelector(%q, %q, %q, %v) = %v, want %v",
				tt.selector, tt.name, tt.id, tt.classes, got, tt.want)
		}
	}
}

func TestMatchesSelectorAndParents(t *testing.T) {
	outer := &fakeElement{name: "outer", classes: []string{"drag-handle"}}
	bound := &fakeElement{name: "bound", parent: outer}
	inner := &fakeElement{name: "inner", parent: bound}
	leaf := &fakeElement{name: "leaf", classes: []string{"drag-handle"}, parent: inner}

	if !matchesSelectorAndParents(leaf, ".drag-handle", bound) {
		t.Error("direct match should succeed")
	}
	if !matchesSelectorAndParents(inner, "bound", bound) {
		t.Error("match on the boundary itself should succeed")
	}
	// outer matches, but the walk must stop once the boundary is tested.
	if matchesSelectorAndParents(inner, ".drag-handle", bound) {
		t.Error("matches above the boundary must not count")
	}
	if matchesSelectorAndParents(nil, ".drag-handle", bound) {
		t.Error("nil node never matches")
	}
}
