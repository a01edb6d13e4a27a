package model

import "testing"

func TestFilterByRoleNames_NoFilters(t *testing.T) {
	elements := []ElementInfo{
		{RoleName: "btn", Bounds: [4]int{0, 0, 100, 30}},
		{RoleName: "txt", Bounds: [4]int{0, 30, 100, 20}},
	}
	result := FilterByRoleNames(elements, nil)
	if len(result) != 2 {
		t.Errorf("expected 2 elements, got %d", len(result))
	}
}

func TestFilterByRoleNames(t *testing.T) {
	elements := []ElementInfo{
		{RoleName: "btn", Name: "OK"},
		{RoleName: "txt"},
		{RoleName: "lnk", Name: "Help"},
	}
	result := FilterByRoleNames(elements, []string{"btn", "lnk"})
	if len(result) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(result))
	}
	if result[0].RoleName != "btn" || result[1].RoleName != "lnk" {
		t.Errorf("unexpected roles: %s, %s", result[0].RoleName, result[1].RoleName)
	}
}

func TestFilterByRoleNames_PromotesChildren(t *testing.T) {
	elements := []ElementInfo{
		{
			RoleName: "frm", Name: "Main",
			Children: []ElementInfo{
				{RoleName: "grp", Children: []ElementInfo{{RoleName: "btn", Name: "7"}}},
				{RoleName: "lbl", Name: "0"},
			},
		},
	}
	result := FilterByRoleNames(elements, []string{"btn"})
	if len(result) != 1 || result[0].Name != "7" {
		t.Errorf("expected the button promoted to the top, got %+v", result)
	}
}

func TestFilterByText(t *testing.T) {
	elements := []ElementInfo{
		{
			RoleName: "frm", Name: "Calculator",
			Children: []ElementInfo{
				{RoleName: "btn", Name: "Clear"},
				{RoleName: "lbl", Value: "42"},
			},
		},
		{RoleName: "frm", Name: "Paper Tape"},
	}
	result := FilterByText(elements, "clear")
	if len(result) != 1 {
		t.Fatalf("expected 1 top-level element, got %d", len(result))
	}
	if len(result[0].Children) != 1 || result[0].Children[0].Name != "Clear" {
		t.Errorf("expected only the matching child, got %+v", result[0].Children)
	}
	if got := FilterByText(elements, "42"); len(got) != 1 {
		t.Errorf("value matches should keep the ancestor, got %d elements", len(got))
	}
}

func TestPruneEmptyGroups(t *testing.T) {
	elements := []ElementInfo{
		{
			RoleName: "frm", Name: "Main",
			Children: []ElementInfo{
				{RoleName: "grp", Children: []ElementInfo{{RoleName: "btn", Name: "OK"}}},
				{RoleName: "grp", Name: "Toolbar"},
				{RoleName: UnknownRole},
			},
		},
	}
	result := PruneEmptyGroups(elements)
	children := result[0].Children
	if len(children) != 2 {
		t.Fatalf("expected 2 children after pruning, got %d", len(children))
	}
	if children[0].RoleName != "btn" || children[1].Name != "Toolbar" {
		t.Errorf("unexpected children %+v", children)
	}
}

func TestBoundsIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b [4]int
		want bool
	}{
		{"overlapping", [4]int{0, 0, 100, 100}, [4]int{50, 50, 100, 100}, true},
		{"adjacent_no_overlap", [4]int{0, 0, 100, 100}, [4]int{100, 0, 100, 100}, false},
		{"contained", [4]int{0, 0, 200, 200}, [4]int{50, 50, 10, 10}, true},
		{"no_overlap", [4]int{0, 0, 10, 10}, [4]int{20, 20, 10, 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BoundsIntersect(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("BoundsIntersect(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestFilterByBounds(t *testing.T) {
	elements := []ElementInfo{
		{RoleName: "frm", Bounds: [4]int{0, 0, 500, 500}, Children: []ElementInfo{
			{RoleName: "btn", Name: "In", Bounds: [4]int{10, 10, 20, 20}},
			{RoleName: "btn", Name: "Out", Bounds: [4]int{300, 300, 20, 20}},
		}},
		{RoleName: "frm", Bounds: [4]int{600, 600, 50, 50}},
	}
	result := FilterByBounds(elements, [4]int{0, 0, 50, 50})
	if len(result) != 1 {
		t.Fatalf("expected 1 root, got %d", len(result))
	}
	if len(result[0].Children) != 1 || result[0].Children[0].Name != "In" {
		t.Errorf("unexpected children: %+v", result[0].Children)
	}
}
