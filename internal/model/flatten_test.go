package model

import "testing"

func TestFlattenElements(t *testing.T) {
	tree := []ElementInfo{
		{
			RoleName: "frm", Name: "Calculator",
			Children: []ElementInfo{
				{RoleName: "grp", Children: []ElementInfo{{RoleName: "btn", Name: "7"}}},
				{RoleName: "lbl", Name: "0"},
			},
		},
	}
	flat := FlattenElements(tree)
	wantPaths := []string{"frm", "frm > grp", "frm > grp > btn", "frm > lbl"}
	if len(flat) != len(wantPaths) {
		t.Fatalf("expected %d flat elements, got %d", len(wantPaths), len(flat))
	}
	for i, want := range wantPaths {
		if flat[i].Path != want {
			t.Errorf("flat[%d].Path = %q, want %q", i, flat[i].Path, want)
		}
		if flat[i].Children != nil {
			t.Errorf("flat[%d] should not carry children", i)
		}
	}
	if flat[2].Name != "7" {
		t.Errorf("flat[2].Name = %q, want 7", flat[2].Name)
	}
}

func TestFlattenElements_Empty(t *testing.T) {
	if got := FlattenElements(nil); len(got) != 0 {
		t.Errorf("expected no elements, got %d", len(got))
	}
}
