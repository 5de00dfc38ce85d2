package repositories

import "testing"

func strPtr(s string) *string { return &s }

func TestMergeNotes(t *testing.T) {
	tests := []struct {
		name     string
		existing *string
		added    *string
		want     *string
	}{
		{"both empty", nil, nil, nil},
		{"keeps existing when nothing added", strPtr("Allotted at intake"), nil, strPtr("Allotted at intake")},
		{"keeps existing on empty addition", strPtr("Allotted at intake"), strPtr(""), strPtr("Allotted at intake")},
		{"takes addition when nothing existing", nil, strPtr("Left hostel"), strPtr("Left hostel")},
		{"appends to existing", strPtr("Allotted at intake"), strPtr("Left hostel"), strPtr("Allotted at intake. Left hostel")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeNotes(tt.existing, tt.added)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("mergeNotes() = %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("mergeNotes() = %q, want %q", *got, *tt.want)
			}
		})
	}
}

func TestAnnotateNotes(t *testing.T) {
	if got := annotateNotes("Transferred to B-204", nil); got != "Transferred to B-204" {
		t.Errorf("annotateNotes without notes = %q", got)
	}
	if got := annotateNotes("Transferred to B-204", strPtr("roommate request")); got != "Transferred to B-204. roommate request" {
		t.Errorf("annotateNotes with notes = %q", got)
	}
}
