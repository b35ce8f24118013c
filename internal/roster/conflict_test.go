package roster

import "testing"

func strPtr(v string) *string {
	return &v
}

func TestDetectConflictOverlappingWindows(t *testing.T) {
	uses := []ActiveUse{
		{CaseNumber: "THS-2025-014", DeceasedName: "B Nkosi", FuneralTime: strPtr("09:00")},
	}

	hit := DetectConflict(strPtr("10:00"), uses)
	if hit == nil {
		t.Fatal("expected conflict for 09:00-11:00 window against 10:00-12:00 candidate")
	}
	if hit.CaseNumber != "THS-2025-014" {
		t.Fatalf("expected blocking case THS-2025-014, got %s", hit.CaseNumber)
	}
	if hit.FuneralTime != "09:00" {
		t.Fatalf("expected blocking time 09:00, got %s", hit.FuneralTime)
	}
}

func TestDetectConflictNonOverlappingWindows(t *testing.T) {
	uses := []ActiveUse{
		{CaseNumber: "THS-2025-014", FuneralTime: strPtr("09:00")},
	}

	// [09:00, 11:00) and [11:00, 13:00) touch but do not intersect.
	if hit := DetectConflict(strPtr("11:00"), uses); hit != nil {
		t.Fatalf("expected no conflict for back-to-back windows, got %+v", hit)
	}
}

func TestDetectConflictUnknownTimes(t *testing.T) {
	tests := []struct {
		name      string
		candidate *string
		other     *string
		want      bool
	}{
		{name: "candidate unknown against timed use", candidate: nil, other: strPtr("14:00"), want: true},
		{name: "timed candidate against untimed use", candidate: strPtr("14:00"), other: nil, want: true},
		{name: "both unknown", candidate: nil, other: nil, want: true},
		{name: "malformed time degrades to unknown", candidate: strPtr("2pm"), other: strPtr("09:00"), want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			uses := []ActiveUse{{CaseNumber: "THS-2025-020", FuneralTime: tc.other}}
			hit := DetectConflict(tc.candidate, uses)
			if (hit != nil) != tc.want {
				t.Fatalf("want conflict=%v, got %+v", tc.want, hit)
			}
		})
	}
}

func TestDetectConflictNoUses(t *testing.T) {
	if hit := DetectConflict(strPtr("10:00"), nil); hit != nil {
		t.Fatalf("expected no conflict with empty uses, got %+v", hit)
	}
}

func TestDetectConflictReportsFirstHit(t *testing.T) {
	uses := []ActiveUse{
		{CaseNumber: "THS-2025-001", FuneralTime: strPtr("10:30")},
		{CaseNumber: "THS-2025-002", FuneralTime: strPtr("11:00")},
	}

	hit := DetectConflict(strPtr("10:00"), uses)
	if hit == nil {
		t.Fatal("expected conflict")
	}
	if hit.CaseNumber != "THS-2025-001" {
		t.Fatalf("expected first conflicting entry reported, got %s", hit.CaseNumber)
	}
}
