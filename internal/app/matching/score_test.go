package matching

import "testing"

func intPtr(v int) *int { return &v }

func TestScore_WorkedExample(t *testing.T) {
	viewer := CandidateProfile{
		Major:          "CS",
		Location:       "Cairo",
		GraduationYear: intPtr(2020),
	}
	candidate := CandidateProfile{
		Major:           "CS",
		Location:        "Greater Cairo Area",
		GraduationYear:  intPtr(2021),
		Bio:             "x",
		CurrentPosition: "y",
	}

	// 40 major + 20 location substring + 10 completeness + 10 year diff <= 2
	if got := Score(viewer, candidate); got != 80 {
		t.Fatalf("expected 80, got %d", got)
	}
}

func TestScore_MajorCaseInsensitive(t *testing.T) {
	got := Score(
		CandidateProfile{Major: "computer science"},
		CandidateProfile{Major: "Computer Science"},
	)
	if got != 40 {
		t.Fatalf("expected 40, got %d", got)
	}
}

func TestScore_LocationContainmentIsDirectional(t *testing.T) {
	// Candidate location must contain the viewer location, not the reverse.
	got := Score(
		CandidateProfile{Location: "Greater Cairo Area"},
		CandidateProfile{Location: "Cairo"},
	)
	if got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestScore_CompletenessContributions(t *testing.T) {
	cases := []struct {
		name      string
		candidate CandidateProfile
		want      int
	}{
		{"bio only", CandidateProfile{Bio: "b"}, 5},
		{"position only", CandidateProfile{CurrentPosition: "p"}, 5},
		{"company only", CandidateProfile{Company: "c"}, 5},
		{"skills only", CandidateProfile{HasSkills: true}, 5},
		{"all four", CandidateProfile{Bio: "b", CurrentPosition: "p", Company: "c", HasSkills: true}, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(CandidateProfile{}, tc.candidate); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestScore_YearProximity(t *testing.T) {
	cases := []struct {
		viewerYear, candidateYear int
		want                      int
	}{
		{2020, 2022, 10},
		{2022, 2020, 10},
		{2020, 2025, 5},
		{2020, 2026, 0},
	}
	for _, tc := range cases {
		got := Score(
			CandidateProfile{GraduationYear: intPtr(tc.viewerYear)},
			CandidateProfile{GraduationYear: intPtr(tc.candidateYear)},
		)
		if got != tc.want {
			t.Fatalf("years %d/%d: expected %d, got %d", tc.viewerYear, tc.candidateYear, tc.want, got)
		}
	}
}

func TestScore_MissingYearContributesNothing(t *testing.T) {
	got := Score(
		CandidateProfile{GraduationYear: intPtr(2020)},
		CandidateProfile{},
	)
	if got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestScore_ClampAt100(t *testing.T) {
	year := 2020
	viewer := CandidateProfile{Major: "CS", Location: "Cairo", GraduationYear: &year}
	candidate := CandidateProfile{
		Major:           "CS",
		Location:        "Cairo",
		GraduationYear:  &year,
		Bio:             "b",
		CurrentPosition: "p",
		Company:         "c",
		HasSkills:       true,
	}

	// 40+20+20+10 = 90; never exceeds the clamp, but the clamp must hold
	// even if weights change.
	if got := Score(viewer, candidate); got > 100 {
		t.Fatalf("score exceeded clamp: %d", got)
	}
	if got := Score(viewer, candidate); got != 90 {
		t.Fatalf("expected 90, got %d", got)
	}
}
