// Package matching computes the heuristic compatibility score shown next to
// mentorship candidates. The score is a ranking signal only.
package matching

import "strings"

// Score weights
const (
	majorWeight        = 40
	locationWeight     = 20
	completenessWeight = 5
	closeYearWeight    = 10
	nearYearWeight     = 5
	maxScore           = 100
)

// CandidateProfile carries the profile fields the score depends on.
type CandidateProfile struct {
	Major           string
	Location        string
	GraduationYear  *int
	Bio             string
	CurrentPosition string
	Company         string
	HasSkills       bool
}

// Score computes the 0-100 compatibility between a viewer and a candidate:
// exact major match, location containment, candidate profile completeness and
// graduation year proximity, clamped at 100.
func Score(viewer, candidate CandidateProfile) int {
	score := 0

	if viewer.Major != "" && candidate.Major != "" &&
		strings.EqualFold(viewer.Major, candidate.Major) {
		score += majorWeight
	}

	if viewer.Location != "" && candidate.Location != "" &&
		strings.Contains(strings.ToLower(candidate.Location), strings.ToLower(viewer.Location)) {
		score += locationWeight
	}

	if candidate.Bio != "" {
		score += completenessWeight
	}
	if candidate.CurrentPosition != "" {
		score += completenessWeight
	}
	if candidate.Company != "" {
		score += completenessWeight
	}
	if candidate.HasSkills {
		score += completenessWeight
	}

	if viewer.GraduationYear != nil && candidate.GraduationYear != nil {
		diff := *viewer.GraduationYear - *candidate.GraduationYear
		if diff < 0 {
			diff = -diff
		}
		switch {
		case diff <= 2:
			score += closeYearWeight
		case diff <= 5:
			score += nearYearWeight
		}
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}
