package youtube

import "spotgrab/entity"

type MatchPolicy string

const (
	// PolicyStrict rejects a track outright when no candidate falls inside
	// the tolerance window.
	PolicyStrict MatchPolicy = "strict"
	// PolicyLenient falls back to the first search result when no candidate
	// is in tolerance, so unattended batch runs always make progress.
	PolicyLenient MatchPolicy = "lenient"
)

// SelectBest picks the candidate whose duration is closest to targetMS,
// provided the difference is strictly inside toleranceMS. Candidates with
// an unknown duration are excluded from scoring. Ties go to the earliest
// candidate in input order. Behavior with no in-tolerance candidate
// depends on the policy.
func SelectBest(targetMS int, candidates []entity.Candidate, toleranceMS int, policy MatchPolicy) (entity.Candidate, bool) {
	best := entity.Candidate{}
	bestDiff := -1
	for _, candidate := range candidates {
		if candidate.DurationMS <= 0 {
			continue
		}
		diff := absDiff(candidate.DurationMS, targetMS)
		if diff >= toleranceMS {
			continue
		}
		if bestDiff < 0 || diff < bestDiff {
			best = candidate
			bestDiff = diff
		}
	}
	if bestDiff >= 0 {
		return best, true
	}
	if policy == PolicyLenient && len(candidates) > 0 {
		return candidates[0], true
	}
	return entity.Candidate{}, false
}

// Closest returns the candidate with the smallest duration difference and
// that difference, ignoring the tolerance window. Used for diagnostics
// when a strict match is rejected.
func Closest(targetMS int, candidates []entity.Candidate) (entity.Candidate, int, bool) {
	best := entity.Candidate{}
	bestDiff := -1
	for _, candidate := range candidates {
		if candidate.DurationMS <= 0 {
			continue
		}
		diff := absDiff(candidate.DurationMS, targetMS)
		if bestDiff < 0 || diff < bestDiff {
			best = candidate
			bestDiff = diff
		}
	}
	return best, bestDiff, bestDiff >= 0
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
