package insight

import "sort"

// Prioritized is the bucketed output of one scoring pass. Buckets are not
// exclusive; an insight may appear in several. AllScored holds the full
// canonical ordering.
type Prioritized struct {
	Critical      []Insight `json:"critical"`
	Opportunities []Insight `json:"opportunities"`
	Behavioral    []Insight `json:"behavioral"`
	AllScored     []Insight `json:"all_scored"`
}

// Prioritize scores every candidate, sorts them weakness-first then by score
// descending, and segments the result. Empty input yields empty buckets.
func Prioritize(candidates []Insight, policy ScoringPolicy) Prioritized {
	scored := make([]Insight, 0, len(candidates))
	for _, in := range candidates {
		in.Category = inferCategory(in)
		in.Score = policy.Score(in)
		scored = append(scored, in)
	}
	sortCanonical(scored)

	out := Prioritized{AllScored: scored}
	for _, in := range scored {
		if len(out.Critical) < 3 && in.Score >= 80 {
			out.Critical = append(out.Critical, in)
		}
		if len(out.Opportunities) < 3 && in.Score >= 60 && isUpside(in.Type) {
			out.Opportunities = append(out.Opportunities, in)
		}
		if len(out.Behavioral) < 3 && in.Score >= 60 &&
			(in.Category == CategoryBehavioral || in.Type == TypeWeakness) {
			out.Behavioral = append(out.Behavioral, in)
		}
	}
	return out
}

func isUpside(t InsightType) bool {
	switch t {
	case TypeOpportunity, TypeStrength, TypeRecommendation:
		return true
	default:
		return false
	}
}

// sortCanonical orders weaknesses ahead of everything else regardless of
// score, ties broken by score descending, then title for stability.
func sortCanonical(list []Insight) {
	sort.SliceStable(list, func(i, j int) bool {
		wi, wj := list[i].Type == TypeWeakness, list[j].Type == TypeWeakness
		if wi != wj {
			return wi
		}
		if list[i].Score != list[j].Score {
			return list[i].Score > list[j].Score
		}
		return list[i].Title < list[j].Title
	})
}
