package insight

import (
	"sort"
	"strings"
)

// Rank deduplicates and orders scored recommendations. Two entries are
// duplicates when they share category and normalized title, or when
// they were driven by the same primary metric; the higher impact score
// survives. Sorting is priority rank, then impact, then potential
// revenue, with input order as the stable final tie-break. Truncation
// to limit happens only after sorting.
func Rank(scored []ScoredRecommendation, limit int) RankedList {
	type winner struct {
		index  int
		impact float64
	}

	winners := make(map[string]winner, len(scored))
	keysOf := func(r ScoredRecommendation) []string {
		keys := []string{string(r.Category) + "|" + normalizeTitle(r.Title)}
		if r.PrimaryMetric != "" {
			keys = append(keys, "metric|"+r.PrimaryMetric)
		}
		return keys
	}

	discarded := make([]bool, len(scored))
	for i, rec := range scored {
		for _, key := range keysOf(rec) {
			prev, seen := winners[key]
			if !seen {
				winners[key] = winner{index: i, impact: rec.ImpactScore}
				continue
			}
			// Earlier entry wins ties.
			if rec.ImpactScore > prev.impact {
				discarded[prev.index] = true
				winners[key] = winner{index: i, impact: rec.ImpactScore}
			} else {
				discarded[i] = true
			}
		}
	}

	kept := make(RankedList, 0, len(scored))
	for i, rec := range scored {
		if !discarded[i] {
			kept = append(kept, rec)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if priorityRank(a.Priority) != priorityRank(b.Priority) {
			return priorityRank(a.Priority) > priorityRank(b.Priority)
		}
		if a.ImpactScore != b.ImpactScore {
			return a.ImpactScore > b.ImpactScore
		}
		if a.PotentialRevenue != b.PotentialRevenue {
			return a.PotentialRevenue > b.PotentialRevenue
		}
		return false
	})

	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}

	return kept
}

func normalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}
