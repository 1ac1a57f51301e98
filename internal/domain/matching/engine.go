package matching

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
)

const (
	RequiredWeight   = 0.6
	ExperienceWeight = 0.3
	PreferredWeight  = 0.1

	overExperienceFloor      = 70.0
	overExperienceMaxPenalty = 20.0
	overExperiencePerYear    = 2.0

	reasoningMatchedLimit   = 3
	reasoningGapLimit       = 3
	reasoningPreferredLimit = 2
)

type Input struct {
	CandidateID     uuid.UUID
	CandidateSkills []string
	CandidateYears  float64
	RequiredSkills  []string
	PreferredSkills []string
	MinExperience   float64
	MaxExperience   *float64
}

type SkillMatch struct {
	Matched []string
	Gaps    []string
	Score   float64
}

type Result struct {
	CandidateID      uuid.UUID
	Score            int
	MatchedSkills    []string
	SkillGaps        []string
	PreferredMatched []string
	RequiredScore    float64
	ExperienceScore  float64
	PreferredScore   float64
	Reasoning        string
}

// NormalizeSkill returns the comparison key for a skill name.
func NormalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SkillSimilarity partitions target into skills the candidate covers and gaps.
// A target is covered when a candidate skill equals it, contains it, or is
// contained in it after normalization; the first such candidate skill wins.
// Blank skills on either side never match, so a blank target is always a gap.
func SkillSimilarity(candidateSkills, target []string) SkillMatch {
	keys := make([]string, 0, len(candidateSkills))
	for _, s := range candidateSkills {
		k := NormalizeSkill(s)
		if k == "" {
			continue
		}
		keys = append(keys, k)
	}

	out := SkillMatch{
		Matched: make([]string, 0, len(target)),
		Gaps:    make([]string, 0),
	}
	for _, t := range target {
		tk := NormalizeSkill(t)
		found := false
		for _, ck := range keys {
			if tk != "" && (ck == tk || strings.Contains(ck, tk) || strings.Contains(tk, ck)) {
				found = true
				break
			}
		}
		if found {
			out.Matched = append(out.Matched, t)
		} else {
			out.Gaps = append(out.Gaps, t)
		}
	}

	if len(target) > 0 {
		out.Score = float64(len(out.Matched)) / float64(len(target)) * 100
	}
	return out
}

// ExperienceScore maps candidate years against the [min, max] band. A max of
// nil or <= 0 means the band is open-ended. A job without a minimum always
// scores 100.
func ExperienceScore(candidateYears, minYears float64, maxYears *float64) float64 {
	if minYears <= 0 {
		return 100
	}

	if candidateYears < minYears {
		return math.Max(0, candidateYears/minYears*100)
	}

	if maxYears != nil && *maxYears > 0 && candidateYears > *maxYears {
		return overExperienceScore(candidateYears, *maxYears)
	}
	return 100
}

func overExperienceScore(candidateYears, maxYears float64) float64 {
	penalty := math.Min(overExperienceMaxPenalty, (candidateYears-maxYears)*overExperiencePerYear)
	return math.Max(overExperienceFloor, 100-penalty)
}

// Score computes the weighted match of one candidate against one job.
func Score(in Input) Result {
	required := SkillSimilarity(in.CandidateSkills, in.RequiredSkills)
	exp := ExperienceScore(in.CandidateYears, in.MinExperience, in.MaxExperience)

	preferred := SkillMatch{Matched: []string{}, Gaps: []string{}}
	if len(in.PreferredSkills) > 0 {
		preferred = SkillSimilarity(in.CandidateSkills, in.PreferredSkills)
	}

	total := required.Score*RequiredWeight + exp*ExperienceWeight + preferred.Score*PreferredWeight

	return Result{
		CandidateID:      in.CandidateID,
		Score:            clampInt(int(math.Round(total)), 0, 100),
		MatchedSkills:    required.Matched,
		SkillGaps:        required.Gaps,
		PreferredMatched: preferred.Matched,
		RequiredScore:    required.Score,
		ExperienceScore:  exp,
		PreferredScore:   preferred.Score,
		Reasoning:        Reasoning(required.Matched, required.Gaps, preferred.Matched, len(in.RequiredSkills)),
	}
}

// Reasoning renders the recruiter-facing explanation. Clauses with nothing to
// report are left out.
func Reasoning(matched, gaps, preferredMatched []string, requiredTotal int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Match based on %d/%d required skills", len(matched), requiredTotal)

	if len(matched) > 0 {
		b.WriteString(". Strong in: ")
		b.WriteString(strings.Join(head(matched, reasoningMatchedLimit), ", "))
	}
	if len(gaps) > 0 {
		b.WriteString(". Needs to develop: ")
		b.WriteString(strings.Join(head(gaps, reasoningGapLimit), ", "))
	}
	if len(preferredMatched) > 0 {
		b.WriteString(". Also has preferred skills: ")
		b.WriteString(strings.Join(head(preferredMatched, reasoningPreferredLimit), ", "))
	}
	return b.String()
}

// Rank orders results by descending score. Equal scores keep input order.
func Rank(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}

type Band string

const (
	BandStrong Band = "strong"
	BandGood   Band = "good"
	BandFair   Band = "fair"
	BandWeak   Band = "weak"
)

func BandFor(score int) Band {
	switch {
	case score >= 80:
		return BandStrong
	case score >= 60:
		return BandGood
	case score >= 40:
		return BandFair
	default:
		return BandWeak
	}
}

func head(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
