package matching

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/talentgraph/backend/models"
)

// ErrInvalidInput marks malformed or out-of-range scoring input. Scoring is
// deterministic, so these errors are never worth retrying.
var ErrInvalidInput = errors.New("invalid input")

// Weight table for the composite score. The knowledge-graph bonus is additive
// headroom beyond the nominal 100%, so a top candidate can hit the overall
// clamp; the base score is awarded unconditionally.
const (
	WeightSkills     = 0.50
	WeightExperience = 0.30
	WeightLocation   = 0.15

	// Weights with location scoring disabled: location's share is
	// redistributed into skills and experience.
	WeightSkillsNoLocation     = 0.60
	WeightExperienceNoLocation = 0.35

	BaseScore      = 0.05
	KGBonusCeiling = 0.38
)

// Options selects the scoring mode. Callers must set IncludeLocationScore
// explicitly; the two weight tables produce different overall scores.
type Options struct {
	IncludeLocationScore bool
}

// Score computes the full match breakdown for one (job, candidate) pair.
// It is pure: no I/O, no shared state, and identical inputs always produce
// identical output.
func Score(job *models.Job, cand *models.Candidate, opts Options) (*models.MatchResult, error) {
	if err := validateInputs(job, cand); err != nil {
		return nil, err
	}

	result := &models.MatchResult{BaseScore: BaseScore}

	scoreSkills(job, cand, result)
	scoreExperience(job, cand, result)
	scoreLocation(job, cand, result)
	if err := scoreKGSignals(cand, result); err != nil {
		return nil, err
	}

	var overall float64
	if opts.IncludeLocationScore {
		overall = WeightSkills*result.SkillMatchScore +
			WeightExperience*result.ExperienceMatchScore +
			WeightLocation*result.LocationMatchScore +
			result.KGRelationshipBonus + result.BaseScore
	} else {
		overall = WeightSkillsNoLocation*result.SkillMatchScore +
			WeightExperienceNoLocation*result.ExperienceMatchScore +
			result.KGRelationshipBonus + result.BaseScore
	}
	result.OverallScore = clamp01(overall)
	result.MatchPercentage = fmt.Sprintf("%d%%", int(math.Round(result.OverallScore*100)))

	return result, nil
}

func validateInputs(job *models.Job, cand *models.Candidate) error {
	if job == nil || job.ID == "" {
		return fmt.Errorf("%w: job id is required", ErrInvalidInput)
	}
	if cand == nil || cand.ID == "" {
		return fmt.Errorf("%w: candidate id is required", ErrInvalidInput)
	}
	if cand.ExperienceMonths < 0 {
		return fmt.Errorf("%w: candidate %s has negative experience months", ErrInvalidInput, cand.ID)
	}
	if job.MinExperienceMonths != nil && *job.MinExperienceMonths < 0 {
		return fmt.Errorf("%w: job %s has negative minimum experience", ErrInvalidInput, job.ID)
	}
	return nil
}

// scoreSkills fills the skill partition fields and the skill match score.
// Skills are compared case-insensitively after trimming; a skill listed as
// both must-have and optional counts as must-have.
func scoreSkills(job *models.Job, cand *models.Candidate, result *models.MatchResult) {
	mustHave := normalizeSkills(job.MustHaveSkills, nil)
	optional := normalizeSkills(job.OptionalSkills, mustHave)

	candSet := make(map[string]bool)
	additional := make([]string, 0)
	requiredSet := make(map[string]bool, len(mustHave)+len(optional))
	for _, s := range mustHave {
		requiredSet[s.norm] = true
	}
	for _, s := range optional {
		requiredSet[s.norm] = true
	}
	for _, raw := range cand.Skills {
		norm := normalizeSkill(raw)
		if norm == "" || candSet[norm] {
			continue
		}
		candSet[norm] = true
		if !requiredSet[norm] {
			additional = append(additional, strings.TrimSpace(raw))
		}
	}

	matchedMust := make([]string, 0, len(mustHave))
	matchedOptional := make([]string, 0, len(optional))
	missing := make([]string, 0)
	for _, s := range mustHave {
		if candSet[s.norm] {
			matchedMust = append(matchedMust, s.display)
		} else {
			missing = append(missing, s.display)
		}
	}
	for _, s := range optional {
		if candSet[s.norm] {
			matchedOptional = append(matchedOptional, s.display)
		} else {
			missing = append(missing, s.display)
		}
	}

	required := len(mustHave) + len(optional)
	matched := len(matchedMust) + len(matchedOptional)
	if required == 0 {
		// No declared requirement means full credit, not a zero denominator.
		result.SkillMatchScore = 1.0
	} else {
		result.SkillMatchScore = float64(matched) / float64(required)
	}
	result.SkillMatchCount = fmt.Sprintf("%d/%d", matched, required)
	result.MatchedMustHaveSkills = matchedMust
	result.MatchedOptionalSkills = matchedOptional
	result.MissingSkills = missing
	result.AdditionalSkills = additional
}

func scoreExperience(job *models.Job, cand *models.Candidate, result *models.MatchResult) {
	if job.MinExperienceMonths == nil {
		result.ExperienceMatch = true
		result.ExperienceMatchScore = 1.0
		return
	}

	required := *job.MinExperienceMonths
	if cand.ExperienceMonths >= required {
		result.ExperienceMatch = true
		result.ExperienceMatchScore = 1.0
		return
	}

	// Partial credit below the floor, always strictly under 1.0.
	result.ExperienceMatch = false
	result.ExperienceMatchScore = float64(cand.ExperienceMonths) / float64(required)
	result.ExperienceGap = fmt.Sprintf("%d more months required", required-cand.ExperienceMonths)
}

func scoreLocation(job *models.Job, cand *models.Candidate, result *models.MatchResult) {
	jobLoc := normalizeSkill(job.Location)
	candLoc := normalizeSkill(cand.Location)

	match := jobLoc == "" || jobLoc == models.LocationAny || jobLoc == candLoc
	result.LocationMatch = match
	if match {
		result.LocationMatchScore = 1.0
	}
}

// scoreKGSignals copies the five optional graph signals into the result and
// derives the relationship bonus. Missing signals count as zero, values above
// 1.0 are clamped, negative values are rejected.
func scoreKGSignals(cand *models.Candidate, result *models.MatchResult) error {
	signals := []struct {
		name  string
		value *float64
		out   *float64
	}{
		{"company_network_score", cand.KGSignals.CompanyNetwork, &result.CompanyNetworkScore},
		{"institution_network_score", cand.KGSignals.InstitutionNetwork, &result.InstitutionNetworkScore},
		{"industry_cluster_score", cand.KGSignals.IndustryCluster, &result.IndustryClusterScore},
		{"local_network_score", cand.KGSignals.LocalNetwork, &result.LocalNetworkScore},
		{"role_progression_score", cand.KGSignals.RoleProgression, &result.RoleProgressionScore},
	}

	sum := 0.0
	for _, sig := range signals {
		if sig.value == nil {
			continue
		}
		v := *sig.value
		if v < 0 {
			return fmt.Errorf("%w: candidate %s has negative %s", ErrInvalidInput, cand.ID, sig.name)
		}
		if v > 1 {
			v = 1
		}
		*sig.out = v
		sum += v
	}

	if sum > KGBonusCeiling {
		sum = KGBonusCeiling
	}
	result.KGRelationshipBonus = sum
	return nil
}

type skillEntry struct {
	norm    string
	display string
}

// normalizeSkills dedupes a skill list case-insensitively, preserving order
// and the first trimmed spelling. Entries already present in exclude are
// dropped (optional skills repeated in the must-have list).
func normalizeSkills(raw []string, exclude []skillEntry) []skillEntry {
	excluded := make(map[string]bool, len(exclude))
	for _, s := range exclude {
		excluded[s.norm] = true
	}

	seen := make(map[string]bool, len(raw))
	out := make([]skillEntry, 0, len(raw))
	for _, r := range raw {
		norm := normalizeSkill(r)
		if norm == "" || seen[norm] || excluded[norm] {
			continue
		}
		seen[norm] = true
		out = append(out, skillEntry{norm: norm, display: strings.TrimSpace(r)})
	}
	return out
}

func normalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
