package matching

import (
	"fmt"
	"sort"
	"sync"

	"github.com/talentgraph/backend/models"
)

// scoreWorkers bounds concurrent scoring goroutines in a batch.
const scoreWorkers = 5

// CandidateMatch pairs a candidate with its score against one job.
type CandidateMatch struct {
	Candidate *models.Candidate
	Result    *models.MatchResult
}

// JobMatch pairs a job with its score against one candidate.
type JobMatch struct {
	Job    *models.Job
	Result *models.MatchResult
}

// RankCandidates scores every candidate against the job, drops results below
// minScore, sorts by overall score descending (ties broken by candidate id
// ascending) and truncates to topK. One invalid record fails the whole batch
// so callers never see a ranking with undisclosed omissions.
func RankCandidates(job *models.Job, candidates []*models.Candidate, topK int, minScore float64, opts Options) ([]CandidateMatch, error) {
	if err := validateRankParams(topK, minScore); err != nil {
		return nil, err
	}

	results, err := scoreAll(len(candidates), func(i int) (*models.MatchResult, error) {
		return Score(job, candidates[i], opts)
	})
	if err != nil {
		return nil, err
	}

	matches := make([]CandidateMatch, 0, len(candidates))
	for i, result := range results {
		if result.OverallScore < minScore {
			continue
		}
		matches = append(matches, CandidateMatch{Candidate: candidates[i], Result: result})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Result.OverallScore != matches[j].Result.OverallScore {
			return matches[i].Result.OverallScore > matches[j].Result.OverallScore
		}
		return matches[i].Candidate.ID < matches[j].Candidate.ID
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// RankJobs is the mirror of RankCandidates: one candidate scored against many
// jobs, with the same filter, tie-break and truncation rules.
func RankJobs(cand *models.Candidate, jobs []*models.Job, topK int, minScore float64, opts Options) ([]JobMatch, error) {
	if err := validateRankParams(topK, minScore); err != nil {
		return nil, err
	}

	results, err := scoreAll(len(jobs), func(i int) (*models.MatchResult, error) {
		return Score(jobs[i], cand, opts)
	})
	if err != nil {
		return nil, err
	}

	matches := make([]JobMatch, 0, len(jobs))
	for i, result := range results {
		if result.OverallScore < minScore {
			continue
		}
		matches = append(matches, JobMatch{Job: jobs[i], Result: result})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Result.OverallScore != matches[j].Result.OverallScore {
			return matches[i].Result.OverallScore > matches[j].Result.OverallScore
		}
		return matches[i].Job.ID < matches[j].Job.ID
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

func validateRankParams(topK int, minScore float64) error {
	if topK <= 0 {
		return fmt.Errorf("%w: top_k must be positive, got %d", ErrInvalidInput, topK)
	}
	if minScore < 0 || minScore > 1 {
		return fmt.Errorf("%w: min_score must be within [0,1], got %v", ErrInvalidInput, minScore)
	}
	return nil
}

// scoreAll runs the pure per-pair scoring across a bounded worker pool.
// Individual scores have no ordering dependency; the caller's sort is the
// only synchronization point.
func scoreAll(n int, score func(i int) (*models.MatchResult, error)) ([]*models.MatchResult, error) {
	results := make([]*models.MatchResult, n)
	errs := make([]error, n)

	sem := make(chan struct{}, scoreWorkers)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			results[i], errs[i] = score(i)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
