package uwc

import (
	"strings"
	"time"
)

type Outcome string

const (
	OutcomeApproved Outcome = "approved"
	OutcomeDenied   Outcome = "denied"
	OutcomeNoAction Outcome = "no_action"
)

// StaleAfter is how long an active poll is trusted to really be active. Past
// that, its stored status is treated as indeterminate.
const StaleAfter = 72 * time.Hour

// DefaultHistoryLimit caps achievement history summaries unless the caller
// asks otherwise.
const DefaultHistoryLimit = 5

const maxTopResults = 2

// DetermineOutcome classifies a completed poll from its result snapshot.
// Each option is bucketed by keyword, first match wins: "discussion" before
// "yes" before "no". The ordering is a tie-break rule for option texts that
// contain more than one keyword ("Yes, needs discussion"), not an accident.
// A discussion majority must be strict over both other buckets; otherwise a
// strict yes/no majority decides, and any tie (or no results at all) is
// no_action.
func DetermineOutcome(results []UwcPollResult) Outcome {
	var discussion, demote, keep int

	for _, r := range results {
		text := strings.ToLower(r.OptionText)
		switch {
		case strings.Contains(text, "discussion"):
			discussion += r.VoteCount
		case strings.Contains(text, "yes"):
			demote += r.VoteCount
		case strings.Contains(text, "no"):
			keep += r.VoteCount
		}
	}

	if discussion > demote && discussion > keep {
		return OutcomeNoAction
	}
	if demote > keep {
		return OutcomeDenied
	}
	if keep > demote {
		return OutcomeApproved
	}
	return OutcomeNoAction
}

// PollSummary is the caller-facing digest of one past poll.
type PollSummary struct {
	Poll       UwcPoll
	Status     string
	TopResults []UwcPollResult
}

// SummarizePoll digests one poll against its stored results. Completed polls
// report their derived outcome. Active polls older than StaleAfter report
// no_action: the stored status can no longer be trusted, but the real
// outcome is unknown. The top results keep their stored (already
// count-sorted) order, skip zero-count rows, and cap at two.
func SummarizePoll(poll UwcPoll, results []UwcPollResult, now time.Time) PollSummary {
	summary := PollSummary{Poll: poll}

	switch {
	case poll.Status == StatusActive && now.Sub(poll.StartedAt) > StaleAfter:
		summary.Status = string(OutcomeNoAction)
	case poll.Status == StatusActive:
		summary.Status = StatusActive
	default:
		summary.Status = string(DetermineOutcome(results))
	}

	for _, r := range results {
		if r.VoteCount <= 0 {
			continue
		}
		summary.TopResults = append(summary.TopResults, r)
		if len(summary.TopResults) == maxTopResults {
			break
		}
	}

	return summary
}

// SummarizePolls digests a newest-first poll list, capped at limit (or
// DefaultHistoryLimit when limit is not positive). resultsByPoll maps poll id
// to its stored snapshot rows.
func SummarizePolls(polls []UwcPoll, resultsByPoll map[uint][]UwcPollResult, limit int, now time.Time) []PollSummary {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if len(polls) > limit {
		polls = polls[:limit]
	}

	summaries := make([]PollSummary, 0, len(polls))
	for _, p := range polls {
		summaries = append(summaries, SummarizePoll(p, resultsByPoll[p.ID], now))
	}
	return summaries
}

// AchievementHistory pulls the past polls for an achievement and digests
// them. The summaries derive from stored result snapshots only, never from
// live vote data.
func (s *Service) AchievementHistory(achievementId string, limit int) ([]PollSummary, error) {
	polls, err := s.GetUwcPollsByAchievement(achievementId)
	if err != nil {
		return nil, err
	}

	resultsByPoll := make(map[uint][]UwcPollResult, len(polls))
	for _, p := range polls {
		results, err := s.GetUwcPollResults(p.ID)
		if err != nil {
			return nil, err
		}
		resultsByPoll[p.ID] = results
	}

	return SummarizePolls(polls, resultsByPoll, limit, time.Now()), nil
}
