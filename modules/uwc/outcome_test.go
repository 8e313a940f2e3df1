package uwc

import (
	"testing"
	"time"
)

func results(pairs ...interface{}) []UwcPollResult {
	list := make([]UwcPollResult, 0, len(pairs)/2)
	for k := 0; k < len(pairs); k += 2 {
		list = append(list, UwcPollResult{OptionText: pairs[k].(string), VoteCount: pairs[k+1].(int)})
	}
	return list
}

func TestDetermineOutcome(t *testing.T) {
	t.Run("demote majority denies", func(t *testing.T) {
		out := DetermineOutcome(results("Yes, demote", 6, "No, keep", 4))
		if out != OutcomeDenied {
			t.Errorf("expected denied, got %s", out)
		}
	})

	t.Run("keep majority approves", func(t *testing.T) {
		out := DetermineOutcome(results("No, keep", 6, "Yes, demote", 4))
		if out != OutcomeApproved {
			t.Errorf("expected approved, got %s", out)
		}
	})

	t.Run("strict discussion majority is no action", func(t *testing.T) {
		out := DetermineOutcome(results("Need further discussion", 5, "Yes", 3, "No", 2))
		if out != OutcomeNoAction {
			t.Errorf("expected no_action, got %s", out)
		}
	})

	t.Run("discussion only ties the largest bucket", func(t *testing.T) {
		// discussion not strictly greater than demote, so yes/no decide
		out := DetermineOutcome(results("Need further discussion", 5, "Yes", 5, "No", 2))
		if out != OutcomeDenied {
			t.Errorf("expected denied, got %s", out)
		}
	})

	t.Run("tie is no action", func(t *testing.T) {
		out := DetermineOutcome(results("Yes", 5, "No", 5))
		if out != OutcomeNoAction {
			t.Errorf("expected no_action, got %s", out)
		}
	})

	t.Run("empty results is no action", func(t *testing.T) {
		out := DetermineOutcome(nil)
		if out != OutcomeNoAction {
			t.Errorf("expected no_action, got %s", out)
		}
	})

	t.Run("discussion keyword outranks yes and no in one option", func(t *testing.T) {
		// "Yes, but needs discussion" must land in the discussion bucket
		out := DetermineOutcome(results("Yes, but needs discussion", 7, "Yes", 2, "No", 3))
		if out != OutcomeNoAction {
			t.Errorf("expected no_action, got %s", out)
		}
	})

	t.Run("yes outranks no within one option", func(t *testing.T) {
		// "Yes and no" counts as a demote vote
		out := DetermineOutcome(results("Yes and no", 3, "No", 2))
		if out != OutcomeDenied {
			t.Errorf("expected denied, got %s", out)
		}
	})
}

func TestSummarizePoll(t *testing.T) {
	now := time.Now()

	t.Run("stale active poll downgrades to no action", func(t *testing.T) {
		poll := UwcPoll{Status: StatusActive, StartedAt: now.Add(-80 * time.Hour)}
		summary := SummarizePoll(poll, nil, now)
		if summary.Status != string(OutcomeNoAction) {
			t.Errorf("expected no_action, got %s", summary.Status)
		}
	})

	t.Run("fresh active poll stays active", func(t *testing.T) {
		poll := UwcPoll{Status: StatusActive, StartedAt: now.Add(-10 * time.Hour)}
		summary := SummarizePoll(poll, nil, now)
		if summary.Status != StatusActive {
			t.Errorf("expected active, got %s", summary.Status)
		}
	})

	t.Run("completed poll reports its outcome", func(t *testing.T) {
		poll := UwcPoll{Status: StatusCompleted, StartedAt: now.Add(-100 * time.Hour)}
		summary := SummarizePoll(poll, results("No, keep", 6, "Yes, demote", 4), now)
		if summary.Status != string(OutcomeApproved) {
			t.Errorf("expected approved, got %s", summary.Status)
		}
	})

	t.Run("top results skip zero counts and cap at two", func(t *testing.T) {
		poll := UwcPoll{Status: StatusCompleted, StartedAt: now}
		rows := results("Yes", 6, "No", 4, "Discussion", 1, "Abstain", 0)
		summary := SummarizePoll(poll, rows, now)
		if len(summary.TopResults) != 2 {
			t.Fatalf("expected 2 top results, got %d", len(summary.TopResults))
		}
		if summary.TopResults[0].OptionText != "Yes" || summary.TopResults[1].OptionText != "No" {
			t.Errorf("top results should keep stored order, got %+v", summary.TopResults)
		}
	})

	t.Run("zero count rows never surface", func(t *testing.T) {
		poll := UwcPoll{Status: StatusCompleted, StartedAt: now}
		summary := SummarizePoll(poll, results("Yes", 0, "No", 0), now)
		if len(summary.TopResults) != 0 {
			t.Errorf("expected no top results, got %+v", summary.TopResults)
		}
	})
}

func TestSummarizePolls(t *testing.T) {
	now := time.Now()

	polls := make([]UwcPoll, 0, 7)
	for k := 0; k < 7; k++ {
		polls = append(polls, UwcPoll{ID: uint(k + 1), Status: StatusCompleted, StartedAt: now.Add(-time.Duration(k) * time.Hour)})
	}

	t.Run("default limit caps at five", func(t *testing.T) {
		summaries := SummarizePolls(polls, nil, 0, now)
		if len(summaries) != DefaultHistoryLimit {
			t.Errorf("expected %d summaries, got %d", DefaultHistoryLimit, len(summaries))
		}
	})

	t.Run("explicit limit is honored", func(t *testing.T) {
		summaries := SummarizePolls(polls, nil, 2, now)
		if len(summaries) != 2 {
			t.Errorf("expected 2 summaries, got %d", len(summaries))
		}
		if summaries[0].Poll.ID != 1 {
			t.Error("summaries should keep the newest-first input order")
		}
	})

	t.Run("results map feeds outcomes", func(t *testing.T) {
		resultsByPoll := map[uint][]UwcPollResult{
			1: results("Yes, demote", 6, "No, keep", 4),
		}
		summaries := SummarizePolls(polls[:1], resultsByPoll, 0, now)
		if summaries[0].Status != string(OutcomeDenied) {
			t.Errorf("expected denied, got %s", summaries[0].Status)
		}
	})
}
