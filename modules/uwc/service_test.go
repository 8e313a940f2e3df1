package uwc

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDb(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %s", err)
	}
	sqlDb, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get raw connection: %s", err)
	}
	// in-memory sqlite is per-connection
	sqlDb.SetMaxOpenConns(1)

	if err = db.AutoMigrate(&UwcPoll{}, &UwcPollResult{}); err != nil {
		t.Fatalf("failed to migrate: %s", err)
	}

	return NewService(db)
}

func startTestPoll(t *testing.T, s *Service, messageId string) *UwcPoll {
	t.Helper()
	poll, err := s.CreateUwcPoll(CreateUwcPollData{
		MessageId:       messageId,
		ChannelId:       "chan-1",
		CreatorId:       "mod-1",
		AchievementId:   "ach-9000",
		AchievementName: "Flawless Run",
		GameId:          "game-42",
		GameName:        "Pixel Quest",
		PollUrl:         "https://discord.com/channels/1/2/" + messageId,
	})
	if err != nil {
		t.Fatalf("failed to create UWC poll: %s", err)
	}
	return poll
}

func TestCreateUwcPoll(t *testing.T) {
	s := openTestDb(t)

	poll := startTestPoll(t, s, "msg-1")

	if poll.Status != StatusActive {
		t.Errorf("new poll should be active, got %s", poll.Status)
	}
	if poll.EndedAt != nil {
		t.Errorf("new poll should have no end time, got %v", poll.EndedAt)
	}

	found, err := s.GetUwcPollByMessageId("msg-1")
	if err != nil {
		t.Fatal(err)
	}
	if found == nil || found.ID != poll.ID {
		t.Errorf("lookup by message id returned %+v", found)
	}

	missing, err := s.GetUwcPollByMessageId("nope")
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown message, got %+v", missing)
	}
}

func TestGetActiveUwcPolls(t *testing.T) {
	s := openTestDb(t)

	startTestPoll(t, s, "msg-1")
	startTestPoll(t, s, "msg-2")
	if _, _, err := s.CompleteUwcPoll("msg-2", nil); err != nil {
		t.Fatal(err)
	}

	active, err := s.GetActiveUwcPolls()
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 || active[0].MessageId != "msg-1" {
		t.Errorf("expected only msg-1 active, got %+v", active)
	}
}

func TestCompleteUwcPoll(t *testing.T) {
	s := openTestDb(t)

	t.Run("writes snapshot rows with the status flip", func(t *testing.T) {
		startTestPoll(t, s, "msg-1")

		poll, rows, err := s.CompleteUwcPoll("msg-1", []ResultInput{
			{OptionText: "Yes, demote", VoteCount: 6, VotePercentage: 60},
			{OptionText: "No, keep", VoteCount: 4, VotePercentage: 40},
		})
		if err != nil {
			t.Fatal(err)
		}
		if poll.Status != StatusCompleted {
			t.Errorf("expected completed, got %s", poll.Status)
		}
		if poll.EndedAt == nil {
			t.Error("completed poll should have an end time")
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 result rows, got %d", len(rows))
		}

		stored, err := s.GetUwcPollResults(poll.ID)
		if err != nil {
			t.Fatal(err)
		}
		if len(stored) != 2 {
			t.Fatalf("expected 2 stored rows, got %d", len(stored))
		}
		if stored[0].VoteCount < stored[1].VoteCount {
			t.Error("results should be ordered by vote count descending")
		}
	})

	t.Run("empty results still complete the poll", func(t *testing.T) {
		startTestPoll(t, s, "msg-2")

		poll, rows, err := s.CompleteUwcPoll("msg-2", nil)
		if err != nil {
			t.Fatal(err)
		}
		if poll.Status != StatusCompleted {
			t.Errorf("expected completed, got %s", poll.Status)
		}
		if len(rows) != 0 {
			t.Errorf("expected no rows, got %d", len(rows))
		}
	})

	t.Run("unknown message id errors with the id", func(t *testing.T) {
		_, _, err := s.CompleteUwcPoll("ghost", nil)
		var notFound *ErrUwcPollNotFound
		if !errors.As(err, &notFound) {
			t.Fatalf("expected ErrUwcPollNotFound, got %v", err)
		}
		if notFound.MessageId != "ghost" {
			t.Errorf("error should carry the message id, got %q", notFound.MessageId)
		}
	})

	t.Run("completing twice errors and writes nothing", func(t *testing.T) {
		poll := startTestPoll(t, s, "msg-3")
		if _, _, err := s.CompleteUwcPoll("msg-3", nil); err != nil {
			t.Fatal(err)
		}

		_, _, err := s.CompleteUwcPoll("msg-3", []ResultInput{{OptionText: "Yes", VoteCount: 1}})
		var done *ErrUwcPollAlreadyCompleted
		if !errors.As(err, &done) {
			t.Fatalf("expected ErrUwcPollAlreadyCompleted, got %v", err)
		}

		rows, err := s.GetUwcPollResults(poll.ID)
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 0 {
			t.Errorf("second completion must not add rows, got %d", len(rows))
		}
	})
}

func TestGetUwcPollsByAchievement(t *testing.T) {
	s := openTestDb(t)
	db := s.db

	older := startTestPoll(t, s, "msg-1")
	newer := startTestPoll(t, s, "msg-2")

	// spread the start times so the ordering is observable
	if err := db.Model(older).Update("started_at", time.Now().Add(-48*time.Hour)).Error; err != nil {
		t.Fatal(err)
	}

	polls, err := s.GetUwcPollsByAchievement("ach-9000")
	if err != nil {
		t.Fatal(err)
	}
	if len(polls) != 2 {
		t.Fatalf("expected 2 polls, got %d", len(polls))
	}
	if polls[0].ID != newer.ID {
		t.Error("polls should be ordered newest first")
	}

	byGame, err := s.GetUwcPollsByGame("game-42")
	if err != nil {
		t.Fatal(err)
	}
	if len(byGame) != 2 {
		t.Fatalf("expected 2 polls by game, got %d", len(byGame))
	}
}

func TestSearchUwcPolls(t *testing.T) {
	s := openTestDb(t)

	startTestPoll(t, s, "msg-1")
	startTestPoll(t, s, "msg-2")
	if _, _, err := s.CompleteUwcPoll("msg-2", nil); err != nil {
		t.Fatal(err)
	}

	t.Run("only completed polls match", func(t *testing.T) {
		matches, err := s.SearchUwcPolls("flawless")
		if err != nil {
			t.Fatal(err)
		}
		if len(matches) != 1 || matches[0].MessageId != "msg-2" {
			t.Errorf("expected only the completed poll, got %+v", matches)
		}
	})

	t.Run("matches game name case-insensitively", func(t *testing.T) {
		matches, err := s.SearchUwcPolls("PIXEL")
		if err != nil {
			t.Fatal(err)
		}
		if len(matches) != 1 {
			t.Errorf("expected 1 match on game name, got %d", len(matches))
		}
	})

	t.Run("no match yields empty list", func(t *testing.T) {
		matches, err := s.SearchUwcPolls("zelda")
		if err != nil {
			t.Fatal(err)
		}
		if len(matches) != 0 {
			t.Errorf("expected no matches, got %+v", matches)
		}
	})
}

func TestAchievementHistory(t *testing.T) {
	s := openTestDb(t)

	startTestPoll(t, s, "msg-1")
	if _, _, err := s.CompleteUwcPoll("msg-1", []ResultInput{
		{OptionText: "Yes, demote", VoteCount: 6, VotePercentage: 60},
		{OptionText: "No, keep", VoteCount: 4, VotePercentage: 40},
	}); err != nil {
		t.Fatal(err)
	}

	summaries, err := s.AchievementHistory("ach-9000", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	if summaries[0].Status != string(OutcomeDenied) {
		t.Errorf("expected denied, got %s", summaries[0].Status)
	}
	if len(summaries[0].TopResults) != 2 {
		t.Errorf("expected 2 top results, got %d", len(summaries[0].TopResults))
	}
}
