package uwc

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

type ErrUwcPollNotFound struct {
	MessageId string
}

func (e *ErrUwcPollNotFound) Error() string {
	return fmt.Sprintf("no UWC poll for message %s", e.MessageId)
}

type ErrUwcPollAlreadyCompleted struct {
	MessageId string
}

func (e *ErrUwcPollAlreadyCompleted) Error() string {
	return fmt.Sprintf("UWC poll for message %s is already completed", e.MessageId)
}

// CreateUwcPollData carries the caller-supplied fields for a new UWC poll.
// Status and end time are not part of it; a poll always starts active and
// open-ended no matter what the caller intended.
type CreateUwcPollData struct {
	MessageId       string
	ChannelId       string
	ThreadId        string
	CreatorId       string
	AchievementId   string
	AchievementName string
	GameId          string
	GameName        string
	PollUrl         string
}

// ResultInput is one tallied option handed to CompleteUwcPoll.
type ResultInput struct {
	OptionText     string
	VoteCount      int
	VotePercentage float64
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) CreateUwcPoll(data CreateUwcPollData) (*UwcPoll, error) {
	poll := &UwcPoll{
		MessageId:       data.MessageId,
		ChannelId:       data.ChannelId,
		ThreadId:        data.ThreadId,
		CreatorId:       data.CreatorId,
		AchievementId:   data.AchievementId,
		AchievementName: data.AchievementName,
		GameId:          data.GameId,
		GameName:        data.GameName,
		PollUrl:         data.PollUrl,
		Status:          StatusActive,
		StartedAt:       time.Now(),
		EndedAt:         nil,
	}
	err := s.db.Create(poll).Error
	if err != nil {
		return nil, err
	}
	return poll, nil
}

func (s *Service) GetUwcPollByMessageId(messageId string) (*UwcPoll, error) {
	poll := &UwcPoll{}
	err := s.db.First(poll, "message_id = ?", messageId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return poll, nil
}

// GetActiveUwcPolls checks both the status and the end time, so a row left
// half-consistent by hand edits does not count as active.
func (s *Service) GetActiveUwcPolls() ([]UwcPoll, error) {
	var list []UwcPoll
	err := s.db.Where("status = ? AND ended_at IS NULL", StatusActive).Find(&list).Error
	return list, err
}

// CompleteUwcPoll flips the poll to completed and writes its result snapshot
// rows as one unit. The status flip is guarded on the current status, so of
// two racing completions exactly one wins and the loser gets
// ErrUwcPollAlreadyCompleted. An empty results list is a valid completion
// with no rows written.
func (s *Service) CompleteUwcPoll(messageId string, results []ResultInput) (*UwcPoll, []UwcPollResult, error) {
	poll := &UwcPoll{}
	var rows []UwcPollResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(poll, "message_id = ?", messageId).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ErrUwcPollNotFound{MessageId: messageId}
		}
		if err != nil {
			return err
		}

		now := time.Now()
		update := tx.Model(&UwcPoll{}).
			Where("message_id = ? AND status = ?", messageId, StatusActive).
			Updates(map[string]interface{}{"status": StatusCompleted, "ended_at": now})
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			return &ErrUwcPollAlreadyCompleted{MessageId: messageId}
		}

		poll.Status = StatusCompleted
		poll.EndedAt = &now

		if len(results) == 0 {
			return nil
		}

		rows = make([]UwcPollResult, 0, len(results))
		for _, r := range results {
			rows = append(rows, UwcPollResult{
				UwcPollID:      poll.ID,
				OptionText:     r.OptionText,
				VoteCount:      r.VoteCount,
				VotePercentage: r.VotePercentage,
			})
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return poll, rows, nil
}

func (s *Service) GetUwcPollsByAchievement(achievementId string) ([]UwcPoll, error) {
	var list []UwcPoll
	err := s.db.Where("achievement_id = ?", achievementId).Order("started_at DESC").Find(&list).Error
	return list, err
}

func (s *Service) GetUwcPollsByGame(gameId string) ([]UwcPoll, error) {
	var list []UwcPoll
	err := s.db.Where("game_id = ?", gameId).Order("started_at DESC").Find(&list).Error
	return list, err
}

func (s *Service) GetUwcPollResults(uwcPollId uint) ([]UwcPollResult, error) {
	var list []UwcPollResult
	err := s.db.Where("uwc_poll_id = ?", uwcPollId).Order("vote_count DESC").Find(&list).Error
	return list, err
}

// SearchUwcPolls matches completed polls whose achievement or game name
// contains the term, case-insensitively, newest first.
func (s *Service) SearchUwcPolls(term string) ([]UwcPoll, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	var list []UwcPoll
	err := s.db.
		Where("status = ?", StatusCompleted).
		Where("LOWER(achievement_name) LIKE ? OR LOWER(game_name) LIKE ?", pattern, pattern).
		Order("started_at DESC").
		Find(&list).Error
	return list, err
}
