package polls

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrOptionOutOfRange is returned when a vote names an option index the poll
// does not have.
type ErrOptionOutOfRange struct {
	Index   int
	Options int
}

func (e *ErrOptionOutOfRange) Error() string {
	return fmt.Sprintf("option %d is out of range, poll has %d options", e.Index, e.Options)
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreatePoll stores a new poll. Each option text is wrapped into a
// PollOption with an empty vote list before serialization. A duplicate
// message id surfaces as the storage layer's unique-constraint error.
func (s *Service) CreatePoll(messageId, channelId, creatorId, question string, optionTexts []string, endAt *time.Time) (*Poll, error) {
	options := make([]PollOption, 0, len(optionTexts))
	for _, text := range optionTexts {
		options = append(options, PollOption{Text: text, Votes: []string{}})
	}

	poll := &Poll{
		MessageId: messageId,
		ChannelId: channelId,
		CreatorId: creatorId,
		Question:  question,
		Options:   options,
		EndAt:     endAt,
	}
	err := s.db.Create(poll).Error
	if err != nil {
		return nil, err
	}
	return poll, nil
}

func (s *Service) GetPoll(messageId string) (*Poll, error) {
	poll := &Poll{}
	err := s.db.First(poll, "message_id = ?", messageId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return poll, nil
}

// AddVote records a vote, enforcing one vote per user per poll. It returns
// true when the vote was stored and false when the user had already voted;
// an existing vote is never overwritten. The duplicate check rides on the
// composite key conflict so two racing votes cannot both land.
func (s *Service) AddVote(pollId uint, userId string, optionIndex int) (bool, error) {
	poll := &Poll{}
	err := s.db.First(poll, pollId).Error
	if err != nil {
		return false, err
	}

	if optionIndex < 0 || optionIndex >= len(poll.Options) {
		return false, &ErrOptionOutOfRange{Index: optionIndex, Options: len(poll.Options)}
	}

	vote := &Vote{PollID: pollId, UserId: userId, OptionIndex: optionIndex}
	result := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "poll_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(vote)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (s *Service) GetUserVote(pollId uint, userId string) (*Vote, error) {
	vote := &Vote{}
	err := s.db.First(vote, "poll_id = ? AND user_id = ?", pollId, userId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return vote, nil
}

// GetPollResults tallies votes per option index. Indexes nobody voted for do
// not appear in the map.
func (s *Service) GetPollResults(pollId uint) (map[int]int, error) {
	var votes []Vote
	err := s.db.Where("poll_id = ?", pollId).Find(&votes).Error
	if err != nil {
		return nil, err
	}

	results := make(map[int]int)
	for _, v := range votes {
		results[v.OptionIndex]++
	}
	return results, nil
}

// GetActivePolls returns polls that are still open for voting: no end time,
// or an end time that has not passed yet.
func (s *Service) GetActivePolls() ([]Poll, error) {
	var list []Poll
	err := s.db.Where("end_at IS NULL OR end_at > ?", time.Now()).Find(&list).Error
	return list, err
}
