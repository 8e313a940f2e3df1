package uwc

import "time"

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

type UwcPoll struct {
	ID              uint   `gorm:"primaryKey"`
	MessageId       string `gorm:"uniqueIndex;size:32"`
	ChannelId       string `gorm:"size:32"`
	ThreadId        string `gorm:"size:32"`
	CreatorId       string `gorm:"size:32"`
	AchievementId   string `gorm:"index;size:32"`
	AchievementName string
	GameId          string `gorm:"index;size:32"`
	GameName        string
	PollUrl         string
	Status          string `gorm:"size:16;index"`
	StartedAt       time.Time
	EndedAt         *time.Time

	Results []UwcPollResult `gorm:"foreignKey:UwcPollID;constraint:OnDelete:CASCADE"`
}

// UwcPollResult is a snapshot row written once at completion. Percentages
// are stored as computed at completion time, never re-derived on read.
type UwcPollResult struct {
	ID             uint `gorm:"primaryKey"`
	UwcPollID      uint `gorm:"index;not null"`
	OptionText     string
	VoteCount      int
	VotePercentage float64
}
