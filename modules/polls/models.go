package polls

import "time"

// PollOption is one selectable choice. Options are stored as a single
// serialized column on the poll row; vote rows are the source of truth for
// tallies, the embedded Votes list only exists so freshly created options
// start out explicitly empty.
type PollOption struct {
	Text  string   `json:"text"`
	Votes []string `json:"votes"`
}

type Poll struct {
	ID        uint         `gorm:"primaryKey"`
	MessageId string       `gorm:"uniqueIndex;size:32"`
	ChannelId string       `gorm:"size:32"`
	CreatorId string       `gorm:"size:32"`
	Question  string
	Options   []PollOption `gorm:"serializer:json"`
	EndAt     *time.Time
	CreatedAt time.Time

	Votes []Vote `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE"`
}

type Vote struct {
	PollID      uint   `gorm:"primaryKey"`
	UserId      string `gorm:"primaryKey;size:32"`
	OptionIndex int
	CreatedAt   time.Time
}
