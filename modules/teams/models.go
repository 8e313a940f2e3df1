package teams

import "time"

type Team struct {
	ID        string `gorm:"primaryKey;size:64"`
	Name      string `gorm:"uniqueIndex;size:191;not null"`
	AddedBy   string `gorm:"size:32"`
	CreatedAt time.Time

	Members []TeamMember `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
}

type TeamMember struct {
	TeamID  string    `gorm:"primaryKey;size:64"`
	UserID  string    `gorm:"primaryKey;size:32"`
	AddedBy string    `gorm:"size:32"`
	AddedAt time.Time `gorm:"autoCreateTime"`
}
