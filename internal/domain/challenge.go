package domain

// FreeDeluxeChallengeKey marks an upgrade obtained without any recorded payment
const FreeDeluxeChallengeKey = "freeDeluxeChallenge"

// Challenge is a progress milestone that flips to solved once
type Challenge struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Key         string `gorm:"column:challenge_key;uniqueIndex;size:64;not null" json:"key"`
	Name        string `gorm:"size:255" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Solved      bool   `gorm:"not null;default:false" json:"solved"`
	SolvedAt    *int64 `json:"solvedAt,omitempty"` // Unix millis
}
