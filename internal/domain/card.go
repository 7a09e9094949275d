package domain

// Card is a stored payment card. Only local bookkeeping, never charged.
type Card struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"index;not null" json:"userId"`
	FullName string `gorm:"size:255;not null" json:"fullName"`
	CardNum  string `gorm:"size:32;not null" json:"cardNum"` // Masked, last four digits visible
	ExpMonth int    `gorm:"not null" json:"expMonth"`        // 1-indexed
	ExpYear  int    `gorm:"not null" json:"expYear"`
}
