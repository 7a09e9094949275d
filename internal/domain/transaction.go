package domain

// Ledger entry types
const (
	TransactionDeposit       = "deposit"
	TransactionDeluxeUpgrade = "deluxe_upgrade"
)

// Transaction Model
type Transaction struct {
	ID           uint    `gorm:"primaryKey" json:"id"`                  // Primary key
	FromWalletID *uint   `json:"fromWalletId,omitempty"`                // Wallet that was debited
	ToWalletID   *uint   `json:"toWalletId,omitempty"`                  // Wallet that was credited
	Amount       float64 `json:"amount"`                                // Amount of the transaction
	Type         string  `gorm:"size:32" json:"type"`                   // Transaction type: deposit, deluxe_upgrade
	CreatedAt    int64   `gorm:"autoCreateTime:milli" json:"createdAt"` // Timestamp of creation in milliseconds
}
