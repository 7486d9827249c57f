package models

import "time"

// AccountModel stores a bare-domain claim with Address set to the empty string,
// so the composite unique index holds on every dialect (NULLs never collide).
type AccountModel struct {
	ID        uint   `gorm:"primaryKey"`
	WalletID  uint   `gorm:"not null;index"`
	Domain    string `gorm:"size:253;not null;uniqueIndex:idx_accounts_name_owner,priority:1"`
	Address   string `gorm:"size:64;not null;uniqueIndex:idx_accounts_name_owner,priority:2"`
	OwnerKey  string `gorm:"size:255;not null;uniqueIndex:idx_accounts_name_owner,priority:3"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AccountModel) TableName() string {
	return "accounts"
}
