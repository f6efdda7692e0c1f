package auth

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// CredentialDTO is a partner's sign-in credential. TokenVersion is embedded in every
// issued token; bumping it revokes them all.
type CredentialDTO struct {
	PartnerID      string     `gorm:"primaryKey"`
	Email          string     `gorm:"uniqueIndex;not null"`
	PasswordHash   string     `gorm:"not null"`
	Disabled       bool       `gorm:"not null;default:false"`
	FailedAttempts int        `gorm:"not null;default:0"`
	LockedUntil    *time.Time `gorm:"column:locked_until"`
	TokenVersion   int        `gorm:"not null;default:1"`
	CreatedAt      time.Time  `gorm:"autoCreateTime:false"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime:false"`
}

func (CredentialDTO) TableName() string {
	return "credentials"
}

// Migrate creates or updates the credential table.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(&CredentialDTO{})
}
