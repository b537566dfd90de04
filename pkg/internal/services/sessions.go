package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pulsenet/pulse/pkg/internal/database"
	"github.com/pulsenet/pulse/pkg/internal/models"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

func sessionLifetime() time.Duration {
	if secs := viper.GetInt64("security.session_lifetime"); secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 30 * 24 * time.Hour
}

func IssueSession(accountID uint) (models.AuthSession, error) {
	session := models.AuthSession{
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(sessionLifetime()),
		AccountID: accountID,
	}

	if err := database.C.Create(&session).Error; err != nil {
		return session, err
	}

	return session, nil
}

// ResolveSession turns a cookie token into the account it belongs to.
// A missing, unknown or expired token resolves to anonymous (nil), not
// to an error.
func ResolveSession(token string) (*models.Account, error) {
	if len(token) == 0 {
		return nil, nil
	}

	var session models.AuthSession
	if err := database.C.Where("token = ?", token).
		Preload("Account").
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		return nil, nil
	}

	return &session.Account, nil
}

// RevokeSession drops a session token; revoking twice is harmless.
func RevokeSession(token string) error {
	if len(token) == 0 {
		return nil
	}
	return database.C.Where("token = ?", token).Delete(&models.AuthSession{}).Error
}

func RevokeAccountSessions(accountID uint) error {
	return database.C.Where("account_id = ?", accountID).Delete(&models.AuthSession{}).Error
}
