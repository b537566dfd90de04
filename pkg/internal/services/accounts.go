package services

import (
	"errors"
	"fmt"

	"github.com/pulsenet/pulse/pkg/internal/database"
	"github.com/pulsenet/pulse/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func GetAccount(id uint) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, fmt.Errorf("%w: account #%d", ErrNotFound, id)
		}
		return account, err
	}
	return account, nil
}

func GetAccountByLogin(login string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("login = ?", login).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, fmt.Errorf("%w: account %s", ErrNotFound, login)
		}
		return account, err
	}
	return account, nil
}

// CreateAccount registers a new account. The unique index on login is
// the single authority on taken names, so two concurrent registrations
// of the same login cannot both get through the insert.
func CreateAccount(login, password string) (models.Account, error) {
	var account models.Account
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return account, fmt.Errorf("unable to hash password: %v", err)
	}

	account = models.Account{
		Login:    login,
		Password: string(hash),
		Role:     models.RoleUser,
	}

	if err := database.C.Create(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return account, fmt.Errorf("%w: login %s is already taken", ErrConflict, login)
		}
		return account, err
	}

	return account, nil
}

// AuthenticateAccount verifies credentials. An unknown login and a
// wrong password are indistinguishable to the caller.
func AuthenticateAccount(login, password string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("login = ?", login).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, fmt.Errorf("%w: invalid login or password", ErrUnauthorized)
		}
		return account, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return account, fmt.Errorf("%w: invalid login or password", ErrUnauthorized)
	}

	return account, nil
}

// DeleteAccount removes a user. Their ratings, subscription edges (both
// directions) and sessions always go with them; the posts only when
// deletePosts is set, each through the cascading post delete.
func DeleteAccount(targetID uint, actor models.Principal, deletePosts bool) error {
	target, err := GetAccount(targetID)
	if err != nil {
		return err
	}

	if !CanAct(actor, target.ID, ActionDeleteAccount) {
		return fmt.Errorf("%w: you cannot delete this account", ErrForbidden)
	}

	return database.C.Transaction(func(tx *gorm.DB) error {
		if deletePosts {
			var posts []models.Post
			if err := tx.Where("author_id = ?", target.ID).Find(&posts).Error; err != nil {
				return err
			}
			for _, post := range posts {
				if err := DeletePostCascading(tx, post); err != nil {
					return err
				}
			}
		}

		if err := tx.Where("account_id = ?", target.ID).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR account_id = ?", target.ID, target.ID).
			Delete(&models.Subscription{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", target.ID).Delete(&models.AuthSession{}).Error; err != nil {
			return err
		}

		return tx.Delete(&target).Error
	})
}

func ChangeAccountRole(targetID uint, role models.AccountRole, actor models.Principal) (models.Account, error) {
	var account models.Account
	if !role.Valid() {
		return account, fmt.Errorf("%w: unknown role %s", ErrInvalidArgument, role)
	}

	account, err := GetAccount(targetID)
	if err != nil {
		return account, err
	}

	if !CanAct(actor, account.ID, ActionChangeRole) {
		return account, fmt.Errorf("%w: you cannot change this account's role", ErrForbidden)
	}

	account.Role = role
	if err := database.C.Save(&account).Error; err != nil {
		return account, err
	}

	return account, nil
}

type AccountRatingEntry struct {
	ID            uint               `json:"id"`
	Login         string             `json:"login"`
	Role          models.AccountRole `json:"role"`
	TotalRating   int64              `json:"total_rating"`
	AverageRating float64            `json:"average_rating"`
	PostCount     int64              `json:"post_count"`
}

// ListAccountRating builds the rating leaderboard. Aggregates are
// computed on read over every account's posts.
func ListAccountRating(orderBy string, p Pagination) ([]AccountRatingEntry, int64, error) {
	order := "total_rating DESC"
	if orderBy == "average" {
		order = "average_rating DESC"
	}

	var entries []AccountRatingEntry
	if err := database.C.Model(&models.Account{}).
		Select(`accounts.id, accounts.login, accounts.role,
			COALESCE(SUM(ratings.value), 0) AS total_rating,
			COALESCE(AVG(ratings.value), 0) AS average_rating,
			COUNT(DISTINCT posts.id) AS post_count`).
		Joins("LEFT JOIN posts ON posts.author_id = accounts.id").
		Joins("LEFT JOIN ratings ON ratings.post_id = posts.id").
		Group("accounts.id").
		Order(order).
		Limit(p.Take()).Offset(p.Offset()).
		Scan(&entries).Error; err != nil {
		return entries, 0, err
	}

	var count int64
	if err := database.C.Model(&models.Account{}).Count(&count).Error; err != nil {
		return entries, count, err
	}

	return entries, count, nil
}

// EnsureFirstAdmin seeds an administrator account on a fresh database
// so role management is reachable at all.
func EnsureFirstAdmin() error {
	var existing models.Account
	err := database.C.Select("id").Where("role = ?", models.RoleAdmin).First(&existing).Error
	if err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	login := viper.GetString("security.admin_login")
	password := viper.GetString("security.admin_password")

	account, err := CreateAccount(login, password)
	if err != nil {
		return fmt.Errorf("unable to seed admin account: %v", err)
	}

	account.Role = models.RoleAdmin
	if err := database.C.Save(&account).Error; err != nil {
		return err
	}

	log.Info().Str("login", login).Msg("Seeded the first admin account.")
	return nil
}
