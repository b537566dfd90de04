package services

import (
	"errors"
	"fmt"

	"github.com/pulsenet/pulse/pkg/internal/database"
	"github.com/pulsenet/pulse/pkg/internal/models"
	"gorm.io/gorm"
)

func GetSubscriptionOnAccount(followerID, targetID uint) (*models.Subscription, error) {
	var subscription models.Subscription
	if err := database.C.Where("follower_id = ? AND account_id = ?", followerID, targetID).First(&subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("unable to get subscription: %v", err)
	}
	return &subscription, nil
}

func SubscribeToAccount(followerID, targetID uint) (models.Subscription, error) {
	var subscription models.Subscription
	if followerID == targetID {
		return subscription, fmt.Errorf("%w: you cannot subscribe to yourself", ErrConflict)
	}

	var target models.Account
	if err := database.C.Select("id").Where("id = ?", targetID).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return subscription, fmt.Errorf("%w: account #%d", ErrNotFound, targetID)
		}
		return subscription, err
	}

	if existing, err := GetSubscriptionOnAccount(followerID, targetID); err != nil {
		return subscription, err
	} else if existing != nil {
		return subscription, fmt.Errorf("%w: subscription already exists", ErrConflict)
	}

	subscription = models.Subscription{
		FollowerID: followerID,
		AccountID:  targetID,
	}

	err := database.C.Save(&subscription).Error
	return subscription, err
}

func UnsubscribeFromAccount(followerID, targetID uint) error {
	existing, err := GetSubscriptionOnAccount(followerID, targetID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: subscription does not exist", ErrNotFound)
	}

	return database.C.Delete(existing).Error
}

// ListSubscriptions returns who the user follows, newest edge first.
func ListSubscriptions(followerID uint) ([]models.Subscription, error) {
	var subscriptions []models.Subscription
	if err := database.C.Where("follower_id = ?", followerID).
		Preload("Account").
		Order("created_at DESC").
		Find(&subscriptions).Error; err != nil {
		return subscriptions, fmt.Errorf("unable to list subscriptions: %v", err)
	}
	return subscriptions, nil
}

// ListSubscribers returns who follows the user, newest edge first.
func ListSubscribers(accountID uint) ([]models.Subscription, error) {
	var subscriptions []models.Subscription
	if err := database.C.Where("account_id = ?", accountID).
		Preload("Follower").
		Order("created_at DESC").
		Find(&subscriptions).Error; err != nil {
		return subscriptions, fmt.Errorf("unable to list subscribers: %v", err)
	}
	return subscriptions, nil
}

// ListMutualSubscriptions returns the accounts the user follows that
// follow the user back. Both directions are required; a single edge is
// never treated as symmetric.
func ListMutualSubscriptions(accountID uint) ([]models.Account, error) {
	var accounts []models.Account
	if err := database.C.
		Where("id IN (?)",
			database.C.Model(&models.Subscription{}).
				Select("subscriptions.account_id").
				Where("subscriptions.follower_id = ?", accountID).
				Where("EXISTS (SELECT 1 FROM subscriptions back WHERE back.follower_id = subscriptions.account_id AND back.account_id = ?)", accountID),
		).
		Order("login ASC").
		Find(&accounts).Error; err != nil {
		return accounts, fmt.Errorf("unable to list mutual subscriptions: %v", err)
	}
	return accounts, nil
}
