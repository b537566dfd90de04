package database

import (
	"github.com/pulsenet/pulse/pkg/internal/models"
	"gorm.io/gorm"
)

var AutoMaintainRange = []any{
	&models.Account{},
	&models.Hashtag{},
	&models.Post{},
	&models.Rating{},
	&models.Subscription{},
}

func RunMigration(source *gorm.DB) error {
	if err := source.SetupJoinTable(&models.Post{}, "Hashtags", &models.PostHashtag{}); err != nil {
		return err
	}

	if err := source.AutoMigrate(
		append(
			AutoMaintainRange,
			&models.AuthSession{},
		)...,
	); err != nil {
		return err
	}

	return nil
}
