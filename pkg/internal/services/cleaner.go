package services

import (
	"time"

	"github.com/pulsenet/pulse/pkg/internal/database"
	"github.com/pulsenet/pulse/pkg/internal/models"
	"github.com/rs/zerolog/log"
)

// DoAutoDatabaseCleanup sweeps rows nothing references anymore: expired
// sessions, and hashtag links or ratings whose post vanished in a crash
// between the statements of a delete. Post deletion cleans up after
// itself transactionally; this is the safety net behind it.
func DoAutoDatabaseCleanup() {
	log.Debug().Msg("Now cleaning up the database...")

	var count int64

	if tx := database.C.
		Where("expires_at < ?", time.Now()).
		Delete(&models.AuthSession{}); tx.Error != nil {
		log.Error().Err(tx.Error).Msg("An error occurred when cleaning up expired sessions...")
	} else {
		count += tx.RowsAffected
	}

	if tx := database.C.
		Where("post_id NOT IN (?)", database.C.Model(&models.Post{}).Select("id")).
		Delete(&models.PostHashtag{}); tx.Error != nil {
		log.Error().Err(tx.Error).Msg("An error occurred when cleaning up orphaned hashtag links...")
	} else {
		count += tx.RowsAffected
	}

	if tx := database.C.
		Where("post_id NOT IN (?)", database.C.Model(&models.Post{}).Select("id")).
		Delete(&models.Rating{}); tx.Error != nil {
		log.Error().Err(tx.Error).Msg("An error occurred when cleaning up orphaned ratings...")
	} else {
		count += tx.RowsAffected
	}

	log.Debug().Int64("affected", count).Msg("Database cleanup tasks are done.")
}
