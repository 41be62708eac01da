package services

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fitsphere/coaching/pkg/internal/database"
)

func DoAutoDatabaseCleanup() {
	deadline := time.Now().Add(-30 * 24 * time.Hour)
	log.Debug().Time("deadline", deadline).Msg("Now cleaning up entire database...")

	// Deal soft-deletion
	var count int64
	for _, model := range database.AutoMaintainRange {
		tx := database.C.Unscoped().Delete(model, "deleted_at IS NOT NULL AND deleted_at < ?", deadline)
		if tx.Error != nil {
			log.Error().Err(tx.Error).Msg("An error occurred when running database cleanup...")
		}
		count += tx.RowsAffected
	}

	log.Debug().Int64("affected", count).Msg("Clean up entire database accomplished.")
}
