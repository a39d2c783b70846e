package rls

import (
	"strconv"

	"gorm.io/gorm"
)

// WithChurch pins the transaction to one tenant for row-level security
// policies keyed on app.current_church_id. Only Postgres enforces the
// policies; other dialects are a no-op.
func WithChurch(tx *gorm.DB, churchID int64) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec(
		"SET LOCAL app.current_church_id = ?",
		strconv.FormatInt(churchID, 10),
	).Error
}
