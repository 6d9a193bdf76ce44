package migrations

import (
	"zid-retention-server/models"
	"zid-retention-server/utils"
)

func MigrateReminders() {
	utils.RetentionDB.AutoMigrate(&models.ProductSetting{}, &models.Reminder{})
}
