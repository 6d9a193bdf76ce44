package migrations

import (
	"zid-retention-server/models"
	"zid-retention-server/utils"
)

func MigrateMerchantsAndCustomers() {
	utils.RetentionDB.AutoMigrate(&models.Merchant{}, &models.Customer{})
}
