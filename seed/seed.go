// seed/seed.go
package seed

import (
	"errors"
	"log"
	"os"
	"strconv"

	"gorm.io/gorm"

	"zid-retention-server/models"
	"zid-retention-server/utils"
)

// SeedDemoMerchant installs a local demo store when DEMO_STORE_ID and
// DEMO_ACCESS_TOKEN are set, so the dashboard works without a real OAuth
// round trip. No-op in normal deployments.
func SeedDemoMerchant() error {
	storeID, err := strconv.ParseInt(os.Getenv("DEMO_STORE_ID"), 10, 64)
	if err != nil || storeID == 0 {
		return nil
	}
	accessToken := os.Getenv("DEMO_ACCESS_TOKEN")
	if accessToken == "" {
		return nil
	}

	var existing models.Merchant
	err = utils.RetentionDB.Where("store_id = ?", storeID).First(&existing).Error
	if err == nil {
		log.Println("Demo merchant already exists. Skipping seeding.")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	merchant := models.Merchant{
		StoreID:     storeID,
		StoreName:   os.Getenv("DEMO_STORE_NAME"),
		AccessToken: accessToken,
	}
	if err := utils.RetentionDB.Create(&merchant).Error; err != nil {
		return err
	}

	log.Printf("Demo merchant seeded for store %d.", storeID)
	return nil
}
