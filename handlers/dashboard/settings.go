package dashboard

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"zid-retention-server/models"
	"zid-retention-server/utils"
)

// UpdateProductSetting upserts the reminder configuration for one product.
// The request is validated in full before anything is written.
func UpdateProductSetting(c *gin.Context) {
	productID := c.Param("id")

	var req struct {
		StoreID         int64  `json:"store_id"`
		ProductName     string `json:"product_name"`
		AvgDaysToFinish *int   `json:"avg_days_to_finish"`
		OffsetDays      *int   `json:"offset_days"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if req.StoreID == 0 || req.AvgDaysToFinish == nil || req.OffsetDays == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing required fields: store_id, avg_days_to_finish, offset_days",
		})
		return
	}
	if *req.AvgDaysToFinish <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avg_days_to_finish must be a positive number of days"})
		return
	}
	if *req.OffsetDays < 0 || *req.OffsetDays >= *req.AvgDaysToFinish {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offset_days must be between 0 and avg_days_to_finish"})
		return
	}

	if _, err := findMerchant(req.StoreID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings", "details": err.Error()})
		return
	}

	setting := models.ProductSetting{
		ProductID:       productID,
		StoreID:         req.StoreID,
		ProductName:     req.ProductName,
		AvgDaysToFinish: *req.AvgDaysToFinish,
		OffsetDays:      *req.OffsetDays,
	}

	err := utils.RetentionDB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}, {Name: "store_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"product_name", "avg_days_to_finish", "offset_days", "updated_at",
		}),
	}).Create(&setting).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Product settings updated",
		"product_id": productID,
		"settings": gin.H{
			"avg_days_to_finish": *req.AvgDaysToFinish,
			"offset_days":        *req.OffsetDays,
		},
	})
}
