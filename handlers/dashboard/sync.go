package dashboard

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"zid-retention-server/handlers/auth"
	"zid-retention-server/models"
	"zid-retention-server/services/messaging"
	"zid-retention-server/services/segmentation"
	"zid-retention-server/utils"
	"zid-retention-server/zid"
)

// storeIDFromBody resolves the store id from the dashboard token first, then
// the request body.
func storeIDFromBody(c *gin.Context, bodyStoreID int64) (int64, bool) {
	if storeID, ok := auth.StoreIDFromContext(c); ok {
		return storeID, true
	}
	if bodyStoreID != 0 {
		return bodyStoreID, true
	}
	return 0, false
}

// SyncCustomers triggers a full segmentation sync for the store.
func SyncCustomers(c *gin.Context) {
	var req struct {
		StoreID int64 `json:"store_id"`
	}
	_ = c.ShouldBindJSON(&req)

	storeID, ok := storeIDFromBody(c, req.StoreID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store_id required"})
		return
	}

	merchant, err := findMerchant(storeID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found. Please install first."})
		return
	}

	service := segmentation.NewService(utils.RetentionDB, storeID, zid.NewClient(merchant.AccessToken))
	result, err := service.SyncCustomers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sync failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Customer sync completed",
		"created": result.Created,
		"updated": result.Updated,
		"total":   result.Total,
	})
}

// validMessageTags are the segment tags a dashboard message may target. VIP
// is addressable here even though it is not a lifecycle segment.
var validMessageTags = []string{models.SegmentNew, models.SegmentAtRisk, "VIP", models.SegmentChurned}

// SendMessage sends the segment-specific campaign message to one customer.
func SendMessage(c *gin.Context) {
	customerID, err := strconv.ParseUint(c.Param("customerId"), 10, 32)
	if err != nil || customerID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customerId required"})
		return
	}

	var req struct {
		StoreID int64  `json:"store_id"`
		Segment string `json:"segment"`
	}
	_ = c.ShouldBindJSON(&req)

	storeID, ok := storeIDFromBody(c, req.StoreID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store_id required"})
		return
	}

	if req.Segment == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "segment required (NEW, AT_RISK, VIP, or CHURNED)"})
		return
	}
	valid := false
	for _, tag := range validMessageTags {
		if req.Segment == tag {
			valid = true
			break
		}
	}
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid segment. Must be one of: NEW, AT_RISK, VIP, CHURNED"})
		return
	}

	storeName := ""
	if merchant, err := findMerchant(storeID); err == nil {
		storeName = merchant.StoreName
	}

	var customer models.Customer
	err = utils.RetentionDB.Where("id = ? AND store_id = ?", customerID, storeID).First(&customer).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found or does not belong to this store"})
		return
	}

	engine := messaging.NewEngine(utils.RetentionDB)
	result := engine.SendSegmentMessage(customer.ID, req.Segment, storeName)
	if !result.Success {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": result.Error})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Message sent successfully",
		"customer_name": result.CustomerName,
		"phone":         result.Phone,
		"segment":       result.Segment,
		"message_text":  result.Message,
	})
}
