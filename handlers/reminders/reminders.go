package reminders

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"zid-retention-server/handlers/auth"
	"zid-retention-server/models"
	"zid-retention-server/services/messaging"
	reminderservice "zid-retention-server/services/reminders"
	"zid-retention-server/utils"
	"zid-retention-server/zid"
)

// SendPending manually triggers a dispatch pass over due reminders, outside
// the cron schedule.
func SendPending(c *gin.Context) {
	engine := messaging.NewEngine(utils.RetentionDB)
	results, err := engine.ProcessPendingReminders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send reminders", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Processed %d reminders", len(results)),
		"results": results,
	})
}

// Calculate derives reorder reminders from the store's order history.
func Calculate(c *gin.Context) {
	var req struct {
		StoreID int64 `json:"store_id"`
	}
	_ = c.ShouldBindJSON(&req)

	storeID := req.StoreID
	if tokenStoreID, ok := auth.StoreIDFromContext(c); ok {
		storeID = tokenStoreID
	}
	if storeID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store_id required"})
		return
	}

	var merchant models.Merchant
	if err := utils.RetentionDB.Where("store_id = ?", storeID).First(&merchant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		return
	}

	calculator := reminderservice.NewCalculator(utils.RetentionDB, storeID, zid.NewClient(merchant.AccessToken))
	result, err := calculator.CalculateReminders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate reminders", "details": err.Error()})
		return
	}

	message := fmt.Sprintf("Created %d reminders", result.RemindersCreated)
	if result.RemindersCreated == 0 {
		message = "No new reminders. Configure product settings and sync customers first."
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"message":           message,
		"reminders_created": result.RemindersCreated,
	})
}

type reminderView struct {
	ID           uint      `json:"id"`
	CustomerName string    `json:"customer_name"`
	ProductName  string    `json:"product_name"`
	SendAt       time.Time `json:"send_at"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// List returns the store's reminders with customer and product names,
// earliest-due first.
func List(c *gin.Context) {
	var storeID int64
	if tokenStoreID, ok := auth.StoreIDFromContext(c); ok {
		storeID = tokenStoreID
	} else {
		storeID, _ = strconv.ParseInt(c.Query("store_id"), 10, 64)
	}
	if storeID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store_id required"})
		return
	}

	var customers []models.Customer
	if err := utils.RetentionDB.Where("store_id = ?", storeID).Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reminders", "details": err.Error()})
		return
	}

	customerNames := make(map[uint]string, len(customers))
	customerIDs := make([]uint, 0, len(customers))
	for _, customer := range customers {
		customerNames[customer.ID] = customer.Name
		customerIDs = append(customerIDs, customer.ID)
	}

	var rows []models.Reminder
	if len(customerIDs) > 0 {
		err := utils.RetentionDB.Where("customer_id IN ?", customerIDs).
			Order("send_at ASC").
			Find(&rows).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reminders", "details": err.Error()})
			return
		}
	}

	var settings []models.ProductSetting
	if err := utils.RetentionDB.Where("store_id = ?", storeID).Find(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reminders", "details": err.Error()})
		return
	}
	productNames := make(map[string]string, len(settings))
	for _, setting := range settings {
		productNames[setting.ProductID] = setting.ProductName
	}

	views := make([]reminderView, 0, len(rows))
	for _, reminder := range rows {
		views = append(views, reminderView{
			ID:           reminder.ID,
			CustomerName: customerNames[reminder.CustomerID],
			ProductName:  productNames[reminder.ProductID],
			SendAt:       reminder.SendAt,
			Status:       reminder.Status,
			CreatedAt:    reminder.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"reminders": views,
	})
}
