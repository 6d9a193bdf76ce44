package dashboard

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"zid-retention-server/handlers/auth"
	"zid-retention-server/models"
	"zid-retention-server/services/segmentation"
	"zid-retention-server/utils"
	"zid-retention-server/zid"
)

// segmentOrder ranks segments for the dashboard listing.
const segmentOrder = `CASE segment
	WHEN 'NEW' THEN 1
	WHEN 'ACTIVE' THEN 2
	WHEN 'AT_RISK' THEN 3
	WHEN 'CHURNED' THEN 4
	ELSE 5
END, days_since_last_order ASC`

// resolveStoreID picks the store id from the dashboard token when present,
// else from the store_id query parameter.
func resolveStoreID(c *gin.Context) (int64, bool) {
	if storeID, ok := auth.StoreIDFromContext(c); ok {
		return storeID, true
	}
	storeID, err := strconv.ParseInt(c.Query("store_id"), 10, 64)
	if err != nil || storeID == 0 {
		return 0, false
	}
	return storeID, true
}

func findMerchant(storeID int64) (*models.Merchant, error) {
	var merchant models.Merchant
	if err := utils.RetentionDB.Where("store_id = ?", storeID).First(&merchant).Error; err != nil {
		return nil, err
	}
	return &merchant, nil
}

type customerView struct {
	ID                 uint   `json:"id"`
	ZidCustomerID      int64  `json:"zid_customer_id"`
	Name               string `json:"name"`
	Phone              string `json:"phone"`
	Email              string `json:"email"`
	TotalOrders        int    `json:"total_orders"`
	TotalSpent         string `json:"total_spent"`
	LastOrder          string `json:"last_order"`
	DaysSinceLastOrder int    `json:"days_since_last_order"`
	Segment            string `json:"segment"`
	IsVIP              bool   `json:"is_vip"`
}

// GetCustomers returns segment stats plus the store's classified customers,
// ordered by segment then recency.
func GetCustomers(c *gin.Context) {
	storeID, ok := resolveStoreID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store_id required"})
		return
	}

	if _, err := findMerchant(storeID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found. Please install first."})
		return
	}

	stats, err := segmentation.Stats(utils.RetentionDB, storeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers", "details": err.Error()})
		return
	}

	var customers []models.Customer
	err = utils.RetentionDB.Where("store_id = ?", storeID).Order(segmentOrder).Find(&customers).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers", "details": err.Error()})
		return
	}

	views := make([]customerView, 0, len(customers))
	for _, customer := range customers {
		name := customer.Name
		if name == "" {
			name = "Unknown"
		}
		views = append(views, customerView{
			ID:                 customer.ID,
			ZidCustomerID:      customer.ZidCustomerID,
			Name:               name,
			Phone:              customer.Phone,
			Email:              customer.Email,
			TotalOrders:        customer.TotalOrders,
			TotalSpent:         fmt.Sprintf("%.2f", customer.TotalSpent),
			LastOrder:          lastOrderLabel(customer.DaysSinceLastOrder),
			DaysSinceLastOrder: customer.DaysSinceLastOrder,
			Segment:            customer.Segment,
			IsVIP:              customer.IsVIP,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"stats":     stats,
		"customers": views,
		"total":     len(views),
	})
}

func lastOrderLabel(days int) string {
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "1 day ago"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return fmt.Sprintf("%d weeks ago", days/7)
	default:
		return fmt.Sprintf("%d months ago", days/30)
	}
}

type productView struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	SKU             string   `json:"sku"`
	Price           float64  `json:"price"`
	SalePrice       *float64 `json:"sale_price"`
	AvgDaysToFinish int      `json:"avg_days_to_finish"`
	OffsetDays      int      `json:"offset_days"`
	HasSetting      bool     `json:"has_setting"`
}

// GetProducts merges the live Zid catalog with the store's reminder settings,
// filling defaults where no setting exists yet.
func GetProducts(c *gin.Context) {
	storeID, ok := resolveStoreID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store_id required"})
		return
	}

	merchant, err := findMerchant(storeID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found. Please install first."})
		return
	}

	client := zid.NewClient(merchant.AccessToken)
	products, err := client.GetAllProducts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products", "details": err.Error()})
		return
	}

	var rows []models.ProductSetting
	if err := utils.RetentionDB.Where("store_id = ?", storeID).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products", "details": err.Error()})
		return
	}
	settings := make(map[string]models.ProductSetting, len(rows))
	for _, row := range rows {
		settings[row.ProductID] = row
	}

	views := make([]productView, 0, len(products))
	for _, product := range products {
		productID := product.Key()
		name := product.Name.String()
		if name == "" {
			name = "Unknown Product"
		}

		view := productView{
			ID:              productID,
			Name:            name,
			SKU:             product.SKU,
			Price:           product.Price,
			SalePrice:       product.SalePrice,
			AvgDaysToFinish: 30,
			OffsetDays:      5,
		}
		if setting, ok := settings[productID]; ok {
			view.AvgDaysToFinish = setting.AvgDaysToFinish
			view.OffsetDays = setting.OffsetDays
			view.HasSetting = true
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": views,
		"total":    len(views),
	})
}
