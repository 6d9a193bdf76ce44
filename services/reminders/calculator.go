package reminders

import (
	"errors"
	"log"
	"math"

	"gorm.io/gorm"

	"zid-retention-server/models"
	"zid-retention-server/services/messaging"
	"zid-retention-server/zid"
)

// OrderFetcher is the slice of the Zid client the calculator needs.
type OrderFetcher interface {
	GetAllOrders() ([]zid.Order, error)
}

// quantityAdjustFactor stretches the consumption period when two or more
// units were bought: more product lasts longer, but sub-linearly.
const quantityAdjustFactor = 1.5

// AdjustedConsumptionDays returns the effective consumption period for a
// purchased quantity.
func AdjustedConsumptionDays(avgDaysToFinish int, quantity int) int {
	if quantity >= 2 {
		return int(math.Round(float64(avgDaysToFinish) * quantityAdjustFactor))
	}
	return avgDaysToFinish
}

// Calculator derives reorder reminders from a store's order history.
type Calculator struct {
	db       *gorm.DB
	storeID  int64
	api      OrderFetcher
	filter   ProductFilter
	template string
}

func NewCalculator(db *gorm.DB, storeID int64, api OrderFetcher) *Calculator {
	return &Calculator{
		db:       db,
		storeID:  storeID,
		api:      api,
		filter:   KeywordFilter(DefaultConsumableKeywords),
		template: messaging.DefaultReminderTemplate,
	}
}

// SetProductFilter swaps the consumable-product eligibility check.
func (c *Calculator) SetProductFilter(filter ProductFilter) {
	c.filter = filter
}

// CalculationResult reports how many reminders one pass created.
type CalculationResult struct {
	RemindersCreated int `json:"reminders_created"`
}

// CalculateReminders walks every order line and persists a PENDING reminder
// for each eligible one. A line is eligible when a product setting exists and
// the product passes the consumable filter. Lines whose customer has not been
// synced yet are skipped. The pass is idempotent: an existing reminder for
// the same (customer, product, order) line is never duplicated.
func (c *Calculator) CalculateReminders() (*CalculationResult, error) {
	settings, err := c.loadSettings()
	if err != nil {
		return nil, err
	}
	if len(settings) == 0 {
		log.Printf("[Reminders] No product settings configured for store %d", c.storeID)
		return &CalculationResult{}, nil
	}

	orders, err := c.api.GetAllOrders()
	if err != nil {
		return nil, err
	}

	result := &CalculationResult{}
	for _, order := range orders {
		if order.Customer == nil || order.Customer.ID == 0 {
			continue
		}

		var customer models.Customer
		err := c.db.Where("zid_customer_id = ? AND store_id = ?", order.Customer.ID, c.storeID).
			First(&customer).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		for _, product := range order.Products {
			setting, ok := settings[product.ID]
			if !ok {
				continue
			}
			if !c.filter(product.Name.String()) {
				continue
			}

			quantity := product.Quantity
			if quantity < 1 {
				quantity = 1
			}
			adjustedDays := AdjustedConsumptionDays(setting.AvgDaysToFinish, quantity)

			// send_at may land in the past for old orders; the
			// dispatcher picks that backlog up on its next poll.
			sendAt := order.CreatedAt.AddDate(0, 0, adjustedDays-setting.OffsetDays)

			created, err := c.createIfMissing(models.Reminder{
				CustomerID:      customer.ID,
				ProductID:       product.ID,
				OrderID:         order.ID,
				SendAt:          sendAt,
				Status:          models.ReminderStatusPending,
				MessageTemplate: c.template,
			})
			if err != nil {
				return nil, err
			}
			if created {
				result.RemindersCreated++
			}
		}
	}

	log.Printf("[Reminders] Created %d reminders for store %d", result.RemindersCreated, c.storeID)
	return result, nil
}

func (c *Calculator) loadSettings() (map[string]models.ProductSetting, error) {
	var rows []models.ProductSetting
	if err := c.db.Where("store_id = ?", c.storeID).Find(&rows).Error; err != nil {
		return nil, err
	}
	settings := make(map[string]models.ProductSetting, len(rows))
	for _, row := range rows {
		settings[row.ProductID] = row
	}
	return settings, nil
}

// createIfMissing inserts the reminder unless one already exists for the same
// (customer, product, order) line. The unique index backstops concurrent
// passes racing past the existence check.
func (c *Calculator) createIfMissing(reminder models.Reminder) (bool, error) {
	var existing models.Reminder
	err := c.db.Where("customer_id = ? AND product_id = ? AND order_id = ?",
		reminder.CustomerID, reminder.ProductID, reminder.OrderID).
		First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if err := c.db.Create(&reminder).Error; err != nil {
		return false, err
	}
	return true, nil
}
