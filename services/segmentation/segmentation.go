package segmentation

import (
	"errors"
	"log"
	"math"
	"time"

	"gorm.io/gorm"

	"zid-retention-server/models"
	"zid-retention-server/zid"
)

// OrderFetcher is the slice of the Zid client the sync needs.
type OrderFetcher interface {
	GetAllOrders() ([]zid.Order, error)
}

// Service syncs one store's customers from its order history.
type Service struct {
	db      *gorm.DB
	storeID int64
	api     OrderFetcher
}

func NewService(db *gorm.DB, storeID int64, api OrderFetcher) *Service {
	return &Service{db: db, storeID: storeID, api: api}
}

// SyncResult reports how many customer records a sync pass touched.
type SyncResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Total   int `json:"total"`
}

// SyncCustomers fetches the store's full order history, aggregates it per
// customer, classifies each customer and upserts the records. Re-running over
// the same orders is idempotent. A fetch failure aborts the pass before any
// write.
func (s *Service) SyncCustomers() (*SyncResult, error) {
	log.Printf("[Segmentation] Starting customer sync for store %d...", s.storeID)

	orders, err := s.api.GetAllOrders()
	if err != nil {
		return nil, err
	}
	log.Printf("[Segmentation] Fetched %d orders", len(orders))

	rollups := AggregateOrders(orders)

	// One reference time for the whole pass keeps recency comparisons
	// consistent across customers.
	now := time.Now()
	result := &SyncResult{Total: len(rollups)}

	for _, rollup := range rollups {
		totalOrders := rollup.TotalOrders()
		daysSinceLastOrder := daysBetween(rollup.LastOrderDate, now)

		customer := models.Customer{
			ZidCustomerID:      rollup.ZidCustomerID,
			StoreID:            s.storeID,
			Name:               rollup.Name,
			Phone:              rollup.Phone,
			Email:              rollup.Email,
			TotalOrders:        totalOrders,
			TotalSpent:         rollup.TotalSpent,
			FirstOrderDate:     rollup.FirstOrderDate,
			LastOrderDate:      rollup.LastOrderDate,
			DaysSinceLastOrder: daysSinceLastOrder,
			Segment:            ClassifySegment(totalOrders, daysSinceLastOrder),
			IsVIP:              IsVIP(totalOrders, rollup.TotalSpent),
		}

		created, err := s.upsertCustomer(customer)
		if err != nil {
			return nil, err
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	log.Printf("[Segmentation] Sync complete: %d created, %d updated", result.Created, result.Updated)
	return result, nil
}

// upsertCustomer writes one customer record by its (store, zid customer)
// natural key. The transaction serializes the check-and-write against
// concurrent passes; the unique index backstops a lost race.
func (s *Service) upsertCustomer(customer models.Customer) (created bool, err error) {
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Customer
		findErr := tx.Where("zid_customer_id = ? AND store_id = ?", customer.ZidCustomerID, customer.StoreID).
			First(&existing).Error

		if findErr == nil {
			customer.ID = existing.ID
			customer.CreatedAt = existing.CreatedAt
			created = false
			return tx.Save(&customer).Error
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		created = true
		return tx.Create(&customer).Error
	})
	return created, err
}

// daysBetween is the whole number of days from a past timestamp to now,
// floored, never negative.
func daysBetween(from, to time.Time) int {
	days := int(math.Floor(to.Sub(from).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// CustomerStats counts a store's customers per segment plus the VIP total.
type CustomerStats struct {
	New     int64 `json:"NEW"`
	Active  int64 `json:"ACTIVE"`
	AtRisk  int64 `json:"AT_RISK"`
	Churned int64 `json:"CHURNED"`
	VIP     int64 `json:"VIP"`
}

// Stats aggregates segment and VIP counts for a store.
func Stats(db *gorm.DB, storeID int64) (*CustomerStats, error) {
	var rows []struct {
		Segment string
		Count   int64
	}
	err := db.Model(&models.Customer{}).
		Select("segment, COUNT(*) as count").
		Where("store_id = ?", storeID).
		Group("segment").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &CustomerStats{}
	for _, row := range rows {
		switch row.Segment {
		case models.SegmentNew:
			stats.New = row.Count
		case models.SegmentActive:
			stats.Active = row.Count
		case models.SegmentAtRisk:
			stats.AtRisk = row.Count
		case models.SegmentChurned:
			stats.Churned = row.Count
		}
	}

	err = db.Model(&models.Customer{}).
		Where("store_id = ? AND is_vip = ?", storeID, true).
		Count(&stats.VIP).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}
