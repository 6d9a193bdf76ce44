package jobs

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"zid-retention-server/models"
	"zid-retention-server/services/messaging"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.ProductSetting{}, &models.Reminder{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedDueReminder(t *testing.T, db *gorm.DB, orderID int64) models.Reminder {
	t.Helper()
	customer := models.Customer{ZidCustomerID: orderID, StoreID: 1, Name: "Ahmed", TotalOrders: 1, Segment: models.SegmentNew}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer failed: %v", err)
	}
	reminder := models.Reminder{
		CustomerID:      customer.ID,
		ProductID:       "p1",
		OrderID:         orderID,
		SendAt:          time.Now().Add(-time.Hour),
		Status:          models.ReminderStatusPending,
		MessageTemplate: messaging.DefaultReminderTemplate,
	}
	if err := db.Create(&reminder).Error; err != nil {
		t.Fatalf("seed reminder failed: %v", err)
	}
	return reminder
}

func TestCronRunsImmediatelyOnStart(t *testing.T) {
	db := setupTestDB(t)
	reminder := seedDueReminder(t, db, 1)

	sent := make(chan struct{}, 1)
	engine := messaging.NewEngineWithSender(db, func(models.Customer, string) error {
		select {
		case sent <- struct{}{}:
		default:
		}
		return nil
	})

	cron := NewReminderCron(engine, time.Hour)
	cron.Start()
	defer cron.Stop()

	select {
	case <-sent:
	case <-time.After(2 * time.Second):
		t.Fatal("expected an immediate dispatch pass on start")
	}

	var row models.Reminder
	db.First(&row, reminder.ID)
	if row.Status != models.ReminderStatusSent {
		t.Errorf("expected reminder SENT after the startup pass, got %s", row.Status)
	}
}

func TestCronStopPreventsFurtherPasses(t *testing.T) {
	db := setupTestDB(t)

	engine := messaging.NewEngineWithSender(db, func(models.Customer, string) error { return nil })
	cron := NewReminderCron(engine, 20*time.Millisecond)
	cron.Start()
	time.Sleep(50 * time.Millisecond)
	cron.Stop()

	// A reminder becoming due after Stop must never be dispatched.
	reminder := seedDueReminder(t, db, 2)
	time.Sleep(80 * time.Millisecond)

	var row models.Reminder
	db.First(&row, reminder.ID)
	if row.Status != models.ReminderStatusPending {
		t.Errorf("expected no dispatch after Stop, got status %s", row.Status)
	}
}

func TestCronStopIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	engine := messaging.NewEngineWithSender(db, func(models.Customer, string) error { return nil })

	cron := NewReminderCron(engine, time.Hour)
	cron.Start()
	cron.Stop()
	cron.Stop()
}

func TestCronDefaultInterval(t *testing.T) {
	cron := NewReminderCron(nil, 0)
	if cron.interval != defaultInterval {
		t.Errorf("expected default interval %s, got %s", defaultInterval, cron.interval)
	}
}
