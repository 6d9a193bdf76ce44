package messaging

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"

	"zid-retention-server/models"
	"zid-retention-server/utils"
)

const fallbackCustomerName = "عميلنا الكريم"
const fallbackProductName = "المنتج"
const fallbackStoreName = "متجرنا"

// Sender delivers a rendered message to a customer. Injectable so dispatch
// behaviour can be exercised without real channels.
type Sender func(customer models.Customer, message string) error

// Engine renders and dispatches reminder and segment messages.
type Engine struct {
	db   *gorm.DB
	send Sender
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db, send: defaultSender}
}

// NewEngineWithSender builds an engine that dispatches through a custom sender.
func NewEngineWithSender(db *gorm.DB, send Sender) *Engine {
	return &Engine{db: db, send: send}
}

// defaultSender logs the message and best-effort delivers it over WhatsApp or
// email when the channel is configured and the customer is reachable on it.
func defaultSender(customer models.Customer, message string) error {
	log.Println(strings.Repeat("=", 50))
	log.Printf("[Message Engine] Sending message to %s (%s)", customer.Name, customer.Phone)
	log.Println("Message:")
	log.Println(message)
	log.Println(strings.Repeat("=", 50))

	if customer.Phone != "" && os.Getenv("WATI_URL") != "" {
		return utils.SendWhatsAppMessage(customer.Phone, message)
	}
	if customer.Email != "" && os.Getenv("SMTP_HOST") != "" {
		return utils.SendEmailMessage(customer.Email, "تذكير إعادة الطلب", message)
	}
	return nil
}

// DispatchResult is the outcome for one reminder in a dispatch batch.
type DispatchResult struct {
	ReminderID uint   `json:"reminderId"`
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
}

// ProcessPendingReminders dispatches every reminder that is PENDING and due,
// earliest first. A failure on one reminder is recorded in its result and
// does not stop the batch.
func (e *Engine) ProcessPendingReminders() ([]DispatchResult, error) {
	var due []models.Reminder
	err := e.db.Where("status = ? AND send_at <= ?", models.ReminderStatusPending, time.Now()).
		Order("send_at ASC, id ASC").
		Find(&due).Error
	if err != nil {
		return nil, err
	}

	log.Printf("[Message Engine] Found %d pending reminders", len(due))

	results := make([]DispatchResult, 0, len(due))
	for _, reminder := range due {
		results = append(results, e.dispatchReminder(reminder))
	}
	return results, nil
}

// dispatchReminder claims the reminder, renders its frozen template and sends
// it. The claim is a conditional update restricted to rows still PENDING so
// two overlapping passes cannot both send the same reminder; a send failure
// releases the claim so the next pass retries.
func (e *Engine) dispatchReminder(reminder models.Reminder) DispatchResult {
	claim := e.db.Model(&models.Reminder{}).
		Where("id = ? AND status = ?", reminder.ID, models.ReminderStatusPending).
		Update("status", models.ReminderStatusSent)
	if claim.Error != nil {
		return DispatchResult{ReminderID: reminder.ID, Error: claim.Error.Error()}
	}
	if claim.RowsAffected == 0 {
		return DispatchResult{ReminderID: reminder.ID, Error: "reminder no longer pending"}
	}

	message, customer, err := e.renderReminder(reminder)
	if err == nil {
		err = e.send(customer, message)
	}
	if err != nil {
		e.releaseClaim(reminder.ID)
		log.Printf("[Message Engine] Error sending reminder %d: %v", reminder.ID, err)
		return DispatchResult{ReminderID: reminder.ID, Error: err.Error()}
	}

	return DispatchResult{ReminderID: reminder.ID, Success: true, Message: message}
}

func (e *Engine) releaseClaim(reminderID uint) {
	err := e.db.Model(&models.Reminder{}).
		Where("id = ? AND status = ?", reminderID, models.ReminderStatusSent).
		Update("status", models.ReminderStatusPending).Error
	if err != nil {
		log.Printf("[Message Engine] Failed to release reminder %d back to pending: %v", reminderID, err)
	}
}

func (e *Engine) renderReminder(reminder models.Reminder) (string, models.Customer, error) {
	var customer models.Customer
	if err := e.db.First(&customer, reminder.CustomerID).Error; err != nil {
		return "", customer, fmt.Errorf("customer %d not found: %w", reminder.CustomerID, err)
	}

	productName := fallbackProductName
	var setting models.ProductSetting
	err := e.db.Where("product_id = ? AND store_id = ?", reminder.ProductID, customer.StoreID).
		First(&setting).Error
	if err == nil && setting.ProductName != "" {
		productName = setting.ProductName
	}

	template := reminder.MessageTemplate
	if template == "" {
		template = DefaultReminderTemplate
	}

	name := customer.Name
	if name == "" {
		name = fallbackCustomerName
	}

	message := RenderTemplate(template, map[string]string{
		"name":         name,
		"product_name": productName,
		"link":         fmt.Sprintf("https://store.zid.store/products/%s", reminder.ProductID),
	})
	return message, customer, nil
}

// SegmentMessageResult is the outcome of an on-demand segment message send.
type SegmentMessageResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	Error        string `json:"error,omitempty"`
	CustomerName string `json:"customer_name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Segment      string `json:"segment,omitempty"`
}

// SendSegmentMessage renders the segment's fixed template for one customer
// and sends it. Reminder state is never touched.
func (e *Engine) SendSegmentMessage(customerID uint, segment string, storeName string) SegmentMessageResult {
	var customer models.Customer
	if err := e.db.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SegmentMessageResult{Error: "customer not found"}
		}
		return SegmentMessageResult{Error: err.Error()}
	}

	if storeName == "" {
		storeName = fallbackStoreName
	}

	name := customer.Name
	if name == "" {
		name = fallbackCustomerName
	}

	message := RenderTemplate(SegmentTemplate(segment), map[string]string{
		"customer_name": name,
		"store_name":    storeName,
	})

	log.Printf("[Message Engine] Sending %s message to %s (%s)", segment, customer.Name, customer.Phone)
	if err := e.send(customer, message); err != nil {
		log.Printf("[Message Engine] Error sending segment message: %v", err)
		return SegmentMessageResult{Error: err.Error()}
	}

	return SegmentMessageResult{
		Success:      true,
		Message:      message,
		CustomerName: customer.Name,
		Phone:        customer.Phone,
		Segment:      segment,
	}
}
