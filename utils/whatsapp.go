package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
)

// WhatsAppMessage is the payload the Wati session-message API expects.
type WhatsAppMessage struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// SendWhatsAppMessage delivers a message to the customer's phone via the Wati
// API. Requires WATI_URL and WATI_API_KEY in the environment.
func SendWhatsAppMessage(phoneNumber string, message string) error {
	payload, err := json.Marshal(WhatsAppMessage{Phone: phoneNumber, Message: message})
	if err != nil {
		return fmt.Errorf("failed to marshal whatsapp message: %w", err)
	}

	req, err := http.NewRequest("POST", os.Getenv("WATI_URL")+"/api/v1/sendSessionMessage", bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create whatsapp request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+os.Getenv("WATI_API_KEY"))

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send whatsapp message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("whatsapp api returned status %d", resp.StatusCode)
	}

	return nil
}
