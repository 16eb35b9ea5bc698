package notifications

import (
	"fmt"
	"html"
	"log"
	"net/http"
	"strings"
	"time"

	config "github.com/anjiri1684/college_review/configs"
	"github.com/anjiri1684/college_review/models"
	"github.com/go-resty/resty/v2"
)

const brevoURL = "https://api.brevo.com/v3/smtp/email"

type BrevoService struct {
	APIKey      string
	SenderEmail string
	SenderName  string
	AlertEmail  string

	url    string
	client *resty.Client
}

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

// NewEmailService returns nil when Brevo or the alert recipient is not
// configured. A nil service drops every alert.
func NewEmailService(cfg config.Config) *BrevoService {
	if cfg.BrevoAPIKey == "" || cfg.EmailSender == "" || cfg.EmailSenderName == "" || cfg.AlertEmail == "" {
		log.Println("⚠️ Email alerts not configured. Missing API Key, Sender Email, Sender Name or Alert Email.")
		return nil
	}

	log.Println("✅ Email alerts initialized successfully.")
	return &BrevoService{
		APIKey:      cfg.BrevoAPIKey,
		SenderEmail: cfg.EmailSender,
		SenderName:  cfg.EmailSenderName,
		AlertEmail:  cfg.AlertEmail,
		url:         brevoURL,
		client:      resty.New().SetTimeout(10 * time.Second),
	}
}

// NotifySyncFailure emails the alert recipient about an outbox entry that was
// given up on.
func (s *BrevoService) NotifySyncFailure(entry models.OutboxEntry) {
	if s == nil {
		return
	}

	subject := fmt.Sprintf("Review %s could not be synced", entry.ReviewID)
	body := fmt.Sprintf(
		"<p>The %s of review <b>%s</b> was not delivered after %d attempt(s).</p><p>Last error: %s</p><p>The entry is kept in the outbox with status <i>%s</i>.</p>",
		html.EscapeString(entry.Op),
		html.EscapeString(entry.ReviewID),
		entry.Attempts,
		html.EscapeString(entry.LastError),
		html.EscapeString(entry.Status),
	)

	if err := s.send(s.AlertEmail, "", subject, body); err != nil {
		log.Printf("🔥 Failed to send sync alert for review %s: %v", entry.ReviewID, err)
		return
	}
	log.Printf("✅ Sync alert sent for review %s", entry.ReviewID)
}

func (s *BrevoService) send(toEmail, toName, subject, htmlContent string) error {
	if toEmail == "" || !strings.Contains(toEmail, "@") {
		return fmt.Errorf("invalid recipient email: %s", toEmail)
	}

	recipientName := toName
	if recipientName == "" {
		recipientName = toEmail[:strings.Index(toEmail, "@")]
	}

	payload := brevoPayload{
		Sender:      map[string]string{"name": s.SenderName, "email": s.SenderEmail},
		To:          []map[string]string{{"email": toEmail, "name": recipientName}},
		Subject:     subject,
		HTMLContent: htmlContent,
	}

	resp, err := s.client.R().
		SetHeader("accept", "application/json").
		SetHeader("api-key", s.APIKey).
		SetBody(payload).
		Post(s.url)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	if resp.StatusCode() != http.StatusCreated {
		log.Printf("Brevo API error: Status %d, Body: %s", resp.StatusCode(), resp.String())
		return fmt.Errorf("failed to send email via Brevo: %s", resp.String())
	}
	return nil
}
