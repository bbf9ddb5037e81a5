// utils/email.go
package utils

import (
	"fmt"
	"os"

	"github.com/keighl/postmark"
	"github.com/sirupsen/logrus"

	"github.com/theshantanusingh/maggie-point/models"
)

// EmailService handles sending emails using Postmark
type EmailService struct {
	client *postmark.Client
}

// NewEmailService initializes and returns a new EmailService instance
func NewEmailService() *EmailService {
	apiToken := os.Getenv("POSTMARK_API_TOKEN")
	if apiToken == "" {
		logrus.Warn("POSTMARK_API_TOKEN is not set; order emails will fail to send")
	}
	return &EmailService{
		client: postmark.NewClient(apiToken, ""),
	}
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	_, err := es.client.SendEmail(postmark.Email{
		From:     os.Getenv("EMAIL_SENDER"),
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// NotifyOrderStatus emails the customer about an order status change. Called
// by the order service after the transition has been persisted.
func (es *EmailService) NotifyOrderStatus(customer models.User, order models.Order, status models.OrderStatus) error {
	subject, body := orderStatusEmail(customer, order, status)
	return es.SendEmail(customer.Email, subject, body)
}

func orderStatusEmail(customer models.User, order models.Order, status models.OrderStatus) (string, string) {
	shortID := order.ID.Hex()
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}

	var subject, line string
	switch status {
	case models.StatusPaymentPending:
		subject = fmt.Sprintf("Order #%s placed - Maggie Point", shortID)
		line = "Your order has been placed! Submit your payment to get it moving."
	case models.StatusPending:
		subject = fmt.Sprintf("Payment received for order #%s - Maggie Point", shortID)
		line = "We have your payment details and will verify them shortly."
	case models.StatusConfirmed:
		subject = fmt.Sprintf("Order #%s confirmed - Maggie Point", shortID)
		line = fmt.Sprintf("Payment verified! Your order is confirmed and should reach you in about %d minutes.", order.EstimatedDeliveryTime)
	case models.StatusPreparing:
		subject = fmt.Sprintf("Order #%s is being prepared - Maggie Point", shortID)
		line = "Our kitchen is on it. Hang tight!"
	case models.StatusOutForDelivery:
		subject = fmt.Sprintf("Order #%s is out for delivery - Maggie Point", shortID)
		line = "Your food is on its way. Keep your phone handy."
	case models.StatusDelivered:
		subject = fmt.Sprintf("Order #%s delivered - Maggie Point", shortID)
		line = "Enjoy your meal! Thanks for ordering with us."
	case models.StatusCancelled:
		subject = fmt.Sprintf("Order #%s cancelled - Maggie Point", shortID)
		line = fmt.Sprintf("Your order was cancelled. Reason: %s", order.CancellationReason)
	default:
		subject = fmt.Sprintf("Order #%s update - Maggie Point", shortID)
		line = fmt.Sprintf("Your order status is now '%s'.", status)
	}

	body := fmt.Sprintf(
		"<strong>Hey %s!</strong><br><br>%s<br><br>Order ID: <strong>%s</strong><br>Total Amount: <strong>₹%.0f</strong><br><br>🌙 Maggie Point — open 10:30 PM to 2:00 AM",
		customer.FirstName,
		line,
		order.ID.Hex(),
		order.TotalAmount,
	)
	return subject, body
}
