package service

import (
	"github.com/fanzone/fanzone-backend/internal/app/model"
	"github.com/fanzone/fanzone-backend/internal/mail"
	"github.com/fanzone/fanzone-backend/pkg/logger"
)

// MailService assembles storefront emails and hands them to the outbox.
// Nothing here can fail a request: delivery problems are the outbox's job.
type MailService interface {
	OrderCreated(order *model.Order)
	ContactMessage(name, email, message string)
}

type mailService struct {
	outbox     *mail.Outbox
	ownerEmail string
}

func NewMailService(outbox *mail.Outbox, ownerEmail string) MailService {
	return &mailService{
		outbox:     outbox,
		ownerEmail: ownerEmail,
	}
}

// OrderCreated queues the customer confirmation and the owner notification.
// The two messages are independent: one failing never blocks the other.
func (s *mailService) OrderCreated(order *model.Order) {
	html := mail.OrderHTML(order)

	s.outbox.Enqueue(mail.Message{
		To:      []string{order.UserEmail},
		Subject: mail.OrderConfirmationSubject(order.ID),
		HTML:    html,
	})
	s.outbox.Enqueue(mail.Message{
		To:      []string{s.ownerEmail},
		Subject: mail.OwnerNotificationSubject(order.ID),
		HTML:    html,
	})

	logger.Info("Order emails queued", map[string]interface{}{
		"order_id":       order.ID,
		"customer_email": order.UserEmail,
	})
}

func (s *mailService) ContactMessage(name, email, message string) {
	s.outbox.Enqueue(mail.Message{
		To:      []string{s.ownerEmail},
		Subject: "Contact Us",
		HTML:    mail.ContactHTML(name, email, message),
		Text:    mail.ContactText(name, email, message),
	})

	logger.Info("Contact message queued", map[string]interface{}{
		"from": email,
	})
}
