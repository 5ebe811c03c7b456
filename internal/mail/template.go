package mail

import (
	"fmt"
	"html"
	"strings"

	"github.com/fanzone/fanzone-backend/internal/app/model"
	"github.com/fanzone/fanzone-backend/internal/pricing"
)

// OrderConfirmationSubject is the subject line of the customer confirmation.
func OrderConfirmationSubject(orderID uint) string {
	return fmt.Sprintf("Konfirmim Porosie - #%d", orderID)
}

// OwnerNotificationSubject is the subject line of the new-order notification
// sent to the store owner.
func OwnerNotificationSubject(orderID uint) string {
	return fmt.Sprintf("Porosi e re - #%d", orderID)
}

// OrderHTML renders the Albanian order summary used by both the customer
// confirmation and the owner notification. The displayed total includes the
// delivery fee from the shared pricing policy.
func OrderHTML(order *model.Order) string {
	var rows strings.Builder
	for _, p := range order.Products {
		rows.WriteString(fmt.Sprintf(`
        <tr>
          <td style="padding: 8px; border: 1px solid #ddd;">
            <img src="%s" alt="%s" style="width: 50px; height: 50px; object-fit: cover; border-radius: 4px;" />
            <span>%s</span>
          </td>
          <td style="padding: 8px; border: 1px solid #ddd; text-align: center;">%d</td>
          <td style="padding: 8px; border: 1px solid #ddd; text-align: right;">%.0f ALL</td>
        </tr>`,
			html.EscapeString(p.Image), html.EscapeString(p.Name),
			html.EscapeString(p.Name), p.Quantity, p.Price))
	}

	notes := ""
	if order.Notes != "" {
		notes = fmt.Sprintf("<p><strong>Shënime:</strong> %s</p>", html.EscapeString(order.Notes))
	}

	total := pricing.TotalWithShipping(order.Total)

	return fmt.Sprintf(`
    <div style="font-family: Arial, sans-serif; color: #333;">
      <h2>Konfirmim Porosie - #%d</h2>
      <p>Përshendetje %s,</p>
      <p>Faleminderit për blerjen tuaj. Detajet e porosisë:</p>

      <table style="width: 100%%; border-collapse: collapse; margin-top: 20px;">
        <thead>
          <tr style="background-color: #f2f2f2;">
            <th style="padding: 8px; border: 1px solid #ddd; text-align: left;">Produkti</th>
            <th style="padding: 8px; border: 1px solid #ddd; text-align: center;">Sasia</th>
            <th style="padding: 8px; border: 1px solid #ddd; text-align: right;">Çmimi</th>
          </tr>
        </thead>
        <tbody>%s
        </tbody>
        <tfoot>
          <tr>
            <td colspan="2" style="padding: 8px; border: 1px solid #ddd; text-align: right;"><strong>Totali:</strong></td>
            <td style="padding: 8px; border: 1px solid #ddd; text-align: right;"><strong>%.2f ALL</strong></td>
          </tr>
        </tfoot>
      </table>

      <p style="margin-top: 20px;">
        <strong>Adresa:</strong><br>
        %s, %s<br>
        <strong>Tel:</strong> %s<br>
        <strong>Email:</strong> %s
      </p>

      %s

      <p style="margin-top: 30px;">Per konfirmin e porosise prisni nje telefonate nga stafi jone.</p>
      <p>Ju faleminderit,<br>Fan Zone</p>
    </div>`,
		order.ID, html.EscapeString(order.Name), rows.String(), total,
		html.EscapeString(order.Address), html.EscapeString(order.City),
		html.EscapeString(order.Phone), html.EscapeString(order.UserEmail),
		notes)
}

// ContactHTML renders a contact-us message for the store owner.
func ContactHTML(name, email, message string) string {
	return fmt.Sprintf(
		"<p><strong>Name:</strong> %s</p><p><strong>Email:</strong> %s</p><p><strong>Message:</strong><br/>%s</p>",
		html.EscapeString(name), html.EscapeString(email), html.EscapeString(message))
}

// ContactText is the plain-text fallback of the contact message.
func ContactText(name, email, message string) string {
	return fmt.Sprintf("Name: %s\nEmail: %s\nMessage: %s", name, email, message)
}
