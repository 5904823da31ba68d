package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Booking Confirmation</h2>
  <p>Dear {{.CustomerName}},</p>
  <p>Thank you for your booking! Here are your booking details:</p>
  <table cellpadding="6" style="border-collapse: collapse;">
    <tr><td><strong>Booking ID</strong></td><td>{{.SessionID}}</td></tr>
    <tr><td><strong>Car</strong></td><td>{{.CarMake}} {{.CarModel}}</td></tr>
    <tr><td><strong>Pickup</strong></td><td>{{.PickupDate}} {{.PickupTime}}</td></tr>
    <tr><td><strong>Dropoff</strong></td><td>{{.DropoffDate}} {{.DropoffTime}}</td></tr>
    <tr><td><strong>Location</strong></td><td>{{.Location}}</td></tr>
    <tr><td><strong>Total</strong></td><td>{{.Total}}</td></tr>
  </table>
  <p>We look forward to serving you!</p>
  <p>Best regards,<br>The Vroomify Team</p>
</body>
</html>
`))

func renderConfirmation(b BookingConfirmation) (string, error) {
	var buf bytes.Buffer
	data := struct {
		BookingConfirmation
		Total string
	}{
		BookingConfirmation: b,
		Total:               fmt.Sprintf("%.2f %s", b.Amount, strings.ToUpper(b.Currency)),
	}
	if err := confirmationTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render confirmation: %w", err)
	}
	return buf.String(), nil
}
