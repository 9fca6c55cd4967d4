package notify

import (
	"fmt"
	"strings"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/domain"
)

// OtpBody renders the one-time-code mail.
func OtpBody(code string, minutes int) string {
	return fmt.Sprintf(`<h2>Sweet Shop</h2>
<p>Your one-time code is:</p>
<h1>%s</h1>
<p>Valid for %d minutes.</p>`, code, minutes)
}

// WelcomeBody renders the registration confirmation mail.
func WelcomeBody(name string) string {
	return fmt.Sprintf(`<h2>Welcome to Sweet Shop, %s!</h2>
<p>Your account has been created. You can now log in and explore delicious sweets.</p>`, name)
}

// OrderConfirmedBody renders the post-placement summary mail.
func OrderConfirmedBody(name string, snap domain.OrderSnapshot) string {
	var rows strings.Builder
	for _, it := range snap.Items {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%d g</td><td>₹%.2f/kg</td><td>₹%.2f</td></tr>\n",
			it.Name, it.Grams, float64(it.PricePerKgPaise)/100, float64(it.TotalPaise)/100)
	}
	return fmt.Sprintf(`<h2>Order Confirmed</h2>
<p>Hi %s,</p>
<p>Your order <strong>%s</strong> has been placed.</p>
<table border="1" cellpadding="8" cellspacing="0">
<tr><th>Sweet</th><th>Quantity</th><th>Price/Kg</th><th>Total</th></tr>
%s</table>
<h3>Total: ₹%.2f</h3>
<p><strong>Delivery address:</strong><br/>%s</p>`,
		name, snap.OrderID, rows.String(), float64(snap.SubtotalPaise)/100, snap.Address)
}
