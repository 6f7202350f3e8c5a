package utils

import (
	"fmt"
	"strings"

	"gehna-backend/internal/models"
)

const storeName = "Gehna Jewels"

func emailShell(title, inner string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>%s</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #faf7f2; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 24px; border-radius: 10px;">
		%s
		<p style="margin-top: 30px; color: #555;">
			Warm regards,<br>
			<strong>The %s team</strong>
		</p>
	</div>
</body>
</html>`, title, inner, storeName)
}

// OrderConfirmationHTML builds the itemized confirmation mail sent right
// after checkout.
func OrderConfirmationHTML(order models.Order, userName string) string {
	var rows strings.Builder
	for _, item := range order.Items {
		rows.WriteString(fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 8px; border: 1px solid #ddd;">₹%.2f</td>
				<td style="padding: 8px; border: 1px solid #ddd;">₹%.2f</td>
			</tr>`, item.Name, item.Qty, item.Price, item.Price*float64(item.Qty)))
	}

	inner := fmt.Sprintf(`
		<h2 style="color: #8a5a2b;">Thank you for your order, %s!</h2>
		<p>Your order <strong>#%s</strong> has been placed successfully.</p>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0ead9;">
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Item</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Qty</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Unit price</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 8px; text-align: right; font-weight: bold;">Order total:</td>
					<td style="padding: 8px; font-weight: bold;">₹%.2f</td>
				</tr>
			</tfoot>
		</table>
		<h3 style="color: #8a5a2b;">Shipping to</h3>
		<p>%s<br>%s, %s — %s</p>`,
		userName, order.ID.Hex(), rows.String(), order.Total,
		order.ShippingAddress.Street, order.ShippingAddress.City,
		order.ShippingAddress.State, order.ShippingAddress.Pincode)

	return emailShell("Order confirmation", inner)
}

// OrderStatusHTML builds the mail sent on every admin status transition.
func OrderStatusHTML(order models.Order, userName string) string {
	inner := fmt.Sprintf(`
		<h2 style="color: #8a5a2b;">Order update</h2>
		<p>Hi %s,</p>
		<p>Your order <strong>#%s</strong> is now <strong>%s</strong>.</p>`,
		userName, order.ID.Hex(), order.Status)

	return emailShell("Order status update", inner)
}

// HamperConfirmationHTML builds the confirmation mail for a custom hamper.
func HamperConfirmationHTML(hamper models.Hamper, userName string) string {
	inner := fmt.Sprintf(`
		<h2 style="color: #8a5a2b;">Your hamper is on its way to being made!</h2>
		<p>Hi %s,</p>
		<p>We received your custom hamper <strong>"%s"</strong> (#%s) with %d item(s).</p>
		<p style="font-size: 18px;">Total: <strong>₹%.2f</strong></p>`,
		userName, hamper.Title, hamper.ID.Hex(), len(hamper.Items), hamper.TotalPrice)

	return emailShell("Hamper confirmation", inner)
}

// HamperStatusHTML builds the mail sent when an admin moves a hamper along.
func HamperStatusHTML(hamper models.Hamper, userName string) string {
	inner := fmt.Sprintf(`
		<h2 style="color: #8a5a2b;">Hamper update</h2>
		<p>Hi %s,</p>
		<p>Your hamper <strong>"%s"</strong> (#%s) is now <strong>%s</strong>.</p>`,
		userName, hamper.Title, hamper.ID.Hex(), hamper.Status)

	return emailShell("Hamper status update", inner)
}

// WelcomeHTML greets a freshly registered user.
func WelcomeHTML(userName string) string {
	inner := fmt.Sprintf(`
		<h2 style="color: #8a5a2b;">Welcome to %s, %s! 🎉</h2>
		<p>Your account is ready. Browse our festive collections and build your own gift hampers.</p>`,
		storeName, userName)

	return emailShell("Welcome", inner)
}
