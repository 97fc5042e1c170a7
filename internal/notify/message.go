// Package notify turns a checkout into a WhatsApp message for the merchant and
// builds the link that opens it on the customer's device.
package notify

import (
	"fmt"
	"strings"

	"cym-store/internal/cart"

	"github.com/shopspring/decimal"
)

const (
	separator = "━━━━━━━━━━━━━━━━━━━━━"
	currency  = "DH"

	// CustomTotalMarker follows the total whenever a customized line was left
	// out of it.
	CustomTotalMarker = "(+ prix des personnalisations à définir)"
)

// FormatOrderMessage renders the order summary sent to the merchant. The
// output depends only on its arguments.
func FormatOrderMessage(name, phone, email string, items []cart.CartItem, total decimal.Decimal) string {
	var b strings.Builder

	b.WriteString("🪞 *NOUVELLE COMMANDE - Choose Your Mirror*\n\n")
	fmt.Fprintf(&b, "👤 *Client:* %s\n", name)
	fmt.Fprintf(&b, "📱 *Téléphone:* %s\n", phone)
	fmt.Fprintf(&b, "📧 *Email:* %s\n\n", email)
	b.WriteString(separator + "\n\n")
	b.WriteString("🛍️ *PRODUITS COMMANDÉS:*\n\n")

	hasCustom := false
	for i, it := range items {
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, it.Name)
		fmt.Fprintf(&b, "   • Quantité: %d\n", it.Quantity)

		if it.IsCustomized() {
			hasCustom = true
			b.WriteString("   • ✨ *PERSONNALISATION:*\n")
			fmt.Fprintf(&b, "     %s\n", it.Customization)
			b.WriteString("   • Prix: À DISCUTER\n\n")
			continue
		}

		fmt.Fprintf(&b, "   • Prix unitaire: %s %s\n", it.Price.String(), currency)
		fmt.Fprintf(&b, "   • Sous-total: %s %s\n\n", it.Subtotal().String(), currency)
	}

	b.WriteString(separator + "\n")

	if hasCustom {
		b.WriteString("⚠️ *Cette commande contient des personnalisations*\n")
		b.WriteString("Le prix final sera à discuter selon les demandes.\n\n")
	}

	fmt.Fprintf(&b, "💰 *TOTAL: %s %s*\n", total.String(), currency)
	if hasCustom {
		b.WriteString(CustomTotalMarker + "\n")
	}
	b.WriteString("\n✨ Merci de confirmer la disponibilité et le délai de livraison.")

	return b.String()
}
