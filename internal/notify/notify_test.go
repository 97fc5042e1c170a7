package notify

import (
	"net/url"
	"strings"
	"testing"

	"cym-store/internal/cart"
	"cym-store/internal/product"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(name string, price int64, qty int, customization string) cart.CartItem {
	return cart.CartItem{
		Product:       product.Product{ID: name, Name: name, Price: decimal.NewFromInt(price)},
		Quantity:      qty,
		Customization: customization,
	}
}

func TestFormatOrderMessage(t *testing.T) {
	t.Run("PlainLines", func(t *testing.T) {
		items := []cart.CartItem{line("Miroir Moderne", 1800, 2, "")}
		msg := FormatOrderMessage("Amina", "+212600000000", "a@example.com", items, cart.Total(items))

		assert.Contains(t, msg, "👤 *Client:* Amina\n")
		assert.Contains(t, msg, "📱 *Téléphone:* +212600000000\n")
		assert.Contains(t, msg, "📧 *Email:* a@example.com\n")
		assert.Contains(t, msg, "1. *Miroir Moderne*\n   • Quantité: 2\n")
		assert.Contains(t, msg, "   • Prix unitaire: 1800 DH\n")
		assert.Contains(t, msg, "   • Sous-total: 3600 DH\n")
		assert.Contains(t, msg, "💰 *TOTAL: 3600 DH*\n")
		assert.NotContains(t, msg, CustomTotalMarker)
		assert.NotContains(t, msg, "PERSONNALISATION")
	})

	t.Run("CustomizedLineMarksTotal", func(t *testing.T) {
		items := []cart.CartItem{
			line("Miroir Premium", 100, 2, ""),
			line("Miroir Vintage", 50, 1, "engrave X"),
		}
		msg := FormatOrderMessage("Amina", "+1", "", items, cart.Total(items))

		assert.Contains(t, msg, "2. *Miroir Vintage*\n")
		assert.Contains(t, msg, "     engrave X\n   • Prix: À DISCUTER\n")
		assert.Contains(t, msg, "💰 *TOTAL: 200 DH*\n"+CustomTotalMarker+"\n")
		assert.Contains(t, msg, "⚠️ *Cette commande contient des personnalisations*")
		// the customized line has no price shown
		assert.NotContains(t, msg, "50 DH")
	})

	t.Run("Deterministic", func(t *testing.T) {
		items := []cart.CartItem{line("A", 10, 1, ""), line("B", 20, 3, "gold")}
		a := FormatOrderMessage("n", "p", "e", items, decimal.NewFromInt(10))
		b := FormatOrderMessage("n", "p", "e", items, decimal.NewFromInt(10))
		assert.Equal(t, a, b)
		assert.True(t, strings.HasSuffix(a, "délai de livraison."))
	})
}

func TestBuildDeepLink(t *testing.T) {
	text := "Hello world & co 💰\nline 2"

	t.Run("Desktop", func(t *testing.T) {
		l := BuildDeepLink(PlatformDesktop, "+212614606794", text)
		assert.True(t, strings.HasPrefix(l.URL, "https://web.whatsapp.com/send?phone=%2B212614606794&text="))
		assert.Empty(t, l.FallbackURL)
		assert.NotContains(t, l.URL, " ")
		assert.Contains(t, l.URL, "Hello%20world%20%26%20co")
	})

	t.Run("Android", func(t *testing.T) {
		l := BuildDeepLink(PlatformAndroid, "+212614606794", text)
		assert.True(t, strings.HasPrefix(l.URL, "https://wa.me/+212614606794?text="))
		assert.Zero(t, l.FallbackDelayMS)
	})

	t.Run("IOSWithFallback", func(t *testing.T) {
		l := BuildDeepLink(PlatformIOS, "+212614606794", text)
		assert.True(t, strings.HasPrefix(l.URL, "whatsapp://send?phone=%2B212614606794&text="))
		assert.True(t, strings.HasPrefix(l.FallbackURL, "https://wa.me/+212614606794?text="))
		assert.Equal(t, int64(1500), l.FallbackDelayMS)
	})

	t.Run("PhoneSurvivesQueryDecoding", func(t *testing.T) {
		for _, p := range []Platform{PlatformDesktop, PlatformIOS} {
			u, err := url.Parse(BuildDeepLink(p, "+212614606794", text).URL)
			require.NoError(t, err)
			assert.Equal(t, "+212614606794", u.Query().Get("phone"), p)
		}
	})

	t.Run("TextRoundTrips", func(t *testing.T) {
		l := BuildDeepLink(PlatformDesktop, "+1", text)
		idx := strings.Index(l.URL, "&text=")
		require.Greater(t, idx, 0)

		decoded, err := url.PathUnescape(l.URL[idx+len("&text="):])
		require.NoError(t, err)
		assert.Equal(t, text, decoded)
	})
}

func TestParsePlatform(t *testing.T) {
	assert.Equal(t, PlatformIOS, ParsePlatform("iOS"))
	assert.Equal(t, PlatformAndroid, ParsePlatform(" android "))
	assert.Equal(t, PlatformDesktop, ParsePlatform(""))
	assert.Equal(t, PlatformDesktop, ParsePlatform("windows-phone"))
}

func TestPlatformFromUserAgent(t *testing.T) {
	assert.Equal(t, PlatformIOS, PlatformFromUserAgent("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)"))
	assert.Equal(t, PlatformAndroid, PlatformFromUserAgent("Mozilla/5.0 (Linux; Android 14; Pixel 8)"))
	assert.Equal(t, PlatformDesktop, PlatformFromUserAgent("Mozilla/5.0 (X11; Linux x86_64)"))
}
