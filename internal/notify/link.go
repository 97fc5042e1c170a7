package notify

import (
	"net/url"
	"strings"
	"time"
)

type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformDesktop Platform = "desktop"
)

// IOSFallbackDelay is how long the page waits for the app scheme to take over
// before opening the web link.
const IOSFallbackDelay = 1500 * time.Millisecond

// ParsePlatform maps a client hint to a platform. Unknown values fall back to
// desktop, which always works in a browser.
func ParsePlatform(raw string) Platform {
	switch Platform(strings.ToLower(strings.TrimSpace(raw))) {
	case PlatformIOS:
		return PlatformIOS
	case PlatformAndroid:
		return PlatformAndroid
	default:
		return PlatformDesktop
	}
}

// PlatformFromUserAgent is a best-effort guess for clients that send no hint.
func PlatformFromUserAgent(ua string) Platform {
	switch {
	case strings.Contains(ua, "iPhone"), strings.Contains(ua, "iPad"), strings.Contains(ua, "iPod"):
		return PlatformIOS
	case strings.Contains(strings.ToLower(ua), "android"):
		return PlatformAndroid
	default:
		return PlatformDesktop
	}
}

// Link is what the client opens. When FallbackURL is set the client should
// open it if URL has not handed off after FallbackDelayMS.
type Link struct {
	Platform        Platform `json:"platform"`
	URL             string   `json:"url"`
	FallbackURL     string   `json:"fallback_url,omitempty"`
	FallbackDelayMS int64    `json:"fallback_delay_ms,omitempty"`
}

// BuildDeepLink encodes text and places it in the template for platform. The
// phone number should be in E.164 form with its +; it is percent-encoded where
// it sits in a query string and kept as is in the wa.me path.
func BuildDeepLink(platform Platform, phone, text string) Link {
	encoded := encodeComponent(text)
	phoneParam := encodeComponent(phone)
	waMe := "https://wa.me/" + phone + "?text=" + encoded

	switch platform {
	case PlatformIOS:
		return Link{
			Platform:        PlatformIOS,
			URL:             "whatsapp://send?phone=" + phoneParam + "&text=" + encoded,
			FallbackURL:     waMe,
			FallbackDelayMS: IOSFallbackDelay.Milliseconds(),
		}
	case PlatformAndroid:
		return Link{Platform: PlatformAndroid, URL: waMe}
	default:
		return Link{
			Platform: PlatformDesktop,
			URL:      "https://web.whatsapp.com/send?phone=" + phoneParam + "&text=" + encoded,
		}
	}
}

// encodeComponent percent-encodes every byte outside the unreserved set, with
// spaces as %20 rather than +.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
