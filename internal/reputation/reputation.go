// Package reputation implements the static popular-domain gate. A hit
// raises the decision threshold for well-known domains; it never bypasses
// classification.
package reputation

import (
	"strings"

	"github.com/user/phishblock-service/internal/features"
)

// popularDomains lists registrable domains ("domain.suffix") that are
// trusted enough to demand higher model confidence before flagging.
// Matching is exact: google.com covers mail.google.com (same registrable
// domain) but not google.co.uk.
var popularDomains = map[string]struct{}{
	"google.com":        {},
	"youtube.com":       {},
	"facebook.com":      {},
	"twitter.com":       {},
	"x.com":             {},
	"instagram.com":     {},
	"linkedin.com":      {},
	"github.com":        {},
	"microsoft.com":     {},
	"apple.com":         {},
	"amazon.com":        {},
	"netflix.com":       {},
	"reddit.com":        {},
	"wikipedia.org":     {},
	"stackoverflow.com": {},
	"medium.com":        {},
	"twitch.tv":         {},
	"discord.com":       {},
	"whatsapp.com":      {},
	"telegram.org":      {},
	"zoom.us":           {},
	"dropbox.com":       {},
	"paypal.com":        {},
	"stripe.com":        {},
	"shopify.com":       {},
	"wordpress.com":     {},
	"blogger.com":       {},
	"tumblr.com":        {},
}

// Count reports the size of the popular-domain set.
func Count() int {
	return len(popularDomains)
}

// IsPopular reports whether the URL's registrable domain is in the
// popular-domain set. Parse failures fail closed to false: an error never
// grants trust.
func IsPopular(rawURL string) bool {
	domain := features.RegistrableDomain(rawURL)
	if domain == "" {
		return false
	}
	_, ok := popularDomains[strings.ToLower(domain)]
	return ok
}
