// Package imageurl normalizes stored image references into browser-safe URLs.
package imageurl

import (
	"net/url"
	"strings"
)

// Normalize upgrades http URLs pointing at the production image host to
// https and leaves everything else untouched. Relative paths pass through.
func Normalize(raw, productionHost string) string {
	if raw == "" || productionHost == "" {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	if u.Scheme == "http" && strings.EqualFold(u.Host, productionHost) {
		u.Scheme = "https"

		return u.String()
	}

	return raw
}
