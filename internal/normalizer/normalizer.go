// Package normalizer rewrites URLs to a canonical form so that
// semantically-equivalent URLs compare equal as plain strings.
package normalizer

import (
	"net/url"
	"strings"
)

// Normalizer canonicalizes URLs for deduplication. Its configuration is fixed
// at construction and read-only afterwards, so a single instance is safe for
// concurrent use.
type Normalizer struct {
	tracking map[string]struct{}
	aliases  map[string]string
}

// New creates a Normalizer with the built-in tracking-parameter blocklist and
// host alias table.
func New() *Normalizer {
	tracking := make(map[string]struct{}, len(trackingParams))
	for param := range trackingParams {
		tracking[param] = struct{}{}
	}

	aliases := make(map[string]string, len(hostAliases))
	for host, canonical := range hostAliases {
		aliases[host] = canonical
	}

	return &Normalizer{
		tracking: tracking,
		aliases:  aliases,
	}
}

// Normalize rewrites a URL to its canonical form:
//   - http becomes https
//   - the host is lowercased, and known mirror hosts are replaced with
//     their canonical host
//   - tracking query parameters are removed (the query is dropped entirely
//     when nothing survives)
//   - the fragment is removed
//   - trailing slashes are trimmed from the path (the root path is kept)
//
// It never fails: input that does not parse as an absolute URL is returned
// unchanged.
func (n *Normalizer) Normalize(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	// net/url accepts relative references; treat them as unparseable so
	// garbage input passes through untouched.
	if u.Scheme == "" || (u.Host == "" && u.Opaque == "") {
		return raw
	}

	// Hosts are case-insensitive but net/url preserves their case.
	// Lowercase so case variants collapse and alias lookup sees the
	// canonical spelling.
	u.Host = strings.ToLower(u.Host)

	// A host with no path serializes as "/" in canonical form, so
	// "https://a.com" and "https://a.com/" collapse to one value.
	if u.Host != "" && u.Path == "" {
		u.Path = "/"
	}

	if u.Scheme == "http" {
		u.Scheme = "https"
	}

	if canonical, ok := n.aliases[u.Hostname()]; ok {
		if port := u.Port(); port != "" {
			u.Host = canonical + ":" + port
		} else {
			u.Host = canonical
		}
	}

	if u.RawQuery != "" {
		u.RawQuery = n.stripTracking(u.RawQuery)
	}

	u.Fragment = ""
	u.RawFragment = ""

	// Trailing-slash trim works on the escaped path: an encoded slash
	// (%2F) is path data, not a separator, and must survive untouched.
	if escaped := u.EscapedPath(); len(escaped) > 1 && strings.HasSuffix(escaped, "/") {
		escaped = strings.TrimRight(escaped, "/")
		if escaped == "" {
			escaped = "/"
		}

		if decoded, err := url.PathUnescape(escaped); err == nil {
			u.Path = decoded
			if decoded == escaped {
				u.RawPath = ""
			} else {
				u.RawPath = escaped
			}
		}
	}

	return u.String()
}

// stripTracking removes blocklisted keys from a raw query string. Surviving
// pairs keep their original relative order and raw encoding; only the key is
// percent-decoded for the membership test.
func (n *Normalizer) stripTracking(rawQuery string) string {
	pairs := strings.Split(rawQuery, "&")
	kept := make([]string, 0, len(pairs))

	for _, pair := range pairs {
		if pair == "" {
			continue
		}

		key := pair
		if idx := strings.Index(pair, "="); idx != -1 {
			key = pair[:idx]
		}

		if decoded, err := url.QueryUnescape(key); err == nil {
			key = decoded
		}

		if _, drop := n.tracking[key]; drop {
			continue
		}

		kept = append(kept, pair)
	}

	return strings.Join(kept, "&")
}
