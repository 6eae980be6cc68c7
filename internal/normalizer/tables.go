package normalizer

// trackingParams is the blocklist of query keys that carry marketing or
// analytics metadata and never affect resource identity. Matching is exact
// and case-sensitive.
var trackingParams = map[string]struct{}{
	"utm_source":   {},
	"utm_medium":   {},
	"utm_campaign": {},
	"utm_term":     {},
	"utm_content":  {},
	"fbclid":       {},
	"gclid":        {},
	"msclkid":      {},
	"mc_cid":       {},
	"mc_eid":       {},
	"ref":          {},
	"referrer":     {},
	"source":       {},
	"campaign":     {},
	"s":            {},
	"_ga":          {},
	"_gid":         {},
	"igshid":       {},
	"ncid":         {},
}

// hostAliases maps known mirror hostnames to their canonical host. Lookup is
// exact-string and case-sensitive; no subdomain wildcarding (m.twitter.com is
// intentionally not aliased).
var hostAliases = map[string]string{
	"twitter.com":        "x.com",
	"www.twitter.com":    "x.com",
	"mobile.twitter.com": "x.com",
	"www.reddit.com":     "reddit.com",
	"old.reddit.com":     "reddit.com",
	"new.reddit.com":     "reddit.com",
}
