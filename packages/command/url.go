package command

import (
	"net/url"
	"strings"

	"github.com/abdul-hamid-achik/curlspec/packages/core/model"
)

// URL returns the request URL with placeholders resolved and the enabled
// query parameters appended in order. Parameter keys are written as is;
// values are resolved and percent-encoded.
func (b *Builder) URL(req *model.Request) string {
	base := b.resolve(req.URL)
	if !req.HasEnabledQuery() {
		return base
	}

	pairs := make([]string, 0, len(req.Query))
	for _, p := range req.Query {
		if !p.Enabled {
			continue
		}
		pairs = append(pairs, p.Key+"="+EncodeQueryValue(b.resolve(p.Value)))
	}
	query := strings.Join(pairs, "&")

	if strings.Contains(base, "?") {
		return base + "&" + query
	}
	return base + "?" + query
}

// BuildURL returns the final URL for req with placeholders resolved from vars.
func BuildURL(req *model.Request, vars model.Variables) string {
	return ForVariables(vars).URL(req)
}

// EncodeQueryValue percent-encodes everything except RFC 3986 unreserved
// characters. Spaces become %20.
func EncodeQueryValue(s string) string {
	// QueryEscape only leaves unreserved characters bare; a '+' in its
	// output always stands for a space because a literal '+' becomes %2B.
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
