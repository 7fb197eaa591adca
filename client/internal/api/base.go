package api

import (
	"fmt"
	"strings"

	"github.com/youhong316/harbor/client/internal/types"
)

// HTTPClient is the transport capability the API functions are given.
type HTTPClient = types.HTTPClient

// SearchPath is the Harbor global search endpoint.
const SearchPath = "/api/search"

// SearchURL concatenates baseURL, the endpoint and "?q=" + term.
//
// Without escape the term keeps its query syntax: '&', '=', '#' and '%' are
// sent as typed, so callers must keep them out of raw terms. Only the bytes a
// browser encodes in a query (controls, space, '"', '\'', '<', '>' and
// non-ASCII) are percent-encoded, since they cannot appear on the request line.
// With escape the whole term is query-escaped.
func SearchURL(baseURL, term string, escape bool) string {
	if escape {
		term = queryEscape(term)
	} else {
		term = requestLineSafe(term)
	}
	return strings.TrimRight(baseURL, "/") + SearchPath + "?q=" + term
}

// requestLineSafe applies the WHATWG query percent-encode set for special
// schemes and leaves every other byte untouched.
func requestLineSafe(term string) string {
	var b strings.Builder
	for i := 0; i < len(term); i++ {
		c := term[i]
		switch {
		case c <= 0x20, c >= 0x7f, c == '"', c == '\'', c == '<', c == '>':
			fmt.Fprintf(&b, "%%%02X", c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
