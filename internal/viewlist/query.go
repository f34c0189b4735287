package viewlist

import (
	"net/url"
	"unicode/utf8"
)

// ExtractViewConf drops exactly one leading character of search, whatever it
// is, and returns the rest verbatim.
func ExtractViewConf(search string) string {
	if search == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(search)
	return search[size:]
}

// Search returns u's query the way a browser exposes location.search: empty
// when there is no query, otherwise the raw query prefixed with "?".
func Search(u *url.URL) string {
	if u == nil || u.RawQuery == "" {
		return ""
	}
	return "?" + u.RawQuery
}

func viewConfLink(jfmv string) string {
	return "?" + jfmv
}
