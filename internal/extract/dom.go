package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Text returns cleaned text of the first element matching selector within sel.
// Empty selector reads sel itself.
func Text(sel *goquery.Selection, selector string) string {
	if selector != "" {
		sel = sel.Find(selector)
	}

	return Clean(sel.First().Text())
}

// Attr returns trimmed attribute of the first element matching selector within sel.
// Empty selector reads sel itself.
func Attr(sel *goquery.Selection, selector, attr string) string {
	if selector != "" {
		sel = sel.Find(selector)
	}

	value, _ := sel.First().Attr(attr)
	return strings.TrimSpace(value)
}

// SrcFromImg returns image URL of img element, preferring lazy-loading attributes over src placeholders.
func SrcFromImg(img *goquery.Selection) string {
	for _, attr := range []string{"data-src", "data-lazy", "data-original", "src"} {
		if value, ok := img.Attr(attr); ok {
			value = strings.TrimSpace(value)
			if value != "" && !strings.HasPrefix(value, "data:") {
				return value
			}
		}
	}

	if srcset, ok := img.Attr("srcset"); ok {
		first, _, _ := strings.Cut(strings.TrimSpace(srcset), ",")
		if fields := strings.Fields(first); len(fields) > 0 {
			return fields[0]
		}
	}

	return ""
}

// ResolveURL returns ref resolved against base. Unparsable or empty ref yields "".
func ResolveURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}

	refURL, err := url.Parse(ref)
	if err != nil {
		return ""
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}

	resolved := baseURL.ResolveReference(refURL)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}

	return resolved.String()
}

// LastPathSegment returns the last non-empty path segment of rawURL.
func LastPathSegment(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	return segments[len(segments)-1]
}
