package verifier

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"linkswap/internal/core/domain"
)

// anchor is one <a href> element found on a proof page, in document order.
type anchor struct {
	Href     string // as written
	Resolved string // normalised absolute form
	Text     string // visible text, whitespace collapsed
	Rel      string
}

// Nofollow reports whether rel carries a nofollow token. A missing rel is
// dofollow.
func (a anchor) Nofollow() bool {
	for _, tok := range strings.Fields(a.Rel) {
		if strings.EqualFold(tok, "nofollow") {
			return true
		}
	}
	return false
}

// extractLinks parses the page and returns every anchor with an href.
// A <base href> in the document overrides the fetch URL as resolution base.
func extractLinks(body []byte, base *url.URL) ([]anchor, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var links []anchor
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Base:
				if href, ok := attr(n, "href"); ok {
					if u, err := base.Parse(strings.TrimSpace(href)); err == nil {
						base = u
					}
				}
			case atom.A:
				if href, ok := attr(n, "href"); ok {
					rel, _ := attr(n, "rel")
					links = append(links, anchor{
						Href:     href,
						Resolved: normalize(href, base),
						Text:     textOf(n),
						Rel:      rel,
					})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// textOf returns the visible text under n with markup stripped.
func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		case n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style):
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// normalize resolves href against base, lower-cases it and strips one
// trailing slash. Unparseable hrefs normalise to "".
func normalize(href string, base *url.URL) string {
	ref := strings.TrimSpace(href)
	var (
		u   *url.URL
		err error
	)
	if base != nil {
		u, err = base.Parse(ref)
	} else {
		u, err = url.Parse(ref)
	}
	if err != nil {
		return ""
	}
	return strings.TrimSuffix(strings.ToLower(u.String()), "/")
}

// sameTarget reports whether two normalised URLs point at the same target:
// identical, or on the same host with one a prefix of the other that ends at
// a path, query or fragment boundary.
func sameTarget(link, target string) bool {
	if link == "" || target == "" {
		return false
	}
	if link == target {
		return true
	}
	lu, err := url.Parse(link)
	if err != nil || lu.Host == "" {
		return false
	}
	tu, err := url.Parse(target)
	if err != nil || lu.Host != tu.Host {
		return false
	}
	l, t := stripScheme(link), stripScheme(target)
	return prefixAtBoundary(l, t) || prefixAtBoundary(t, l)
}

func prefixAtBoundary(s, prefix string) bool {
	rest, ok := strings.CutPrefix(s, prefix)
	if !ok {
		return false
	}
	return rest == "" || strings.HasSuffix(prefix, "/") || strings.ContainsRune("/?#", rune(rest[0]))
}

func stripScheme(s string) string {
	if i := strings.Index(s, "://"); i >= 0 {
		return s[i+3:]
	}
	return s
}

// textMatches reports whether anchor text relates to the keyword in either
// direction. An empty keyword accepts any text; empty text never matches a
// keyword.
func textMatches(text, keyword string) bool {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return true
	}
	txt := strings.ToLower(strings.TrimSpace(text))
	if txt == "" {
		return false
	}
	return strings.Contains(txt, kw) || strings.Contains(kw, txt)
}

func typeMatches(a anchor, lt domain.LinkType) bool {
	switch lt {
	case domain.LinkDofollow:
		return !a.Nofollow()
	case domain.LinkNofollow:
		return a.Nofollow()
	}
	return true
}

// evaluate picks the best anchor pointing at the target and derives the
// verdict from it. Priority: text and type match, text match, type match,
// first href match. Ties go to document order.
func evaluate(links []anchor, req domain.Requirement) domain.VerificationResult {
	var res domain.VerificationResult
	target := normalize(req.TargetURL, nil)

	var candidates []anchor
	for _, a := range links {
		if sameTarget(a.Resolved, target) {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		res.Details = append(res.Details, fmt.Sprintf("No link to %s found among %d link(s) on the page", req.TargetURL, len(links)))
		return res
	}
	res.LinkFound = true
	res.Details = append(res.Details, fmt.Sprintf("Found %d link(s) to %s", len(candidates), req.TargetURL))

	best := -1
	firstText, firstType := -1, -1
	for i, a := range candidates {
		tm, ym := textMatches(a.Text, req.TargetKeyword), typeMatches(a, req.LinkType)
		if tm && ym {
			best = i
			break
		}
		if tm && firstText < 0 {
			firstText = i
		}
		if ym && firstType < 0 {
			firstType = i
		}
	}
	switch {
	case best >= 0:
	case firstText >= 0:
		best = firstText
	case firstType >= 0:
		best = firstType
	default:
		best = 0
	}

	chosen := candidates[best]
	res.AnchorTextMatch = textMatches(chosen.Text, req.TargetKeyword)
	res.LinkTypeMatch = typeMatches(chosen, req.LinkType)
	res.Verified = res.AnchorTextMatch && res.LinkTypeMatch
	res.FoundLink = &domain.FoundLink{
		Href:       chosen.Href,
		AnchorText: chosen.Text,
		Rel:        chosen.Rel,
		Nofollow:   chosen.Nofollow(),
	}

	switch {
	case strings.TrimSpace(req.TargetKeyword) == "":
		res.Details = append(res.Details, "No anchor keyword required")
	case res.AnchorTextMatch:
		res.Details = append(res.Details, fmt.Sprintf("Anchor text %q matches keyword %q", chosen.Text, req.TargetKeyword))
	case chosen.Text == "":
		res.Details = append(res.Details, fmt.Sprintf("Link has no anchor text, expected keyword %q", req.TargetKeyword))
	default:
		res.Details = append(res.Details, fmt.Sprintf("Anchor text %q does not match keyword %q", chosen.Text, req.TargetKeyword))
	}

	kind := "dofollow"
	if chosen.Nofollow() {
		kind = "nofollow"
	}
	if res.LinkTypeMatch {
		res.Details = append(res.Details, fmt.Sprintf("Link is %s as required", kind))
	} else {
		res.Details = append(res.Details, fmt.Sprintf("Link is %s but %s is required", kind, req.LinkType))
	}
	return res
}
