package audit

import (
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/daphnetxg/homepage-audit/internal/model"
)

// ExtractSnapshot derives the full signal record from one fetched
// response. It is a pure function of its inputs: the same headers and
// markup always yield the same snapshot, and malformed or empty
// markup yields zeroed signals rather than an error.
//
// Timing fields (TTFBMillis, ElapsedMillis) are not set here; the
// engine fills them from the fetch it performed.
func ExtractSnapshot(inputURL, finalURL string, status int, header http.Header, htmlText string) model.Snapshot {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		// html.Parse does not fail on malformed markup, only on
		// reader errors, which a strings.Reader cannot produce.
		doc, _ = goquery.NewDocumentFromReader(strings.NewReader(""))
	}

	snap := model.Snapshot{
		InputURL:    inputURL,
		FinalURL:    finalURL,
		HTTPStatus:  status,
		ContentType: strings.ToLower(header.Get("Content-Type")),
		XRobotsTag:  strings.ToLower(header.Get("X-Robots-Tag")),
	}

	snap.Title = strings.TrimSpace(doc.Find("title").First().Text())
	snap.MetaDescription = strings.TrimSpace(firstAttr(doc, `meta[name="description"]`, "content"))
	snap.CanonicalHref = strings.TrimSpace(firstAttr(doc, `link[rel="canonical"]`, "href"))
	snap.RobotsMeta = strings.ToLower(strings.TrimSpace(firstAttr(doc, `meta[name="robots"]`, "content")))
	snap.Lang = strings.TrimSpace(firstAttr(doc, "html", "lang"))

	h1s := doc.Find("h1")
	snap.H1Count = h1s.Length()
	// Full text is kept here; any truncation is up to the renderer.
	snap.FirstH1 = strings.TrimSpace(h1s.First().Text())

	snap.ScriptCount = doc.Find("script").Length()
	snap.BodyTextLen = collapsedLen(doc.Find("body").Text())

	mains := doc.Find("main")
	snap.HasMain = mains.Length() > 0
	snap.MainTextLen = collapsedLen(mains.Text())

	snap.HreflangCount = doc.Find(`link[rel="alternate"][hreflang]`).Length()

	snap.OGTitle = strings.TrimSpace(firstAttr(doc, `meta[property="og:title"]`, "content"))
	snap.OGDescription = strings.TrimSpace(firstAttr(doc, `meta[property="og:description"]`, "content"))
	snap.OGURL = strings.TrimSpace(firstAttr(doc, `meta[property="og:url"]`, "content"))

	// JSON-LD health is a non-empty-text heuristic, not JSON
	// validation: a block of syntactically broken JSON-LD with text
	// in it still counts as readable. The check copy is written
	// around this behavior.
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		snap.HasJSONLD = true
		text := s.Text()
		if strings.TrimSpace(text) != "" {
			snap.JSONLDNonEmpty = true
		}
		lower := strings.ToLower(text)
		if strings.Contains(lower, "organization") || strings.Contains(lower, "localbusiness") {
			snap.HasOrgSchema = true
		}
	})

	snap.HostChanged = hostOf(inputURL) != hostOf(finalURL)

	return snap
}

// firstAttr returns the named attribute of the first match, or "".
func firstAttr(doc *goquery.Document, selector, attr string) string {
	v, _ := doc.Find(selector).First().Attr(attr)
	return v
}

// collapsedLen counts runes after collapsing whitespace runs to
// single spaces, so formatting-heavy markup does not inflate the
// text-length signals.
func collapsedLen(s string) int {
	return utf8.RuneCountInString(strings.Join(strings.Fields(s), " "))
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}
