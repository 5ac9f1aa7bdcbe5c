package audit

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/daphnetxg/homepage-audit/internal/model"
)

// A check inspects the snapshot and reports at most one finding.
// The second return value is false when the rule has nothing to say,
// healthy or otherwise.
type check func(model.Snapshot) (model.Finding, bool)

// battery is the fixed rule set, in display order. Every rule reads
// only the snapshot, so scoring does not depend on this ordering.
var battery = []check{
	checkHTTPStatus,
	checkRedirect,
	checkIndexability,
	checkCanonical,
	checkContentDensity,
	checkTitle,
	checkH1,
	checkStructuredData,
	checkOpenGraph,
	checkHostChange,
	checkLang,
}

// RunChecks evaluates every rule in battery order against one
// immutable snapshot.
func RunChecks(snap model.Snapshot) []model.Finding {
	findings := make([]model.Finding, 0, len(battery))
	for _, c := range battery {
		if f, ok := c(snap); ok {
			findings = append(findings, f)
		}
	}
	return findings
}

func checkHTTPStatus(snap model.Snapshot) (model.Finding, bool) {
	if snap.HTTPStatus >= 400 || snap.HTTPStatus == 0 {
		return model.Finding{
			Key:     "http_unreachable",
			Level:   model.LevelHigh,
			Title:   "Homepage did not load",
			Meaning: "Crawlers that receive an error status drop the page on the spot, so every other signal on this report is moot until this is fixed.",
			FixHint: "Check hosting, DNS, and the TLS certificate, and make sure the homepage answers with HTTP 200.",
		}, true
	}
	return model.Finding{}, false
}

func checkRedirect(snap model.Snapshot) (model.Finding, bool) {
	if snap.HTTPStatus >= 300 && snap.HTTPStatus < 400 {
		return model.Finding{
			Key:     "redirect_unresolved",
			Level:   model.LevelMid,
			Title:   "Homepage ends on a redirect",
			Meaning: "The fetch stopped on a redirect status instead of a final page. Search systems may never see the real homepage, and authority leaks across the hops.",
			FixHint: "Make the homepage resolve to one stable URL with at most a single redirect hop.",
		}, true
	}
	return model.Finding{}, false
}

func checkIndexability(snap model.Snapshot) (model.Finding, bool) {
	if strings.Contains(snap.RobotsMeta, "noindex") || strings.Contains(snap.XRobotsTag, "noindex") {
		return model.Finding{
			Key:     "noindex",
			Level:   model.LevelHigh,
			Title:   "NOINDEX signal present",
			Meaning: "A noindex directive tells search engines to remove this page from results entirely. While it stands, the site is invisible no matter how good the content is.",
			FixHint: "Remove noindex from the robots meta tag and the X-Robots-Tag header unless the exclusion is deliberate.",
		}, true
	}
	return model.Finding{
		Key:     "index_ok",
		Level:   model.LevelOK,
		Title:   "No indexing block detected",
		Meaning: "Neither the response headers nor the robots meta tag carry a noindex directive. The indexing gate is open.",
	}, true
}

func checkCanonical(snap model.Snapshot) (model.Finding, bool) {
	if snap.CanonicalHref == "" {
		return model.Finding{
			Key:     "canonical_missing",
			Level:   model.LevelMid,
			Title:   "No canonical URL declared",
			Meaning: "Without a canonical, URL variants of the homepage (www vs bare, http vs https, trailing slash) can be indexed as separate pages and split ranking weight between them.",
			FixHint: "Declare <link rel=\"canonical\"> pointing at the one preferred homepage URL.",
		}, true
	}

	resolved, finalNorm, err := resolveCanonical(snap.CanonicalHref, snap.FinalURL)
	if err != nil {
		return model.Finding{
			Key:     "canonical_invalid",
			Level:   model.LevelMid,
			Title:   "Canonical URL does not parse",
			Meaning: "The declared canonical is not a usable URL, which leaves the preferred-version decision to the search engine's guess.",
			FixHint: "Replace the canonical href with a valid absolute URL.",
		}, true
	}

	if resolved != finalNorm {
		return model.Finding{
			Key:     "canonical_mismatch",
			Level:   model.LevelMid,
			Title:   "Canonical points at a different URL",
			Meaning: "The page names another URL as the preferred version of itself, so ranking signals earned here may be credited elsewhere.",
			FixHint: "Point the canonical at the URL visitors actually land on, or finish the redirect chain there.",
		}, true
	}

	return model.Finding{
		Key:     "canonical_ok",
		Level:   model.LevelOK,
		Title:   "Canonical matches the final URL",
		Meaning: "The page declares itself as the preferred version. No duplicate-content dilution from this side.",
	}, true
}

// resolveCanonical resolves the canonical href against the final URL
// and returns both sides normalized for comparison (fragments
// dropped, serialized form).
func resolveCanonical(canonicalHref, finalURL string) (resolved, finalNorm string, err error) {
	base, err := url.Parse(finalURL)
	if err != nil {
		return "", "", err
	}
	ref, err := url.Parse(canonicalHref)
	if err != nil {
		return "", "", err
	}

	r := base.ResolveReference(ref)
	r.Fragment = ""
	base.Fragment = ""
	return r.String(), base.String(), nil
}

func checkContentDensity(snap model.Snapshot) (model.Finding, bool) {
	switch {
	case snap.BodyTextLen < 600 && snap.ScriptCount > 25:
		return model.Finding{
			Key:     "shell_site",
			Level:   model.LevelHigh,
			Title:   "Page reads as an empty shell",
			Meaning: "A heavy script payload with almost no extractable text. Visitors see a design; crawlers and AI systems see a blank page, and blank pages do not rank and do not get cited.",
			FixHint: "Server-render the core copy so the text exists in the HTML itself, not only after scripts run.",
		}, true
	case snap.BodyTextLen < 800:
		return model.Finding{
			Key:     "thin_content",
			Level:   model.LevelMid,
			Title:   "Very little readable text",
			Meaning: "Under roughly 800 characters of visible text gives ranking systems almost nothing to work with, and thin homepages drag down how the whole site is classified.",
			FixHint: "Add substantive homepage copy that states what the business does, for whom, and where.",
		}, true
	}
	return model.Finding{
		Key:     "content_ok",
		Level:   model.LevelOK,
		Title:   "Healthy amount of extractable text",
		Meaning: "The homepage carries enough machine-readable text to be understood and classified.",
	}, true
}

func checkTitle(snap model.Snapshot) (model.Finding, bool) {
	if snap.Title == "" {
		return model.Finding{
			Key:     "title_missing",
			Level:   model.LevelMid,
			Title:   "Missing <title>",
			Meaning: "The title tag is the headline of your search listing and the strongest single on-page signal. Without it, engines improvise one, and improvised headlines do not sell.",
			FixHint: "Add a unique, descriptive title of roughly 50 to 60 characters.",
		}, true
	}
	if runeLen(snap.Title) > 70 {
		return model.Finding{
			Key:     "title_long",
			Level:   model.LevelLow,
			Title:   "Title is longer than 70 characters",
			Meaning: "Long titles get cut off in results, often right where the part that earns the click would have been.",
			FixHint: "Front-load the key message and trim to about 60 characters.",
		}, true
	}
	return model.Finding{
		Key:     "title_ok",
		Level:   model.LevelOK,
		Title:   "Title present and within length",
		Meaning: "The homepage has a title that fits in a search listing.",
	}, true
}

func checkH1(snap model.Snapshot) (model.Finding, bool) {
	switch {
	case snap.H1Count == 0:
		return model.Finding{
			Key:     "h1_missing",
			Level:   model.LevelMid,
			Title:   "Missing H1 heading",
			Meaning: "The H1 tells both crawlers and skimming visitors what this page is about. Without one, the page topic is left to inference.",
			FixHint: "Add exactly one H1 stating the core offer of the site.",
		}, true
	case snap.H1Count >= 3:
		return model.Finding{
			Key:     "h1_overload",
			Level:   model.LevelMid,
			Title:   "Three or more H1 headings",
			Meaning: "Multiple competing H1s blur the page topic. Usually a template is promoting widget headings to H1 without anyone noticing.",
			FixHint: "Keep one H1 for the core message and demote the rest to H2/H3.",
		}, true
	}
	return model.Finding{
		Key:     "h1_ok",
		Level:   model.LevelOK,
		Title:   "Heading structure looks sane",
		Meaning: "The page leads with a clear, single main heading.",
	}, true
}

func checkStructuredData(snap model.Snapshot) (model.Finding, bool) {
	switch {
	case !snap.HasJSONLD:
		return model.Finding{
			Key:     "schema_missing",
			Level:   model.LevelMid,
			Title:   "No JSON-LD structured data",
			Meaning: "Structured data is how machines confirm who you are. Without it, knowledge panels, rich results, and AI answers have nothing solid to attach to your business.",
			FixHint: "Embed a JSON-LD block describing the organization: name, URL, logo, contact.",
		}, true
	case !snap.JSONLDNonEmpty:
		return model.Finding{
			Key:     "schema_empty",
			Level:   model.LevelMid,
			Title:   "JSON-LD block is empty",
			Meaning: "A structured-data block exists but contains nothing readable, which is the same as not having one, except it suggests a broken template.",
			FixHint: "Fill the JSON-LD block or remove it and generate it properly.",
		}, true
	case !snap.HasOrgSchema:
		return model.Finding{
			Key:     "schema_no_org",
			Level:   model.LevelLow,
			Title:   "No Organization or LocalBusiness schema",
			Meaning: "Structured data is present but never declares the business entity itself, so machines still cannot confirm who is behind the site.",
			FixHint: "Add an Organization or LocalBusiness entry to the existing JSON-LD.",
		}, true
	}
	return model.Finding{
		Key:     "schema_ok",
		Level:   model.LevelOK,
		Title:   "Organization schema present",
		Meaning: "The page carries machine-readable identity data for the business.",
	}, true
}

func checkOpenGraph(snap model.Snapshot) (model.Finding, bool) {
	if snap.OGTitle == "" || snap.OGDescription == "" {
		return model.Finding{
			Key:     "og_incomplete",
			Level:   model.LevelLow,
			Title:   "Open Graph tags incomplete",
			Meaning: "When the page is shared or quoted, the preview card is assembled from og:title and og:description. Missing ones mean ugly or empty link previews.",
			FixHint: "Add og:title and og:description meta tags mirroring the page's own title and description.",
		}, true
	}
	return model.Finding{
		Key:     "og_ok",
		Level:   model.LevelOK,
		Title:   "Open Graph tags present",
		Meaning: "Shared links to this page will render a proper preview card.",
	}, true
}

func checkHostChange(snap model.Snapshot) (model.Finding, bool) {
	if snap.HostChanged {
		return model.Finding{
			Key:     "host_changed",
			Level:   model.LevelLow,
			Title:   "Redirected to a different host",
			Meaning: "The address entered and the address that finally answered are different hosts. Fine when intentional (www vs bare domain), worth knowing either way.",
			FixHint: "Confirm the redirect target is the domain you want search engines to credit.",
		}, true
	}
	return model.Finding{}, false
}

func checkLang(snap model.Snapshot) (model.Finding, bool) {
	if snap.Lang == "" {
		return model.Finding{
			Key:     "lang_missing",
			Level:   model.LevelLow,
			Title:   "No lang attribute on <html>",
			Meaning: "Without a declared language, engines guess which market the page belongs to, and guesses go wrong on multilingual or regional sites.",
			FixHint: "Set <html lang=\"...\"> to the page's primary language.",
		}, true
	}
	if snap.HreflangCount > 0 {
		return model.Finding{
			Key:     "hreflang_present",
			Level:   model.LevelOK,
			Title:   "hreflang alternates declared",
			Meaning: "The page declares language/region alternates, which helps engines route users to the right variant.",
		}, true
	}
	return model.Finding{}, false
}

// runeLen measures display length in runes, the closest analogue to
// what a search result truncates on.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
