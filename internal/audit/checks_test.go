package audit

import (
	"strings"
	"testing"

	"github.com/daphnetxg/homepage-audit/internal/model"
)

// healthySnapshot returns a snapshot that trips none of the rules.
func healthySnapshot() model.Snapshot {
	return model.Snapshot{
		InputURL:        "https://acme.example",
		FinalURL:        "https://acme.example/",
		HTTPStatus:      200,
		ContentType:     "text/html",
		Title:           "Acme Plumbing in Springfield",
		MetaDescription: "Plumbers since 1985.",
		CanonicalHref:   "https://acme.example/",
		Lang:            "en",
		H1Count:         1,
		FirstH1:         "Emergency plumbing, done right",
		ScriptCount:     4,
		BodyTextLen:     2400,
		OGTitle:         "Acme Plumbing",
		OGDescription:   "Plumbers in Springfield.",
		HasJSONLD:       true,
		JSONLDNonEmpty:  true,
		HasOrgSchema:    true,
	}
}

// findingFor digs the finding with the given key out of a result set.
func findingFor(t *testing.T, findings []model.Finding, key string) model.Finding {
	t.Helper()
	for _, f := range findings {
		if f.Key == key {
			return f
		}
	}
	t.Fatalf("no finding with key %q in %v", key, keysOf(findings))
	return model.Finding{}
}

func hasKey(findings []model.Finding, key string) bool {
	for _, f := range findings {
		if f.Key == key {
			return true
		}
	}
	return false
}

func keysOf(findings []model.Finding) []string {
	keys := make([]string, len(findings))
	for i, f := range findings {
		keys[i] = f.Key
	}
	return keys
}

func TestRunChecks_HealthySnapshot(t *testing.T) {
	findings := RunChecks(healthySnapshot())

	for _, f := range findings {
		if f.Level != model.LevelOK {
			t.Errorf("%s fired at %s on a healthy snapshot", f.Key, f.Level)
		}
	}
	if got := Score(findings); got != 0 {
		t.Errorf("Score = %d, want 0", got)
	}
}

func TestCheckHTTPStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		fires  bool
	}{
		{name: "ok", status: 200, fires: false},
		{name: "not found", status: 404, fires: true},
		{name: "server error", status: 500, fires: true},
		{name: "fetch failed", status: 0, fires: true},
		{name: "redirect is not a status failure", status: 301, fires: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := healthySnapshot()
			snap.HTTPStatus = tt.status

			f, ok := checkHTTPStatus(snap)
			if ok != tt.fires {
				t.Fatalf("fired = %v, want %v", ok, tt.fires)
			}
			if ok && f.Level != model.LevelHigh {
				t.Errorf("Level = %s, want high", f.Level)
			}
		})
	}
}

func TestCheckRedirect(t *testing.T) {
	snap := healthySnapshot()
	snap.HTTPStatus = 302

	f, ok := checkRedirect(snap)
	if !ok {
		t.Fatal("redirect check did not fire on 302")
	}
	if f.Level != model.LevelMid {
		t.Errorf("Level = %s, want mid", f.Level)
	}

	snap.HTTPStatus = 200
	if _, ok := checkRedirect(snap); ok {
		t.Error("redirect check fired on 200 with no healthy counterpart defined")
	}
}

func TestCheckIndexability(t *testing.T) {
	tests := []struct {
		name       string
		robotsMeta string
		xRobots    string
		level      model.Level
	}{
		{name: "clean", level: model.LevelOK},
		{name: "meta noindex", robotsMeta: "noindex,nofollow", level: model.LevelHigh},
		{name: "header noindex only", xRobots: "noindex", level: model.LevelHigh},
		{name: "noindex embedded in directive list", xRobots: "noarchive, noindex", level: model.LevelHigh},
		{name: "nofollow alone is fine", robotsMeta: "nofollow", level: model.LevelOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := healthySnapshot()
			snap.RobotsMeta = tt.robotsMeta
			snap.XRobotsTag = tt.xRobots

			f, ok := checkIndexability(snap)
			if !ok {
				t.Fatal("indexability check must always report")
			}
			if f.Level != tt.level {
				t.Errorf("Level = %s, want %s", f.Level, tt.level)
			}
		})
	}
}

func TestCheckIndexability_HeaderAloneFiresHigh(t *testing.T) {
	// The header directive alone must gate the audit regardless of
	// every other healthy signal.
	snap := healthySnapshot()
	snap.XRobotsTag = "noindex"

	findings := RunChecks(snap)
	f := findingFor(t, findings, "noindex")
	if f.Level != model.LevelHigh {
		t.Errorf("Level = %s, want high", f.Level)
	}
}

func TestCheckCanonical(t *testing.T) {
	tests := []struct {
		name      string
		canonical string
		finalURL  string
		wantKey   string
	}{
		{
			name:      "missing",
			canonical: "",
			finalURL:  "https://acme.example/",
			wantKey:   "canonical_missing",
		},
		{
			name:      "exact match",
			canonical: "https://acme.example/",
			finalURL:  "https://acme.example/",
			wantKey:   "canonical_ok",
		},
		{
			name:      "relative canonical resolving to final",
			canonical: "/",
			finalURL:  "https://acme.example/",
			wantKey:   "canonical_ok",
		},
		{
			name:      "mismatch",
			canonical: "https://other.example/",
			finalURL:  "https://acme.example/",
			wantKey:   "canonical_mismatch",
		},
		{
			name:      "trailing difference",
			canonical: "https://acme.example/home",
			finalURL:  "https://acme.example/",
			wantKey:   "canonical_mismatch",
		},
		{
			name:      "unparseable",
			canonical: "https://acme.example/%zz",
			finalURL:  "https://acme.example/",
			wantKey:   "canonical_invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := healthySnapshot()
			snap.CanonicalHref = tt.canonical
			snap.FinalURL = tt.finalURL

			f, ok := checkCanonical(snap)
			if !ok {
				t.Fatal("canonical check must always report")
			}
			if f.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", f.Key, tt.wantKey)
			}
			if tt.wantKey == "canonical_ok" && f.Level != model.LevelOK {
				t.Errorf("Level = %s, want ok", f.Level)
			}
			if tt.wantKey != "canonical_ok" && f.Level != model.LevelMid {
				t.Errorf("Level = %s, want mid", f.Level)
			}
		})
	}
}

func TestCheckContentDensity(t *testing.T) {
	tests := []struct {
		name    string
		textLen int
		scripts int
		wantKey string
		level   model.Level
	}{
		{name: "shell site", textLen: 500, scripts: 30, wantKey: "shell_site", level: model.LevelHigh},
		{name: "thin but few scripts", textLen: 500, scripts: 5, wantKey: "thin_content", level: model.LevelMid},
		{name: "thin at boundary", textLen: 799, scripts: 0, wantKey: "thin_content", level: model.LevelMid},
		{name: "script-heavy but enough text", textLen: 5000, scripts: 40, wantKey: "content_ok", level: model.LevelOK},
		{name: "healthy", textLen: 2400, scripts: 3, wantKey: "content_ok", level: model.LevelOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := healthySnapshot()
			snap.BodyTextLen = tt.textLen
			snap.ScriptCount = tt.scripts

			f, ok := checkContentDensity(snap)
			if !ok {
				t.Fatal("density check must always report")
			}
			if f.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", f.Key, tt.wantKey)
			}
			if f.Level != tt.level {
				t.Errorf("Level = %s, want %s", f.Level, tt.level)
			}
		})
	}
}

func TestCheckTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantKey string
		level   model.Level
	}{
		{name: "missing", title: "", wantKey: "title_missing", level: model.LevelMid},
		{name: "good", title: "Acme Plumbing in Springfield", wantKey: "title_ok", level: model.LevelOK},
		{name: "exactly 70 runes is fine", title: strings.Repeat("x", 70), wantKey: "title_ok", level: model.LevelOK},
		{name: "over 70 runes", title: strings.Repeat("x", 71), wantKey: "title_long", level: model.LevelLow},
		{name: "multibyte runes counted as one", title: strings.Repeat("ü", 70), wantKey: "title_ok", level: model.LevelOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := healthySnapshot()
			snap.Title = tt.title

			f, ok := checkTitle(snap)
			if !ok {
				t.Fatal("title check must always report")
			}
			if f.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", f.Key, tt.wantKey)
			}
			if f.Level != tt.level {
				t.Errorf("Level = %s, want %s", f.Level, tt.level)
			}
		})
	}
}

func TestCheckH1(t *testing.T) {
	tests := []struct {
		count   int
		wantKey string
		level   model.Level
	}{
		{count: 0, wantKey: "h1_missing", level: model.LevelMid},
		{count: 1, wantKey: "h1_ok", level: model.LevelOK},
		{count: 2, wantKey: "h1_ok", level: model.LevelOK},
		{count: 3, wantKey: "h1_overload", level: model.LevelMid},
		{count: 7, wantKey: "h1_overload", level: model.LevelMid},
	}

	for _, tt := range tests {
		snap := healthySnapshot()
		snap.H1Count = tt.count

		f, ok := checkH1(snap)
		if !ok {
			t.Fatalf("h1 check must always report (count=%d)", tt.count)
		}
		if f.Key != tt.wantKey || f.Level != tt.level {
			t.Errorf("count=%d: got %q/%s, want %q/%s", tt.count, f.Key, f.Level, tt.wantKey, tt.level)
		}
	}
}

func TestCheckStructuredData(t *testing.T) {
	tests := []struct {
		name     string
		hasBlock bool
		nonEmpty bool
		hasOrg   bool
		wantKey  string
		level    model.Level
	}{
		{name: "no block", wantKey: "schema_missing", level: model.LevelMid},
		{name: "empty block", hasBlock: true, wantKey: "schema_empty", level: model.LevelMid},
		{name: "no org entity", hasBlock: true, nonEmpty: true, wantKey: "schema_no_org", level: model.LevelLow},
		{name: "complete", hasBlock: true, nonEmpty: true, hasOrg: true, wantKey: "schema_ok", level: model.LevelOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := healthySnapshot()
			snap.HasJSONLD = tt.hasBlock
			snap.JSONLDNonEmpty = tt.nonEmpty
			snap.HasOrgSchema = tt.hasOrg

			f, ok := checkStructuredData(snap)
			if !ok {
				t.Fatal("structured-data check must always report")
			}
			if f.Key != tt.wantKey || f.Level != tt.level {
				t.Errorf("got %q/%s, want %q/%s", f.Key, f.Level, tt.wantKey, tt.level)
			}
		})
	}
}

func TestCheckOpenGraph(t *testing.T) {
	tests := []struct {
		name    string
		ogTitle string
		ogDesc  string
		level   model.Level
	}{
		{name: "both present", ogTitle: "t", ogDesc: "d", level: model.LevelOK},
		{name: "title missing", ogDesc: "d", level: model.LevelLow},
		{name: "description missing", ogTitle: "t", level: model.LevelLow},
		{name: "both missing", level: model.LevelLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := healthySnapshot()
			snap.OGTitle = tt.ogTitle
			snap.OGDescription = tt.ogDesc

			f, ok := checkOpenGraph(snap)
			if !ok {
				t.Fatal("open-graph check must always report")
			}
			if f.Level != tt.level {
				t.Errorf("Level = %s, want %s", f.Level, tt.level)
			}
		})
	}
}

func TestCheckHostChangeAndLang_Informational(t *testing.T) {
	snap := healthySnapshot()
	snap.HostChanged = true
	snap.Lang = ""
	snap.HreflangCount = 0

	findings := RunChecks(snap)

	host := findingFor(t, findings, "host_changed")
	if host.Level != model.LevelLow {
		t.Errorf("host_changed Level = %s, want low", host.Level)
	}
	lang := findingFor(t, findings, "lang_missing")
	if lang.Level != model.LevelLow {
		t.Errorf("lang_missing Level = %s, want low", lang.Level)
	}

	// Lang present with hreflang alternates reports an informational ok.
	snap.Lang = "en"
	snap.HreflangCount = 2
	findings = RunChecks(snap)
	if !hasKey(findings, "hreflang_present") {
		t.Error("expected hreflang_present finding")
	}

	// Lang present without alternates stays silent.
	snap.HreflangCount = 0
	findings = RunChecks(snap)
	if hasKey(findings, "hreflang_present") || hasKey(findings, "lang_missing") {
		t.Errorf("lang check should be silent, got %v", keysOf(findings))
	}
}

func TestRunChecks_OnePerRule(t *testing.T) {
	findings := RunChecks(healthySnapshot())

	seen := make(map[string]bool, len(findings))
	for _, f := range findings {
		if seen[f.Key] {
			t.Errorf("duplicate finding key %q", f.Key)
		}
		seen[f.Key] = true
	}
}
