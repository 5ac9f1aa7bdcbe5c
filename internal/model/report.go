package model

// Level classifies the severity of a single check finding. The
// ordering of the constants is the display priority: lower values
// sort first in the prioritized finding list.
type Level int

const (
	// LevelHigh marks signals that can suppress the whole site.
	LevelHigh Level = iota
	// LevelMid marks signals that measurably hurt indexing or ranking.
	LevelMid
	// LevelLow marks refinements and informational notices.
	LevelLow
	// LevelOK marks an explicitly healthy check outcome.
	LevelOK
)

// String returns the display name of the level.
func (l Level) String() string {
	switch l {
	case LevelHigh:
		return "high"
	case LevelMid:
		return "mid"
	case LevelLow:
		return "low"
	case LevelOK:
		return "ok"
	}
	return "unknown"
}

// Weight returns the level's contribution to the aggregate risk score.
func (l Level) Weight() int {
	switch l {
	case LevelHigh:
		return 4
	case LevelMid:
		return 2
	case LevelLow:
		return 1
	}
	return 0
}

// MarshalText renders levels by display name in JSON output.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Finding is the outcome of one check. A check emits at most one
// Finding per audit, including an explicit ok Finding when the
// condition it guards is healthy.
type Finding struct {
	Key     string `json:"key"`
	Level   Level  `json:"level"`
	Title   string `json:"title"`
	Meaning string `json:"meaning"`
	FixHint string `json:"fixHint,omitempty"`
}

// Verdict is the aggregate risk call derived from the score.
type Verdict struct {
	Badge string `json:"badge"`
	Tone  Level  `json:"tone"`
	Line  string `json:"line"`
}

// Snapshot is the flat record of signals extracted once per audit.
// String fields are never absent, only empty, so check predicates
// need no nil guards.
type Snapshot struct {
	InputURL      string `json:"inputUrl"`
	FinalURL      string `json:"finalUrl"`
	HTTPStatus    int    `json:"httpStatus"`
	TTFBMillis    int64  `json:"ttfbMs"`
	ElapsedMillis int64  `json:"elapsedMs"`
	ContentType   string `json:"contentType"`

	Title           string `json:"title"`
	MetaDescription string `json:"metaDescription"`
	CanonicalHref   string `json:"canonical"`
	RobotsMeta      string `json:"robotsMeta"`
	XRobotsTag      string `json:"xRobotsTag"`
	Lang            string `json:"lang"`

	H1Count       int    `json:"h1Count"`
	FirstH1       string `json:"firstH1"`
	ScriptCount   int    `json:"scriptCount"`
	BodyTextLen   int    `json:"bodyTextLen"`
	MainTextLen   int    `json:"mainTextLen"`
	HasMain       bool   `json:"hasMain"`
	HreflangCount int    `json:"hreflangCount"`

	OGTitle        string `json:"ogTitle"`
	OGDescription  string `json:"ogDescription"`
	OGURL          string `json:"ogUrl"`
	HasJSONLD      bool   `json:"hasJsonLd"`
	JSONLDNonEmpty bool   `json:"jsonLdNonEmpty"`
	HasOrgSchema   bool   `json:"hasOrgSchema"`

	HostChanged bool `json:"hostChanged"`
}

// Report is the immutable result of one completed audit. It is built
// once, handed to the rendering layer, and discarded.
type Report struct {
	InputURL      string    `json:"inputUrl"`
	FinalURL      string    `json:"finalUrl"`
	Status        int       `json:"status"`
	TTFBMillis    int64     `json:"ttfb"`
	ElapsedMillis int64     `json:"elapsed"`
	ContentType   string    `json:"contentType"`
	Snapshot      Snapshot  `json:"snapshot"`
	Verdict       Verdict   `json:"verdict"`
	Score         int       `json:"score"`
	Checks        []Finding `json:"checks"`
	TopChecks     []Finding `json:"topChecks"`
}
