package audit

import (
	"context"
	"sort"
	"time"

	"github.com/daphnetxg/homepage-audit/internal/model"
	"github.com/daphnetxg/homepage-audit/internal/platform/errs"
)

// topFindingCount bounds the prioritized finding list on the report.
const topFindingCount = 9

// Engine runs the full homepage audit pipeline: normalize, fetch,
// extract signals, run the check battery, score, and assemble the
// report. It holds no per-audit state, so one Engine serves
// concurrent audits.
type Engine struct {
	fetcher Fetcher
}

// NewEngine returns an Engine backed by the given Fetcher.
func NewEngine(fetcher Fetcher) *Engine {
	return &Engine{fetcher: fetcher}
}

// Audit performs one complete audit of the given raw URL. Input
// validation and transport failures return an error; once a response
// exists, the audit always completes, including for error statuses,
// which surface as findings instead.
func (e *Engine) Audit(ctx context.Context, rawURL string) (*model.Report, error) {
	normalized, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := e.fetcher.Fetch(ctx, normalized)
	if err != nil {
		return nil, &errs.AppError{
			Kind:    errs.Unreachable,
			Message: "The site could not be reached. Check the address, or try again shortly.",
			Cause:   err,
		}
	}
	elapsed := time.Since(start)

	finalURL := res.FinalURL
	if finalURL == "" {
		finalURL = normalized
	}

	snap := ExtractSnapshot(normalized, finalURL, res.Status, res.Header, res.Body)
	snap.TTFBMillis = res.TTFB.Milliseconds()
	snap.ElapsedMillis = elapsed.Milliseconds()

	findings := RunChecks(snap)
	score := Score(findings)

	return &model.Report{
		InputURL:      normalized,
		FinalURL:      finalURL,
		Status:        snap.HTTPStatus,
		TTFBMillis:    snap.TTFBMillis,
		ElapsedMillis: snap.ElapsedMillis,
		ContentType:   snap.ContentType,
		Snapshot:      snap,
		Verdict:       VerdictFor(score),
		Score:         score,
		Checks:        findings,
		TopChecks:     topFindings(findings, topFindingCount),
	}, nil
}

// topFindings orders findings by severity for display, keeping
// battery order within a level (the sort must be stable for that),
// and truncates to n.
func topFindings(findings []model.Finding, n int) []model.Finding {
	ranked := make([]model.Finding, len(findings))
	copy(ranked, findings)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Level < ranked[j].Level
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
