package audit

import "github.com/daphnetxg/homepage-audit/internal/model"

// Verdict tier boundaries, evaluated high to low.
const (
	verdictHighMin = 8
	verdictMidMin  = 4
)

// Score reduces a finding list to the aggregate risk score. It is a
// pure fold over severity weights: order-independent and idempotent.
func Score(findings []model.Finding) int {
	total := 0
	for _, f := range findings {
		total += f.Level.Weight()
	}
	return total
}

// VerdictFor maps a score to exactly one of the three verdict tiers.
func VerdictFor(score int) model.Verdict {
	switch {
	case score >= verdictHighMin:
		return model.Verdict{
			Badge: "High risk",
			Tone:  model.LevelHigh,
			Line:  "The homepage carries signals strong enough to suppress the whole site. Fix the high-severity items before touching anything else.",
		}
	case score >= verdictMidMin:
		return model.Verdict{
			Badge: "Needs attention",
			Tone:  model.LevelMid,
			Line:  "Nothing fatal on the homepage, but several signals are working against you, and they compound across inner pages.",
		}
	default:
		return model.Verdict{
			Badge: "No fatal issues",
			Tone:  model.LevelOK,
			Line:  "No blocking signals in the homepage snapshot. The remaining findings are refinements, not emergencies.",
		}
	}
}
