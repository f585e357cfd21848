// Package claim classifies warranty claims and assembles the analysis shown
// to the user before a claim document is generated.
package claim

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/toolvault/toolvault/internal/warranty"
)

// Verdict is the coverage classification for a claim
type Verdict string

const (
	LikelyCovered    Verdict = "likely_covered"
	PartiallyCovered Verdict = "partially_covered"
	NotCovered       Verdict = "not_covered"
)

// ExclusionCheck is one named policy exclusion evaluated pass/fail
type ExclusionCheck struct {
	Label  string `json:"label"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// Analysis is the full result of analysing a claim. It is re-derivable from
// the same tool and issue text.
type Analysis struct {
	Verdict         Verdict           `json:"verdict"`
	Confidence      int               `json:"confidence"`
	RelevantClauses []warranty.Clause `json:"relevant_clauses"`
	ExclusionsCheck []ExclusionCheck  `json:"exclusions_check"`
	Recommendation  string            `json:"recommendation"`
}

// wearVocabulary marks issue descriptions that point at wear rather than a
// manufacturing defect.
var wearVocabulary = []string{
	"wear", "worn", "old", "faded", "dull", "used", "rough", "scratched",
}

// verdictConfidence is a fixed lookup; it reflects how decisive each rule
// is, not the content of the description.
var verdictConfidence = map[Verdict]int{
	LikelyCovered:    87,
	PartiallyCovered: 62,
	NotCovered:       94,
}

// AnalysisSteps are the staged progress labels shown while an analysis is
// presented. Purely cosmetic: the analysis itself is computed immediately.
var AnalysisSteps = []string{
	"Reading warranty terms",
	"Analysing your issue description",
	"Checking coverage clauses",
	"Reviewing exclusions",
	"Generating recommendation",
}

// Classify derives the coverage verdict. An expired warranty is terminal;
// otherwise wear-vocabulary hits downgrade to partial coverage.
func Classify(status warranty.Status, issueText string) Verdict {
	if status == warranty.StatusExpired {
		return NotCovered
	}

	desc := strings.ToLower(issueText)
	for _, w := range wearVocabulary {
		if strings.Contains(desc, w) {
			return PartiallyCovered
		}
	}
	return LikelyCovered
}

// BuildAnalysis assembles the claim analysis for a tool: verdict, the first
// two policy clauses, the fixed exclusion checklist, and a recommendation
// with the brand name interpolated.
func BuildAnalysis(brandName string, policy warranty.Policy, status warranty.Status, issueText string) Analysis {
	verdict := Classify(status, issueText)

	clauses := policy.Clauses
	if len(clauses) > 2 {
		clauses = clauses[:2]
	}

	wearDetail := "Not applicable (defect within expected lifespan)"
	if verdict == PartiallyCovered {
		wearDetail = "Possible wear-related issue detected"
	}
	periodDetail := "Within active warranty period"
	if status == warranty.StatusExpired {
		periodDetail = "Warranty has expired"
	}

	checks := []ExclusionCheck{
		{
			Label:  "Normal wear and tear",
			Passed: verdict != PartiallyCovered,
			Detail: wearDetail,
		},
		{
			Label:  "Misuse or modification",
			Passed: true,
			Detail: "Not detected based on description",
		},
		{
			Label:  "Commercial vs domestic use",
			Passed: true,
			Detail: "Within warranty scope",
		},
		{
			Label:  "Warranty period validity",
			Passed: status != warranty.StatusExpired,
			Detail: periodDetail,
		},
	}

	return Analysis{
		Verdict:         verdict,
		Confidence:      verdictConfidence[verdict],
		RelevantClauses: clauses,
		ExclusionsCheck: checks,
		Recommendation:  recommendation(verdict, brandName),
	}
}

func recommendation(verdict Verdict, brandName string) string {
	if brandName == "" {
		brandName = "the manufacturer"
	}

	switch verdict {
	case PartiallyCovered:
		return fmt.Sprintf("Your description suggests possible wear-related damage, which may be partially covered. We recommend visiting an authorised %s service centre for inspection. The technician can determine if this falls under warranty or normal wear. Australian Consumer Law may provide additional protections.", brandName)
	case NotCovered:
		return fmt.Sprintf("Unfortunately, this tool's warranty has expired. However, under Australian Consumer Law, you may still have rights if the product has not lasted a reasonable time. We recommend contacting %s or an authorised service centre to discuss your options.", brandName)
	default:
		return fmt.Sprintf("Based on your description, this appears to be a manufacturing defect covered under %s's warranty. We recommend taking the tool to an authorised service centre with the claim document below. Under Australian Consumer Law, you are entitled to a repair, replacement, or refund for products with major failures.", brandName)
	}
}

// NewReference produces a human-readable claim reference, TV-<year>-<4 digits>
func NewReference(now time.Time) string {
	return fmt.Sprintf("TV-%d-%d", now.Year(), 1000+rand.IntN(9000))
}

// NewCardNumber produces a warranty card number from the brand name,
// e.g. "MI-2026-483920".
func NewCardNumber(brandName string, now time.Time) string {
	prefix := "TV"
	if len(brandName) >= 2 {
		prefix = strings.ToUpper(brandName[:2])
	}
	return fmt.Sprintf("%s-%d-%d", prefix, now.Year(), 100000+rand.IntN(900000))
}
