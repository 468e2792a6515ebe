// Package safety detects crisis language in user input and validates model
// replies against a fixed set of ethical rules.
package safety

import (
	"strings"

	"github.com/heartmarshall/reflect-backend/internal/domain"
)

// crisisKeywords is evaluated in domain.CrisisCategories order.
var crisisKeywords = map[domain.CrisisCategory][]string{
	domain.CrisisSuicide:  {"suicide", "kill myself", "end it all", "no point living"},
	domain.CrisisSelfHarm: {"self-harm", "cut myself", "hurt myself", "punish myself"},
	domain.CrisisAbuse:    {"abuse", "being hurt", "hitting me", "attacking me"},
	domain.CrisisOverdose: {"overdose", "pills", "poison", "toxins"},
}

var (
	deceptivePhrases = []string{
		"i truly understand your pain",
		"i can feel what you're feeling",
		"i know exactly how you feel",
		"i've experienced this too",
	}
	diagnosticPhrases = []string{
		"you have depression",
		"you have anxiety",
		"you're bipolar",
		"you have ptsd",
		"you need medication",
	}
	// Bare words that count as diagnosis wherever they appear.
	diagnosticWords = []string{"depression", "medication"}

	dismissivePhrases = []string{
		"just think positive",
		"just get over it",
		"others have it worse",
		"it's not that bad",
	}
)

// Issue tags, appended in rule order.
const (
	IssueDeceptiveEmpathy = "ETHICAL_VIOLATION: Deceptive empathy detected"
	IssueDiagnosis        = "ETHICAL_VIOLATION: Attempting to diagnose condition"
	IssueCrisisEscalation = "ETHICAL_VIOLATION: Not properly escalating crisis"
	IssueDismissive       = "ETHICAL_VIOLATION: Dismissive response detected"
)

// Result is the outcome of ValidateResponse. IsEthical is true exactly when
// Severity is not high.
type Result struct {
	IsEthical bool
	Issues    []string
	Severity  domain.Severity
}

// Checker holds the keyword lists. It is stateless and safe for concurrent use.
type Checker struct{}

// NewChecker returns a Checker.
func NewChecker() *Checker {
	return &Checker{}
}

// CheckForCrisis returns the first crisis category whose keywords appear in
// text. Categories are tried in domain.CrisisCategories order.
func (c *Checker) CheckForCrisis(text string) (bool, domain.CrisisCategory) {
	lower := strings.ToLower(text)
	for _, cat := range domain.CrisisCategories {
		if containsAny(lower, crisisKeywords[cat]) {
			return true, cat
		}
	}
	return false, domain.CrisisNone
}

// Classify wraps CheckForCrisis in the uniform classifier result.
func (c *Checker) Classify(text string) domain.ClassificationResult {
	ok, cat := c.CheckForCrisis(text)
	if !ok {
		return domain.ClassificationResult{}
	}
	return domain.ClassificationResult{
		Flag:     true,
		Category: cat.String(),
		Details:  "crisis language detected",
	}
}

// ValidateResponse checks reply against the ethical rules. userInput is only
// consulted for crisis escalation: a crisis-flagged input requires the reply
// to mention "professional" and the literal "988".
func (c *Checker) ValidateResponse(reply, userInput string) Result {
	lower := strings.ToLower(reply)
	issues := []string{}
	severity := domain.SeverityLow

	if containsAny(lower, deceptivePhrases) {
		issues = append(issues, IssueDeceptiveEmpathy)
		severity = domain.SeverityHigh
	}

	if containsAny(lower, diagnosticPhrases) || containsAny(lower, diagnosticWords) {
		issues = append(issues, IssueDiagnosis)
		severity = domain.SeverityHigh
	}

	if crisis, _ := c.CheckForCrisis(userInput); crisis {
		if !strings.Contains(lower, "professional") || !strings.Contains(reply, "988") {
			issues = append(issues, IssueCrisisEscalation)
			severity = domain.SeverityHigh
		}
	}

	if containsAny(lower, dismissivePhrases) {
		issues = append(issues, IssueDismissive)
		severity = domain.SeverityHigh
	}

	return Result{
		IsEthical: severity != domain.SeverityHigh,
		Issues:    issues,
		Severity:  severity,
	}
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
