// Package bias flags gender stereotypes and culturally narrow assumptions in
// model replies.
package bias

import (
	"fmt"
	"strings"
)

// Bias types reported to the audit log.
const (
	TypeGenderStereotype   = "gender_stereotype"
	TypeCulturalAssumption = "cultural_assumption"
)

const (
	issueMasculine = "Masculine strength stereotype detected"
	issueFeminine  = "Feminine emotion/weakness stereotype detected"
)

var (
	masculineTerms = []string{"man", "men", "boy", "boys", "male", "males"}
	feminineTerms  = []string{"woman", "women", "girl", "girls", "female", "females"}
	strengthTerms  = []string{"strong", "tough", "brave", "aggressive"}
	emotionTerms   = []string{"emotional", "sensitive", "weak", "fragile"}

	culturalAssumptions = []string{
		"you should tell your family",
		"western therapy approach",
		"individual achievement",
	}
)

// GenderResult is the outcome of CheckGender. Issue holds the last stereotype
// that matched.
type GenderResult struct {
	Biased bool
	Type   string
	Issue  string
}

// CulturalResult is the outcome of CheckCultural.
type CulturalResult struct {
	CulturallySensitive bool
	Issues              []string
}

// Report combines both checks.
type Report struct {
	PassedEthicalCheck  bool
	GenderBias          GenderResult
	CulturalSensitivity CulturalResult
}

// Type returns the audit bias type for a failed report.
func (r Report) Type() string {
	if r.GenderBias.Biased {
		return TypeGenderStereotype
	}
	return TypeCulturalAssumption
}

// Detector runs the co-occurrence and phrase checks. Terms are matched as
// substrings of the lower-cased text, so "women" also matches "men".
type Detector struct{}

// NewDetector returns a Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// CheckGender flags a gendered term co-occurring anywhere with a stereotyped
// trait term.
func (d *Detector) CheckGender(text string) GenderResult {
	lower := strings.ToLower(text)
	var res GenderResult

	if containsAny(lower, masculineTerms) && containsAny(lower, strengthTerms) {
		res.Biased = true
		res.Issue = issueMasculine
	}
	if containsAny(lower, feminineTerms) && containsAny(lower, emotionTerms) {
		res.Biased = true
		res.Issue = issueFeminine
	}
	if res.Biased {
		res.Type = TypeGenderStereotype
	}
	return res
}

// CheckCultural lists every cultural assumption phrase present in text.
func (d *Detector) CheckCultural(text string) CulturalResult {
	lower := strings.ToLower(text)
	issues := []string{}
	for _, p := range culturalAssumptions {
		if strings.Contains(lower, p) {
			issues = append(issues, fmt.Sprintf("Potential cultural assumption: %s", p))
		}
	}
	return CulturalResult{
		CulturallySensitive: len(issues) == 0,
		Issues:              issues,
	}
}

// FullCheck runs both checks. The reply passes only when neither fired.
func (d *Detector) FullCheck(text string) Report {
	g := d.CheckGender(text)
	c := d.CheckCultural(text)
	return Report{
		PassedEthicalCheck:  !g.Biased && c.CulturallySensitive,
		GenderBias:          g,
		CulturalSensitivity: c,
	}
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
