package therapy

import (
	"strings"

	"github.com/heartmarshall/reflect-backend/internal/domain"
)

const crisisHeader = "I'm sensing you might be in crisis. Here are some resources that might help:"

const crisisLifeline = "You can call or text 988 (Suicide & Crisis Lifeline) at any time to reach a trained " +
	"counselor. If you are in immediate danger, call your local emergency number."

var crisisResources = map[domain.CrisisCategory]string{
	domain.CrisisSuicide:  "If you are thinking about ending your life, please reach out now. You do not have to go through this alone.",
	domain.CrisisSelfHarm: "Crisis Text Line: text HOME to 741741 to talk with someone about urges to hurt yourself.",
	domain.CrisisAbuse:    "National Domestic Violence Hotline: call 1-800-799-7233 or text START to 88788.",
	domain.CrisisOverdose: "Poison Control: call 1-800-222-1222. If someone is unresponsive or not breathing, call 911.",
}

// CrisisReply builds the referral shown when crisis language is detected.
func CrisisReply(category domain.CrisisCategory) string {
	lines := []string{crisisHeader}
	if r, ok := crisisResources[category]; ok {
		lines = append(lines, "- "+r)
	}
	lines = append(lines, "- "+crisisLifeline)
	return strings.Join(lines, "\n")
}
