package therapy

import "strings"

var humorTriggers = []string{"stress", "anxious", "nervous", "worried", "upset"}

var humorResponses = []string{
	"Remember, even stressed-out squirrels find their acorns eventually!",
	"Feeling anxious? Deep breaths... or pretend you're a calm cat pretending to care.",
	"It's okay to be nervous; even superheroes get butterflies before the big fight.",
	"Worried? Sometimes your brain just needs a tiny vacation - maybe a mental hammock?",
	"Upset? How about a mini dance break? No one can be sad while dancing (unless they're a robot).",
}

// HumorFollowUp ends every humor reply.
const HumorFollowUp = "Tell me more about what you're feeling."

func hasHumorTrigger(text string) bool {
	lower := strings.ToLower(text)
	for _, t := range humorTriggers {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

func (s *Service) humorReply() string {
	return humorResponses[s.pick(len(humorResponses))] + "\n\n" + HumorFollowUp
}
