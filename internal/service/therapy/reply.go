package therapy

// Outcome names the pipeline stage that produced a reply.
type Outcome string

const (
	OutcomeHumor          Outcome = "humor"
	OutcomeOutOfScope     Outcome = "out_of_scope"
	OutcomeCrisis         Outcome = "crisis"
	OutcomeLLMFailure     Outcome = "llm_failure"
	OutcomeUnsafeResponse Outcome = "unsafe_response"
	OutcomeBiasedResponse Outcome = "biased_response"
	OutcomeAnswered       Outcome = "answered"
)

// Reply is the text returned to the user for one turn.
type Reply struct {
	Text    string
	Outcome Outcome
}

// Fixed replies used when a gate or the LLM call fails.
const (
	OutOfScopeReply = "I'm here to support your mental wellbeing. Sorry, I can't answer questions about " +
		"unrelated topics. Let's talk about your feelings and wellbeing."
	LLMFailureReply = "Sorry, I am having trouble connecting to the support system right now."
	UnsafeReply     = "Sorry, I can't respond safely to that. Let's talk about your feelings."
	BiasReply       = "Let's focus on your personal experiences. Everyone's journey is unique."
)
