package therapy

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/reflect-backend/internal/domain"
)

// Process runs one user message through the pipeline. The only error it
// returns is a *domain.ValidationError for a blank user id or message; every
// other path produces a non-empty reply.
func (s *Service) Process(ctx context.Context, userID, text string) (Reply, error) {
	if err := validateTurn(userID, text); err != nil {
		return Reply{}, err
	}

	if hasHumorTrigger(text) {
		if crisis, category := s.safety.CheckForCrisis(text); crisis {
			s.log.WarnContext(ctx, "humor shortcut answered a message with crisis language",
				slog.String("user_id", userID),
				slog.String("crisis_type", category.String()),
			)
		}
		return Reply{Text: s.humorReply(), Outcome: OutcomeHumor}, nil
	}

	userMsg := domain.NewMessage(userID, domain.RoleUser, text)
	s.persist(ctx, userMsg)

	history := s.buildHistory(ctx, userMsg)

	if s.scope.IsOutOfScope(text) {
		s.log.InfoContext(ctx, "out of scope message",
			slog.String("user_id", userID),
			slog.String("topic", s.scope.MatchedTopic(text)),
		)
		s.audit.LogEthicalViolation(ctx, userID, domain.ViolationOutOfScope, text)
		return Reply{Text: OutOfScopeReply, Outcome: OutcomeOutOfScope}, nil
	}

	if crisis := s.safety.Classify(text); crisis.Flag {
		category := domain.CrisisCategory(crisis.Category)
		s.audit.LogCrisisDetection(ctx, userID, category, utf8.RuneCountInString(text))
		return Reply{Text: CrisisReply(category), Outcome: OutcomeCrisis}, nil
	}

	answer, err := s.llm.Complete(ctx, history)
	if err != nil {
		s.log.ErrorContext(ctx, "llm request failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		s.audit.LogEthicalViolation(ctx, userID, domain.ViolationLLMRequestFailed, err.Error())
		return Reply{Text: LLMFailureReply, Outcome: OutcomeLLMFailure}, nil
	}

	if check := s.safety.ValidateResponse(answer, text); !check.IsEthical {
		s.audit.LogEthicalViolation(ctx, userID, domain.ViolationUnsafeResponse, issuesJSON(check.Issues))
		return Reply{Text: UnsafeReply, Outcome: OutcomeUnsafeResponse}, nil
	}

	if report := s.bias.FullCheck(answer); !report.PassedEthicalCheck {
		s.audit.LogBiasDetection(ctx, userID, report.Type(), domain.SeverityHigh)
		return Reply{Text: BiasReply, Outcome: OutcomeBiasedResponse}, nil
	}

	s.audit.LogDataAccess(ctx, userID, domain.DataActionRead)

	s.persist(ctx, domain.NewMessage(userID, domain.RoleAssistant, answer))

	return Reply{Text: answer, Outcome: OutcomeAnswered}, nil
}

func validateTurn(userID, text string) error {
	var errs []domain.FieldError
	if domain.IsBlank(userID) {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if domain.IsBlank(text) {
		errs = append(errs, domain.FieldError{Field: "message", Message: "required"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// persist appends msg to the store. Failures are logged and the turn goes on.
func (s *Service) persist(ctx context.Context, msg domain.Message) {
	if err := s.store.Append(ctx, msg); err != nil {
		s.log.ErrorContext(ctx, "persist message failed",
			slog.String("user_id", msg.UserID),
			slog.String("role", msg.Role.String()),
			slog.String("error", err.Error()),
		)
	}
}

// buildHistory returns the system prompt followed by the stored conversation.
// The current message is always last, even when it could not be stored or
// the history could not be loaded.
func (s *Service) buildHistory(ctx context.Context, current domain.Message) []domain.ChatMessage {
	stored, err := s.store.LoadConversation(ctx, current.UserID)
	if err != nil {
		s.log.ErrorContext(ctx, "load conversation failed",
			slog.String("user_id", current.UserID),
			slog.String("error", err.Error()),
		)
		stored = nil
	}

	found := false
	for _, m := range stored {
		if m.ID == current.ID {
			found = true
			break
		}
	}
	if !found {
		stored = append(stored, current)
	}

	history := make([]domain.ChatMessage, 0, len(stored)+1)
	history = append(history, domain.ChatMessage{Role: domain.RoleSystem, Content: SystemPrompt})
	return append(history, domain.ChatHistory(stored)...)
}

func issuesJSON(issues []string) string {
	data, err := json.Marshal(issues)
	if err != nil {
		return strings.Join(issues, ",")
	}
	return string(data)
}
