// Package therapy runs one chat turn through the safety gates and the LLM.
package therapy

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/heartmarshall/reflect-backend/internal/domain"
	"github.com/heartmarshall/reflect-backend/internal/ethics/bias"
	"github.com/heartmarshall/reflect-backend/internal/ethics/safety"
	"github.com/heartmarshall/reflect-backend/internal/ethics/scope"
)

type conversationStore interface {
	Append(ctx context.Context, msg domain.Message) error
	LoadConversation(ctx context.Context, userID string) ([]domain.Message, error)
}

type llmClient interface {
	Complete(ctx context.Context, messages []domain.ChatMessage) (string, error)
}

type auditLogger interface {
	LogCrisisDetection(ctx context.Context, userID string, category domain.CrisisCategory, textLength int)
	LogEthicalViolation(ctx context.Context, userID string, violation domain.ViolationType, details string)
	LogDataAccess(ctx context.Context, userID string, action domain.DataAction)
	LogBiasDetection(ctx context.Context, userID, biasType string, severity domain.Severity)
}

// Service processes chat turns. It keeps no per-turn state and is safe for
// concurrent use.
type Service struct {
	store  conversationStore
	llm    llmClient
	audit  auditLogger
	scope  *scope.Filter
	safety *safety.Checker
	bias   *bias.Detector
	pick   func(n int) int
	log    *slog.Logger
}

// NewService creates a new therapy Service.
func NewService(
	log *slog.Logger,
	store conversationStore,
	llm llmClient,
	audit auditLogger,
) *Service {
	return &Service{
		store:  store,
		llm:    llm,
		audit:  audit,
		scope:  scope.NewFilter(),
		safety: safety.NewChecker(),
		bias:   bias.NewDetector(),
		pick:   rand.IntN,
		log:    log.With("service", "therapy"),
	}
}
