package therapy

import (
	"context"
	"fmt"

	"github.com/heartmarshall/reflect-backend/internal/domain"
)

// History returns the user's stored conversation in order and records a
// data-access audit event.
func (s *Service) History(ctx context.Context, userID string) ([]domain.Message, error) {
	if domain.IsBlank(userID) {
		return nil, domain.NewValidationError("user_id", "required")
	}

	msgs, err := s.store.LoadConversation(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}

	s.audit.LogDataAccess(ctx, userID, domain.DataActionRead)
	return msgs, nil
}
