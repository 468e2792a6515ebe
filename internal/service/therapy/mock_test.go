package therapy

import (
	"context"
	"sync"

	"github.com/heartmarshall/reflect-backend/internal/domain"
)

var _ conversationStore = &conversationStoreMock{}

type conversationStoreMock struct {
	AppendFunc           func(ctx context.Context, msg domain.Message) error
	LoadConversationFunc func(ctx context.Context, userID string) ([]domain.Message, error)

	calls struct {
		Append []struct {
			Ctx context.Context
			Msg domain.Message
		}
		LoadConversation []struct {
			Ctx    context.Context
			UserID string
		}
	}
	lockAppend           sync.RWMutex
	lockLoadConversation sync.RWMutex
}

func (mock *conversationStoreMock) Append(ctx context.Context, msg domain.Message) error {
	if mock.AppendFunc == nil {
		panic("conversationStoreMock.AppendFunc: method is nil but conversationStore.Append was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Msg domain.Message
	}{Ctx: ctx, Msg: msg}
	mock.lockAppend.Lock()
	mock.calls.Append = append(mock.calls.Append, callInfo)
	mock.lockAppend.Unlock()
	return mock.AppendFunc(ctx, msg)
}

func (mock *conversationStoreMock) AppendCalls() []struct {
	Ctx context.Context
	Msg domain.Message
} {
	mock.lockAppend.RLock()
	calls := mock.calls.Append
	mock.lockAppend.RUnlock()
	return calls
}

func (mock *conversationStoreMock) LoadConversation(ctx context.Context, userID string) ([]domain.Message, error) {
	if mock.LoadConversationFunc == nil {
		panic("conversationStoreMock.LoadConversationFunc: method is nil but conversationStore.LoadConversation was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID string
	}{Ctx: ctx, UserID: userID}
	mock.lockLoadConversation.Lock()
	mock.calls.LoadConversation = append(mock.calls.LoadConversation, callInfo)
	mock.lockLoadConversation.Unlock()
	return mock.LoadConversationFunc(ctx, userID)
}

func (mock *conversationStoreMock) LoadConversationCalls() []struct {
	Ctx    context.Context
	UserID string
} {
	mock.lockLoadConversation.RLock()
	calls := mock.calls.LoadConversation
	mock.lockLoadConversation.RUnlock()
	return calls
}

var _ llmClient = &llmClientMock{}

type llmClientMock struct {
	CompleteFunc func(ctx context.Context, messages []domain.ChatMessage) (string, error)

	calls struct {
		Complete []struct {
			Ctx      context.Context
			Messages []domain.ChatMessage
		}
	}
	lockComplete sync.RWMutex
}

func (mock *llmClientMock) Complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	if mock.CompleteFunc == nil {
		panic("llmClientMock.CompleteFunc: method is nil but llmClient.Complete was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Messages []domain.ChatMessage
	}{Ctx: ctx, Messages: messages}
	mock.lockComplete.Lock()
	mock.calls.Complete = append(mock.calls.Complete, callInfo)
	mock.lockComplete.Unlock()
	return mock.CompleteFunc(ctx, messages)
}

func (mock *llmClientMock) CompleteCalls() []struct {
	Ctx      context.Context
	Messages []domain.ChatMessage
} {
	mock.lockComplete.RLock()
	calls := mock.calls.Complete
	mock.lockComplete.RUnlock()
	return calls
}

var _ auditLogger = &auditLoggerMock{}

type auditLoggerMock struct {
	LogCrisisDetectionFunc  func(ctx context.Context, userID string, category domain.CrisisCategory, textLength int)
	LogEthicalViolationFunc func(ctx context.Context, userID string, violation domain.ViolationType, details string)
	LogDataAccessFunc       func(ctx context.Context, userID string, action domain.DataAction)
	LogBiasDetectionFunc    func(ctx context.Context, userID, biasType string, severity domain.Severity)

	calls struct {
		LogCrisisDetection []struct {
			Ctx        context.Context
			UserID     string
			Category   domain.CrisisCategory
			TextLength int
		}
		LogEthicalViolation []struct {
			Ctx       context.Context
			UserID    string
			Violation domain.ViolationType
			Details   string
		}
		LogDataAccess []struct {
			Ctx    context.Context
			UserID string
			Action domain.DataAction
		}
		LogBiasDetection []struct {
			Ctx      context.Context
			UserID   string
			BiasType string
			Severity domain.Severity
		}
	}
	lockLogCrisisDetection  sync.RWMutex
	lockLogEthicalViolation sync.RWMutex
	lockLogDataAccess       sync.RWMutex
	lockLogBiasDetection    sync.RWMutex
}

func (mock *auditLoggerMock) LogCrisisDetection(ctx context.Context, userID string, category domain.CrisisCategory, textLength int) {
	if mock.LogCrisisDetectionFunc == nil {
		panic("auditLoggerMock.LogCrisisDetectionFunc: method is nil but auditLogger.LogCrisisDetection was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		UserID     string
		Category   domain.CrisisCategory
		TextLength int
	}{Ctx: ctx, UserID: userID, Category: category, TextLength: textLength}
	mock.lockLogCrisisDetection.Lock()
	mock.calls.LogCrisisDetection = append(mock.calls.LogCrisisDetection, callInfo)
	mock.lockLogCrisisDetection.Unlock()
	mock.LogCrisisDetectionFunc(ctx, userID, category, textLength)
}

func (mock *auditLoggerMock) LogCrisisDetectionCalls() []struct {
	Ctx        context.Context
	UserID     string
	Category   domain.CrisisCategory
	TextLength int
} {
	mock.lockLogCrisisDetection.RLock()
	calls := mock.calls.LogCrisisDetection
	mock.lockLogCrisisDetection.RUnlock()
	return calls
}

func (mock *auditLoggerMock) LogEthicalViolation(ctx context.Context, userID string, violation domain.ViolationType, details string) {
	if mock.LogEthicalViolationFunc == nil {
		panic("auditLoggerMock.LogEthicalViolationFunc: method is nil but auditLogger.LogEthicalViolation was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		UserID    string
		Violation domain.ViolationType
		Details   string
	}{Ctx: ctx, UserID: userID, Violation: violation, Details: details}
	mock.lockLogEthicalViolation.Lock()
	mock.calls.LogEthicalViolation = append(mock.calls.LogEthicalViolation, callInfo)
	mock.lockLogEthicalViolation.Unlock()
	mock.LogEthicalViolationFunc(ctx, userID, violation, details)
}

func (mock *auditLoggerMock) LogEthicalViolationCalls() []struct {
	Ctx       context.Context
	UserID    string
	Violation domain.ViolationType
	Details   string
} {
	mock.lockLogEthicalViolation.RLock()
	calls := mock.calls.LogEthicalViolation
	mock.lockLogEthicalViolation.RUnlock()
	return calls
}

func (mock *auditLoggerMock) LogDataAccess(ctx context.Context, userID string, action domain.DataAction) {
	if mock.LogDataAccessFunc == nil {
		panic("auditLoggerMock.LogDataAccessFunc: method is nil but auditLogger.LogDataAccess was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID string
		Action domain.DataAction
	}{Ctx: ctx, UserID: userID, Action: action}
	mock.lockLogDataAccess.Lock()
	mock.calls.LogDataAccess = append(mock.calls.LogDataAccess, callInfo)
	mock.lockLogDataAccess.Unlock()
	mock.LogDataAccessFunc(ctx, userID, action)
}

func (mock *auditLoggerMock) LogDataAccessCalls() []struct {
	Ctx    context.Context
	UserID string
	Action domain.DataAction
} {
	mock.lockLogDataAccess.RLock()
	calls := mock.calls.LogDataAccess
	mock.lockLogDataAccess.RUnlock()
	return calls
}

func (mock *auditLoggerMock) LogBiasDetection(ctx context.Context, userID, biasType string, severity domain.Severity) {
	if mock.LogBiasDetectionFunc == nil {
		panic("auditLoggerMock.LogBiasDetectionFunc: method is nil but auditLogger.LogBiasDetection was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		UserID   string
		BiasType string
		Severity domain.Severity
	}{Ctx: ctx, UserID: userID, BiasType: biasType, Severity: severity}
	mock.lockLogBiasDetection.Lock()
	mock.calls.LogBiasDetection = append(mock.calls.LogBiasDetection, callInfo)
	mock.lockLogBiasDetection.Unlock()
	mock.LogBiasDetectionFunc(ctx, userID, biasType, severity)
}

func (mock *auditLoggerMock) LogBiasDetectionCalls() []struct {
	Ctx      context.Context
	UserID   string
	BiasType string
	Severity domain.Severity
} {
	mock.lockLogBiasDetection.RLock()
	calls := mock.calls.LogBiasDetection
	mock.lockLogBiasDetection.RUnlock()
	return calls
}
