package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/reflect-backend/internal/domain"
	"github.com/heartmarshall/reflect-backend/internal/service/therapy"
)

var _ chatService = &chatServiceMock{}

type chatServiceMock struct {
	ProcessFunc func(ctx context.Context, userID, text string) (therapy.Reply, error)
	HistoryFunc func(ctx context.Context, userID string) ([]domain.Message, error)

	calls struct {
		Process []struct {
			Ctx    context.Context
			UserID string
			Text   string
		}
		History []struct {
			Ctx    context.Context
			UserID string
		}
	}
	lockProcess sync.RWMutex
	lockHistory sync.RWMutex
}

func (mock *chatServiceMock) Process(ctx context.Context, userID, text string) (therapy.Reply, error) {
	if mock.ProcessFunc == nil {
		panic("chatServiceMock.ProcessFunc: method is nil but chatService.Process was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID string
		Text   string
	}{Ctx: ctx, UserID: userID, Text: text}
	mock.lockProcess.Lock()
	mock.calls.Process = append(mock.calls.Process, callInfo)
	mock.lockProcess.Unlock()
	return mock.ProcessFunc(ctx, userID, text)
}

func (mock *chatServiceMock) ProcessCalls() []struct {
	Ctx    context.Context
	UserID string
	Text   string
} {
	mock.lockProcess.RLock()
	calls := mock.calls.Process
	mock.lockProcess.RUnlock()
	return calls
}

func (mock *chatServiceMock) History(ctx context.Context, userID string) ([]domain.Message, error) {
	if mock.HistoryFunc == nil {
		panic("chatServiceMock.HistoryFunc: method is nil but chatService.History was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID string
	}{Ctx: ctx, UserID: userID}
	mock.lockHistory.Lock()
	mock.calls.History = append(mock.calls.History, callInfo)
	mock.lockHistory.Unlock()
	return mock.HistoryFunc(ctx, userID)
}

func (mock *chatServiceMock) HistoryCalls() []struct {
	Ctx    context.Context
	UserID string
} {
	mock.lockHistory.RLock()
	calls := mock.calls.History
	mock.lockHistory.RUnlock()
	return calls
}
