package audit

import (
	"context"
	"sync"

	"github.com/heartmarshall/reflect-backend/internal/domain"
)

var _ Sink = &SinkMock{}

type SinkMock struct {
	WriteFunc func(ctx context.Context, event domain.AuditEvent) error

	calls struct {
		Write []struct {
			Ctx   context.Context
			Event domain.AuditEvent
		}
	}
	lockWrite sync.RWMutex
}

func (mock *SinkMock) Write(ctx context.Context, event domain.AuditEvent) error {
	if mock.WriteFunc == nil {
		panic("SinkMock.WriteFunc: method is nil but Sink.Write was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Event domain.AuditEvent
	}{Ctx: ctx, Event: event}
	mock.lockWrite.Lock()
	mock.calls.Write = append(mock.calls.Write, callInfo)
	mock.lockWrite.Unlock()
	return mock.WriteFunc(ctx, event)
}

func (mock *SinkMock) WriteCalls() []struct {
	Ctx   context.Context
	Event domain.AuditEvent
} {
	mock.lockWrite.RLock()
	calls := mock.calls.Write
	mock.lockWrite.RUnlock()
	return calls
}
