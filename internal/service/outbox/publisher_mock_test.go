package outbox

import (
	"context"
	"sync"
)

var _ publisher = &publisherMock{}

type publisherMock struct {
	// PublishFunc mocks the Publish method.
	PublishFunc func(ctx context.Context, topic string, messageID string, body []byte) error

	// calls tracks calls to the methods.
	calls struct {
		Publish []struct {
			Ctx       context.Context
			Topic     string
			MessageID string
			Body      []byte
		}
	}
	lockPublish sync.RWMutex
}

func (mock *publisherMock) Publish(ctx context.Context, topic string, messageID string, body []byte) error {
	if mock.PublishFunc == nil {
		panic("publisherMock.PublishFunc: method is nil but publisher.Publish was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		Topic     string
		MessageID string
		Body      []byte
	}{
		Ctx:       ctx,
		Topic:     topic,
		MessageID: messageID,
		Body:      body,
	}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, callInfo)
	mock.lockPublish.Unlock()
	return mock.PublishFunc(ctx, topic, messageID, body)
}

func (mock *publisherMock) PublishCalls() []struct {
	Ctx       context.Context
	Topic     string
	MessageID string
	Body      []byte
} {
	var calls []struct {
		Ctx       context.Context
		Topic     string
		MessageID string
		Body      []byte
	}
	mock.lockPublish.RLock()
	calls = mock.calls.Publish
	mock.lockPublish.RUnlock()
	return calls
}
