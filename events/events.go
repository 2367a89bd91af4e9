package events

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/civkit/civkit-api-sub000/logger"
)

type Event struct {
	Event      string      `json:"event"`
	Properties interface{} `json:"properties,omitempty"`
}

type EventSubscriber interface {
	ConsumeEvent(ctx context.Context, event *Event, globalProperties map[string]interface{})
}

type EventPublisher interface {
	RegisterSubscriber(subscriber EventSubscriber)
	RemoveSubscriber(subscriber EventSubscriber)
	Publish(event *Event)
	PublishSync(event *Event)
	SetGlobalProperty(key string, value interface{})
}

type eventPublisher struct {
	subscribers      []EventSubscriber
	subscriberMtx    sync.Mutex
	globalProperties map[string]interface{}
}

func NewEventPublisher() *eventPublisher {
	return &eventPublisher{
		subscribers:      []EventSubscriber{},
		globalProperties: map[string]interface{}{},
	}
}

func (ep *eventPublisher) RegisterSubscriber(subscriber EventSubscriber) {
	ep.subscriberMtx.Lock()
	defer ep.subscriberMtx.Unlock()
	ep.subscribers = append(ep.subscribers, subscriber)
}

func (ep *eventPublisher) RemoveSubscriber(subscriber EventSubscriber) {
	ep.subscriberMtx.Lock()
	defer ep.subscriberMtx.Unlock()
	index := slices.Index(ep.subscribers, subscriber)
	if index > -1 {
		ep.subscribers = slices.Delete(ep.subscribers, index, index+1)
	}
}

func (ep *eventPublisher) Publish(event *Event) {
	go ep.publish(event)
}

func (ep *eventPublisher) PublishSync(event *Event) {
	ep.publish(event)
}

func (ep *eventPublisher) SetGlobalProperty(key string, value interface{}) {
	ep.subscriberMtx.Lock()
	defer ep.subscriberMtx.Unlock()
	ep.globalProperties[key] = value
}

func (ep *eventPublisher) publish(event *Event) {
	// snapshot both under the lock; SetGlobalProperty may run while
	// subscribers consume
	ep.subscriberMtx.Lock()
	subscribers := slices.Clone(ep.subscribers)
	globalProperties := maps.Clone(ep.globalProperties)
	ep.subscriberMtx.Unlock()

	logger.Logger.Debug().Str("event", event.Event).Msg("Publishing event")
	for _, subscriber := range subscribers {
		subscriber.ConsumeEvent(context.Background(), event, globalProperties)
	}
}
