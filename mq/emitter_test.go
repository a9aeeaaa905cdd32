package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type fakePublisher struct {
	channel string
	payload []byte
	err     error
}

func (f *fakePublisher) Publish(_ context.Context, channel string, payload []byte) error {
	f.channel = channel
	f.payload = payload
	return f.err
}

func TestEmitPublishesEvent(t *testing.T) {
	pub := &fakePublisher{}
	NewEmitter(pub).Emit(context.Background(), "menu-generated", Index{
		EntityType: "weeklyMenu",
		Method:     "POST",
		EntityId:   "m1",
		UserId:     "u1",
	})

	if pub.channel != EventsChannel {
		t.Fatalf("expected channel %q, got %q", EventsChannel, pub.channel)
	}
	var got map[string]string
	if err := json.Unmarshal(pub.payload, &got); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if got["event"] != "menu-generated" || got["entity_id"] != "m1" || got["user_id"] != "u1" {
		t.Fatalf("unexpected payload %v", got)
	}
}

func TestEmitSwallowsPublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("connection refused")}
	// must not panic or block
	NewEmitter(pub).Emit(context.Background(), "menu-generated", Index{EntityId: "m1"})
	if pub.channel != EventsChannel {
		t.Fatalf("expected publish attempt")
	}
}
