package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
)

func testProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	return config
}

func TestPublishFavoritesChanged(t *testing.T) {
	producer := mocks.NewSyncProducer(t, testProducerConfig())
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var event FavoritesChangedEvent
		if err := json.Unmarshal(val, &event); err != nil {
			return err
		}
		if event.EventType != EventTypeFavoritesChanged {
			return fmt.Errorf("unexpected event type %q", event.EventType)
		}
		if event.UserID != "u-1" || event.Action != ActionAdded {
			return fmt.Errorf("unexpected event %+v", event)
		}
		if event.EventID == "" {
			return fmt.Errorf("missing event id")
		}
		return nil
	})

	p := newPublisher(producer, nil)
	defer p.Close()

	err := p.PublishFavoritesChanged(context.Background(), FavoritesChangedEvent{
		Action:  ActionAdded,
		UserID:  "u-1",
		DishIDs: []string{"d1"},
		Dishes:  []string{"d1"},
	})
	if err != nil {
		t.Fatalf("PublishFavoritesChanged failed: %v", err)
	}
}

func TestPublishLeaderChanged_Failure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, testProducerConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := newPublisher(producer, nil)
	defer p.Close()

	err := p.PublishLeaderChanged(context.Background(), LeaderChangedEvent{
		Action:   ActionDeleted,
		LeaderID: "l-1",
		ActorID:  "admin",
	})
	if err == nil {
		t.Fatal("Expected publish error")
	}
}

func TestConsumerDispatch(t *testing.T) {
	c := &Consumer{handlers: make(map[string]EventHandler)}

	var received LeaderChangedEvent
	c.RegisterHandler(EventTypeLeaderChanged, func(ctx context.Context, payload []byte) error {
		return json.Unmarshal(payload, &received)
	})

	body, _ := json.Marshal(LeaderChangedEvent{Action: ActionCreated, LeaderID: "l-7"})
	c.dispatch(context.Background(), &sarama.ConsumerMessage{
		Topic: TopicLeaders,
		Value: body,
		Headers: []*sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(EventTypeLeaderChanged)},
			{Key: []byte("event_id"), Value: []byte("evt-1")},
		},
	})

	if received.LeaderID != "l-7" {
		t.Errorf("Expected handler to receive leader l-7, got %+v", received)
	}

	// Unknown and untyped events are dropped without panicking
	c.dispatch(context.Background(), &sarama.ConsumerMessage{Topic: TopicLeaders, Value: body})
	c.dispatch(context.Background(), &sarama.ConsumerMessage{
		Topic:   TopicFavorites,
		Value:   body,
		Headers: []*sarama.RecordHeader{{Key: []byte("event_type"), Value: []byte("unknown")}},
	})
}
