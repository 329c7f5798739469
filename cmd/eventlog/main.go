package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tair/confusion-server/internal/config"
	"github.com/tair/confusion-server/kafka"
	"github.com/tair/confusion-server/pkg/logger"
)

var eventsConsumed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "confusion_events_consumed_total",
		Help: "Change events read from Kafka",
	},
	[]string{"event_type", "action"},
)

func main() {
	cfg := config.Load()

	logger.Init("confusion-eventlog", cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	if len(cfg.KafkaBrokers) == 0 {
		logger.Logger.Fatal().Msg("KAFKA_BROKERS is required")
	}

	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID,
		[]string{kafka.TopicFavorites, kafka.TopicLeaders})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
	}
	defer consumer.Close()

	consumer.RegisterHandler(kafka.EventTypeFavoritesChanged, logFavoritesChanged)
	consumer.RegisterHandler(kafka.EventTypeLeaderChanged, logLeaderChanged)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	consumer.Start(ctx)

	metricsServer := &http.Server{
		Addr:              ":" + cfg.MetricsPort,
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Error().Err(err).Msg("Metrics server stopped")
		}
	}()

	logger.Logger.Info().Strs("brokers", cfg.KafkaBrokers).Msg("Event log consumer started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down event log consumer...")
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	_ = metricsServer.Shutdown(shutdownCtx)
}

func logFavoritesChanged(ctx context.Context, payload []byte) error {
	var event kafka.FavoritesChangedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return err
	}
	eventsConsumed.WithLabelValues(event.EventType, event.Action).Inc()

	logger.Info(ctx).
		Str("event_id", event.EventID).
		Str("action", event.Action).
		Str("user_id", event.UserID).
		Strs("dish_ids", event.DishIDs).
		Int("favorites", len(event.Dishes)).
		Msg("Favorites changed")
	return nil
}

func logLeaderChanged(ctx context.Context, payload []byte) error {
	var event kafka.LeaderChangedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return err
	}
	eventsConsumed.WithLabelValues(event.EventType, event.Action).Inc()

	logger.Info(ctx).
		Str("event_id", event.EventID).
		Str("action", event.Action).
		Str("leader_id", event.LeaderID).
		Str("actor_id", event.ActorID).
		Int64("count", event.Count).
		Msg("Leaders changed")
	return nil
}
