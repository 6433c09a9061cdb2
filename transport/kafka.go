package transport

import (
	"buzzboard/domain"
	"buzzboard/observability"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"golang.org/x/time/rate"
)

type KafkaConfig struct {
	Brokers       []string
	Topic         string
	GroupID       string
	FromOldest    bool
	BufferSize    int
	RateLimit     float64 // messages per second, 0 disables throttling
	SessionExpiry time.Duration
}

// KafkaSource consumes a topic through a consumer group and exposes
// the decoded messages on a channel. It runs as a supervised worker:
// the channel is closed when the source stops, and Err reports why.
type KafkaSource struct {
	log      *slog.Logger
	cfg      KafkaConfig
	monitor  *observability.Monitor
	client   sarama.Client
	group    sarama.ConsumerGroup
	limiter  *rate.Limiter
	messages chan domain.Message

	mu  sync.Mutex
	err error
}

func NewKafkaSource(log *slog.Logger, monitor *observability.Monitor, cfg KafkaConfig) (*KafkaSource, error) {
	client, err := sarama.NewClient(cfg.Brokers, newSaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}

	group, err := sarama.NewConsumerGroupFromClient(cfg.GroupID, client)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("consumer group %q: %w", cfg.GroupID, err)
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	bufferSize := cfg.BufferSize
	if bufferSize <= 0 {
		bufferSize = 64
	}

	return &KafkaSource{
		log:      log,
		cfg:      cfg,
		monitor:  monitor,
		client:   client,
		group:    group,
		limiter:  limiter,
		messages: make(chan domain.Message, bufferSize),
	}, nil
}

func newSaramaConfig(cfg KafkaConfig) *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V2_6_0_0
	saramaConfig.Consumer.Return.Errors = true
	if cfg.FromOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}
	if cfg.SessionExpiry > 0 {
		saramaConfig.Consumer.Group.Session.Timeout = cfg.SessionExpiry
	}
	return saramaConfig
}

func (s *KafkaSource) Messages() <-chan domain.Message { return s.messages }

// Err reports why the message channel was closed. Nil means a graceful
// shutdown; anything else is a permanent transport failure.
func (s *KafkaSource) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *KafkaSource) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

// Run drives the consumer group until ctx is cancelled or the broker
// connection fails for good. Consume returning nil is a rebalance, not
// an error, so the loop simply re-joins.
func (s *KafkaSource) Run(ctx context.Context) error {
	defer close(s.messages)
	defer func() {
		_ = s.group.Close()
		_ = s.client.Close()
	}()

	handler := &groupHandler{source: s}
	for {
		if ctx.Err() != nil {
			s.log.Info("Consumer context cancelled", "topic", s.cfg.Topic)
			return nil
		}
		if err := s.group.Consume(ctx, []string{s.cfg.Topic}, handler); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			s.setErr(err)
			return fmt.Errorf("consume topic %q: %w", s.cfg.Topic, err)
		}
	}
}

// groupHandler feeds claimed partitions into the source channel.
type groupHandler struct {
	source *KafkaSource
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	s := h.source
	for {
		select {
		case raw := <-claim.Messages():
			if raw == nil {
				return nil
			}
			if s.limiter != nil {
				if err := s.limiter.Wait(session.Context()); err != nil {
					return nil
				}
			}

			receivedAt := raw.Timestamp
			if receivedAt.IsZero() {
				receivedAt = time.Now()
			}
			message, err := decode(raw.Value, receivedAt)
			if err != nil {
				// Fatal for this message only; resume on the next one.
				s.log.Warn("Skipping undecodable payload",
					"topic", raw.Topic, "partition", raw.Partition,
					"offset", raw.Offset, "error", err)
				s.monitor.IncrDecodeFailures()
				session.MarkMessage(raw, "")
				continue
			}

			select {
			case s.messages <- message:
				session.MarkMessage(raw, "")
			case <-session.Context().Done():
				return nil
			}

		case <-session.Context().Done():
			return nil
		}
	}
}
