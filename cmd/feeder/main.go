// Command feeder publishes sample buzz messages to the board's topic,
// for local demos and load testing against a real broker.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

type Config struct {
	KafkaBrokers string        `env:"KAFKA_BROKERS,default=localhost:9092"`
	Topic        string        `env:"BUZZ_TOPIC,default=default_topic"`
	Interval     time.Duration `env:"FEED_INTERVAL,default=500ms"`
	Count        int           `env:"FEED_COUNT"` // 0 feeds until interrupted
	LogLevel     string        `env:"LOG_LEVEL,default=INFO"`
}

type payload struct {
	Message string `json:"message"`
	Author  string `json:"author"`
}

var authors = []string{"Eve", "Mallory", "Trent", "Peggy", "Victor"}

var templates = []string{
	"I love Python and Kafka!",
	"Kafka is great for real-time data",
	"this deploy is terrible and slow",
	"meh, another standup",
	"real-time analysis is awesome",
	"I hate flaky tests",
	"data data data",
	"the new dashboard looks brilliant",
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V2_6_0_0
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(splitBrokers(config.KafkaBrokers), saramaConfig)
	if err != nil {
		return fmt.Errorf("producer: %w", err)
	}
	defer func() { _ = producer.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Feeding topic", "topic", config.Topic, "interval", config.Interval)

	ticker := time.NewTicker(config.Interval)
	defer ticker.Stop()

	sent := 0
	for {
		select {
		case <-ctx.Done():
			log.Info("Feeder stopped", "sent", sent)
			return nil
		case <-ticker.C:
			value, err := json.Marshal(payload{
				Message: templates[rand.Intn(len(templates))],
				Author:  authors[rand.Intn(len(authors))],
			})
			if err != nil {
				return err
			}
			if _, _, err := producer.SendMessage(&sarama.ProducerMessage{
				Topic: config.Topic,
				Value: sarama.ByteEncoder(value),
			}); err != nil {
				return fmt.Errorf("send: %w", err)
			}
			sent++
			if config.Count > 0 && sent >= config.Count {
				log.Info("Feed complete", "sent", sent)
				return nil
			}
		}
	}
}

func splitBrokers(raw string) []string {
	var brokers []string
	for _, broker := range strings.Split(raw, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}
