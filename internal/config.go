package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultKeywords is the tracked term set used when BUZZ_KEYWORDS is
// not provided.
var DefaultKeywords = []string{"kafka", "python", "data", "real-time", "analysis"}

// Config is the startup-time surface of the board. Everything here is
// a constant for the process lifetime; there is no runtime
// reconfiguration.
type Config struct {
	KafkaBrokers string `env:"KAFKA_BROKERS,default=localhost:9092" validate:"required"`
	Topic        string `env:"BUZZ_TOPIC,default=default_topic" validate:"required"`
	GroupID      string `env:"BUZZ_CONSUMER_GROUP_ID,default=default_group" validate:"required"`
	FromOldest   bool   `env:"KAFKA_FROM_OLDEST"`

	// Comma-separated tracked terms; empty means DefaultKeywords.
	Keywords string `env:"BUZZ_KEYWORDS"`

	BucketWidth      time.Duration `env:"BUCKET_WIDTH,default=1m" validate:"gt=0"`
	RenderInterval   time.Duration `env:"RENDER_INTERVAL,default=2s" validate:"gt=0"`
	RetentionBuckets int           `env:"VOLUME_RETENTION_BUCKETS,default=60" validate:"gt=0"`

	BufferSize  int     `env:"BUFFER_SIZE,default=64" validate:"gt=0"`
	RateLimit   float64 `env:"CONSUME_RATE_LIMIT" validate:"gte=0"` // msgs/s, 0 = unlimited
	LogLevel    string  `env:"LOG_LEVEL,default=INFO"`
	ClearScreen bool    `env:"CLEAR_SCREEN,default=true"`
	DebugPort   int     `env:"DEBUG_PORT" validate:"gte=0"` // 0 disables the inspector
}

// Validate checks the cross-field constraints go-env cannot express.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}

// BrokerList splits KAFKA_BROKERS into individual addresses.
func (c Config) BrokerList() []string {
	var brokers []string
	for _, broker := range strings.Split(c.KafkaBrokers, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}

// KeywordList splits BUZZ_KEYWORDS, falling back to DefaultKeywords.
func (c Config) KeywordList() []string {
	if strings.TrimSpace(c.Keywords) == "" {
		return DefaultKeywords
	}
	var keywords []string
	for _, keyword := range strings.Split(c.Keywords, ",") {
		if keyword = strings.TrimSpace(keyword); keyword != "" {
			keywords = append(keywords, keyword)
		}
	}
	return keywords
}
