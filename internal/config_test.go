package internal

import (
	"testing"
	"time"

	"github.com/Netflix/go-env"
	"github.com/stretchr/testify/require"
)

func TestConfig_DefaultsFromEnviron(t *testing.T) {
	req := require.New(t)

	var config Config
	req.NoError(env.Unmarshal(env.EnvSet{}, &config))
	req.NoError(config.Validate())

	req.Equal("default_topic", config.Topic)
	req.Equal("default_group", config.GroupID)
	req.Equal(time.Minute, config.BucketWidth)
	req.Equal(2*time.Second, config.RenderInterval)
	req.Equal(60, config.RetentionBuckets)
	req.Equal([]string{"localhost:9092"}, config.BrokerList())
	req.Equal(DefaultKeywords, config.KeywordList())
}

func TestConfig_ValidationRejectsNonPositive(t *testing.T) {
	config := Config{
		KafkaBrokers:     "localhost:9092",
		Topic:            "t",
		GroupID:          "g",
		BucketWidth:      0,
		RenderInterval:   time.Second,
		RetentionBuckets: 60,
		BufferSize:       64,
	}
	require.Error(t, config.Validate())
}

func TestConfig_ListParsing(t *testing.T) {
	req := require.New(t)
	config := Config{
		KafkaBrokers: " kafka-1:9092, kafka-2:9092 ,",
		Keywords:     "Kafka, real-time ,,python",
	}

	req.Equal([]string{"kafka-1:9092", "kafka-2:9092"}, config.BrokerList())
	req.Equal([]string{"Kafka", "real-time", "python"}, config.KeywordList())
}
