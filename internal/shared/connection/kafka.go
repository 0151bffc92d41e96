package connection

import (
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// ConnectKafkaWithRetry checks that the broker accepts connections and
// returns a writer that keys messages by aggregate id, so every event of one
// salary or leave lands on the same partition in order.
func ConnectKafkaWithRetry(broker string, maxRetries int) (*kafkago.Writer, error) {
	err := withRetry("kafka", maxRetries, func() error {
		conn, err := kafkago.Dial("tcp", broker)
		if err != nil {
			return err
		}
		return conn.Close()
	})
	if err != nil {
		return nil, err
	}

	return &kafkago.Writer{
		Addr:                   kafkago.TCP(broker),
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
		WriteTimeout:           10 * time.Second,
	}, nil
}
