package remote

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"robot3d/internal/pose"
)

const publishTimeout = time.Second

// Publisher sends pose snapshots to an MQTT topic.
type Publisher struct {
	client mqtt.Client
	topic  string
	// onError receives delivery failures reported after Publish returned.
	onError func(error)
}

// ClientID returns a unique MQTT client id for this process.
func ClientID() string {
	return "robot3d-" + uuid.New().String()
}

// Dial connects to broker and returns a publisher for topic.
func Dial(broker, topic string) (*Publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(ClientID()).
		SetAutoReconnect(true).
		SetConnectTimeout(5 * time.Second)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("remote: mqtt connect %s: %w", broker, token.Error())
	}
	return NewPublisher(client, topic), nil
}

// NewPublisher wraps an already connected client.
func NewPublisher(client mqtt.Client, topic string) *Publisher {
	return &Publisher{
		client: client,
		topic:  topic,
		onError: func(err error) {
			slog.Warn("mqtt publish failed", "error", err)
		},
	}
}

// Topic returns the topic poses are published to.
func (p *Publisher) Topic() string { return p.topic }

// Publish hands s to the client with QoS 0 and returns without waiting for
// the broker. Delivery failures are logged once the token completes.
func (p *Publisher) Publish(s pose.State) error {
	data, err := json.Marshal(PoseMessage(s))
	if err != nil {
		return fmt.Errorf("remote: encode pose: %w", err)
	}
	token := p.client.Publish(p.topic, 0, false, data)
	go func() {
		if !token.WaitTimeout(publishTimeout) {
			p.onError(fmt.Errorf("remote: publish %s: timed out", p.topic))
			return
		}
		if err := token.Error(); err != nil {
			p.onError(fmt.Errorf("remote: publish %s: %w", p.topic, err))
		}
	}()
	return nil
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
