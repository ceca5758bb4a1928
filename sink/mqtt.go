package sink

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/flavioheleno/slmsim/grayframe"
)

// DefaultPublishTimeout bounds how long MQTT.Render waits for the broker.
const DefaultPublishTimeout = 5 * time.Second

// Publisher is the subset of mqtt.Client used by the MQTT sink.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTT publishes every rendered frame as a base64 encoded grayscale PNG.
type MQTT struct {
	Client  Publisher
	Topic   string
	QoS     byte
	Timeout time.Duration
}

// NewMQTT returns a sink publishing on topic with QoS 2.
func NewMQTT(client Publisher, topic string) *MQTT {
	return &MQTT{
		Client:  client,
		Topic:   topic,
		QoS:     2,
		Timeout: DefaultPublishTimeout,
	}
}

// NewMQTTClient connects to broker and returns the client.
func NewMQTTClient(broker, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().AddBroker(broker).SetClientID(clientID)
	opts.SetKeepAlive(2 * time.Second)
	opts.SetPingTimeout(1 * time.Second)

	c := mqtt.NewClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("sink: mqtt: connect %s: %w", broker, token.Error())
	}
	return c, nil
}

// Render implements Sink.
func (m *MQTT) Render(f *grayframe.Frame) error {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, f); err != nil {
		return err
	}
	payload := make([]byte, base64.StdEncoding.EncodedLen(buf.Len()))
	base64.StdEncoding.Encode(payload, buf.Bytes())

	timeout := m.Timeout
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	token := m.Client.Publish(m.Topic, m.QoS, false, payload)
	if !token.WaitTimeout(timeout) {
		return errors.New("sink: mqtt: publish timed out")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("sink: mqtt: publish: %w", err)
	}
	return nil
}

func (m *MQTT) String() string {
	return "mqtt(" + m.Topic + ")"
}
