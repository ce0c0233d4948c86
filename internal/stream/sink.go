package stream

import (
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Sink receives encoded frames.
type Sink interface {
	Publish(topic string, payload []byte) error
}

// MQTTOptions configures the broker connection.
type MQTTOptions struct {
	Broker   string
	ClientID string
	Username string
	Password string
	QoS      byte
	Timeout  time.Duration
}

// MQTTSink publishes frames to an MQTT broker.
type MQTTSink struct {
	client  mqtt.Client
	qos     byte
	timeout time.Duration
}

var errTimeout = errors.New("mqtt: timed out")

// DialMQTT connects to the broker described by opts.
func DialMQTT(opts MQTTOptions) (*MQTTSink, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	options := mqtt.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetUsername(opts.Username).
		SetPassword(opts.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetConnectTimeout(opts.Timeout)
	client := mqtt.NewClient(options)

	token := client.Connect()
	if !token.WaitTimeout(opts.Timeout) {
		return nil, fmt.Errorf("connect %s: %w", opts.Broker, errTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect %s: %w", opts.Broker, err)
	}
	return &MQTTSink{client: client, qos: opts.QoS, timeout: opts.Timeout}, nil
}

func (s *MQTTSink) Publish(topic string, payload []byte) error {
	token := s.client.Publish(topic, s.qos, false, payload)
	if !token.WaitTimeout(s.timeout) {
		return fmt.Errorf("publish %s: %w", topic, errTimeout)
	}
	return token.Error()
}

// Close disconnects, allowing in-flight messages a short grace period.
func (s *MQTTSink) Close() {
	s.client.Disconnect(250)
}
