package sink

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	compare "github.com/audiocinema/go-audio-compare"
)

// MQTT broker conventions: plain connections default to 1883 and are
// bumped to 8883 when TLS is requested on the plain port. The device
// access token travels as the MQTT username.
const (
	plainPort = 1883
	tlsPort   = 8883

	telemetryTopic = "v1/devices/me/telemetry"
	telemetryQoS   = 1

	defaultPublishTimeout = 5 * time.Second
	connectKeepAlive      = 30 * time.Second
	disconnectQuiesceMS   = 250
)

// TelemetrySink publishes reports to an MQTT telemetry collector. One
// connection, one QoS 1 publish, one attempt; the caller decides what to
// do with a failure.
type TelemetrySink struct {
	Host   string
	Port   int
	Token  string
	UseTLS bool

	// Timeout bounds the whole publish (connect + publish ack). Zero
	// means the default of five seconds.
	Timeout time.Duration

	// newClient is an injectable client factory for tests.
	newClient func(*mqtt.ClientOptions) mqtt.Client
}

// NewTelemetrySink builds a sink from the telemetry configuration section.
func NewTelemetrySink(cfg compare.TelemetryConfig) *TelemetrySink {
	return &TelemetrySink{
		Host:   cfg.Host,
		Port:   cfg.Port,
		Token:  cfg.Token,
		UseTLS: cfg.UseTLS,
	}
}

// Publish sends the report as one QoS 1 telemetry message and returns the
// transport outcome. It never retries and never mutates the report.
func (s *TelemetrySink) Publish(ctx context.Context, report *compare.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("telemetry: marshal report: %w", err)
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	broker := s.brokerURL()
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetUsername(s.Token).
		SetKeepAlive(connectKeepAlive).
		SetAutoReconnect(false).
		SetConnectRetry(false)
	if s.UseTLS {
		opts.SetTLSConfig(&tls.Config{})
	}

	newClient := s.newClient
	if newClient == nil {
		newClient = mqtt.NewClient
	}
	client := newClient(opts)
	if err := waitToken(ctx, client.Connect()); err != nil {
		return fmt.Errorf("telemetry: connect %s: %w", broker, err)
	}
	defer client.Disconnect(disconnectQuiesceMS)

	if err := waitToken(ctx, client.Publish(telemetryTopic, telemetryQoS, false, payload)); err != nil {
		return fmt.Errorf("telemetry: publish to %s: %w", broker, err)
	}
	return nil
}

// brokerURL renders the broker address, bumping the plain port to the TLS
// port when TLS is requested on it. An explicit non-default port is kept
// as given.
func (s *TelemetrySink) brokerURL() string {
	port := s.Port
	scheme := "tcp"
	if s.UseTLS {
		scheme = "ssl"
		if port == plainPort {
			port = tlsPort
		}
	}
	return scheme + "://" + net.JoinHostPort(s.Host, strconv.Itoa(port))
}

// waitToken waits for an MQTT operation to complete, bounded by ctx.
func waitToken(ctx context.Context, tok mqtt.Token) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-tok.Done():
		return tok.Error()
	}
}

var _ compare.Sink = (*TelemetrySink)(nil)
