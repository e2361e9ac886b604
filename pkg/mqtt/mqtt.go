// Package mqtt narrows the paho client behind an interface so the
// connection manager can be tested against a mock broker session.
package mqtt

import (
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Client defines the subset of MQTT operations the supervisor core
// uses. Session-level connectivity is tracked by the connection
// manager's own state machine, so the paho connectivity probes are
// deliberately absent.
type Client interface {
	Connect() mqtt.Token
	Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token
	Unsubscribe(topics ...string) mqtt.Token
	Disconnect(quiesce uint)
}

// Factory builds a Client from prepared options. The connection manager
// calls it once per connection attempt so every session gets a fresh
// client identifier; tests swap it for a mock.
type Factory func(opts *mqtt.ClientOptions) Client

// NewPahoClient is the default Factory, backed by paho.mqtt.golang.
func NewPahoClient(opts *mqtt.ClientOptions) Client {
	return mqtt.NewClient(opts)
}
