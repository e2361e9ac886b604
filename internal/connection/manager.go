// Package connection owns the broker session and the ingestion
// pipeline behind it: inbound messages are decoded, applied to the
// device registry, and forwarded to the event sink.
package connection

import (
	"sync"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jmas/supervisor-core/internal/codec"
	"github.com/jmas/supervisor-core/internal/events"
	"github.com/jmas/supervisor-core/internal/registry"
	"github.com/jmas/supervisor-core/pkg/geocode"
	"github.com/jmas/supervisor-core/pkg/mqtt"
)

// Options are the fixed session parameters for a Manager.
type Options struct {
	Broker         string
	ClientIDPrefix string
	QOS            int
	CleanSession   bool
	ConnectTimeout time.Duration
	RetryDelay     time.Duration
	LocationTopic  string
	AlertTopic     string
}

// disconnectQuiesceMs is how long paho may spend completing in-flight
// work during a graceful disconnect.
const disconnectQuiesceMs = 250

// State is the connection lifecycle state.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// healthMonitor is the lifecycle surface of the health monitor as the
// manager sees it: started once connected, stopped on disconnect.
type healthMonitor interface {
	Start() error
	Stop() error
}

// Manager drives the Disconnected -> Connecting -> Connected lifecycle
// against the broker. Every connection attempt uses a freshly generated
// client identifier; a failed or dropped session schedules one retry
// after a fixed delay on a non-blocking timer. Each transition into or
// out of Connected is reported to the sink exactly once.
type Manager struct {
	cfg      Options
	factory  mqtt.Factory
	registry *registry.Registry
	monitor  healthMonitor
	resolver *geocode.Resolver
	sink     *events.Sink
	logger   zerolog.Logger

	mu         sync.Mutex
	state      State
	client     mqtt.Client
	retryTimer *time.Timer
}

// NewManager creates a Manager. The sink is fixed at construction; the
// presentation layer registers its callbacks there before Connect.
func NewManager(cfg Options, factory mqtt.Factory, reg *registry.Registry,
	monitor healthMonitor, resolver *geocode.Resolver, sink *events.Sink, logger zerolog.Logger) *Manager {
	return &Manager{
		cfg:      cfg,
		factory:  factory,
		registry: reg,
		monitor:  monitor,
		resolver: resolver,
		sink:     sink,
		logger:   logger,
		state:    StateDisconnected,
	}
}

// Connect starts an asynchronous connection attempt. It returns
// immediately; the outcome is reported through OnConnectionChanged.
// Calling it while a session is active or pending is a no-op.
func (m *Manager) Connect() {
	m.mu.Lock()
	if m.state != StateDisconnected {
		state := m.state
		m.mu.Unlock()
		m.logger.Warn().Stringer("state", state).Msg("Connect ignored, session already active")
		return
	}
	if m.retryTimer != nil {
		m.retryTimer.Stop()
		m.retryTimer = nil
	}
	m.state = StateConnecting
	m.mu.Unlock()

	go m.attempt()
}

// Disconnect tears the session down. It is idempotent: safe to call
// when already disconnected. Any pending retry is cancelled and the
// health monitor is stopped, so no new work is scheduled after return.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	wasIdle := m.state == StateDisconnected && m.client == nil && m.retryTimer == nil
	if m.retryTimer != nil {
		m.retryTimer.Stop()
		m.retryTimer = nil
	}
	client := m.client
	m.client = nil
	wasConnected := m.state == StateConnected
	m.state = StateDisconnected
	m.mu.Unlock()

	if wasIdle {
		return
	}

	if err := m.monitor.Stop(); err != nil {
		m.logger.Debug().Err(err).Msg("Health monitor was not running")
	}

	if client != nil {
		client.Unsubscribe(m.cfg.LocationTopic, m.cfg.AlertTopic)
		client.Disconnect(disconnectQuiesceMs)
	}

	if wasConnected {
		m.sink.ConnectionChanged(false)
	}
	m.logger.Info().Msg("Disconnected from MQTT broker")
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsConnected reports whether the session is established.
func (m *Manager) IsConnected() bool {
	return m.State() == StateConnected
}

// attempt performs one handshake with a fresh client identifier.
func (m *Manager) attempt() {
	clientID := m.cfg.ClientIDPrefix + "-" + uuid.New().String()

	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(m.cfg.Broker)
	opts.SetClientID(clientID)
	opts.SetCleanSession(m.cfg.CleanSession)
	opts.SetConnectTimeout(m.cfg.ConnectTimeout)
	// The manager owns reconnection so that state transitions reach the
	// sink exactly once per attempt.
	opts.SetAutoReconnect(false)
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		m.onConnectionLost(err)
	})

	m.mu.Lock()
	if m.state != StateConnecting {
		m.mu.Unlock()
		return
	}
	client := m.factory(opts)
	m.client = client
	m.mu.Unlock()

	m.logger.Info().
		Str("broker", m.cfg.Broker).
		Str("client_id", clientID).
		Msg("Connecting to MQTT broker")

	token := client.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		m.logger.Error().Err(err).Msg("Failed to connect to MQTT broker")
		m.transitionDown()
		return
	}

	m.onConnected(client)
}

// onConnected finishes the Connecting -> Connected transition:
// subscribes both topics, starts the health monitor, and reports the
// state change once.
func (m *Manager) onConnected(client mqtt.Client) {
	m.mu.Lock()
	if m.state != StateConnecting {
		// Disconnect raced the handshake; drop the fresh session.
		m.mu.Unlock()
		client.Disconnect(0)
		return
	}
	m.state = StateConnected
	m.mu.Unlock()

	m.logger.Info().Msg("Connected to MQTT broker")
	m.sink.ConnectionChanged(true)

	m.subscribe(client, m.cfg.LocationTopic, m.handleLocation)
	m.subscribe(client, m.cfg.AlertTopic, m.handleAlert)

	// A Disconnect may have landed while the sink or the broker was
	// being serviced; the monitor starts only for a still-current
	// session, so teardown leaves nothing ticking behind it.
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateConnected || m.client != client {
		return
	}
	if err := m.monitor.Start(); err != nil {
		// Kept running across a transport drop; only Disconnect stops it.
		m.logger.Debug().Err(err).Msg("Health monitor already running")
	}
}

func (m *Manager) subscribe(client mqtt.Client, topic string, handler pahomqtt.MessageHandler) {
	token := client.Subscribe(topic, byte(m.cfg.QOS), handler)
	token.Wait()
	if err := token.Error(); err != nil {
		m.logger.Error().Err(err).Str("topic", topic).Msg("Failed to subscribe")
		return
	}
	m.logger.Info().Str("topic", topic).Msg("Subscribed")
}

// onConnectionLost handles a transport-level drop of an established
// session.
func (m *Manager) onConnectionLost(err error) {
	m.logger.Error().Err(err).Msg("MQTT connection lost")
	m.transitionDown()
}

// transitionDown moves to Disconnected, reports the change once, and
// schedules a single retry after the fixed delay.
func (m *Manager) transitionDown() {
	m.mu.Lock()
	if m.state == StateDisconnected {
		m.mu.Unlock()
		return
	}
	m.state = StateDisconnected
	m.client = nil
	m.retryTimer = time.AfterFunc(m.cfg.RetryDelay, m.retry)
	m.mu.Unlock()

	m.sink.ConnectionChanged(false)
	m.logger.Info().Dur("delay", m.cfg.RetryDelay).Msg("Reconnect scheduled")
}

// retry is the timer callback for a scheduled reconnect.
func (m *Manager) retry() {
	m.mu.Lock()
	if m.state != StateDisconnected {
		m.mu.Unlock()
		return
	}
	m.retryTimer = nil
	m.state = StateConnecting
	m.mu.Unlock()

	m.attempt()
}

// handleLocation is the broker callback for the location topic. A
// malformed message is logged and dropped; it never stops the pipeline.
func (m *Manager) handleLocation(_ pahomqtt.Client, msg pahomqtt.Message) {
	report, err := codec.DecodeLocation(msg.Payload())
	if err != nil {
		m.logger.Error().Err(err).Str("topic", msg.Topic()).Msg("Dropping undecodable location message")
		return
	}

	device := m.registry.UpsertFromLocation(report, time.Now())

	// Address resolution runs off the delivery path and lands in the
	// registry whenever it completes.
	m.resolver.Resolve(report.Latitude, report.Longitude, func(address string) {
		m.registry.SetAddress(report.TabletID, address)
	})

	m.sink.LocationUpdated(device)
}

// handleAlert is the broker callback for the alert topic.
func (m *Manager) handleAlert(_ pahomqtt.Client, msg pahomqtt.Message) {
	alert, err := codec.DecodeAlert(msg.Payload())
	if err != nil {
		m.logger.Error().Err(err).Str("topic", msg.Topic()).Msg("Dropping undecodable alert message")
		return
	}

	// An alert may reference a device not yet seen via location; the
	// registry treats that as a no-op but the alert still reaches the sink.
	m.registry.ApplyAlert(alert)

	m.sink.AlertReceived(alert)
}
