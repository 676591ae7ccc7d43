// Package broadcast publishes fill and controller state-transition events to
// external subscribers (risk dashboards, alerting) over NATS, independent of
// the REST/WebSocket control plane in pkg/api. Payloads are plain JSON, no
// external .proto package required.
package broadcast

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"
)

// FillEvent is emitted whenever a leg's order manager applies a trade fill.
type FillEvent struct {
	StrategyID  int32   `json:"strategy_id"`
	Account     string  `json:"account"`
	Symbol      string  `json:"symbol"`
	Side        string  `json:"side"`
	Price       float64 `json:"price"`
	Qty         int32   `json:"qty"`
	Netpos      int32   `json:"netpos"`
	RealisedPNL float64 `json:"realised_pnl"`
	TimestampNs uint64  `json:"timestamp_ns"`
}

// StateEvent is emitted on controller activate/deactivate/squareoff transitions.
type StateEvent struct {
	StrategyID int32  `json:"strategy_id"`
	State      string `json:"state"`
	TimestampNs uint64 `json:"timestamp_ns"`
}

// Publisher is the interface LegManager/PairwiseArbStrategy depend on. A nil
// Publisher field is never dereferenced by callers — they check first — but
// NoopPublisher exists so wiring code can always have a non-nil value.
type Publisher interface {
	PublishFill(FillEvent) error
	PublishState(StateEvent) error
	Close() error
}

// NoopPublisher discards every event. Used when system.nats_url is unset.
type NoopPublisher struct{}

func (NoopPublisher) PublishFill(FillEvent) error   { return nil }
func (NoopPublisher) PublishState(StateEvent) error { return nil }
func (NoopPublisher) Close() error                  { return nil }

// NATSPublisher publishes fill/state events as JSON on subjects
// "<prefix>.fill" and "<prefix>.state".
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
}

// NewNATSPublisher connects to url and returns a Publisher. Reconnects are
// capped at 10 attempts with a fixed 1s wait between tries; a broadcast sink
// going away should never block order flow waiting on a connection.
func NewNATSPublisher(url, subjectPrefix string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.MaxReconnects(10),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("broadcast: connect to NATS at %s: %w", url, err)
	}
	return &NATSPublisher{conn: conn, prefix: subjectPrefix}, nil
}

func (p *NATSPublisher) PublishFill(ev FillEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("broadcast: marshal fill event: %w", err)
	}
	if err := p.conn.Publish(p.prefix+".fill", data); err != nil {
		log.Printf("[Broadcast] publish fill failed: %v", err)
		return err
	}
	return nil
}

func (p *NATSPublisher) PublishState(ev StateEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("broadcast: marshal state event: %w", err)
	}
	if err := p.conn.Publish(p.prefix+".state", data); err != nil {
		log.Printf("[Broadcast] publish state failed: %v", err)
		return err
	}
	return nil
}

func (p *NATSPublisher) Close() error {
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}
