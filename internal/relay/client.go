package relay

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"stagetimer-cli/internal/model"
)

const (
	reconnectMin = 500 * time.Millisecond
	reconnectMax = 5 * time.Second
	writeTimeout = 10 * time.Second
)

// Client connects an output surface to the authoritative surface's
// websocket endpoint and pumps accepted envelopes into a Replica. It
// reconnects forever with backoff: a production display must converge on
// its own once the control surface comes back, never freeze.
type Client struct {
	URL     string
	Replica *Replica

	// OnApply, when set, is called after an envelope changes the replica.
	OnApply func()

	// Ready, when set, holds back the surfaceReady announcement until the
	// channel is closed. The output surface closes it once its rendering
	// loop has produced a frame, so the control surface never counts a
	// display that is connected but not yet drawing.
	Ready <-chan struct{}
}

// Run dials and pumps until ctx is cancelled. Errors inside a session are
// logged and turn into a reconnect, not a failure.
func (c *Client) Run(ctx context.Context) error {
	backoff := reconnectMin
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.URL, nil)
		if err != nil {
			log.Printf("relay: dial %s: %v", c.URL, err)
		} else {
			backoff = reconnectMin
			c.session(ctx, conn)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > reconnectMax {
			backoff = reconnectMax
		}
	}
}

// SendCommand round-trips a command through the authoritative surface on
// a short-lived connection. Fire-and-forget: no acknowledgment is read.
func SendCommand(ctx context.Context, url string, cmd model.Command) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	return writeEnvelope(conn, model.CommandEnvelope(cmd))
}

func (c *Client) session(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	// Actively request a snapshot so the first frame has state to draw.
	// Waiting passively would race the heartbeat if we subscribed just
	// after a broadcast.
	if err := writeEnvelope(conn, model.Envelope{Type: model.EnvelopeRequestState}); err != nil {
		log.Printf("relay: requestState: %v", err)
		return
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()
	defer close(done)

	// Announce surfaceReady only once the rendering pipeline has produced
	// a frame. On reconnects the channel is already closed, so the
	// announcement goes out immediately.
	go func() {
		if c.Ready != nil {
			select {
			case <-c.Ready:
			case <-ctx.Done():
				return
			case <-done:
				return
			}
		}
		if err := writeEnvelope(conn, model.Envelope{Type: model.EnvelopeSurfaceReady}); err != nil {
			log.Printf("relay: surfaceReady: %v", err)
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("relay: read: %v", err)
			}
			return
		}
		env, err := model.ParseEnvelope(data)
		if err != nil {
			// Malformed traffic is logged and skipped; the stream heals
			// on the next heartbeat frame.
			log.Printf("relay: %v", err)
			continue
		}
		if c.Replica.Apply(env) && c.OnApply != nil {
			c.OnApply()
		}
	}
}

func writeEnvelope(conn *websocket.Conn, env model.Envelope) error {
	b, err := json.Marshal(env)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, b)
}
