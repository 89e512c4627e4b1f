package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"stagetimer-cli/internal/model"
	"stagetimer-cli/internal/relay"
)

const writeTimeout = 10 * time.Second

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  16 * 1024,
	WriteBufferSize: 16 * 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			return true
		}
		// Basic same-origin check; output surfaces and panel glue run on
		// the operator's own network.
		host := strings.TrimSpace(r.Host)
		return strings.Contains(origin, "://"+host)
	},
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error response.
		return
	}
	defer conn.Close()

	sub := s.hub.Subscribe()
	defer s.hub.Unsubscribe(sub)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for env := range sub.C() {
			if err := writeEnvelope(conn, env); err != nil {
				// Logged, never retried: the surface reconnects and the
				// heartbeat re-converges it.
				log.Printf("server: write to surface: %v", err)
				conn.Close()
				return
			}
		}
	}()

	s.readLoop(conn, sub)
	s.hub.Unsubscribe(sub) // stops the writer
	<-done
}

// readLoop processes envelopes from one connected surface until it
// disconnects. Handlers run to completion before the next message.
func (s *Server) readLoop(conn *websocket.Conn, sub *relay.Subscriber) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("server: surface lost: %v", err)
			}
			return
		}
		env, err := model.ParseEnvelope(data)
		if err != nil {
			log.Printf("server: %v", err)
			continue
		}

		switch env.Type {
		case model.EnvelopeSurfaceReady:
			// The surface's rendering pipeline is up: make it a live
			// broadcast target and converge it immediately.
			s.hub.SetReady(sub)
			s.hub.Send(sub, model.StateEnvelope(s.controller.Snapshot()))

		case model.EnvelopeRequestState:
			s.hub.Send(sub, model.StateEnvelope(s.controller.Snapshot()))

		case model.EnvelopeCommand:
			if env.Command == nil {
				continue
			}
			// Round-tripped command: the authoritative surface applies
			// it to its own copy; the controller's change hook and the
			// heartbeat rebroadcast the result.
			s.controller.Apply(*env.Command, time.Now())
			if s.OnCommand != nil {
				s.OnCommand(*env.Command)
			}

		case model.EnvelopeBlackout:
			if env.Blackout != nil {
				s.controller.SetBlackout(*env.Blackout)
				if s.OnCommand != nil {
					s.OnCommand(model.Command{Name: model.CmdSetBlackout, On: env.Blackout})
				}
			}

		case model.EnvelopeState:
			// Only the authoritative surface mutates canonical state;
			// inbound snapshots are not a thing.
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
