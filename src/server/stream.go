package server

import (
	"net/http"

	"exchangeclient/src/engine"
	"exchangeclient/src/model"

	"github.com/gorilla/websocket"
	logger "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Local UI surface only, not exposed beyond loopback.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamHandler pushes every applied profile snapshot to the websocket
// client. Delivery is fire-and-forget: a client that cannot keep up has
// snapshots dropped, and the next one it reads is the freshest.
func streamHandler(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.WithError(err).Error("websocket upgrade failed")
			return
		}
		defer conn.Close()

		snapshots := make(chan model.UserProfile, 8)
		cancel := e.Bus().Subscribe(func(p model.UserProfile) {
			select {
			case snapshots <- p:
			default:
				logger.Debug("snapshot stream client slow, dropping snapshot")
			}
		})
		defer cancel()

		// Seed the client with the current snapshot, if one exists.
		if current, ok := e.Bus().Current(); ok {
			if err := conn.WriteJSON(current); err != nil {
				logger.WithError(err).Debug("snapshot stream write failed")
				return
			}
		}

		// Reader goroutine notices the client going away.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-done:
				return
			case <-r.Context().Done():
				return
			case p := <-snapshots:
				if err := conn.WriteJSON(p); err != nil {
					logger.WithError(err).Debug("snapshot stream write failed")
					return
				}
			}
		}
	}
}
