package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/tidepool-org/landing/shell"
)

type (
	// streamMessage is one frame written to a state stream.
	streamMessage struct {
		Type     string          `json:"type"`
		Snapshot *shell.Snapshot `json:"snapshot,omitempty"`
		Outcome  *shell.Outcome  `json:"outcome,omitempty"`
		Error    *Status         `json:"error,omitempty"`
	}
)

const (
	messageSnapshot = "snapshot"
	messageOutcome  = "outcome"
	messageError    = "error"
)

// GET /v1/state/stream
//
// Pushes a snapshot after every processed event. Intents may be sent on the
// same socket as json; each is answered with an outcome or an error frame.
func (a *Api) StreamState(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()
	lang := locale(req)

	updates, err := a.shell.Subscribe(ctx, lang)
	if err != nil {
		code, _ := statusFor(err)
		a.sendError(ctx, res, code, STATUS_ERR_SUBSCRIBING, err)
		return
	}

	conn, err := a.upgrader.Upgrade(res, req, nil)
	if err != nil {
		// Upgrade has already answered the request.
		a.logger(ctx).With(zap.Error(err)).Info(STATUS_ERR_UPGRADING)
		return
	}
	defer conn.Close()
	log := a.logger(ctx)
	log.Debug("state stream opened")

	replies := make(chan streamMessage)
	go a.readIntents(ctx, cancel, conn, lang, replies)

	for {
		var msg streamMessage
		select {
		case <-ctx.Done():
			a.closeStream(conn)
			return
		case snapshot, ok := <-updates:
			if !ok {
				a.closeStream(conn)
				return
			}
			msg = streamMessage{Type: messageSnapshot, Snapshot: &snapshot}
		case msg = <-replies:
		}
		conn.SetWriteDeadline(time.Now().Add(a.Config.StreamWriteTimeout))
		if err := conn.WriteJSON(msg); err != nil {
			log.With(zap.Error(err)).Debug("writing to state stream")
			return
		}
	}
}

// readIntents dispatches every intent read from conn until the peer goes
// away, then cancels the stream.
func (a *Api) readIntents(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, lang string, replies chan<- streamMessage) {
	defer cancel()
	for {
		var intent shell.Intent
		if err := conn.ReadJSON(&intent); err != nil {
			if _, ok := err.(*websocket.CloseError); !ok {
				a.logger(ctx).With(zap.Error(err)).Debug("reading from state stream")
			}
			return
		}

		var reply streamMessage
		outcome, err := a.shell.Dispatch(ctx, intent, lang)
		if err == nil || outcome.Notice != nil {
			reply = streamMessage{Type: messageOutcome, Outcome: &outcome}
		} else {
			code, reason := statusFor(err)
			reply = streamMessage{Type: messageError, Error: &Status{Code: code, Reason: reason}}
		}
		select {
		case replies <- reply:
		case <-ctx.Done():
			return
		}
	}
}

func (a *Api) closeStream(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
}
