// Package gateway owns the real-time side of the chat backend: it
// authenticates websocket connections, tracks which users are online,
// and relays messages and file notifications between live connections.
package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"chatwire/backend/internal/auth"
	"chatwire/backend/internal/blob"
	"chatwire/backend/internal/storage"
)

var (
	// ErrMissingToken means the handshake carried no accessToken cookie.
	ErrMissingToken = errors.New("missing access token")
	// ErrTokenRevoked means the token was valid but denylisted by logout.
	ErrTokenRevoked = errors.New("token has been revoked")
)

// Gateway drives the lifecycle of every client connection:
// Connecting -> Authenticating -> Active -> Closed.
type Gateway struct {
	Presence *Presence

	verifier *auth.Verifier
	storage  storage.Storage
	messages *MessageRelay
	files    *FileRelay
}

func New(v *auth.Verifier, s storage.Storage, blobs *blob.Store) *Gateway {
	presence := NewPresence()
	return &Gateway{
		Presence: presence,
		verifier: v,
		storage:  s,
		messages: NewMessageRelay(s, presence),
		files:    NewFileRelay(s, blobs, presence),
	}
}

// Admit runs the handshake for a fresh connection. On success the
// returned session is Active, registered in the presence table, and an
// updated user_online snapshot has been broadcast. On any failure the
// session is Closed, no presence entry exists, and the caller is
// expected to drop the connection.
//
// Admit completes before the connection's read loop starts, so a
// disconnect can never race an in-flight authentication.
func (g *Gateway) Admit(client Client, token string) (*Session, error) {
	sess := newSession(client)
	sess.transition(StateConnecting, StateAuthenticating)

	if token == "" {
		sess.transition(StateAuthenticating, StateClosed)
		return nil, ErrMissingToken
	}

	claims, err := g.verifier.Verify(token)
	if err != nil {
		sess.transition(StateAuthenticating, StateClosed)
		return nil, err
	}

	revoked, err := g.storage.IsTokenRevoked(token)
	if err != nil {
		sess.transition(StateAuthenticating, StateClosed)
		return nil, fmt.Errorf("check token revocation: %w", err)
	}
	if revoked {
		sess.transition(StateAuthenticating, StateClosed)
		return nil, ErrTokenRevoked
	}

	sess.UserID = claims.UserID
	sess.Username = claims.Username

	g.Presence.Bind(Entry{UserID: sess.UserID, Username: sess.Username}, client)
	sess.transition(StateAuthenticating, StateActive)

	g.broadcastPresence()
	log.Printf("User %s (%s) connected", sess.Username, sess.UserID)
	return sess, nil
}

// HandleEvent dispatches one inbound frame from an Active session.
// Frames from any other state and frames with unknown event names are
// dropped. Relay failures are surfaced back to the originating
// connection as an error event; they never close it.
func (g *Gateway) HandleEvent(sess *Session, raw []byte) {
	if sess.State() != StateActive {
		return
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("Error decoding frame from %s: %v", sess.UserID, err)
		return
	}

	switch env.Event {
	case EventMessage:
		var payload MessagePayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			log.Printf("Error decoding message event from %s: %v", sess.UserID, err)
			return
		}
		// The authenticated identity wins over whatever the client claims.
		payload.SenderID = sess.UserID
		if err := g.messages.Relay(payload.SenderID, payload.ReceiverID, payload.Message); err != nil {
			g.reportError(sess, err)
		}

	case EventFile:
		var payload FilePayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			log.Printf("Error decoding file event from %s: %v", sess.UserID, err)
			return
		}
		payload.SenderID = sess.UserID
		if err := g.files.Relay(payload.SenderID, payload.ReceiverID, payload.File); err != nil {
			g.reportError(sess, err)
		}

	default:
		log.Printf("Dropping unknown event %q from %s", env.Event, sess.UserID)
	}
}

// Disconnect finishes a session's lifecycle. It is idempotent, releases
// the presence entry only while it still belongs to this connection,
// and re-broadcasts the presence snapshot only when something changed.
func (g *Gateway) Disconnect(sess *Session) {
	if !sess.transition(StateActive, StateClosed) {
		return
	}

	sess.client.Close()

	if g.Presence.Release(sess.UserID, sess.client) {
		g.broadcastPresence()
		if err := g.storage.SetLastSeen(sess.UserID, time.Now()); err != nil {
			log.Printf("ERROR: Failed to record last seen for %s: %v", sess.UserID, err)
		}
		log.Printf("User %s (%s) disconnected", sess.Username, sess.UserID)
	}
}

func (g *Gateway) broadcastPresence() {
	g.Presence.Broadcast(NewEnvelope(EventUserOnline, g.Presence.Snapshot()))
}

func (g *Gateway) reportError(sess *Session, err error) {
	log.Printf("ERROR: Relay failed for %s: %v", sess.UserID, err)
	trySend(sess.client, NewEnvelope(EventError, ErrorPayload{Message: err.Error()}))
}
