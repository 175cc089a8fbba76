package gateway

// Client is the transport side of one live connection. It abstracts the
// underlying websocket so the presence registry and the relays can be
// exercised in tests without a network.
type Client interface {
	// GetSendChannel returns the channel the gateway writes outbound
	// frames to. It is drained by the client's write loop.
	GetSendChannel() chan<- Envelope

	// Close tears the connection down. Safe to call more than once.
	Close()
}

// trySend delivers a frame without blocking. A client whose send buffer
// is full misses the frame; presence broadcasts are periodic full-state
// pushes, so a skipped one is recovered by the next.
func trySend(c Client, env Envelope) bool {
	select {
	case c.GetSendChannel() <- env:
		return true
	default:
		return false
	}
}
