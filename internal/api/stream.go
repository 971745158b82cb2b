package api

import (
	"context"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hearthview/hearth/internal/errors"
)

// handshakeTimeout bounds the WebSocket upgrade, separate from the poll
// timeout since a tail session then runs indefinitely.
const handshakeTimeout = 5 * time.Second

// Tail connects to the log aggregator's WebSocket tail endpoint and calls fn
// for each streamed entry. It blocks until ctx is cancelled (returns nil),
// the server closes the stream normally (returns nil), or the stream fails.
func (c *Client) Tail(ctx context.Context, fn func(LogEntry)) error {
	conn, err := c.dialTail(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Unblock ReadJSON when the context ends.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		var entry LogEntry
		if err := conn.ReadJSON(&entry); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return errors.WrapWithCode(err, errors.ErrStream,
				"Log tail stream closed unexpectedly",
				"Reconnect with 'hearth logs --follow'")
		}
		fn(entry)
	}
}

// PingTail dials the tail endpoint and immediately closes it. Doctor uses
// this to verify the aggregator accepts WebSocket upgrades.
func (c *Client) PingTail(ctx context.Context) error {
	conn, err := c.dialTail(ctx)
	if err != nil {
		return err
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return conn.Close()
}

func (c *Client) dialTail(ctx context.Context) (*websocket.Conn, error) {
	endpoint, err := tailURL(c.logs)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrStream,
			"Log aggregator URL is not usable for the tail stream",
			"Check endpoints.logs in your config")
	}

	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, resp, err := dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		if resp != nil {
			return nil, errors.WrapWithCode(err, errors.ErrStream,
				"Log tail upgrade refused: "+resp.Status,
				"Check the aggregator supports /ws/tail")
		}
		return nil, errors.WrapWithCode(err, errors.ErrStream,
			"Cannot connect to the log tail stream",
			"Check the aggregator is running, or run 'hearth doctor'")
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	return conn, nil
}

// tailURL derives the ws:// tail endpoint from the aggregator base URL.
func tailURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}

	u.Path = "/ws/tail"
	u.RawQuery = ""
	return u.String(), nil
}
