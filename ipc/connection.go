package ipc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

// Handler processes a received envelope. Return nil to send no reply.
type Handler func(env Envelope) (any, error)

// Connection is a single websocket session with the game harness.
type Connection struct {
	conn     *websocket.Conn
	handlers map[string]Handler
	Team     string
}

// Dial connects to the harness at url.
func Dial(ctx context.Context, url string, timeout time.Duration) (*Connection, error) {
	dialer := websocket.Dialer{HandshakeTimeout: timeout}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return NewConnection(conn, nil), nil
}

func NewConnection(conn *websocket.Conn, handlers map[string]Handler) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	return &Connection{
		conn:     conn,
		handlers: handlers,
	}
}

func (c *Connection) RegisterHandler(msgType string, handler Handler) {
	c.handlers[msgType] = handler
}

// Send writes v as a single JSON text frame.
func (c *Connection) Send(v any) error {
	if err := c.conn.WriteJSON(v); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Register announces the team to the harness.
func (c *Connection) Register(token, teamName string) error {
	c.Team = teamName
	return c.Send(NewRegister(token, teamName))
}

// Close drops the connection without a close handshake. Only needed when
// ReadLoop is never started.
func (c *Connection) Close() error {
	return c.conn.Close()
}

// ReadLoop blocks until the connection closes, errors, or ctx is cancelled.
// It owns the conn lifetime so callers don't need to track cleanup.
func (c *Connection) ReadLoop(ctx context.Context) {
	defer c.conn.Close()

	stop := context.AfterFunc(ctx, func() {
		// Closing unblocks ReadMessage; the close frame is best effort.
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		_ = c.conn.Close()
	})
	defer stop()

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) || ctx.Err() != nil {
				slog.Info("connection closed", "team", c.Team)
			} else {
				slog.Info("connection read ended", "team", c.Team, "error", err)
			}
			return
		}

		env, err := DecodeEnvelope(frame)
		if err != nil {
			slog.Warn("dropping malformed frame", "error", err)
			continue
		}

		handler, ok := c.handlers[env.Type]
		if !ok {
			slog.Warn("no handler for message type", "type", env.Type)
			continue
		}

		resp, err := handler(env)
		if err != nil {
			slog.Error("handler error", "type", env.Type, "error", err)
			continue
		}

		if resp != nil {
			if err := c.Send(resp); err != nil {
				slog.Error("failed to send response", "type", env.Type, "error", err)
				return
			}
		}
	}
}
