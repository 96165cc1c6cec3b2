// Package transport is the out-of-scope "send" collaborator spec.md §1
// and §6 describe but leave unimplemented: it gzips and base64-encodes
// each compiled codeline and posts it to the platform's local plugin
// over a WebSocket connection. Grounded on dphaener-conduit's
// internal/web/websocket.Client (buffered send channel, write
// deadlines), adapted from a server-side hub client to a one-shot
// outbound dialer. No compiler-stage package imports this one.
package transport

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dfrs-lang/dfrsc/internal/lower"
)

// writeWait mirrors the conduit client's write deadline: long enough
// for a slow local socket, short enough to fail fast on a dead one.
const writeWait = 10 * time.Second

// Sender posts compiled codelines to a running collaborator. cmd/dfrsc
// calls it only when dfrs.toml's [transport] section is present and
// --send is given.
type Sender interface {
	Send(ctx context.Context, lines []lower.CompiledLine) error
	Close() error
}

// WebSocketSender dials a single connection and writes one text frame
// per codeline, each gzip-compressed and base64-encoded per spec.md §6
// ("the system's enclosing collaborator base64-encodes and gzip-wraps
// this JSON before transport").
type WebSocketSender struct {
	conn *websocket.Conn
}

// Dial opens a WebSocket connection to host:port for subsequent Send
// calls.
func Dial(ctx context.Context, host string, port int) (*WebSocketSender, error) {
	u := url.URL{Scheme: "ws", Host: fmt.Sprintf("%s:%d", host, port), Path: "/"}
	dialer := websocket.Dialer{HandshakeTimeout: writeWait}
	conn, _, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("transport: dial %s: %w", u.String(), err)
	}
	return &WebSocketSender{conn: conn}, nil
}

// Send encodes and writes each line in order, stopping at the first
// write error.
func (s *WebSocketSender) Send(ctx context.Context, lines []lower.CompiledLine) error {
	for _, line := range lines {
		payload, err := encode(line.Code)
		if err != nil {
			return fmt.Errorf("transport: encode %s: %w", line.Name, err)
		}
		if deadline, ok := ctx.Deadline(); ok {
			s.conn.SetWriteDeadline(deadline)
		} else {
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
		}
		if err := s.conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
			return fmt.Errorf("transport: send %s: %w", line.Name, err)
		}
	}
	return nil
}

// Close closes the underlying connection.
func (s *WebSocketSender) Close() error {
	return s.conn.Close()
}

// encode gzips code and base64-encodes the result, returning the
// string the wire protocol expects in place of raw JSON.
func encode(code string) (string, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write([]byte(code)); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
