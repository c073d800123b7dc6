package connection

import (
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/frezcirno/Rudis/internal/resp"
	"github.com/frezcirno/Rudis/internal/telemetry/logger"
)

// readChunkSize is the size of a single read from the socket.
const readChunkSize = 4096

// ErrClosed is returned by Do after Close has been called.
var ErrClosed = errors.New("connection: client is closed")

// Option configures a Client.
type Option func(*Client)

// WithDialTimeout bounds the initial TCP dial.
func WithDialTimeout(d time.Duration) Option {
	return func(c *Client) { c.dialTimeout = d }
}

// WithReadTimeout bounds each socket read while waiting for a reply.
func WithReadTimeout(d time.Duration) Option {
	return func(c *Client) { c.readTimeout = d }
}

// WithWriteTimeout bounds each command write.
func WithWriteTimeout(d time.Duration) Option {
	return func(c *Client) { c.writeTimeout = d }
}

// WithLimits sets the protocol limits used when decoding replies.
func WithLimits(l resp.Limits) Option {
	return func(c *Client) { c.dec.Limits = l }
}

// WithLogger sets the logger used for frame tracing.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) { c.log = log }
}

// Client is an explicit connection handle to one RESP server.
//
// A Client is not safe for concurrent use; callers sharing one connection
// must serialize access themselves.
type Client struct {
	conn net.Conn
	addr string

	// buf holds received bytes not yet consumed by a decoded reply.
	buf []byte

	dec resp.Decoder
	log logger.Logger

	dialTimeout  time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// Dial connects to the server at addr (host:port) and returns a ready
// handle.
func Dial(addr string, opts ...Option) (*Client, error) {
	c := &Client{addr: addr, log: logger.Nop()}
	for _, opt := range opts {
		opt(c)
	}

	conn, err := net.DialTimeout("tcp", addr, c.dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("connection: dial %s: %w", addr, err)
	}
	c.conn = conn
	c.log.Debug("connected", "addr", addr)
	return c, nil
}

// Addr returns the address the client was dialed with.
func (c *Client) Addr() string {
	return c.addr
}

// Close closes the underlying connection. Further calls to Do fail with
// ErrClosed.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Do encodes args as a command frame, sends it and returns the single
// reply. Surplus bytes received with the reply remain buffered for the
// next call.
func (c *Client) Do(args ...[]byte) (resp.Value, error) {
	if c.conn == nil {
		return resp.Value{}, ErrClosed
	}
	if len(args) == 0 {
		return resp.Value{}, errors.New("connection: empty command")
	}

	frame := resp.EncodeCommand(args...)
	if c.writeTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return resp.Value{}, fmt.Errorf("connection: set write deadline: %w", err)
		}
	}
	if _, err := c.conn.Write(frame); err != nil {
		return resp.Value{}, fmt.Errorf("connection: write: %w", err)
	}
	c.log.Debug("sent command", "args", len(args), "bytes", len(frame))

	return c.readReply()
}

// DoStrings is Do for string arguments, as produced by tokenizing a line
// of user input.
func (c *Client) DoStrings(args ...string) (resp.Value, error) {
	bs := make([][]byte, len(args))
	for i, a := range args {
		bs[i] = []byte(a)
	}
	return c.Do(bs...)
}

// readReply decodes one reply from the buffered bytes, reading more from
// the socket whenever the frame is still incomplete. The buffer cursor
// only advances on a fully decoded frame.
func (c *Client) readReply() (resp.Value, error) {
	for {
		if len(c.buf) > 0 {
			v, n, err := c.dec.DecodeOne(c.buf)
			if err == nil {
				c.buf = c.buf[n:]
				if len(c.buf) == 0 {
					c.buf = nil
				}
				c.log.Debug("received reply", "type", v.Type.String(), "consumed", n, "buffered", len(c.buf))
				return v, nil
			}
			if !errors.Is(err, resp.ErrTruncated) {
				return resp.Value{}, fmt.Errorf("connection: decode reply: %w", err)
			}
		}

		if c.readTimeout > 0 {
			if err := c.conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
				return resp.Value{}, fmt.Errorf("connection: set read deadline: %w", err)
			}
		}
		chunk := make([]byte, readChunkSize)
		n, err := c.conn.Read(chunk)
		if n > 0 {
			// try to decode what arrived before looking at err; a final
			// read may deliver the rest of the frame together with EOF
			c.buf = append(c.buf, chunk[:n]...)
			continue
		}
		if err == io.EOF {
			return resp.Value{}, fmt.Errorf("connection: %w: connection closed by server", io.ErrUnexpectedEOF)
		}
		if err != nil {
			return resp.Value{}, fmt.Errorf("connection: read: %w", err)
		}
	}
}
