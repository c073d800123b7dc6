package command

import (
	"errors"
	"net"
	"strconv"
	"sync"
	"testing"

	"github.com/frezcirno/Rudis/internal/resp"
)

// respServer is an in-process RESP server for CLI tests. Every received
// command is recorded and answered by the handler.
type respServer struct {
	ln      net.Listener
	handler func(args []string) resp.Value

	mu       sync.Mutex
	commands [][]string
}

func newRespServer(t *testing.T, handler func(args []string) resp.Value) *respServer {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	s := &respServer{ln: ln, handler: handler}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go s.serve(conn)
		}
	}()

	return s
}

func (s *respServer) serve(conn net.Conn) {
	defer conn.Close()

	var buf []byte
	chunk := make([]byte, 4096)
	for {
		v, n, err := resp.DecodeOne(buf)
		if err == nil {
			buf = buf[n:]
			args := commandArgs(v)
			s.mu.Lock()
			s.commands = append(s.commands, args)
			s.mu.Unlock()

			reply, err := resp.AppendValue(nil, s.handler(args))
			if err != nil {
				return
			}
			if _, err := conn.Write(reply); err != nil {
				return
			}
			continue
		}
		if !errors.Is(err, resp.ErrTruncated) {
			return
		}

		rn, err := conn.Read(chunk)
		if err != nil {
			return
		}
		buf = append(buf, chunk[:rn]...)
	}
}

// commandArgs flattens a command frame (array of bulk strings) into its
// string arguments.
func commandArgs(v resp.Value) []string {
	args := make([]string, 0, len(v.Elems))
	for _, e := range v.Elems {
		args = append(args, string(e.Bulk))
	}
	return args
}

// hostPort splits the server's listen address for --host/--port flags.
func (s *respServer) hostPort(t *testing.T) (string, string) {
	t.Helper()

	host, port, err := net.SplitHostPort(s.ln.Addr().String())
	if err != nil {
		t.Fatalf("split addr: %v", err)
	}
	return host, port
}

// received returns a copy of the recorded commands.
func (s *respServer) received() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]string(nil), s.commands...)
}

// pingPongHandler answers PING and errors on everything else.
func pingPongHandler(args []string) resp.Value {
	if len(args) == 1 && args[0] == "PING" {
		return resp.NewSimpleString("PONG")
	}
	return resp.NewError("ERR unknown command")
}

// mustParsePort converts a port string for sanity checks in tests.
func mustParsePort(t *testing.T, port string) int {
	t.Helper()

	n, err := strconv.Atoi(port)
	if err != nil {
		t.Fatalf("bad port %q: %v", port, err)
	}
	return n
}
