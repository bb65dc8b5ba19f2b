package connection

import (
	"bufio"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/yndnr/microdog-go/internal/core/domain"
)

// DefaultTimeout bounds a single command round trip.
const DefaultTimeout = 5 * time.Second

// ServerError is an error reply from the server.
type ServerError struct {
	Code    string
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// SocketClient speaks the line protocol over the local Unix socket.
type SocketClient struct {
	path    string
	timeout time.Duration
	conn    net.Conn
	reader  *bufio.Reader
}

// NewSocketClient creates a new socket client.
func NewSocketClient(socketPath string) *SocketClient {
	return &SocketClient{path: socketPath, timeout: DefaultTimeout}
}

// Connect connects to the local socket.
func (c *SocketClient) Connect() error {
	conn, err := net.DialTimeout("unix", c.path, c.timeout)
	if err != nil {
		return fmt.Errorf("connect %s: %w", c.path, err)
	}
	c.conn = conn
	c.reader = bufio.NewReader(conn)
	return nil
}

// Close closes the socket connection.
func (c *SocketClient) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Execute sends one command line and returns the reply line without its
// line terminator. It connects on first use.
func (c *SocketClient) Execute(cmd string) (string, error) {
	if c.conn == nil {
		if err := c.Connect(); err != nil {
			return "", err
		}
	}

	if err := c.conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return "", err
	}
	if _, err := c.conn.Write([]byte(cmd + "\n")); err != nil {
		return "", fmt.Errorf("send %q: %w", cmd, err)
	}
	reply, err := c.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read reply: %w", err)
	}
	return strings.TrimRight(reply, "\r\n"), nil
}

// Ping checks that the server answers.
func (c *SocketClient) Ping() error {
	reply, err := c.Execute("PING")
	if err != nil {
		return err
	}
	if reply != "PONG" {
		return parseErrorReply(reply)
	}
	return nil
}

// Info returns the INFO reply fields, e.g. serial, algorithm and entries.
func (c *SocketClient) Info() (map[string]string, error) {
	reply, err := c.Execute("INFO")
	if err != nil {
		return nil, err
	}
	rest, ok := strings.CutPrefix(reply, "OK ")
	if !ok {
		return nil, parseErrorReply(reply)
	}
	fields := make(map[string]string)
	for _, kv := range strings.Fields(rest) {
		if k, v, found := strings.Cut(kv, "="); found {
			fields[k] = v
		}
	}
	return fields, nil
}

// Resolve asks the server for the response to request. A miss returns
// ok=false and no error.
func (c *SocketClient) Resolve(request []byte) (response uint32, ok bool, err error) {
	reply, err := c.Execute("RESOLVE " + domain.EncodeHex(request))
	if err != nil {
		return 0, false, err
	}
	return parseResolveReply(reply)
}

func parseResolveReply(reply string) (uint32, bool, error) {
	switch {
	case reply == "MISS":
		return 0, false, nil
	case strings.HasPrefix(reply, "OK "):
		v, err := strconv.ParseUint(strings.TrimPrefix(reply, "OK "), 16, 32)
		if err != nil {
			return 0, false, fmt.Errorf("malformed reply %q: %w", reply, err)
		}
		return uint32(v), true, nil
	default:
		return 0, false, parseErrorReply(reply)
	}
}

// parseErrorReply turns "ERR <code> <message>" into a *ServerError.
func parseErrorReply(reply string) error {
	rest, ok := strings.CutPrefix(reply, "ERR ")
	if !ok {
		return fmt.Errorf("unexpected reply %q", reply)
	}
	code, msg, _ := strings.Cut(rest, " ")
	return &ServerError{Code: code, Message: msg}
}
