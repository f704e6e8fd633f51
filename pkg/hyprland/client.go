package hyprland

import (
	"bufio"
	"context"
	"fmt"
	"go.uber.org/zap"
	"net"
	"strings"
)

// Client reads the Hyprland event socket.
type Client struct {
	conn   net.Conn
	reader *bufio.Reader
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) ReadLine() (string, error) {
	str, err := c.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read from hypr socket: %w", err)
	}
	return strings.TrimSuffix(str, "\n"), nil
}

func Connect() (*Client, error) {
	conn, err := connect(Socket2)
	if err != nil {
		return nil, err
	}

	return &Client{conn: conn, reader: bufio.NewReader(conn)}, nil
}

// isFocusEvent matches lines like "activewindow>>firefox,Title".
func isFocusEvent(line string) bool {
	evType, _, found := strings.Cut(line, ">>")
	if !found {
		return false
	}

	switch evType {
	case "activewindow", "activewindowv2", "focusedmon":
		return true
	}

	return false
}

// FocusEvents emits on every focus change until ctx is done or the socket
// fails; the channel is closed then.
func (c *Client) FocusEvents(ctx context.Context, log *zap.SugaredLogger) <-chan struct{} {
	out := make(chan struct{}, 1)

	go func() {
		<-ctx.Done()
		_ = c.conn.Close()
	}()

	go func() {
		defer close(out)
		for {
			line, err := c.ReadLine()
			if err != nil {
				if ctx.Err() == nil {
					log.Warnw("hyprland event socket", "error", err)
				}
				return
			}

			if !isFocusEvent(line) {
				continue
			}

			select {
			case out <- struct{}{}:
			default:
			}
		}
	}()

	return out
}
