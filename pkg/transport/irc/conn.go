package irc

import (
	"bufio"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"time"

	"golang.org/x/net/proxy"
)

// dialTimeout bounds the initial TCP (and TLS) handshake.
const dialTimeout = 30 * time.Second

// rplWelcome is the numeric the server sends once registration is accepted.
const rplWelcome = "001"

// Config describes one IRC connection.
type Config struct {
	// Server is the hostname, without port.
	Server string

	// Port is the server port, conventionally 6697 for TLS.
	Port int

	// TLS wraps the connection in TLS when set.
	TLS bool

	// SocksProxy, when non-empty, is the host:port of a SOCKS5 proxy to dial
	// through.
	SocksProxy string

	// Nick is the nickname to register and, when Password is set, identify
	// with NickServ as.
	Nick string

	// Password is the NickServ password. Empty skips identification.
	Password string

	// Channels are joined after the server accepts registration.
	Channels []string
}

// Conn is a registered IRC connection that yields raw protocol lines. It
// answers PING itself and joins the configured channels on RPL_WELCOME;
// every received line, housekeeping included, is still handed to the caller
// so the relay sees the stream the server sent. There is no reconnect: a
// broken connection surfaces as an error from Next.
type Conn struct {
	cfg    Config
	conn   net.Conn
	reader *bufio.Reader
	logger *slog.Logger
}

// Dial connects, optionally through the SOCKS5 proxy, performs the TLS
// handshake when configured, and sends the registration commands. It returns
// before the server confirms registration; the welcome numeric is handled in
// Next.
func Dial(ctx context.Context, cfg Config, logger *slog.Logger) (*Conn, error) {
	addr := net.JoinHostPort(cfg.Server, strconv.Itoa(cfg.Port))

	netConn, err := dial(ctx, addr, cfg.SocksProxy)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	if cfg.TLS {
		tlsConn := tls.Client(netConn, &tls.Config{ServerName: cfg.Server})
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			_ = netConn.Close()
			return nil, fmt.Errorf("tls handshake with %s failed: %w", addr, err)
		}
		netConn = tlsConn
	}

	c := &Conn{
		cfg:    cfg,
		conn:   netConn,
		reader: bufio.NewReader(netConn),
		logger: logger,
	}

	if err := c.register(); err != nil {
		_ = netConn.Close()
		return nil, err
	}

	logger.Info("connected to irc server", "server", addr, "nick", cfg.Nick)
	return c, nil
}

// dial opens the TCP connection, directly or through a SOCKS5 proxy.
func dial(ctx context.Context, addr, socksProxy string) (net.Conn, error) {
	base := &net.Dialer{Timeout: dialTimeout}
	if socksProxy == "" {
		return base.DialContext(ctx, "tcp", addr)
	}

	socks, err := proxy.SOCKS5("tcp", socksProxy, nil, base)
	if err != nil {
		return nil, fmt.Errorf("invalid socks proxy %s: %w", socksProxy, err)
	}
	if cd, ok := socks.(proxy.ContextDialer); ok {
		return cd.DialContext(ctx, "tcp", addr)
	}
	return socks.Dial("tcp", addr)
}

// register sends NICK and USER.
func (c *Conn) register() error {
	if err := c.send("NICK " + c.cfg.Nick); err != nil {
		return err
	}
	return c.send(fmt.Sprintf("USER %s 0 * :%s", c.cfg.Nick, c.cfg.Nick))
}

// Next blocks until the server sends a line and returns it with the line
// terminator stripped. Protocol housekeeping happens here: PING is answered
// and RPL_WELCOME triggers NickServ identification and channel joins. The
// line is returned to the caller regardless. A closed connection yields
// io.EOF; other read failures yield the underlying error.
func (c *Conn) Next() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil {
		if len(line) == 0 && err == io.EOF {
			return "", io.EOF
		}
		if len(line) == 0 {
			return "", fmt.Errorf("irc read failed: %w", err)
		}
		// A final unterminated line is still delivered.
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}

	switch Command(line) {
	case "PING":
		if err := c.send("PONG :" + PingToken(line)); err != nil {
			return "", err
		}
	case rplWelcome:
		if err := c.onWelcome(); err != nil {
			return "", err
		}
	}

	return line, nil
}

// onWelcome identifies with NickServ and joins the configured channels.
func (c *Conn) onWelcome() error {
	if c.cfg.Password != "" {
		if err := c.send("PRIVMSG NickServ :IDENTIFY " + c.cfg.Password); err != nil {
			return err
		}
	}
	for _, channel := range c.cfg.Channels {
		c.logger.Info("joining channel", "channel", channel)
		if err := c.send("JOIN " + channel); err != nil {
			return err
		}
	}
	return nil
}

// send writes one protocol line with the CRLF terminator.
func (c *Conn) send(line string) error {
	if _, err := c.conn.Write([]byte(line + "\r\n")); err != nil {
		return fmt.Errorf("irc write failed: %w", err)
	}
	return nil
}

// Close closes the underlying connection. A QUIT is sent on a best-effort
// basis first.
func (c *Conn) Close() error {
	_ = c.send("QUIT :bye")
	return c.conn.Close()
}
