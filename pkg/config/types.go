package config

// TransportIRC and TransportWebSocket are the supported chat transports.
const (
	TransportIRC       = "irc"
	TransportWebSocket = "websocket"
)

// Config is the full relay configuration, loaded from a YAML file with
// optional environment overrides on top.
type Config struct {
	// Chat connection.
	Server     string   `yaml:"server"`
	Port       int      `yaml:"port"`
	TLS        bool     `yaml:"tls"`
	SocksProxy string   `yaml:"socks_proxy"`
	Nick       string   `yaml:"nick"`
	Password   string   `yaml:"password"`
	Channels   []string `yaml:"channels"`

	// Transport selects the chat transport: "irc" (default) or "websocket".
	Transport    string `yaml:"transport"`
	WebSocketURL string `yaml:"websocket_url"`

	// Matching.
	SearchPattern       string `yaml:"search_pattern"`
	MultiLine           bool   `yaml:"multi_line"`
	LineInitPattern     string `yaml:"line_init_pattern"`
	LineConcludePattern string `yaml:"line_conclude_pattern"`
	LineLimit           int    `yaml:"line_limit"`

	// Dispatch.
	WebhookURL            string            `yaml:"webhook_url"`
	WebhookAPIKey         string            `yaml:"webhook_api_key"`
	BodyTemplate          string            `yaml:"body_template"`
	Headers               map[string]string `yaml:"headers"`
	MaxConcurrentDispatch int               `yaml:"max_concurrent_dispatch"`

	// Observability.
	LogLevel   string `yaml:"log_level"`
	LogFormat  string `yaml:"log_format"`
	StatusAddr string `yaml:"status_addr"`
}

// Default returns the configuration defaults applied before the file and
// environment are read.
func Default() *Config {
	return &Config{
		Port:                  6697,
		TLS:                   true,
		Transport:             TransportIRC,
		LineLimit:             10,
		MaxConcurrentDispatch: 8,
		LogLevel:              "warn",
		LogFormat:             "text",
	}
}
