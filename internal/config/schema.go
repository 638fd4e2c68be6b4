package config

// Config is the root configuration structure.
type Config struct {
	Node   NodeConfig   `toml:"node"`
	Client ClientConfig `toml:"client"`
	TUI    TUIConfig    `toml:"tui"`
	Log    LogConfig    `toml:"log"`
}

// NodeConfig holds connection settings for the audio node.
type NodeConfig struct {
	Name     string `toml:"name"`
	URL      string `toml:"url"` // host[:port], no scheme
	Secure   bool   `toml:"secure"`
	Password string `toml:"password"`
}

// ClientConfig holds REST client settings shared across calls.
type ClientConfig struct {
	UserAgent   string `toml:"user_agent"`
	RestTimeout int    `toml:"rest_timeout"` // milliseconds
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme           string `toml:"theme"`
	RefreshInterval int    `toml:"refresh_interval"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}
