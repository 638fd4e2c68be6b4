package config

// DefaultRestTimeout is the REST call deadline in milliseconds when the
// config does not set one.
const DefaultRestTimeout = 15000

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Node: NodeConfig{
			Name: "main",
		},
		Client: ClientConfig{
			RestTimeout: DefaultRestTimeout,
		},
		TUI: TUIConfig{
			Theme:           "auto",
			RefreshInterval: 1000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	if c.Node.Name == "" {
		c.Node.Name = d.Node.Name
	}

	if c.Client.RestTimeout == 0 {
		c.Client.RestTimeout = d.Client.RestTimeout
	}

	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}
	if c.TUI.RefreshInterval == 0 {
		c.TUI.RefreshInterval = d.TUI.RefreshInterval
	}

	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
