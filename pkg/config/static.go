package config

// StaticConfig configures serving of the browser client assets. An empty Dir
// disables static serving entirely.
type StaticConfig struct {
	Dir string `koanf:"dir"`
}

func (c *StaticConfig) Validate() error {
	return nil
}
