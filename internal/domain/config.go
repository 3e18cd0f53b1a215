package domain

// Config represents the roman configuration loaded from roman.yaml and the environment.
type Config struct {
	Codec  CodecConfig
	Output OutputConfig
	Paths  PathsConfig
	Server ServerConfig
}

type CodecConfig struct {
	Max int
}

type OutputConfig struct {
	Format   string
	Template string
}

type PathsConfig struct {
	BatchesDir string
	ReportsDir string
}

type ServerConfig struct {
	Addr string
}

// DefaultConfig provides sane defaults if roman.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Codec: CodecConfig{Max: MaxClassic},
		Output: OutputConfig{
			Format:   "pretty",
			Template: "{{input}} => {{output}}",
		},
		Paths: PathsConfig{
			BatchesDir: "batches",
			ReportsDir: "reports",
		},
		Server: ServerConfig{Addr: ":8000"},
	}
}

// NewCodec builds the codec described by the config.
func (c Config) NewCodec() (*Codec, error) {
	if err := ValidateMax(c.Codec.Max); err != nil {
		return nil, err
	}
	return NewCodec(WithMax(c.Codec.Max)), nil
}
