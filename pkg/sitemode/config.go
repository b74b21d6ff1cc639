package sitemode

// DefaultMode is the request mode served by the engine.
const DefaultMode = "site"

// Config is the site mode group of the application configuration.
type Config struct {
	// Mode is echoed into the response document's request element.
	Mode string `mapstructure:"mode" yaml:"mode"`

	// SessionIntoResponse lists session values copied into the response
	// document under the session element.
	SessionIntoResponse []string `mapstructure:"session_into_response" yaml:"session_into_response"`

	// DebugResponseFile writes every assembled document to the debug sink.
	DebugResponseFile bool `mapstructure:"debug_response_file" yaml:"debug_response_file"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{Mode: DefaultMode}
}
