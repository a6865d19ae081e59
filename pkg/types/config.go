package types

// Config represents the rpgbot configuration.
type Config struct {
	// Schema reference (for editor support)
	Schema string `json:"$schema,omitempty"`

	// Log level: "debug"|"info"|"warn"|"error"
	LogLevel string `json:"logLevel,omitempty"`

	// Prefix for template commands that don't set their own
	Prefix string `json:"prefix,omitempty"`

	// Command parser settings
	Parser *ParserConfig `json:"parser,omitempty"`

	// Template commands keyed by command name ("greet", "attack heavy")
	Command map[string]CommandConfig `json:"command,omitempty"`

	// Variables available to template commands as var_<name>
	Variables map[string]string `json:"variables,omitempty"`

	// Directory of markdown template commands, relative to the work dir
	CommandDir string `json:"commandDir,omitempty"`

	// HTTP and WebSocket gateway
	Server *ServerConfig `json:"server,omitempty"`

	// Command directory watcher
	Watcher *WatcherConfig `json:"watcher,omitempty"`
}

// ParserConfig holds command parser settings.
type ParserConfig struct {
	CaseSensitive bool `json:"caseSensitive,omitempty"`

	// Packing pairs as two-rune strings, e.g. ["()", "[]", "\"\""].
	// Empty means the parser defaults.
	Packing []string `json:"packing,omitempty"`
}

// CommandConfig holds a template command definition.
type CommandConfig struct {
	Prefix       string        `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Template     string        `json:"template" yaml:"-"`
	Description  string        `json:"description,omitempty" yaml:"description,omitempty"`
	ContextParam string        `json:"contextParam,omitempty" yaml:"contextParam,omitempty"`
	Params       []ParamConfig `json:"params,omitempty" yaml:"params,omitempty"`
}

// ParamConfig declares one template command parameter. A parameter with a
// non-null Default is optional.
type ParamConfig struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type,omitempty" yaml:"type,omitempty"` // "string"|"int"|"float"|"bool"|"list[int]"|...
	Default any    `json:"default,omitempty" yaml:"default,omitempty"`
}

// ServerConfig holds gateway server configuration.
type ServerConfig struct {
	Hostname string   `json:"hostname,omitempty"`
	Port     int      `json:"port,omitempty"`
	CORS     []string `json:"cors,omitempty"`
}

// WatcherConfig holds command directory watcher configuration.
type WatcherConfig struct {
	Disabled bool `json:"disabled,omitempty"`
}
