// Package config provides configuration loading, merging, and path management for rpgbot.
//
// # Configuration Loading
//
// Load searches for and merges configuration from multiple sources in
// priority order:
//
//  1. Global config ($XDG_CONFIG_HOME/rpgbot/rpgbot.json[c], or RPGBOT_CONFIG_DIR)
//  2. Project config (rpgbot.json[c] and .rpgbot/rpgbot.json[c] in the work dir)
//  3. RPGBOT_CONFIG file
//  4. RPGBOT_CONFIG_CONTENT inline JSON
//  5. Environment variables
//
// Missing files are skipped. A file that exists but cannot be parsed is an
// error.
//
// # Supported Formats
//
// Both JSON and JSONC (JSON with Comments) are accepted; comments and trailing
// commas are stripped with tidwall/jsonc.
//
// # Variable Interpolation
//
//   - {env:VAR_NAME} expands to the environment variable value
//   - {file:path} expands to file contents, escaped for JSON
//
// Relative {file:} paths are resolved against the config file's directory.
//
// Example configuration:
//
//	{
//	  "prefix": "!rpg",
//	  "parser": {"caseSensitive": false, "packing": ["()", "[]", "{}", "\"\""]},
//	  "variables": {"realm": "{env:RPGBOT_REALM}"},
//	  "command": {
//	    "greet": {
//	      "template": "Welcome to ${var_realm}, ${name}!",
//	      "params": [{"name": "name"}]
//	    }
//	  },
//	  "server": {"port": 8080, "cors": ["http://localhost:3000"]}
//	}
//
// # Environment Variable Overrides
//
//   - RPGBOT_LOG_LEVEL - log level
//   - RPGBOT_PREFIX - default template command prefix
//   - RPGBOT_CASE_SENSITIVE - parser case sensitivity (true/false)
//   - RPGBOT_PORT - gateway port
//   - RPGBOT_CONFIG - path to a specific config file
//   - RPGBOT_CONFIG_CONTENT - inline JSON configuration
//   - RPGBOT_CONFIG_DIR - override the global config directory
//
// # Path Management
//
// Paths follows the XDG Base Directory layout (Data, Config, Cache, State),
// using APPDATA on Windows.
package config
