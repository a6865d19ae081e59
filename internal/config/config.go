package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/pikachuaaaa/RPGBot/internal/parser"
	"github.com/pikachuaaaa/RPGBot/pkg/types"
)

// Defaults applied by Load.
const (
	DefaultHostname = "127.0.0.1"
	DefaultPort     = 8080
	DefaultLogLevel = "info"
)

var (
	envPattern  = regexp.MustCompile(`\{env:([^}]+)\}`)
	filePattern = regexp.MustCompile(`\{file:([^}]+)\}`)
)

// Load loads configuration from multiple sources (priority order):
// 1. Global config (~/.config/rpgbot/)
// 2. Project config (rpgbot.json and .rpgbot/rpgbot.json)
// 3. RPGBOT_CONFIG file
// 4. RPGBOT_CONFIG_CONTENT inline JSON
// 5. Environment variables
func Load(directory string) (*types.Config, error) {
	config := &types.Config{
		Command: make(map[string]types.CommandConfig),
	}

	// Track loaded files to avoid duplicates
	loaded := make(map[string]bool)

	loadOnce := func(path string, baseDir string) error {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil
		}
		if loaded[absPath] {
			return nil
		}
		err = loadConfigFile(path, config, baseDir)
		if os.IsNotExist(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
		loaded[absPath] = true
		return nil
	}

	var files [][2]string

	// 1. Global config
	globalPath := GetConfigDir()
	files = append(files,
		[2]string{filepath.Join(globalPath, "rpgbot.json"), globalPath},
		[2]string{filepath.Join(globalPath, "rpgbot.jsonc"), globalPath},
	)

	// 2. Project config
	if directory != "" {
		projectConfigDir := filepath.Join(directory, ".rpgbot")
		files = append(files,
			[2]string{filepath.Join(directory, "rpgbot.json"), directory},
			[2]string{filepath.Join(directory, "rpgbot.jsonc"), directory},
			[2]string{filepath.Join(projectConfigDir, "rpgbot.json"), projectConfigDir},
			[2]string{filepath.Join(projectConfigDir, "rpgbot.jsonc"), projectConfigDir},
		)
	}

	// 3. RPGBOT_CONFIG file override
	if configPath := os.Getenv("RPGBOT_CONFIG"); configPath != "" {
		files = append(files, [2]string{configPath, filepath.Dir(configPath)})
	}

	for _, f := range files {
		if err := loadOnce(f[0], f[1]); err != nil {
			return nil, err
		}
	}

	// 4. RPGBOT_CONFIG_CONTENT inline JSON
	if configContent := os.Getenv("RPGBOT_CONFIG_CONTENT"); configContent != "" {
		data := interpolate(jsonc.ToJSON([]byte(configContent)), directory)
		var inlineConfig types.Config
		if err := json.Unmarshal(data, &inlineConfig); err != nil {
			return nil, fmt.Errorf("RPGBOT_CONFIG_CONTENT: %w", err)
		}
		mergeConfig(config, &inlineConfig)
	}

	// 5. Environment variables (highest priority)
	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}

	applyDefaults(config)
	return config, nil
}

// loadConfigFile loads a single config file with interpolation support.
func loadConfigFile(path string, config *types.Config, baseDir string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// Strip JSONC comments using tidwall/jsonc
	data = jsonc.ToJSON(data)

	// Apply interpolation
	data = interpolate(data, baseDir)

	var fileConfig types.Config
	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return err
	}

	mergeConfig(config, &fileConfig)
	return nil
}

// interpolate processes {env:VAR} and {file:path} placeholders.
func interpolate(data []byte, baseDir string) []byte {
	str := string(data)

	str = envPattern.ReplaceAllStringFunc(str, func(match string) string {
		varName := envPattern.FindStringSubmatch(match)[1]
		return escapeJSON(os.Getenv(varName))
	})

	str = filePattern.ReplaceAllStringFunc(str, func(match string) string {
		filePath := filePattern.FindStringSubmatch(match)[1]

		if strings.HasPrefix(filePath, "~/") {
			home := os.Getenv("HOME")
			filePath = filepath.Join(home, filePath[2:])
		} else if !filepath.IsAbs(filePath) {
			filePath = filepath.Join(baseDir, filePath)
		}

		content, err := os.ReadFile(filePath)
		if err != nil {
			return match // Keep original if file not found
		}
		return escapeJSON(strings.TrimRight(string(content), "\n"))
	})

	return []byte(str)
}

// escapeJSON escapes s for use inside a JSON string literal.
func escapeJSON(s string) string {
	quoted, _ := json.Marshal(s)
	return string(quoted[1 : len(quoted)-1])
}

// mergeConfig merges source config into target.
func mergeConfig(target, source *types.Config) {
	if source.Schema != "" {
		target.Schema = source.Schema
	}
	if source.LogLevel != "" {
		target.LogLevel = source.LogLevel
	}
	if source.Prefix != "" {
		target.Prefix = source.Prefix
	}
	if source.CommandDir != "" {
		target.CommandDir = source.CommandDir
	}

	// Merge parser settings
	if source.Parser != nil {
		if target.Parser == nil {
			target.Parser = &types.ParserConfig{}
		}
		target.Parser.CaseSensitive = source.Parser.CaseSensitive
		if len(source.Parser.Packing) > 0 {
			target.Parser.Packing = source.Parser.Packing
		}
	}

	// Merge commands
	if source.Command != nil {
		if target.Command == nil {
			target.Command = make(map[string]types.CommandConfig)
		}
		for k, v := range source.Command {
			target.Command[k] = v
		}
	}

	// Merge variables
	if source.Variables != nil {
		if target.Variables == nil {
			target.Variables = make(map[string]string)
		}
		for k, v := range source.Variables {
			target.Variables[k] = v
		}
	}

	// Merge server config
	if source.Server != nil {
		if target.Server == nil {
			target.Server = &types.ServerConfig{}
		}
		if source.Server.Hostname != "" {
			target.Server.Hostname = source.Server.Hostname
		}
		if source.Server.Port != 0 {
			target.Server.Port = source.Server.Port
		}
		if len(source.Server.CORS) > 0 {
			target.Server.CORS = append(target.Server.CORS, source.Server.CORS...)
		}
	}

	// Merge watcher config
	if source.Watcher != nil {
		target.Watcher = source.Watcher
	}
}

// applyEnvOverrides applies environment variable overrides.
func applyEnvOverrides(config *types.Config) error {
	if level := os.Getenv("RPGBOT_LOG_LEVEL"); level != "" {
		config.LogLevel = level
	}

	if prefix := os.Getenv("RPGBOT_PREFIX"); prefix != "" {
		config.Prefix = prefix
	}

	if v := os.Getenv("RPGBOT_CASE_SENSITIVE"); v != "" {
		caseSensitive, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("RPGBOT_CASE_SENSITIVE: %w", err)
		}
		if config.Parser == nil {
			config.Parser = &types.ParserConfig{}
		}
		config.Parser.CaseSensitive = caseSensitive
	}

	if v := os.Getenv("RPGBOT_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RPGBOT_PORT: %w", err)
		}
		if config.Server == nil {
			config.Server = &types.ServerConfig{}
		}
		config.Server.Port = port
	}

	return nil
}

func applyDefaults(config *types.Config) {
	if config.LogLevel == "" {
		config.LogLevel = DefaultLogLevel
	}
	if config.Parser == nil {
		config.Parser = &types.ParserConfig{}
	}
	if config.Server == nil {
		config.Server = &types.ServerConfig{}
	}
	if config.Server.Hostname == "" {
		config.Server.Hostname = DefaultHostname
	}
	if config.Server.Port == 0 {
		config.Server.Port = DefaultPort
	}
}

// ParserConfig converts the parser settings into a parser.Config. Packing
// pairs are two-rune strings such as "()" or `""`.
func ParserConfig(config *types.Config) (parser.Config, error) {
	cfg := parser.DefaultConfig()
	if config == nil || config.Parser == nil {
		return cfg, nil
	}

	cfg.CaseSensitive = config.Parser.CaseSensitive

	if len(config.Parser.Packing) > 0 {
		pairs := make([]parser.PackingPair, 0, len(config.Parser.Packing))
		for _, p := range config.Parser.Packing {
			runes := []rune(p)
			if len(runes) != 2 {
				return cfg, fmt.Errorf("%w: %q must be exactly two characters", parser.ErrInvalidPacking, p)
			}
			pairs = append(pairs, parser.PackingPair{Open: runes[0], Close: runes[1]})
		}
		cfg.PackingPairs = pairs
	}

	return cfg, nil
}

// Save saves the configuration to a file.
func Save(config *types.Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetConfigDir returns the config directory to use.
// Prefers RPGBOT_CONFIG_DIR, then ~/.config/rpgbot.
func GetConfigDir() string {
	if dir := os.Getenv("RPGBOT_CONFIG_DIR"); dir != "" {
		return dir
	}
	return GetPaths().Config
}
