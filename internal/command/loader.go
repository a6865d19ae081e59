package command

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/pikachuaaaa/RPGBot/internal/convert"
	"github.com/pikachuaaaa/RPGBot/internal/logging"
	"github.com/pikachuaaaa/RPGBot/pkg/types"
)

// Defaults for template commands.
const (
	DefaultPrefix     = "!rpg"
	DefaultCommandDir = ".rpgbot/command"
)

// TemplateLoader loads template commands from the config and from markdown
// files under the command directory.
type TemplateLoader struct {
	fs      afero.Fs
	workDir string
	config  *types.Config
}

// NewTemplateLoader creates a loader. A nil config loads nothing from config.
func NewTemplateLoader(fs afero.Fs, workDir string, config *types.Config) *TemplateLoader {
	if config == nil {
		config = &types.Config{}
	}
	return &TemplateLoader{fs: fs, workDir: workDir, config: config}
}

// Dir returns the absolute command directory.
func (l *TemplateLoader) Dir() string {
	dir := l.config.CommandDir
	if dir == "" {
		dir = DefaultCommandDir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(l.workDir, dir)
}

func (l *TemplateLoader) prefix() string {
	if l.config.Prefix != "" {
		return l.config.Prefix
	}
	return DefaultPrefix
}

// Load returns config commands sorted by name, then file commands in path
// order. A file command replaces a config command with the same full name.
// Invalid config commands are errors; invalid files are logged and skipped.
func (l *TemplateLoader) Load() ([]*Template, error) {
	var templates []*Template
	index := make(map[string]int)

	add := func(t *Template) {
		if i, ok := index[t.FullName()]; ok {
			templates[i] = t
			return
		}
		index[t.FullName()] = len(templates)
		templates = append(templates, t)
	}

	fromConfig, err := l.loadFromConfig()
	if err != nil {
		return nil, err
	}
	for _, t := range fromConfig {
		add(t)
	}

	fromFiles, err := l.loadFromFiles()
	if err != nil {
		return nil, err
	}
	for _, t := range fromFiles {
		add(t)
	}

	return templates, nil
}

// Registry loads every template and compiles it into a command.
func (l *TemplateLoader) Registry() (*Registry, error) {
	templates, err := l.Load()
	if err != nil {
		return nil, err
	}

	reg := NewRegistry()
	for _, t := range templates {
		cmd, err := t.Command(l.config.Variables)
		if err != nil {
			if t.Source == SourceConfig {
				return nil, err
			}
			logging.Warn().Err(err).Str("path", t.Path).Msg("skipping template command")
			continue
		}
		reg.Add(cmd)
	}

	logging.Debug().
		Int("commands", reg.Len()).
		Str("dir", l.Dir()).
		Msg("template commands loaded")

	return reg, nil
}

// loadFromConfig loads commands from the config file.
func (l *TemplateLoader) loadFromConfig() ([]*Template, error) {
	names := make([]string, 0, len(l.config.Command))
	for name := range l.config.Command {
		names = append(names, name)
	}
	sort.Strings(names)

	templates := make([]*Template, 0, len(names))
	for _, name := range names {
		cfg := l.config.Command[name]
		t, err := l.fromConfig(name, cfg)
		if err != nil {
			return nil, fmt.Errorf("command %q: %w", name, err)
		}
		t.Source = SourceConfig
		templates = append(templates, t)
	}
	return templates, nil
}

func (l *TemplateLoader) fromConfig(name string, cfg types.CommandConfig) (*Template, error) {
	params, err := paramsFromConfig(cfg.Params)
	if err != nil {
		return nil, err
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = l.prefix()
	}

	return &Template{
		Prefix:       prefix,
		Name:         strings.Join(strings.Fields(name), " "),
		Description:  cfg.Description,
		Body:         cfg.Template,
		ContextParam: cfg.ContextParam,
		Params:       params,
	}, nil
}

// loadFromFiles loads commands from the command directory. Nested paths
// become multi-word names: attack/heavy.md is "attack heavy".
func (l *TemplateLoader) loadFromFiles() ([]*Template, error) {
	dir := l.Dir()
	exists, err := afero.DirExists(l.fs, dir)
	if err != nil || !exists {
		return nil, nil
	}

	fsys := afero.NewIOFS(afero.NewBasePathFs(l.fs, dir))
	matches, err := doublestar.Glob(fsys, "**/*.md")
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	sort.Strings(matches)

	var templates []*Template
	for _, rel := range matches {
		full := filepath.Join(dir, filepath.FromSlash(rel))

		content, err := afero.ReadFile(l.fs, full)
		if err != nil {
			logging.Warn().Err(err).Str("path", full).Msg("skipping template command")
			continue
		}

		fm, body, err := parseMarkdownCommand(content)
		if err != nil {
			logging.Warn().Err(err).Str("path", full).Msg("skipping template command")
			continue
		}
		fm.Template = body

		name := strings.TrimSuffix(rel, ".md")
		name = strings.ReplaceAll(name, "/", " ")

		t, err := l.fromConfig(name, fm)
		if err != nil {
			logging.Warn().Err(err).Str("path", full).Msg("skipping template command")
			continue
		}
		t.Source = SourceFile
		t.Path = full
		templates = append(templates, t)
	}
	return templates, nil
}

// parseMarkdownCommand splits a markdown command into its YAML frontmatter and
// template body. Without frontmatter the whole file is the template.
func parseMarkdownCommand(content []byte) (types.CommandConfig, string, error) {
	var cfg types.CommandConfig

	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	text := string(content)

	if !strings.HasPrefix(text, "---\n") {
		return cfg, strings.TrimSpace(text), nil
	}

	rest := text[len("---"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return cfg, "", fmt.Errorf("frontmatter is not closed")
	}

	if err := yaml.Unmarshal([]byte(rest[:end]), &cfg); err != nil {
		return cfg, "", fmt.Errorf("invalid frontmatter: %w", err)
	}

	body := rest[end+len("\n---"):]
	return cfg, strings.TrimSpace(body), nil
}

// paramsFromConfig converts declared parameters. Defaults are kept as given
// and never converted.
func paramsFromConfig(cfgs []types.ParamConfig) ([]Param, error) {
	params := make([]Param, 0, len(cfgs))
	for _, pc := range cfgs {
		t, err := convert.ParseType(pc.Type)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", pc.Name, err)
		}
		if pc.Default != nil {
			params = append(params, Optional(pc.Name, t, pc.Default))
		} else {
			params = append(params, Required(pc.Name, t))
		}
	}
	return params, nil
}
