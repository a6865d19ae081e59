package command

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"text/template"
)

// Template sources.
const (
	SourceConfig = "config"
	SourceFile   = "file"
)

// Template is a command whose reply is rendered from a Go template. Template
// commands are declared in the config file or as markdown files in the
// command directory.
type Template struct {
	Prefix       string  `json:"prefix"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Body         string  `json:"template"`
	ContextParam string  `json:"contextParam,omitempty"`
	Params       []Param `json:"-"`
	Source       string  `json:"source,omitempty"` // "config" or "file"
	Path         string  `json:"path,omitempty"`
}

// FullName returns the prefix and name as typed in chat.
func (t *Template) FullName() string {
	return t.Prefix + " " + t.Name
}

var (
	bracedVarRe = regexp.MustCompile(`\$\{(\w+)\}`)
	simpleVarRe = regexp.MustCompile(`\$(\w+)`)
)

// Command compiles the template and returns a command that renders it with
// the bound arguments and replies with the result. vars are exposed to the
// template as var_<name> and under .vars.
func (t *Template) Command(vars map[string]string) (*Command, error) {
	contextParam := t.ContextParam
	if contextParam == "" {
		contextParam = DefaultContextParam
	}

	known := make(map[string]bool, len(t.Params)+len(vars))
	for _, p := range t.Params {
		known[p.Name] = true
	}
	for k := range vars {
		known["var_"+k] = true
	}

	body := expandSimpleVariables(t.Body, known)
	tmpl, err := template.New(t.Name).Funcs(templateFuncs()).Parse(body)
	if err != nil {
		return nil, fmt.Errorf("template command %q: %w", t.FullName(), err)
	}

	handler := func(ctx context.Context, args Args) error {
		text, err := render(tmpl, buildTemplateContext(args, contextParam, vars))
		if err != nil {
			return err
		}
		if text == "" {
			return nil
		}
		return Reply(ctx, args, contextParam, text)
	}

	cmd, err := New(t.Prefix, t.Name, handler,
		WithParams(t.Params...),
		WithContextParam(contextParam),
		WithDescription(t.Description),
	)
	if err != nil {
		return nil, fmt.Errorf("template command: %w", err)
	}
	return cmd, nil
}

// buildTemplateContext builds the template execution context. Every argument
// except the context value is available both at the top level and under
// .args.
func buildTemplateContext(args Args, contextParam string, vars map[string]string) map[string]any {
	data := make(map[string]any, len(args)+len(vars)+3)

	bound := make(map[string]any, len(args))
	for k, v := range args {
		if k == contextParam {
			continue
		}
		bound[k] = v
		data[k] = v
	}
	data["args"] = bound

	data["vars"] = vars
	for k, v := range vars {
		data["var_"+k] = v
	}

	data["env"] = envMap()
	return data
}

func render(tmpl *template.Template, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// expandSimpleVariables rewrites ${name} and $name into template actions for
// every known name. Other matches are left alone, so template variables such
// as {{$x := 1}} keep working. Values are substituted at execution time and
// are never parsed as template text.
func expandSimpleVariables(s string, known map[string]bool) string {
	action := func(name string) string {
		return fmt.Sprintf(`{{index . %q}}`, name)
	}

	s = bracedVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-1]
		if known[name] {
			return action(name)
		}
		return match
	})

	return simpleVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := match[1:]
		if known[name] {
			return action(name)
		}
		return match
	})
}

// templateFuncs returns custom template functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"env": func(name string) string {
			return os.Getenv(name)
		},
		"default": func(defaultVal, val any) any {
			if val == nil || val == "" {
				return defaultVal
			}
			return val
		},
		"trim":    strings.TrimSpace,
		"upper":   strings.ToUpper,
		"lower":   strings.ToLower,
		"replace": strings.ReplaceAll,
		"split":   strings.Split,
		"join": func(sep string, items any) string {
			switch v := items.(type) {
			case []string:
				return strings.Join(v, sep)
			case []any:
				parts := make([]string, len(v))
				for i, item := range v {
					parts[i] = fmt.Sprint(item)
				}
				return strings.Join(parts, sep)
			default:
				return fmt.Sprint(v)
			}
		},
		"sum": func(items []any) float64 {
			total := 0.0
			for _, item := range items {
				switch n := item.(type) {
				case int:
					total += float64(n)
				case float64:
					total += n
				}
			}
			return total
		},
	}
}

// envMap returns environment variables as a map.
func envMap() map[string]string {
	env := make(map[string]string)
	for _, e := range os.Environ() {
		parts := strings.SplitN(e, "=", 2)
		if len(parts) == 2 {
			env[parts[0]] = parts[1]
		}
	}
	return env
}
