package output

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

var (
	exprPattern     = regexp.MustCompile(`\{\{([^}]+)\}\}`)
	variablePattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_\.]*)\}`)
)

// TemplateEngine renders strings against an object's fields.
// It supports two syntaxes:
//  1. Simple variables: {bin} or {s3.host}
//  2. Expr expressions: {{windows ? "cmd" : shell}}
type TemplateEngine struct {
	mu           sync.Mutex
	programCache map[string]*vm.Program
}

// NewTemplateEngine creates a new template engine.
func NewTemplateEngine() *TemplateEngine {
	return &TemplateEngine{programCache: make(map[string]*vm.Program)}
}

// Render renders tmpl with data. Expressions are evaluated before simple
// variables.
func (t *TemplateEngine) Render(tmpl string, data map[string]interface{}) (string, error) {
	if tmpl == "" {
		return "", nil
	}
	if data == nil {
		data = make(map[string]interface{})
	}

	result, err := t.processExpressions(tmpl, data)
	if err != nil {
		return "", err
	}
	return t.processVariables(result, data)
}

func (t *TemplateEngine) processExpressions(tmpl string, data map[string]interface{}) (string, error) {
	var lastErr error
	result := exprPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		expression := strings.TrimSpace(match[2 : len(match)-2])
		value, err := t.Evaluate(expression, data)
		if err != nil {
			lastErr = err
			return match
		}
		return Scalar(value)
	})
	if lastErr != nil {
		return "", fmt.Errorf("failed to evaluate expression: %w", lastErr)
	}
	return result, nil
}

func (t *TemplateEngine) processVariables(tmpl string, data map[string]interface{}) (string, error) {
	var lastErr error
	result := variablePattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		value, err := Lookup(data, match[1:len(match)-1])
		if err != nil {
			lastErr = err
			return match
		}
		return Scalar(value)
	})
	if lastErr != nil {
		return "", fmt.Errorf("failed to resolve variable: %w", lastErr)
	}
	return result, nil
}

// Evaluate compiles (once) and runs an expr expression against data.
func (t *TemplateEngine) Evaluate(expression string, data map[string]interface{}) (interface{}, error) {
	t.mu.Lock()
	program, ok := t.programCache[expression]
	if !ok {
		var err error
		program, err = expr.Compile(expression, expr.Env(data), expr.AllowUndefinedVariables())
		if err != nil {
			t.mu.Unlock()
			return nil, fmt.Errorf("failed to compile expression '%s': %w", expression, err)
		}
		t.programCache[expression] = program
	}
	t.mu.Unlock()

	result, err := expr.Run(program, data)
	if err != nil {
		return nil, fmt.Errorf("failed to execute expression '%s': %w", expression, err)
	}
	return result, nil
}

// Lookup resolves a dotted path like "s3.host" in normalized data.
func Lookup(data map[string]interface{}, path string) (interface{}, error) {
	var current interface{} = data
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("cannot access field '%s' of '%s' on a non-object", part, path)
		}
		current, ok = m[part]
		if !ok {
			return nil, fmt.Errorf("variable '%s' not found", path)
		}
	}
	return current, nil
}

// TemplateFormatter renders FormatConfig.Template against the data's fields.
type TemplateFormatter struct {
	engine *TemplateEngine
}

// NewTemplateFormatter creates a new template formatter.
func NewTemplateFormatter() *TemplateFormatter {
	return &TemplateFormatter{engine: NewTemplateEngine()}
}

// Name returns the formatter name.
func (f *TemplateFormatter) Name() string {
	return "template"
}

// Format renders the template followed by a newline.
func (f *TemplateFormatter) Format(w io.Writer, data interface{}, cfg *FormatConfig) error {
	if cfg == nil || cfg.Template == "" {
		return fmt.Errorf("template output requires a template")
	}

	fields, err := Fields(data)
	if err != nil {
		return fmt.Errorf("template output: %w", err)
	}

	rendered, err := f.engine.Render(cfg.Template, fields)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, rendered)
	return err
}
