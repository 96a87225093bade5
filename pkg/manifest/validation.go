package manifest

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ValidationError is a single manifest problem.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

var binPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Validator checks a manifest for values the resolver would accept but a CLI
// author almost certainly did not intend.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{
		errors: make(ValidationErrors, 0),
	}
}

// Validate is shorthand for NewValidator().Validate(m).
func Validate(m *Manifest) error {
	return NewValidator().Validate(m)
}

// Validate returns ValidationErrors when m has problems, nil otherwise.
func (v *Validator) Validate(m *Manifest) error {
	v.errors = make(ValidationErrors, 0)

	if m == nil {
		v.addError("manifest", "manifest is required")
		return v.errors
	}

	if strings.TrimSpace(m.Name) == "" {
		v.addError("name", "name is required")
	}
	if m.Version != "" {
		if _, err := ParseVersion(m.Version); err != nil {
			v.addError("version", "version must follow semantic versioning (e.g., 1.0.0)")
		}
	}
	for dep, rng := range m.Dependencies {
		if strings.TrimSpace(rng) == "" {
			v.addError("dependencies."+dep, "version range is required")
		}
	}

	if m.CLI != nil {
		v.validateCLI(m.CLI)
	}

	if len(v.errors) > 0 {
		return v.errors
	}
	return nil
}

func (v *Validator) validateCLI(c *CLI) {
	field := func(name string) string { return SectionKey + "." + name }

	if c.Bin != "" && !binPattern.MatchString(c.Bin) {
		v.addError(field("bin"), "bin must not contain whitespace or path separators")
	}
	if c.Dirname != "" && strings.ContainsAny(c.Dirname, `/\`) {
		v.addError(field("dirname"), "dirname must be a single path segment")
	}
	if c.NpmRegistry != "" && !isHTTPURL(c.NpmRegistry) {
		v.addError(field("npmRegistry"), "npmRegistry must be an http(s) URL")
	}
	if c.S3 != nil && c.S3.Host != "" && strings.ContainsAny(c.S3.Host, " \t") {
		v.addError(field("s3.host"), "host must not contain whitespace")
	}

	v.validateLists(field("hooks"), c.Hooks)
	v.validateLists(field("aliases"), c.Aliases)

	seen := make(map[string]bool, len(c.Plugins))
	for i, p := range c.Plugins {
		if p == "" {
			v.addError(fmt.Sprintf("%s[%d]", field("plugins"), i), "plugin name is required")
			continue
		}
		if seen[p] {
			v.addError(fmt.Sprintf("%s[%d]", field("plugins"), i), fmt.Sprintf("duplicate plugin %q", p))
		}
		seen[p] = true
	}

	v.validateTopics(field("topics"), c.Topics)
}

func (v *Validator) validateLists(prefix string, lists map[string]StringList) {
	for key, targets := range lists {
		if len(targets) == 0 {
			v.addError(prefix+"."+key, "at least one entry is required")
		}
		for i, t := range targets {
			if strings.TrimSpace(t) == "" {
				v.addError(fmt.Sprintf("%s.%s[%d]", prefix, key, i), "entry must not be empty")
			}
		}
	}
}

func (v *Validator) validateTopics(prefix string, topics Topics) {
	for _, name := range topics.Names() {
		t := topics[name]
		if t == nil {
			v.addError(prefix+"."+name, "topic must be an object")
			continue
		}
		if t.Name != "" && t.Name != name {
			v.addError(prefix+"."+name+".name", fmt.Sprintf("name %q does not match key", t.Name))
		}
		if t.Subtopics != nil {
			v.validateTopics(prefix+"."+name+".subtopics", t.Subtopics)
		}
	}
}

func (v *Validator) addError(field, message string) {
	v.errors = append(v.errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
