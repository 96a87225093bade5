package manifest

import "encoding/json"

// Merge layers over on top of base and returns a new manifest.
//
// The CLI section is merged field by field: any field over leaves empty keeps
// the base value. Top-level fields follow the same rule. Mapping fields
// (hooks, aliases, s3, topics, dependencies) are replaced wholesale when over
// sets them, never merged key by key. Neither input is modified.
func Merge(base, over *Manifest) *Manifest {
	if base == nil {
		base = &Manifest{}
	}
	merged := base.Clone()
	if over == nil {
		return merged
	}

	if over.Name != "" {
		merged.Name = over.Name
	}
	if over.Version != "" {
		merged.Version = over.Version
	}
	if over.Dependencies != nil {
		merged.Dependencies = copyStrings(over.Dependencies)
	}
	if len(over.Extra) > 0 {
		merged.Extra = make(map[string]json.RawMessage, len(over.Extra))
		for k, v := range over.Extra {
			merged.Extra[k] = v
		}
	}
	merged.CLI = mergeCLI(merged.CLI, over.CLI)

	return merged
}

func mergeCLI(base, over *CLI) *CLI {
	if base == nil {
		base = &CLI{}
	}
	if over == nil {
		return base
	}
	over = over.Clone()

	if over.Bin != "" {
		base.Bin = over.Bin
	}
	if over.Dirname != "" {
		base.Dirname = over.Dirname
	}
	if over.DefaultCommand != "" {
		base.DefaultCommand = over.DefaultCommand
	}
	if over.Commands != "" {
		base.Commands = over.Commands
	}
	if over.NpmRegistry != "" {
		base.NpmRegistry = over.NpmRegistry
	}
	if over.S3 != nil {
		base.S3 = over.S3
	}
	if over.Hooks != nil {
		base.Hooks = over.Hooks
	}
	if over.Aliases != nil {
		base.Aliases = over.Aliases
	}
	if over.UserPluginsEnabled != nil {
		base.UserPluginsEnabled = over.UserPluginsEnabled
	}
	if over.Plugins != nil {
		base.Plugins = over.Plugins
	}
	if over.Topics != nil {
		base.Topics = over.Topics
	}
	return base
}

// Clone returns a deep copy of m.
func (m *Manifest) Clone() *Manifest {
	if m == nil {
		return nil
	}
	cp := &Manifest{
		Name:         m.Name,
		Version:      m.Version,
		Dependencies: copyStrings(m.Dependencies),
		CLI:          m.CLI.Clone(),
	}
	if m.Extra != nil {
		cp.Extra = make(map[string]json.RawMessage, len(m.Extra))
		for k, v := range m.Extra {
			cp.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return cp
}

// Clone returns a deep copy of c.
func (c *CLI) Clone() *CLI {
	if c == nil {
		return nil
	}
	cp := *c
	if c.S3 != nil {
		s3 := *c.S3
		cp.S3 = &s3
	}
	if c.UserPluginsEnabled != nil {
		enabled := *c.UserPluginsEnabled
		cp.UserPluginsEnabled = &enabled
	}
	cp.Hooks = copyLists(c.Hooks)
	cp.Aliases = copyLists(c.Aliases)
	if c.Plugins != nil {
		cp.Plugins = append([]string{}, c.Plugins...)
	}
	if c.Topics != nil {
		cp.Topics = c.Topics.clone()
	}
	return &cp
}

func (t Topics) clone() Topics {
	out := make(Topics, len(t))
	for k, v := range t {
		if v == nil {
			out[k] = nil
			continue
		}
		cp := *v
		if v.Subtopics != nil {
			cp.Subtopics = v.Subtopics.clone()
		}
		out[k] = &cp
	}
	return out
}

func copyStrings(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyLists(in map[string]StringList) map[string]StringList {
	if in == nil {
		return nil
	}
	out := make(map[string]StringList, len(in))
	for k, v := range in {
		out[k] = append(StringList{}, v...)
	}
	return out
}
