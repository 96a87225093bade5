package manifest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	enabled := true
	over := &Manifest{
		Name: "mycli",
		CLI: &CLI{
			Dirname: "heroku",
			Hooks:   map[string]StringList{"init": {"./init.js"}},
		},
	}

	merged := Merge(Default(), over)

	assert.Equal(t, "mycli", merged.Name)
	assert.Equal(t, "0.0.0", merged.Version, "version falls back to the default")
	assert.Equal(t, map[string]string{}, merged.Dependencies)
	assert.Equal(t, "heroku", merged.CLI.Dirname)
	assert.Equal(t, "help", merged.CLI.DefaultCommand)
	assert.Equal(t, map[string]StringList{"init": {"./init.js"}}, merged.CLI.Hooks)
	require.NotNil(t, merged.CLI.UserPluginsEnabled)
	assert.False(t, *merged.CLI.UserPluginsEnabled)

	over.CLI.UserPluginsEnabled = &enabled
	merged = Merge(Default(), over)
	assert.True(t, *merged.CLI.UserPluginsEnabled)
}

func TestMerge_ReplacesMappingsWholesale(t *testing.T) {
	base := &Manifest{CLI: &CLI{
		Hooks: map[string]StringList{"init": {"./a.js"}, "prerun": {"./b.js"}},
		S3:    &S3{Host: "base"},
	}}
	over := &Manifest{CLI: &CLI{
		Hooks: map[string]StringList{"update": {"./c.js"}},
	}}

	merged := Merge(base, over)

	assert.Equal(t, map[string]StringList{"update": {"./c.js"}}, merged.CLI.Hooks)
	assert.Equal(t, &S3{Host: "base"}, merged.CLI.S3)
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	base := Default()
	over := &Manifest{
		Version: "1.0.0",
		CLI:     &CLI{Plugins: []string{"a"}, Topics: Topics{"t": {Description: "x"}}},
		Extra:   map[string]json.RawMessage{"license": json.RawMessage(`"MIT"`)},
	}

	merged := Merge(base, over)
	merged.CLI.Plugins[0] = "changed"
	merged.CLI.Topics["t"].Description = "changed"
	merged.CLI.Hooks["x"] = StringList{"y"}

	assert.Equal(t, "0.0.0", base.Version)
	assert.Empty(t, base.CLI.Hooks)
	assert.Equal(t, []string{"a"}, over.CLI.Plugins)
	assert.Equal(t, "x", over.CLI.Topics["t"].Description)
	assert.JSONEq(t, `"MIT"`, string(merged.Extra["license"]))
}

func TestMerge_Nil(t *testing.T) {
	merged := Merge(nil, nil)
	require.NotNil(t, merged)
	assert.Nil(t, merged.CLI)

	merged = Merge(Default(), nil)
	assert.Equal(t, Default(), merged)

	merged = Merge(nil, &Manifest{CLI: &CLI{Bin: "x"}})
	assert.Equal(t, "x", merged.CLI.Bin)
}
