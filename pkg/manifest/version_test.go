package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input   string
		want    *Version
		wantErr bool
	}{
		{input: "1.2.3", want: &Version{Major: 1, Minor: 2, Patch: 3}},
		{input: "v0.0.0", want: &Version{}},
		{input: "1.2.3-beta.0", want: &Version{Major: 1, Minor: 2, Patch: 3, Prerelease: "beta.0"}},
		{input: "1.0.0-foobar", want: &Version{Major: 1, Prerelease: "foobar"}},
		{input: "1.2.3+build.5", want: &Version{Major: 1, Minor: 2, Patch: 3, Metadata: "build.5"}},
		{input: "1.2.3-rc.1+sha", want: &Version{Major: 1, Minor: 2, Patch: 3, Prerelease: "rc.1", Metadata: "sha"}},
		{input: "", wantErr: true},
		{input: "1.2", wantErr: true},
		{input: "1.2.x", wantErr: true},
		{input: "1.2.3-", wantErr: true},
		{input: "1.2.3+", wantErr: true},
		{input: "-1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersion_String(t *testing.T) {
	for _, s := range []string{"1.2.3", "1.2.3-beta.0", "1.2.3+meta", "1.2.3-rc.1+meta"} {
		v, err := ParseVersion(s)
		require.NoError(t, err)
		assert.Equal(t, s, v.String())
	}
}

func TestVersion_IsPrerelease(t *testing.T) {
	v, err := ParseVersion("1.0.0-beta")
	require.NoError(t, err)
	assert.True(t, v.IsPrerelease())

	v, err = ParseVersion("1.0.0")
	require.NoError(t, err)
	assert.False(t, v.IsPrerelease())
}
