package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/segscope/internal/common"
	"github.com/Veraticus/segscope/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T, yamlConfig string) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	if yamlConfig != "" {
		v.SetConfigType("yaml")
		require.NoError(t, v.ReadConfig(strings.NewReader(yamlConfig)))
	}
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newViper(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "rfm_segmentasi_final.csv", cfg.Data.Source)
	assert.Equal(t, ',', cfg.Data.Delimiter)
	assert.Equal(t, LayoutPage, cfg.Display.Layout)
	assert.Equal(t, 50, cfg.Display.SampleSize)
	assert.Equal(t, "£", cfg.Display.Currency)
	assert.Equal(t, "set2", cfg.Palette.Name)
	assert.Empty(t, cfg.Profiles)
	assert.Empty(t, cfg.Palette.Colors)
}

func TestLoadFromYAML(t *testing.T) {
	cfg, err := Load(newViper(t, `
data:
  source: sqlite://segments.db?table=rfm
  delimiter: ";"
display:
  layout: tabs
  sample_size: 10
palette:
  name: map
  colors:
    "0": "#1f77b4"
    "3": "212"
clusters:
  "1":
    label: Best Customers
    icon: "🟠"
    characteristics:
      - Highest spend
    actions:
      - VIP treatment
      - Referral program
`))
	require.NoError(t, err)

	assert.Equal(t, "sqlite://segments.db?table=rfm", cfg.Data.Source)
	assert.Equal(t, ';', cfg.Data.Delimiter)
	assert.Equal(t, LayoutTabs, cfg.Display.Layout)
	assert.Equal(t, 10, cfg.Display.SampleSize)
	assert.Equal(t, map[model.ClusterID]string{0: "#1f77b4", 3: "212"}, cfg.Palette.Colors)

	best := cfg.Profiles.Lookup(1)
	assert.Equal(t, "Best Customers", best.Label)
	assert.Equal(t, []string{"VIP treatment", "Referral program"}, best.Actions)
}

func TestLoadProfilesFileOverridesInline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
clusters:
  0:
    label: Lowest Customers
    actions: [Re-engagement campaign]
  "1":
    label: Best Customers
`), 0o600))

	v := newViper(t, `
clusters:
  "0":
    label: Dormant
profiles:
  path: `+path+`
`)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "Lowest Customers", cfg.Profiles.Lookup(0).Label)
	assert.Equal(t, "Best Customers", cfg.Profiles.Lookup(1).Label)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{name: "bad layout", yaml: "display:\n  layout: grid\n", wantErr: common.ErrInvalidConfig},
		{name: "negative sample", yaml: "display:\n  sample_size: -1\n", wantErr: common.ErrInvalidConfig},
		{name: "narrow width", yaml: "display:\n  width: 10\n", wantErr: common.ErrInvalidConfig},
		{name: "bad palette color", yaml: "palette:\n  colors:\n    \"0\": blue\n", wantErr: common.ErrInvalidConfig},
		{name: "bad palette key", yaml: "palette:\n  colors:\n    best: \"#fff\"\n", wantErr: common.ErrInvalidConfig},
		{name: "bad delimiter", yaml: "data:\n  delimiter: \"ab\"\n", wantErr: common.ErrInvalidConfig},
		{name: "empty source", yaml: "data:\n  source: \"\"\n", wantErr: common.ErrMissingConfig},
		{name: "missing profiles file", yaml: "profiles:\n  path: /nonexistent/profiles.yaml\n", wantErr: common.ErrMissingConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(newViper(t, tt.yaml))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseDelimiter(t *testing.T) {
	for input, want := range map[string]rune{"": ',', ",": ',', "tab": '\t', `\t`: '\t', "|": '|'} {
		got, err := parseDelimiter(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("SEGSCOPE_DATA", "/srv/data")

	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "~", want: home},
		{input: "~/rfm.csv", want: filepath.Join(home, "rfm.csv")},
		{input: "$SEGSCOPE_DATA/rfm.csv", want: "/srv/data/rfm.csv"},
		{input: "sqlite://~/rfm.db?table=t", want: "sqlite://" + filepath.Join(home, "rfm.db?table=t")},
		{input: "postgres://u@h/db", want: "postgres://u@h/db"},
		{input: "relative/rfm.csv", want: "relative/rfm.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}
