package lconfig

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

type TestStruct struct {
	StringVal    string            `env:"STRING_VAL"`
	DefaultValue string            `env:"NON_EXISTANT" envDefault:"Hello"`
	IntVal       int               `env:"INT_VAL"`
	BoolVal      bool              `env:"BOOL_VAL"`
	MapVal       map[string]string `env:"MAP_VAL"`
	TimeDuration time.Duration     `env:"TIME_DURATION" envDefault:"5s"`
}

func TestParse(t *testing.T) {
	assert.NoError(t, os.Setenv("STRING_VAL", "hello"))
	assert.NoError(t, os.Setenv("INT_VAL", "42"))
	assert.NoError(t, os.Setenv("BOOL_VAL", "true"))
	assert.NoError(t, os.Setenv("MAP_VAL", `{"train/loss":"loss"}`))

	var test TestStruct
	assert.NoError(t, Parse(&test))

	assert.Equal(t, "hello", test.StringVal)
	assert.Equal(t, "Hello", test.DefaultValue)
	assert.Equal(t, 42, test.IntVal)
	assert.Equal(t, true, test.BoolVal)
	assert.Equal(t, map[string]string{"train/loss": "loss"}, test.MapVal)
	assert.Equal(t, 5*time.Second, test.TimeDuration)
}

func TestLoadStaticYamlConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := []byte("aligned_metrics:\n  - loss\n  - reward\n")
	assert.NoError(t, afero.WriteFile(fs, "config.yaml", content, 0644))

	var target struct {
		AlignedMetrics []string `json:"aligned_metrics"`
	}
	assert.NoError(t, LoadStaticYamlConfig("config.yaml", fs, &target))
	assert.Equal(t, []string{"loss", "reward"}, target.AlignedMetrics)
}

func TestLoadStaticYamlConfigMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	var target map[string]interface{}
	assert.Error(t, LoadStaticYamlConfig("nope.yaml", fs, &target))
}
