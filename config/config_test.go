package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/csm-adapt/karon/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "karon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	cmp := cfg.Comparator()
	require.NotNil(t, cmp)
	assert.True(t, cmp(" G181030A", "g181030a"))
	reducers, err := cfg.Reducers()
	require.NoError(t, err)
	require.Len(t, reducers, 1)
	assert.Equal(t, "mean x", reducers[0]("x").Key)
	assert.Equal(t, graph.JSON, cfg.DocumentFormat())
	//
	empty, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, cfg, empty)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
id_field: ID
match:
  lower: false
  trim: true
reductions: [mean, STD]
format: yaml
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ID", cfg.IDField)
	assert.Equal(t, "Parent Sample Name", cfg.ParentField)
	assert.Equal(t, "karon.db", cfg.Store)
	assert.Equal(t, "Contact", cfg.Contact)
	assert.Equal(t, 1, cfg.HeaderRow)
	reducers, err := cfg.Reducers()
	require.NoError(t, err)
	assert.Equal(t, "std x", reducers[1]("x").Key)
	assert.Equal(t, graph.YAML, cfg.DocumentFormat())
	cmp := cfg.Comparator()
	assert.False(t, cmp("A", "a"))
	assert.True(t, cmp("a ", "a"))
}

func TestValidate(t *testing.T) {
	path := writeConfig(t, "reductions: [mode]\nformat: xml\nparent_field: Sample Name\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mode")
	assert.Contains(t, err.Error(), "xml")
	assert.Contains(t, err.Error(), "both")
	_, err = Load(writeConfig(t, "header_row: 0\ncontact_field: ' '\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header_row")
	assert.Contains(t, err.Error(), "contact_field")
	//
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	_, err = Load(writeConfig(t, "keys: {not: a list}"))
	assert.Error(t, err)
	//
	cfg := Default()
	cfg.Match = Match{}
	assert.Nil(t, cfg.Comparator())
}
