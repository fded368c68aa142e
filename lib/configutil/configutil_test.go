package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl string `json:"base_url"`
	Timeout int    `json:"timeout_seconds"`
	Keys    struct {
		File string `json:"file"`
	} `json:"keystore"`
}

func writeFile(t testing.TB, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{
		// comments are allowed
		base_url: "https://example.com/api",
		timeout_seconds: 30,
		keystore: { file: "keys.db" },
	}`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "app.json5"))
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "https://example.com/api", cfg.BaseUrl)
	require.Equal(t, 30, cfg.Timeout)
	require.Equal(t, "keys.db", cfg.Keys.File)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{base_url: "https://example.com/api", timeout_seconds: 30}`)
	writeFile(t, filepath.Join(dir, "app.local.json5"), `{base_url: "http://127.0.0.1:8000/api"}`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "app.json5"))
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "http://127.0.0.1:8000/api", cfg.BaseUrl)
	require.Equal(t, 30, cfg.Timeout)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "nothing.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSplitExt(t *testing.T) {
	name, ext := splitExt("linkedin-cli.json5")
	require.Equal(t, "linkedin-cli", name)
	require.Equal(t, "json5", ext)

	name, ext = splitExt("noext")
	require.Equal(t, "noext", name)
	require.Equal(t, "", ext)
}
