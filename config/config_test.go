package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/xmlbin/errors"
)

const sessionYAML = `
xsd: schemas/header.xsd
xml: /data/header.xml
out_dir: build
root: Header
namespace: urn:test
prefix: t
allow_long: true
log:
  level: debug
  file: xmlbin.log
metrics_file: build/xmlbin.prom
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(sessionYAML))
	require.NoError(t, err)

	assert.Equal(t, "schemas/header.xsd", s.XSD)
	assert.Equal(t, "Header", s.Root)
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, 10, s.Log.MaxSizeMB, "defaults survive a partial log section")
	assert.True(t, s.AllowLong)

	cfg := s.Converter()
	assert.Equal(t, "Header", cfg.RootElement)
	assert.Equal(t, "urn:test", cfg.NamespaceURI)
	assert.Equal(t, "t", cfg.Prefix)
	assert.True(t, cfg.Compiler.AllowLong)
}

func TestParse_Empty(t *testing.T) {
	s, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := Parse([]byte("rootElement: Header\n"))
	assert.True(t, errors.IsKind(err, errors.KindParse), "got %v", err)
}

func TestLoad_ResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sessionYAML), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "schemas/header.xsd"), s.XSD)
	assert.Equal(t, "/data/header.xml", s.XML)
	assert.Equal(t, filepath.Join(dir, "xmlbin.log"), s.Log.File)
	assert.Equal(t, filepath.Join(dir, "build", HeaderFileName), s.HeaderPath())
	assert.Equal(t, filepath.Join(dir, "build", BinaryFileName), s.BinaryPath())
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, errors.IsKind(err, errors.KindNotFound), "got %v", err)
}

func TestMerge(t *testing.T) {
	s := Default()
	s.XSD = "file.xsd"
	s.Root = "Header"

	s.Merge(Session{Root: "Other", Binary: "out.bin", Log: Log{Level: "warn"}})

	assert.Equal(t, "file.xsd", s.XSD)
	assert.Equal(t, "Other", s.Root)
	assert.Equal(t, "out.bin", s.BinaryPath())
	assert.Equal(t, "warn", s.Log.Level)
	assert.Equal(t, 3, s.Log.MaxBackups)
}

func TestLevel(t *testing.T) {
	s := Default()
	lvl, err := s.Level()
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, lvl)

	s.Log.Level = "loud"
	_, err = s.Level()
	assert.True(t, errors.IsKind(err, errors.KindInvalidInput))
}

func TestRequire(t *testing.T) {
	s := Default()
	s.XSD = "a.xsd"
	assert.Error(t, s.Require("xsd", "root"))

	s.Root = "Header"
	assert.NoError(t, s.Require("xsd", "root"))
	assert.Error(t, s.Require("xml"))

	s.Prefix = "t"
	assert.Error(t, s.Require("xsd"), "prefix without namespace")
}
