package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/xmlbin"
	"github.com/wippyai/xmlbin/compiler"
	"github.com/wippyai/xmlbin/errors"
)

// Output file names written into OutDir.
const (
	HeaderFileName = "headerFile.h"
	BinaryFileName = "binFile.bin"
)

// Session is everything one CLI run needs: inputs, naming and logging.
type Session struct {
	XSD    string `yaml:"xsd"`
	XML    string `yaml:"xml"`
	Binary string `yaml:"binary"`
	OutDir string `yaml:"out_dir"`

	Root      string `yaml:"root"`
	Namespace string `yaml:"namespace"`
	Prefix    string `yaml:"prefix"`

	DateTimePattern string `yaml:"datetime_pattern"`
	AllowLong       bool   `yaml:"allow_long"`

	Log         Log    `yaml:"log"`
	MetricsFile string `yaml:"metrics_file"`
}

// Log configures the CLI logger. An empty File disables the file sink.
type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

func Default() *Session {
	return &Session{
		OutDir: ".",
		Log: Log{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads a YAML session file on top of Default. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NotFound(errors.PhaseLoad, "session file", path)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, err
	}
	s.resolve(filepath.Dir(path))
	return s, nil
}

// Parse decodes a YAML session document on top of Default.
func Parse(data []byte) (*Session, error) {
	s := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && err != io.EOF {
		return nil, errors.ParseFailed("session file", err)
	}
	return s, nil
}

// resolve makes relative paths relative to dir, the directory of the
// session file.
func (s *Session) resolve(dir string) {
	for _, p := range []*string{&s.XSD, &s.XML, &s.Binary, &s.OutDir, &s.Log.File, &s.MetricsFile} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// Merge overlays the non-zero fields of o onto s. Command-line flags are
// collected into o so they win over the file.
func (s *Session) Merge(o Session) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&s.XSD, o.XSD)
	set(&s.XML, o.XML)
	set(&s.Binary, o.Binary)
	set(&s.OutDir, o.OutDir)
	set(&s.Root, o.Root)
	set(&s.Namespace, o.Namespace)
	set(&s.Prefix, o.Prefix)
	set(&s.DateTimePattern, o.DateTimePattern)
	set(&s.Log.Level, o.Log.Level)
	set(&s.Log.File, o.Log.File)
	set(&s.MetricsFile, o.MetricsFile)
	if o.AllowLong {
		s.AllowLong = true
	}
	if o.Log.MaxSizeMB > 0 {
		s.Log.MaxSizeMB = o.Log.MaxSizeMB
	}
	if o.Log.MaxBackups > 0 {
		s.Log.MaxBackups = o.Log.MaxBackups
	}
}

// Converter returns the converter configuration of the session.
func (s *Session) Converter() xmlbin.Config {
	return xmlbin.Config{
		RootElement:  s.Root,
		NamespaceURI: s.Namespace,
		Prefix:       s.Prefix,
		Compiler: compiler.Options{
			DateTimePattern: s.DateTimePattern,
			AllowLong:       s.AllowLong,
		},
	}
}

// Level parses Log.Level, defaulting to info.
func (s *Session) Level() (zapcore.Level, error) {
	if s.Log.Level == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(s.Log.Level)
	if err != nil {
		return zapcore.InfoLevel, errors.InvalidInput(errors.PhaseValidate, "log level: "+err.Error())
	}
	return lvl, nil
}

func (s *Session) HeaderPath() string {
	return filepath.Join(s.outDir(), HeaderFileName)
}

// BinaryPath is Binary when set, else binFile.bin in OutDir.
func (s *Session) BinaryPath() string {
	if s.Binary != "" {
		return s.Binary
	}
	return filepath.Join(s.outDir(), BinaryFileName)
}

func (s *Session) outDir() string {
	if s.OutDir == "" {
		return "."
	}
	return s.OutDir
}

// Require checks that the named inputs are set. Names are the YAML keys.
func (s *Session) Require(keys ...string) error {
	fields := map[string]string{
		"xsd":    s.XSD,
		"xml":    s.XML,
		"binary": s.Binary,
		"root":   s.Root,
	}
	for _, k := range keys {
		if fields[k] == "" {
			return errors.InvalidInput(errors.PhaseValidate, k+" is required")
		}
	}
	return s.Converter().Validate()
}
