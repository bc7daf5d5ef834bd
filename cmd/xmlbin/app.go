package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/wippyai/xmlbin"
	"github.com/wippyai/xmlbin/compiler"
	"github.com/wippyai/xmlbin/config"
	"github.com/wippyai/xmlbin/metrics"
	"github.com/wippyai/xmlbin/transcoder"
	"github.com/wippyai/xmlbin/xmldoc"
)

// app is the state shared by all commands of one process.
type app struct {
	configFile string
	flags      config.Session

	session *config.Session
	log     *zap.Logger
	metrics *metrics.Metrics
	closers []io.Closer
}

// setup resolves the session and installs loggers. While the wizard owns
// the terminal only the file sink is used.
func (a *app) setup(interactive bool) error {
	s := config.Default()
	if a.configFile != "" {
		loaded, err := config.Load(a.configFile)
		if err != nil {
			return err
		}
		s = loaded
	}
	s.Merge(a.flags)
	a.session = s

	log, closer, err := newLogger(s, os.Stderr, !interactive)
	if err != nil {
		return err
	}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}
	a.log = log
	compiler.SetLogger(log.Named("compiler"))
	transcoder.SetLogger(log.Named("transcoder"))

	if s.MetricsFile != "" {
		a.metrics = metrics.New()
	}
	return nil
}

// teardown flushes metrics and closes log files. Every step runs even if
// an earlier one fails.
func (a *app) teardown() error {
	var err error
	if a.metrics != nil {
		err = multierr.Append(err, a.metrics.WriteTextfile(a.session.MetricsFile))
	}
	for _, c := range a.closers {
		err = multierr.Append(err, c.Close())
	}
	a.closers = nil
	return err
}

func newLogger(s *config.Session, console io.Writer, withConsole bool) (*zap.Logger, io.Closer, error) {
	level, err := s.Level()
	if err != nil {
		return nil, nil, err
	}

	var cores []zapcore.Core
	if withConsole {
		enc := zap.NewDevelopmentEncoderConfig()
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(console), level))
	}

	var closer io.Closer
	if s.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(s.Log.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		rotated := &lumberjack.Logger{
			Filename:   s.Log.File,
			MaxSize:    s.Log.MaxSizeMB,
			MaxBackups: s.Log.MaxBackups,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(rotated), level))
		closer = rotated
	}

	if len(cores) == 0 {
		return zap.NewNop(), nil, nil
	}
	return zap.New(zapcore.NewTee(cores...)), closer, nil
}

func (a *app) converter(s *config.Session) (*xmlbin.Converter, error) {
	conv, err := xmlbin.NewFromFile(s.XSD, s.Converter(), xmlbin.WithMetrics(a.metrics))
	if err != nil {
		return nil, err
	}
	a.log.Debug("layout compiled",
		zap.String("xsd", s.XSD),
		zap.String("root", s.Root),
		zap.Int("size", conv.Size()))
	return conv, nil
}

// result summarizes a conversion for printing.
type result struct {
	HeaderPath string
	BinaryPath string
	Size       int
}

// convert writes the header and the encoded record for s.
func (a *app) convert(s *config.Session) (result, error) {
	if err := s.Require("xsd", "xml", "root"); err != nil {
		return result{}, err
	}
	conv, err := a.converter(s)
	if err != nil {
		return result{}, err
	}

	if err := a.writeHeader(conv, s.HeaderPath()); err != nil {
		return result{}, err
	}
	size, err := a.encode(conv, s.XML, s.BinaryPath())
	if err != nil {
		return result{}, err
	}
	return result{HeaderPath: s.HeaderPath(), BinaryPath: s.BinaryPath(), Size: size}, nil
}

func (a *app) writeHeader(conv *xmlbin.Converter, path string) error {
	text, err := conv.HeaderFile()
	if err != nil {
		return err
	}
	if err := writeFile(path, []byte(text)); err != nil {
		return err
	}
	a.log.Info("header written", zap.String("path", path))
	return nil
}

func (a *app) encode(conv *xmlbin.Converter, xmlPath, binPath string) (int, error) {
	doc, err := xmldoc.ParseFile(xmlPath, conv.Namespace())
	if err != nil {
		return 0, err
	}
	record, err := conv.Encode(doc)
	if err != nil {
		return 0, err
	}
	if err := writeFile(binPath, record); err != nil {
		return 0, err
	}
	a.log.Info("record written", zap.String("path", binPath), zap.Int("bytes", len(record)))
	return len(record), nil
}

// decode reads the record at binPath and writes the document to w.
func (a *app) decode(conv *xmlbin.Converter, binPath string, w io.Writer) error {
	data, err := os.ReadFile(binPath)
	if err != nil {
		return fmt.Errorf("read record: %w", err)
	}
	doc, err := conv.Decode(data)
	if err != nil {
		return err
	}
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	a.log.Info("record decoded", zap.String("path", binPath), zap.Int("bytes", len(data)))
	return nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
