/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logging

import (
	"os"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	loggerNameSeparator = "."
	modulePath          = "github.com/hyperledger-labs/zk-interval/"

	ConsoleFormat = "console"
	JSONFormat    = "json"
)

// Logger provides logging API
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Panic(args ...interface{})
	Panicf(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	IsEnabledFor(level zapcore.Level) bool
	Named(name string) Logger
}

// Config selects the level and the encoding of every logger handed out by this package.
type Config struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

var root atomic.Pointer[zapcore.Core]

func init() {
	core := newCore(zapcore.InfoLevel, ConsoleFormat)
	root.Store(&core)
}

// Init replaces the backing core. Loggers obtained before the call pick up the new settings.
func Init(c Config) error {
	level := zapcore.InfoLevel
	if len(c.Level) != 0 {
		l, err := zapcore.ParseLevel(c.Level)
		if err != nil {
			return errors.Wrapf(err, "invalid logging level [%s]", c.Level)
		}
		level = l
	}
	format := c.Format
	switch format {
	case "":
		format = ConsoleFormat
	case ConsoleFormat, JSONFormat:
	default:
		return errors.Errorf("invalid logging format [%s]", c.Format)
	}
	core := newCore(level, format)
	root.Store(&core)
	return nil
}

// MustGetLogger returns a logger named after the given parts, or after the calling package when
// no part is given.
func MustGetLogger(parts ...string) Logger {
	name := loggerName(parts...)
	if len(name) == 0 {
		name = callerPackage()
	}
	return newLogger(zap.New(&proxyCore{}, zap.AddCaller()).Named(name))
}

func newCore(level zapcore.Level, format string) zapcore.Core {
	var enc zapcore.Encoder
	if format == JSONFormat {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(cfg)
	}
	return zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)
}

type logger struct {
	*zap.SugaredLogger
	base *zap.Logger
}

func newLogger(l *zap.Logger) *logger {
	return &logger{SugaredLogger: l.Sugar(), base: l}
}

func (l *logger) IsEnabledFor(level zapcore.Level) bool {
	return l.base.Core().Enabled(level)
}

func (l *logger) Named(name string) Logger {
	return newLogger(l.base.Named(name))
}

// proxyCore forwards to whatever core is currently installed in root.
type proxyCore struct {
	fields []zapcore.Field
}

func (c *proxyCore) Enabled(level zapcore.Level) bool {
	return (*root.Load()).Enabled(level)
}

func (c *proxyCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	return &proxyCore{fields: append(merged, fields...)}
}

func (c *proxyCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *proxyCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	core := *root.Load()
	if len(c.fields) != 0 {
		core = core.With(c.fields)
	}
	return core.Write(entry, fields)
}

func (c *proxyCore) Sync() error {
	return (*root.Load()).Sync()
}

func loggerName(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) != 0 {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, loggerNameSeparator)
}

func callerPackage() string {
	pc, _, _, ok := runtime.Caller(2)
	if !ok {
		return "zkinterval"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "zkinterval"
	}
	return packageName(fn.Name())
}

// packageName turns a fully qualified function name into a dotted logger name relative to the module.
func packageName(funcName string) string {
	slash := strings.LastIndex(funcName, "/")
	pkg := funcName
	if dot := strings.Index(funcName[slash+1:], "."); dot >= 0 {
		pkg = funcName[:slash+1+dot]
	}
	pkg = strings.TrimPrefix(pkg, modulePath)
	return strings.ReplaceAll(pkg, "/", loggerNameSeparator)
}
