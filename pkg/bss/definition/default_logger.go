// Package definition holds the simulator's default, swappable
// implementations of the ambient contracts declared in pkg/bss/types:
// logging and metrics.
package definition

import (
	plog "github.com/prometheus/common/log"

	"github.com/bsscast/bsssim/pkg/bss/types"
)

// DefaultLogger is the production types.Logger implementation. It is
// backed by prometheus/common/log, which in turn wraps sirupsen/logrus.
type DefaultLogger struct {
	base  plog.Logger
	debug bool
}

// NewDefaultLogger returns a DefaultLogger with debug logging disabled.
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{base: plog.Base()}
}

// ToggleDebug enables or disables Debug/Debugf output and returns the new
// value.
func (l *DefaultLogger) ToggleDebug(enabled bool) bool {
	l.debug = enabled
	return l.debug
}

func (l *DefaultLogger) Info(v ...interface{})                 { l.base.Info(v...) }
func (l *DefaultLogger) Infof(format string, v ...interface{})  { l.base.Infof(format, v...) }
func (l *DefaultLogger) Warn(v ...interface{})                  { l.base.Warn(v...) }
func (l *DefaultLogger) Warnf(format string, v ...interface{})  { l.base.Warnf(format, v...) }
func (l *DefaultLogger) Error(v ...interface{})                 { l.base.Error(v...) }
func (l *DefaultLogger) Errorf(format string, v ...interface{}) { l.base.Errorf(format, v...) }

func (l *DefaultLogger) Debug(v ...interface{}) {
	if l.debug {
		l.base.Debug(v...)
	}
}

func (l *DefaultLogger) Debugf(format string, v ...interface{}) {
	if l.debug {
		l.base.Debugf(format, v...)
	}
}

func (l *DefaultLogger) Fatal(v ...interface{})                 { l.base.Fatal(v...) }
func (l *DefaultLogger) Fatalf(format string, v ...interface{}) { l.base.Fatalf(format, v...) }

var _ types.Logger = (*DefaultLogger)(nil)
