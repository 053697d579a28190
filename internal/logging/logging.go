// Package logging builds the zap logger used for --verbose diagnostics.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console debug logger writing to w when verbose is set, and a
// no-op logger otherwise. User-facing output never goes through it.
func New(verbose bool, w io.Writer) *zap.Logger {
	if !verbose || w == nil {
		return zap.NewNop()
	}

	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.AddSync(w),
		zap.DebugLevel,
	)
	return zap.New(core).Named("hookmsg")
}
