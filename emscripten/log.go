package emscripten

import (
	"go.uber.org/zap"
)

// Diagnostics are off by default; callers that want visibility into the
// marshaling paths subscribe with SetLogger.
var logger = zap.NewNop()

// SetLogger installs the logger used for shim diagnostics. Passing nil
// restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}
