package expression

import (
	"fmt"
	"io"
)

// logWriter is the destination for warning diagnostics. Nil discards them;
// the engine never fails because of a logging problem.
var logWriter io.Writer

// SetLogWriter sets the diagnostic output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// warnf writes a warning-level diagnostic message.
func warnf(format string, args ...any) {
	if logWriter == nil {
		return
	}
	fmt.Fprintf(logWriter, "[WARN] "+format+"\n", args...)
}
