package plot

import (
	"fmt"
	"io"
)

// logWriter is the destination for notice output.
var logWriter io.Writer

// SetLogWriter sets the notice output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted notice message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}
