package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	reset  = "\033[0m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
	gray   = "\033[37m"
)

// Output is where every message is printed
var Output io.Writer = os.Stdout

// Error print error
func Error(err error, format string, a ...interface{}) {
	fmt.Fprintf(Output, "%s%s%s\n", red, fmt.Sprintf(withError(err, format), a...), reset)
}

// Info print an informative line
func Info(format string, a ...interface{}) {
	fmt.Fprintf(Output, "%s%s%s\n", cyan, fmt.Sprintf(format, a...), reset)
}

// Ahead colors a ghost time difference, green when ahead and red when behind
func Ahead(ahead bool, format string, a ...interface{}) string {
	return aheadColor(ahead) + fmt.Sprintf(format, a...) + reset
}

// Dim returns the text in a dimmed color
func Dim(format string, a ...interface{}) string {
	return gray + fmt.Sprintf(format, a...) + reset
}

func aheadColor(ahead bool) string {
	if ahead {
		return green
	}
	return red
}

// withError appends err to a format string. The error text is escaped so
// that a '%' in it is not read as a verb.
func withError(err error, format string) string {
	if err == nil {
		return format
	}
	return format + " [" + strings.ReplaceAll(err.Error(), "%", "%%") + "]"
}
