package terminal

import (
	"fmt"
	"time"
)

const spinner = `|/-\`

const frameInterval = 50 * time.Millisecond

// Operation is a line showing a spinner until the work it describes is over
type Operation struct {
	done    chan struct{}
	stopped chan struct{}
}

// NewOperation prints the message with a spinner until the operation finishes
func NewOperation(format string, a ...interface{}) *Operation {
	o := &Operation{
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go o.spin(fmt.Sprintf(format, a...))
	return o
}

func (o *Operation) spin(message string) {
	defer close(o.stopped)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	frames := []rune(spinner)
	for i := 0; ; i++ {
		select {
		case <-o.done:
			return
		case <-ticker.C:
			fmt.Fprintf(Output, "\r  %s%s%s %c ", yellow, message, reset, frames[i%len(frames)])
		}
	}
}

// Success ends the operation with a check mark
func (o *Operation) Success(format string, a ...interface{}) {
	o.finish("✓", green, format, a...)
}

// Error ends the operation with a cross, appending err when set
func (o *Operation) Error(err error, format string, a ...interface{}) {
	o.finish("✗", red, withError(err, format), a...)
}

// Skip ends an operation that had nothing to do
func (o *Operation) Skip(format string, a ...interface{}) {
	o.finish("-", gray, format, a...)
}

// Result ends the operation with the outcome of a race against a ghost,
// coloured like Ahead.
func (o *Operation) Result(ahead bool, format string, a ...interface{}) {
	symbol := "▼"
	if ahead {
		symbol = "▲"
	}
	o.finish(symbol, aheadColor(ahead), format, a...)
}

func (o *Operation) finish(symbol, color, format string, a ...interface{}) {
	close(o.done)
	<-o.stopped

	fmt.Fprintf(Output, "\033[2K\r%s %s%s%s \n", symbol, color, fmt.Sprintf(format, a...), reset)
}
