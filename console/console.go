// Package console feeds command lines to a Dispatcher, from a reader such
// as stdin or from websocket clients.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// ErrNoDispatcher is what Unavailable returns for every line.
var ErrNoDispatcher = errors.New("no command dispatcher is compiled into this build")

// Dispatcher runs one command line, writing any output to out.
type Dispatcher interface {
	Process(out io.Writer, line string) error
}

// DispatcherFunc adapts a function to a Dispatcher.
type DispatcherFunc func(out io.Writer, line string) error

// Process calls f.
func (f DispatcherFunc) Process(out io.Writer, line string) error {
	return f(out, line)
}

// Unavailable rejects every line. It stands in when nothing can dispatch.
var Unavailable Dispatcher = DispatcherFunc(func(io.Writer, string) error {
	return ErrNoDispatcher
})

// Run dispatches each line read from r until r is exhausted or ctx is done.
// Dispatch errors are reported to out and do not stop the loop. A reader
// blocked in Read is abandoned when ctx ends; it exits on its next line.
func Run(ctx context.Context, r io.Reader, out io.Writer, d Dispatcher) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return errors.Wrap(err, "failed to Scan")
					}
				default:
				}

				return nil
			}

			if err := d.Process(out, line); err != nil {
				fmt.Fprintf(out, "error: %s\n", err)
			}
		}
	}
}
