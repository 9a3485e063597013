package main

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"

	"golang.org/x/term"

	"autoresolve-sim/internal/report"
)

const defaultGreptimePort = 4001

// writerOptions selects where the battle report goes.
type writerOptions struct {
	Title     string
	PrintOnly bool
	TUI       bool
	Quiet     bool
	LogFile   string
	Log       *slog.Logger
}

// newWriters sets up the report writer based on flags and env vars.
// It returns the writer and a cleanup function to close any resources.
func newWriters(opts writerOptions) (report.Writer, func(), error) {
	base, err := baseWriter(opts)
	if err != nil {
		return nil, nil, err
	}
	if opts.LogFile == "" {
		return base, closer(base), nil
	}
	fw, err := report.NewFileWriter(opts.LogFile, "")
	if err != nil {
		return nil, nil, err
	}
	mw := report.NewMultiWriter(base, fw)
	return mw, func() { mw.Close() }, nil
}

// baseWriter chooses the underlying writer based on flags and env vars.
func baseWriter(opts writerOptions) (report.Writer, error) {
	if opts.TUI {
		return report.NewTUIWriter(opts.Title), nil
	}
	endpoint := os.Getenv("GREPTIMEDB_ENDPOINT")
	if !opts.PrintOnly && endpoint != "" {
		host, port, err := splitEndpoint(endpoint)
		if err != nil {
			return nil, err
		}
		w, err := report.NewGreptimeDBWriter(host, port, "public", opts.Log)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
	if opts.Quiet {
		return report.Discard, nil
	}
	return stdoutWriter(opts.Title), nil
}

// stdoutWriter uses the colored report on a terminal and JSON otherwise.
func stdoutWriter(title string) report.Writer {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return report.NewJSONStdoutWriter()
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		width = 0
	}
	return report.NewColorStdoutWriter(title, width)
}

// splitEndpoint parses host[:port], defaulting to the GreptimeDB gRPC port.
func splitEndpoint(endpoint string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(endpoint)
	if err != nil {
		return endpoint, defaultGreptimePort, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid GREPTIMEDB_ENDPOINT port %q: %w", portStr, err)
	}
	return host, port, nil
}

func closer(w report.Writer) func() {
	if c, ok := w.(interface{ Close() error }); ok {
		return func() { c.Close() }
	}
	return func() {}
}
