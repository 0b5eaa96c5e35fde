package process

import (
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Streams resolves where a child's stdout and stderr go for one invocation.
// With an empty LogFile both streams are inherited from this process.
type Streams struct {
	LogFile string
	// Capture sends stdout to the log file as well as stderr.
	Capture bool
}

// Open returns the stdout and stderr sinks and a close func that must be
// called once the child has exited.
func (s Streams) Open() (stdout, stderr io.Writer, closeFn func() error, err error) {
	if s.LogFile == "" {
		return os.Stdout, os.Stderr, func() error { return nil }, nil
	}

	f, err := os.OpenFile(s.LogFile, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open log file: %w", err)
	}
	if s.Capture {
		return f, f, f.Close, nil
	}
	return os.Stdout, f, f.Close, nil
}

// CheckExecutable verifies that name resolves to an executable on PATH.
func CheckExecutable(name string) error {
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%s not found on PATH: %w", name, err)
	}
	return nil
}
