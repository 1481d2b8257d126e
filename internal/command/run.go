// Package command runs short-lived helper binaries such as dumpsys and
// getprop and captures their output line by line.
package command

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"
)

const (
	initialScannerBufferSize = 4096
	maxScannerBufferSize     = 1024 * 1024
)

type Stream string

const (
	StreamStdout Stream = "stdout"
	StreamStderr Stream = "stderr"
)

type LineHandler = func(line string, stream Stream)

// Runner is what collectors depend on, so tests can script output.
type Runner interface {
	Output(ctx context.Context, name string, args ...string) (string, error)
}

type ExecRunner struct {
	timeout time.Duration
}

func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{timeout: timeout}
}

// Output returns stdout of the command. Stderr is discarded.
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var buf bytes.Buffer
	err := NewCommand(name, args...).Run(ctx, func(line string, stream Stream) {
		if stream == StreamStdout {
			buf.WriteString(line)
			buf.WriteString("\n")
		}
	})

	return buf.String(), err
}

type Command struct {
	name string
	args []string
}

func NewCommand(name string, args ...string) *Command {
	return &Command{
		name: name,
		args: args,
	}
}

func (c *Command) Run(ctx context.Context, handler LineHandler) error {
	cmd := exec.CommandContext(ctx, c.name, c.args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", c.name, err)
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		errChan = make(chan error, 2)
	)

	safe := func(line string, stream Stream) {
		if handler == nil {
			return
		}
		mu.Lock()
		handler(line, stream)
		mu.Unlock()
	}

	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := streamOutput(stdout, safe, StreamStdout); err != nil {
			errChan <- fmt.Errorf("stdout stream error: %w", err)
		}
	}()

	go func() {
		defer wg.Done()
		if err := streamOutput(stderr, safe, StreamStderr); err != nil {
			errChan <- fmt.Errorf("stderr stream error: %w", err)
		}
	}()

	wg.Wait()
	cmdErr := cmd.Wait()
	close(errChan)

	if cmdErr != nil {
		return fmt.Errorf("%s failed: %w", c.name, cmdErr)
	}

	if err, ok := <-errChan; ok {
		return err
	}

	return nil
}

func streamOutput(r io.Reader, handler LineHandler, stream Stream) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, initialScannerBufferSize), maxScannerBufferSize)

	for scanner.Scan() {
		text := strings.ReplaceAll(scanner.Text(), "\r", "")
		if strings.TrimSpace(text) != "" {
			handler(text, stream)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}
