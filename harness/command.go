package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/google/shlex"

	"github.com/weiihann/statbench/suite"
)

// ErrEmptyCommand is returned for a command line with no words.
var ErrEmptyCommand = errors.New("empty command")

// Command is an external process timed as a routine.
type Command struct {
	// Line is the original command line, used as the routine name.
	Line   string
	Binary string
	Args   []string
	// Env is appended to the inherited environment.
	Env []string
	Dir string
}

// ParseCommand splits a shell-like command line into a Command.
func ParseCommand(line string) (Command, error) {
	words, err := shlex.Split(line)
	if err != nil {
		return Command{}, fmt.Errorf("parse command %q: %w", line, err)
	}

	if len(words) == 0 {
		return Command{}, ErrEmptyCommand
	}

	return Command{
		Line:   line,
		Binary: words[0],
		Args:   words[1:],
	}, nil
}

// Routine returns a suite member that runs the command to completion.
// A non-zero exit fails with the captured stderr.
func (c Command) Routine(ctx context.Context) suite.Func {
	return func() error {
		cmd := exec.CommandContext(ctx, c.Binary, c.Args...)
		cmd.Dir = c.Dir

		if len(c.Env) > 0 {
			cmd.Env = append(os.Environ(), c.Env...)
		}

		var stderr bytes.Buffer
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			return fmt.Errorf(
				"command %s failed: %w\nstderr: %s",
				c.Line, err, stderr.String(),
			)
		}

		return nil
	}
}

// CommandSuite builds a suite with one routine per command line. Each
// routine is registered as prefix followed by the command line.
func CommandSuite(
	ctx context.Context,
	name, prefix string,
	lines, env []string,
) (*suite.Suite, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	s := suite.New(name)

	for _, line := range lines {
		c, err := ParseCommand(line)
		if err != nil {
			return nil, err
		}

		c.Env = env
		s.Add(prefix+line, c.Routine(ctx))
	}

	return s, nil
}
