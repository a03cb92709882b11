// Package console implements the operator confirmation pause. The
// content of the operator's input is ignored; any line, including a
// bare newline, resumes the run.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
)

type Console struct {
	in  io.Reader
	out io.Writer
}

func NewConsole() *Console {
	return &Console{in: os.Stdin, out: os.Stdout}
}

// AwaitResume blocks until the operator sends a line. There is no
// timeout: an unattended terminal holds the run forever, which is the
// intended behavior for the token-edit pause.
func (c *Console) AwaitResume(ctx context.Context) error {
	fmt.Fprintln(c.out, "Edit the env file with the real bot token, then press Enter to continue.")
	lines := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(c.in).ReadString('\n')
		if err == io.EOF {
			err = nil
		}
		lines <- err
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-lines:
		return err
	}
}

// AutoResume satisfies the Confirmer interface for unattended runs (-y)
// by resuming immediately.
type AutoResume struct{}

func (AutoResume) AwaitResume(ctx context.Context) error {
	return nil
}
