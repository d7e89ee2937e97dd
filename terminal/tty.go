// Package terminal wraps the interactive terminal of a run: a prefixed logger whose lines are buffered
// until FlushLogs, and a yes/no prompt read from the same device.
package terminal

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
)

type (
	TTY struct {
		dest   io.ReadWriter
		reader *bufio.Reader
		logger *log.Logger
		buf    bytes.Buffer
		mux    sync.Mutex
	}

	// ReadWriter joins separate input and output streams, e.g. os.Stdin and os.Stdout.
	ReadWriter struct {
		io.Reader
		io.Writer
	}
)

var (
	ErrPrompt = errors.New("failed to read answer")
)

func NewTTY(dest io.ReadWriter, prefix string, flag int) *TTY {
	tty := TTY{dest: dest, reader: bufio.NewReader(dest)}

	tty.logger = log.New(&tty.buf, prefix, flag)

	return &tty
}

func (t *TTY) Write(p []byte) (n int, err error) {
	t.mux.Lock()
	defer t.mux.Unlock()

	return t.dest.Write(p)
}

func (t *TTY) Printf(format string, v ...any) {
	t.mux.Lock()
	defer t.mux.Unlock()

	t.logger.Printf(format, v...)
}

func (t *TTY) Println(v ...any) {
	t.mux.Lock()
	defer t.mux.Unlock()

	t.logger.Println(v...)
}

// Confirm asks question and reports whether the answer was yes. Anything other than "y" or "yes" means no.
//
// Non-nil returned error wraps [ErrPrompt].
func (t *TTY) Confirm(question string) (bool, error) {
	t.mux.Lock()
	defer t.mux.Unlock()

	_, err := fmt.Fprintf(t.dest, "%s [y/N]: ", question)
	if err != nil {
		return false, fmt.Errorf("%w: failed to prompt: %s", ErrPrompt, err.Error())
	}

	line, err := t.reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return false, fmt.Errorf("%w: %s", ErrPrompt, err.Error())
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (t *TTY) FlushLogs() error {
	t.mux.Lock()
	defer t.mux.Unlock()

	_, err := t.dest.Write(t.buf.Bytes())

	t.buf.Reset()

	return err
}
