package qualname

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/atotto/clipboard"
	"gitlab.com/tozd/go/errors"
)

// Sink receives the outcome of an invocation: the copied name, and
// user-facing status messages.
type Sink interface {
	Copy(ctx context.Context, text string) error
	Notify(ctx context.Context, message string) error
}

// ClipboardSink copies to the system clipboard and writes messages to
// Messages, when set.
type ClipboardSink struct {
	Messages io.Writer
}

func (s ClipboardSink) Copy(_ context.Context, text string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard: no clipboard utility available")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return errors.Errorf("clipboard: %w", err)
	}
	return nil
}

func (s ClipboardSink) Notify(_ context.Context, message string) error {
	return writeLine(s.Messages, message)
}

// WriterSink prints the copied text to Out and messages to Messages.
// Either writer may be nil.
type WriterSink struct {
	Out      io.Writer
	Messages io.Writer
}

func (s WriterSink) Copy(_ context.Context, text string) error {
	return writeLine(s.Out, text)
}

func (s WriterSink) Notify(_ context.Context, message string) error {
	return writeLine(s.Messages, message)
}

func writeLine(w io.Writer, line string) error {
	if w == nil {
		return nil
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return errors.Errorf("writing output: %w", err)
	}
	return nil
}

// MemorySink records everything it receives. CopyErr, when set, is
// returned from Copy without recording the text.
type MemorySink struct {
	CopyErr error

	mu       sync.Mutex
	copied   []string
	messages []string
}

func (s *MemorySink) Copy(_ context.Context, text string) error {
	if s.CopyErr != nil {
		return s.CopyErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.copied = append(s.copied, text)
	return nil
}

func (s *MemorySink) Notify(_ context.Context, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
	return nil
}

// Copied returns the texts copied so far.
func (s *MemorySink) Copied() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.copied...)
}

// Messages returns the messages received so far.
func (s *MemorySink) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.messages...)
}
