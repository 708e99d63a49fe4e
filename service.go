package qualname

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Service runs one caret query: it takes a snapshot from Provider,
// resolves and formats the element at the caret, and hands the result to
// Sink. A nil Sink discards the result and all messages.
type Service struct {
	Provider Provider
	Sink     Sink
}

// Copy resolves the element at the provider's caret and copies its
// qualified name to the sink. It returns "" with a nil error when there is
// nothing at the caret. When the sink fails to copy, the name is returned
// together with the error.
//
// Failures, panics included, are logged, reported to the sink as
// "Error: ..." and returned; Copy never panics.
func (s *Service) Copy(ctx context.Context, includeNamespace bool) (name string, err error) {
	logger := zerolog.Ctx(ctx)

	defer func() {
		if r := recover(); r != nil {
			name = ""
			err = errors.Errorf("qualified name: unexpected failure: %v", r)
			logger.Error().Err(err).Msg("caret query panicked")
			s.notify(ctx, "Error: "+err.Error())
		}
	}()

	snap, position, err := s.Provider.Snapshot(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("acquiring snapshot")
		s.notify(ctx, "Error: "+err.Error())
		return "", err
	}
	if c, ok := snap.(interface{ Close() }); ok {
		defer c.Close()
	}

	sym := ResolveAt(snap, position)
	if sym == nil {
		logger.Debug().Int("position", position).Msg("no symbol at caret")
		s.notify(ctx, NoSymbolMessage)
		return "", nil
	}

	name = FormatQualifiedName(sym, includeNamespace)
	logger.Debug().Str("kind", string(sym.Kind)).Str("name", name).Msg("resolved symbol")

	if s.Sink == nil {
		return name, nil
	}
	if err := s.Sink.Copy(ctx, name); err != nil {
		logger.Warn().Err(err).Str("name", name).Msg("copying qualified name")
		s.notify(ctx, "Failed to copy: "+err.Error())
		return name, errors.Errorf("copy: %w", err)
	}
	s.notify(ctx, "Copied: "+name)
	return name, nil
}

func (s *Service) notify(ctx context.Context, message string) {
	if s.Sink == nil {
		return
	}
	if err := s.Sink.Notify(ctx, message); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("message", message).Msg("notifying")
	}
}
