package syntax

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/jward/qualname/internal/format"
	"github.com/jward/qualname/internal/locate"
	"github.com/jward/qualname/internal/symbol"
)

// parseSource parses src and closes the snapshot when the test ends.
func parseSource(t *testing.T, language, src string) *Snapshot {
	t.Helper()
	snap, err := Parse(context.Background(), language, []byte(src))
	require.NoError(t, err)
	t.Cleanup(snap.Close)
	return snap
}

// offsetOf returns the character offset of the first occurrence of needle
// in src, plus shift.
func offsetOf(t *testing.T, src, needle string, shift int) int {
	t.Helper()
	i := strings.Index(src, needle)
	require.GreaterOrEqual(t, i, 0, "needle %q not found", needle)
	return utf8.RuneCountInString(src[:i]) + shift
}

// symbolAt locates the symbol at the first occurrence of needle.
func symbolAt(t *testing.T, snap *Snapshot, src, needle string) *symbol.Symbol {
	t.Helper()
	return locate.Locate(snap, offsetOf(t, src, needle, 0))
}

// qualifiedAt renders the symbol at needle both ways; ok is false when no
// symbol was found.
func qualifiedAt(t *testing.T, snap *Snapshot, src, needle string) (withNS, withoutNS string, ok bool) {
	t.Helper()
	sym := symbolAt(t, snap, src, needle)
	if sym == nil {
		return "", "", false
	}
	return format.Format(sym, true), format.Format(sym, false), true
}
