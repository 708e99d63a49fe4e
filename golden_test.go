package qualname

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Golden test format. Lines and columns are 1-based, as editors show them.
type goldenFile struct {
	Carets []goldenCaret `yaml:"carets"`
}

type goldenCaret struct {
	File  string `yaml:"file"`
	Line  int    `yaml:"line"`
	Col   int    `yaml:"col"`
	Name  string `yaml:"name"`
	Short string `yaml:"short"`
	None  bool   `yaml:"none"`
}

// TestGolden walks testdata/{language}/ directories and checks every caret
// listed in each case's golden.yaml against the files in its src/.
func TestGolden(t *testing.T) {
	langDirs, err := os.ReadDir("testdata")
	if err != nil {
		t.Skip("no testdata directory found")
	}

	for _, langDir := range langDirs {
		if !langDir.IsDir() {
			continue
		}
		lang := langDir.Name()
		langRoot := filepath.Join("testdata", lang)
		levels, err := os.ReadDir(langRoot)
		if err != nil {
			continue
		}

		for _, level := range levels {
			if !level.IsDir() {
				continue
			}
			testDir := filepath.Join(langRoot, level.Name())
			goldenPath := filepath.Join(testDir, "golden.yaml")
			if _, err := os.Stat(goldenPath); err != nil {
				continue
			}

			t.Run(lang+"/"+level.Name(), func(t *testing.T) {
				runGoldenTest(t, filepath.Join(testDir, "src"), goldenPath)
			})
		}
	}
}

func runGoldenTest(t *testing.T, srcDir, goldenPath string) {
	t.Helper()

	data, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	var golden goldenFile
	require.NoError(t, yaml.Unmarshal(data, &golden))
	require.NotEmpty(t, golden.Carets, "golden file lists no carets")

	fs := afero.NewReadOnlyFs(afero.NewOsFs())
	for _, c := range golden.Carets {
		p := &FileProvider{
			Fs:       fs,
			Path:     filepath.Join(srcDir, c.File),
			Position: AtLine(c.Line-1, c.Col-1),
		}
		snap, pos, err := p.Snapshot(context.Background())
		require.NoError(t, err)
		require.NotNil(t, snap, "no language for %s", c.File)

		sym := ResolveAt(snap, pos)
		if closer, ok := snap.(interface{ Close() }); ok {
			closer.Close()
		}

		if c.None {
			assert.Nil(t, sym, "%s:%d:%d: expected no symbol, got %s", c.File, c.Line, c.Col, FormatQualifiedName(sym, true))
			continue
		}
		if !assert.NotNil(t, sym, "%s:%d:%d: no symbol", c.File, c.Line, c.Col) {
			continue
		}
		assert.Equal(t, c.Name, FormatQualifiedName(sym, true), "%s:%d:%d", c.File, c.Line, c.Col)
		if c.Short != "" {
			assert.Equal(t, c.Short, FormatQualifiedName(sym, false), "%s:%d:%d", c.File, c.Line, c.Col)
		}
	}
}
