package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/safespace/core/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildEngineMissingLexiconFallsBackToBuiltin(t *testing.T) {
	cfg := &config.AppConfig{
		Moderation: config.ModerationConfig{
			LexiconPath: filepath.Join(t.TempDir(), "nope", "words.txt"),
		},
	}

	eng := buildEngine(cfg, zap.NewNop())
	require.NotNil(t, eng)
	assert.True(t, eng.Lexicon().Contains("stupid"), "built-in word list should be active")
	assert.True(t, eng.Lexicon().Contains("idiot"))
}

func TestBuildEngineLoadsConfiguredLexicon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("# custom set\nblockhead\nnumpty\n"), 0o644))

	cfg := &config.AppConfig{
		Moderation: config.ModerationConfig{LexiconPath: path},
	}

	eng := buildEngine(cfg, zap.NewNop())
	require.NotNil(t, eng)
	assert.True(t, eng.Lexicon().Contains("blockhead"))
	assert.False(t, eng.Lexicon().Contains("stupid"), "file lexicon replaces the built-in set")
}
