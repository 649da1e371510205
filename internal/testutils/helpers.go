package testutils

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// SeqRand is a RandomSource that replays fixed draws in order.
// Each draw is reduced modulo n; once exhausted it returns 0.
type SeqRand struct {
	mu    sync.Mutex
	draws []int
	calls int
}

// NewSeqRand returns a SeqRand yielding the given zero-based draws.
func NewSeqRand(draws ...int) *SeqRand {
	return &SeqRand{draws: draws}
}

// BombAt returns a source whose first draw puts the bomb in the given 1-based box.
func BombAt(position int, more ...int) *SeqRand {
	return NewSeqRand(append([]int{position - 1}, more...)...)
}

func (r *SeqRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if len(r.draws) == 0 || n <= 0 {
		return 0
	}
	v := r.draws[0]
	r.draws = r.draws[1:]
	return v % n
}

// Calls reports how many draws were taken.
func (r *SeqRand) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// RecordingSurface keeps every view it is asked to render.
type RecordingSurface struct {
	mu      sync.Mutex
	Views   []domain.View
	Cleared bool
	Err     error
}

func (s *RecordingSurface) Render(v domain.View) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Views = append(s.Views, v)
	return s.Err
}

func (s *RecordingSurface) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Cleared = true
	return nil
}

// Last returns the most recent view, failing the test if none was rendered.
func (s *RecordingSurface) Last(t *testing.T) domain.View {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.Views, "surface was never rendered")
	return s.Views[len(s.Views)-1]
}

// Count returns the number of renders so far.
func (s *RecordingSurface) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Views)
}

// SetupTestRepo creates a temporary directory and initializes a Loam repository in it.
// It returns the absolute path to the temp dir and the initialized repository.
// It fails the test immediately on error.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}

// WriteFile writes a file relative to dir, creating parent directories.
func WriteFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
