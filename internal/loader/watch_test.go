package loader

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/svclint/internal/testutil"
)

func TestWatch_ReportsMatchingChanges(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "config/services.yml", "services: {}\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	var last atomic.Value
	done := make(chan error, 1)
	go func() {
		done <- New(testutil.NewTestLogger(t)).Watch(ctx, DiscoverOptions{
			Roots:   []string{dir},
			Include: []string{"*.yml"},
		}, 20*time.Millisecond, func(changed string) {
			last.Store(changed)
			calls.Add(1)
		})
	}()

	// Keep touching the file until the watcher is up and has debounced.
	assert.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)
		_ = os.WriteFile(target, []byte("services: {}\n"), 0o644)
		return calls.Load() > 0
	}, 5*time.Second, 100*time.Millisecond)

	assert.Equal(t, target, last.Load())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatch_MissingRoot(t *testing.T) {
	err := New(nil).Watch(context.Background(), DiscoverOptions{
		Roots: []string{filepath.Join(t.TempDir(), "missing")},
	}, 0, func(string) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}

func TestEventFilter(t *testing.T) {
	dir := t.TempDir()
	bundle := filepath.Join(dir, "news-bundle", "src", "Resources", "config")
	target := writeFile(t, dir, "news-bundle/src/Resources/config/services.yml", "services: {}\n")
	sibling := writeFile(t, dir, "news-bundle/src/Resources/config/routes.yml", "services: {}\n")
	writeFile(t, dir, "tools/config.yml", "services: {}\n")

	t.Run("file root accepts only itself", func(t *testing.T) {
		f, err := newEventFilter(DiscoverOptions{Roots: []string{target}, Include: []string{"*.yml"}})
		require.NoError(t, err)

		assert.True(t, f.accepts(target))
		assert.False(t, f.accepts(sibling))
	})

	t.Run("directory root applies include and path filter", func(t *testing.T) {
		f, err := newEventFilter(DiscoverOptions{
			Roots:        []string{dir},
			Include:      []string{"*.yml"},
			PathContains: "-bundle/src/Resources/config",
		})
		require.NoError(t, err)

		assert.True(t, f.accepts(target))
		assert.True(t, f.accepts(filepath.Join(bundle, "new.yml")), "created files count")
		assert.False(t, f.accepts(filepath.Join(bundle, "notes.txt")))
		assert.False(t, f.accepts(filepath.Join(dir, "tools", "config.yml")))
		assert.False(t, f.accepts(filepath.Join(t.TempDir(), "services.yml")))
	})
}

func TestWatch_FileRootIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "config/services.yml", "services: {}\n")
	sibling := writeFile(t, dir, "config/routes.yml", "services: {}\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- New(testutil.NewTestLogger(t)).Watch(ctx, DiscoverOptions{
			Roots:   []string{target},
			Include: []string{"*.yml"},
		}, 20*time.Millisecond, func(changed string) {
			changes <- changed
		})
	}()

	assert.Eventually(t, func() bool {
		_ = os.WriteFile(sibling, []byte("services: {}\n"), 0o644)
		_ = os.WriteFile(target, []byte("services: {}\n"), 0o644)
		return len(changes) > 0
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}

	close(changes)
	for changed := range changes {
		assert.Equal(t, target, changed)
	}
}
