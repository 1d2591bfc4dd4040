package devserver_test

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/loom/pkg/devserver"
)

func TestWatcherBatchesEvents(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	w, err := devserver.NewWatcher(dir, devserver.WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	// A burst of writes should collapse into one batch.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ts"), []byte("1"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.ts"), []byte("2"), 0o644))

	select {
	case batch := <-w.Events():
		require.NotEmpty(t, batch)
		require.LessOrEqual(t, len(batch), 2)
	case <-time.After(3 * time.Second):
		t.Fatal("no batch received")
	}
}

func TestWatcherPicksUpNewDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	w, err := devserver.NewWatcher(dir, devserver.WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	sub := filepath.Join(dir, "pages")
	require.NoError(t, os.Mkdir(sub, 0o755))

	select {
	case <-w.Events():
	case <-time.After(3 * time.Second):
		t.Fatal("no batch for new directory")
	}

	// Give the watcher a moment to register the new directory, then
	// change a file inside it.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(sub, "index.tsx"), []byte("x"), 0o644))

	select {
	case batch := <-w.Events():
		require.NotEmpty(t, batch)
	case <-time.After(3 * time.Second):
		t.Fatal("no batch for file in new directory")
	}
}

func TestNewBundlerValidation(t *testing.T) {
	t.Parallel()

	_, err := devserver.NewBundler("   ")
	require.ErrorIs(t, err, devserver.ErrNoBundlerCommand)
}

func TestBundlerRun(t *testing.T) {
	t.Parallel()

	b, err := devserver.NewBundler("true")
	require.NoError(t, err)
	require.NoError(t, b.Run(t.Context()))

	b, err = devserver.NewBundler("false")
	require.NoError(t, err)
	require.Error(t, b.Run(t.Context()))
}

func TestReloadHub(t *testing.T) {
	t.Parallel()

	hub := devserver.NewReloadHub()
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)

	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, "event: connected\n", line)

	// Wait for the hub to register the client before broadcasting.
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	hub.Broadcast()

	deadline := time.After(3 * time.Second)
	found := make(chan string, 1)
	go func() {
		for {
			l, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			if l == "event: reload\n" {
				found <- l
				return
			}
		}
	}()

	select {
	case <-found:
	case <-deadline:
		t.Fatal("reload event not received")
	}
}
