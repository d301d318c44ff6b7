package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleEvent(t *testing.T) {
	store := newTestStore(t)
	other := filepath.Join(filepath.Dir(store.Path()), "notes.txt")

	tests := []struct {
		name   string
		event  fsnotify.Event
		reload bool
	}{
		{name: "write config", event: fsnotify.Event{Name: store.Path(), Op: fsnotify.Write}, reload: true},
		{name: "create config", event: fsnotify.Event{Name: store.Path(), Op: fsnotify.Create}, reload: true},
		{name: "rename config", event: fsnotify.Event{Name: store.Path(), Op: fsnotify.Rename}, reload: true},
		{name: "remove config", event: fsnotify.Event{Name: store.Path(), Op: fsnotify.Remove}, reload: true},
		{name: "chmod config", event: fsnotify.Event{Name: store.Path(), Op: fsnotify.Chmod}, reload: false},
		{name: "write other file", event: fsnotify.Event{Name: other, Op: fsnotify.Write}, reload: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.reload, store.handleEvent(tt.event))
		})
	}
}

func TestConfigStore_Watch_ReloadsOnWrite(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("forecast.default_city", "Rewari"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- store.Watch(ctx, func() { changed <- struct{}{} })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	content := "[forecast]\ndefault_city = \"Lisbon\"\n"
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0600))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the change")
	}
	assert.Eventually(t, func() bool {
		return store.GetString("forecast.default_city") == "Lisbon"
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestConfigStore_Watch_MissingDirectory(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.RemoveAll(filepath.Dir(store.Path())))

	err := store.Watch(context.Background(), nil)

	assert.Error(t, err)
}
