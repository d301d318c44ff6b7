package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/skycast/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/skycast/internal/core/domain"
	"github.com/custodia-labs/skycast/internal/core/services"
)

// blockingSearcher holds every search open until release is closed.
type blockingSearcher struct {
	started  chan string
	release  chan struct{}
	returned chan struct{}
}

func newBlockingSearcher() *blockingSearcher {
	return &blockingSearcher{
		started:  make(chan string, 1),
		release:  make(chan struct{}),
		returned: make(chan struct{}, 1),
	}
}

func (s *blockingSearcher) Search(ctx context.Context, query string) ([]domain.Candidate, error) {
	defer func() { s.returned <- struct{}{} }()
	s.started <- query
	select {
	case <-s.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return londonCandidates(), nil
}

func TestApp_EscDuringInFlightSearchClearsSearching(t *testing.T) {
	searcher := newBlockingSearcher()
	resolver := services.NewResolver(searcher, nil, nil, services.ResolverConfig{
		Search: domain.SearchSettings{MinQueryLength: 3, QuietWindow: time.Millisecond},
	})
	t.Cleanup(resolver.Close)

	app, err := NewApp(NewPorts(resolver, &MockSettingsService{}))
	require.NoError(t, err)
	app.SetDimensions(100, 30)

	typeText(app, "Lon")

	select {
	case query := <-searcher.started:
		assert.Equal(t, "Lon", query)
	case <-time.After(2 * time.Second):
		t.Fatal("search never started")
	}
	app.Update(messages.SnapshotChanged{})
	require.Equal(t, domain.StateSearching, app.Snapshot().State)
	assert.Contains(t, app.View(), "Searching...")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, "", app.Query())
	assert.Equal(t, domain.StateIdle, resolver.Snapshot().State)

	close(searcher.release)
	select {
	case <-searcher.returned:
	case <-time.After(2 * time.Second):
		t.Fatal("search never returned")
	}

	// The stale response must not bring candidates or the spinner back.
	assert.Never(t, func() bool {
		return resolver.Snapshot().State != domain.StateIdle
	}, 50*time.Millisecond, 5*time.Millisecond)

	app.Update(messages.SnapshotChanged{})
	assert.Equal(t, domain.StateIdle, app.Snapshot().State)
	assert.False(t, app.CandidatesVisible())
	assert.NotContains(t, app.View(), "Searching...")
}
