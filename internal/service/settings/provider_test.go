package settings

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/attendly-app/attendance-backend-go/internal/domain/settings"
	"github.com/attendly-app/attendance-backend-go/internal/fixtures"
	"github.com/attendly-app/attendance-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProvider(t *testing.T) (*Provider, settings.Repository) {
	t.Helper()
	repo := memory.NewSettingsRepository(memory.NewStore())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewProvider(repo, logger), repo
}

func TestGetFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	p, _ := newProvider(t)

	s := p.Get(ctx, "company-1")

	assert.Equal(t, "company-1", s.CompanyID)
	assert.Equal(t, settings.DefaultTimezone, s.Timezone)
	assert.Len(t, s.TimeWindows, 3)
}

func TestGetReadsStoredSettings(t *testing.T) {
	ctx := context.Background()
	p, repo := newProvider(t)

	s := fixtures.DefaultSettings("company-1")
	s.Timezone = "Europe/Berlin"
	require.NoError(t, repo.Upsert(ctx, s))

	got := p.Get(ctx, "company-1")
	assert.Equal(t, "Europe/Berlin", got.Timezone)
}

func TestUpdateValidatesWindows(t *testing.T) {
	ctx := context.Background()
	p, _ := newProvider(t)

	s := fixtures.DefaultSettings("company-1")
	s.TimeWindows = []settings.TimeWindow{
		{Key: "morning", Kind: settings.WindowKindOpening, StartLocal: "08:30", EndLocal: "10:00", GraceMinutes: 15},
		{Key: "overlap", Kind: settings.WindowKindOpening, StartLocal: "09:30", EndLocal: "11:00", GraceMinutes: 10},
	}

	_, err := p.Update(ctx, s)
	assert.True(t, errors.Is(err, settings.ErrOverlappingWindows))
}

func TestUpdateInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	p, _ := newProvider(t)

	// Prime the cache with the defaults.
	before := p.Get(ctx, "company-1")
	require.Equal(t, settings.DefaultTimezone, before.Timezone)

	s := fixtures.DefaultSettings("company-1")
	s.Timezone = "Europe/Berlin"
	_, err := p.Update(ctx, s)
	require.NoError(t, err)

	after := p.Get(ctx, "company-1")
	assert.Equal(t, "Europe/Berlin", after.Timezone)
}

func TestLocationFallsBack(t *testing.T) {
	ctx := context.Background()
	p, repo := newProvider(t)

	s := fixtures.DefaultSettings("company-1")
	s.Timezone = "Mars/Olympus_Mons"
	require.NoError(t, repo.Upsert(ctx, s))

	loc := p.Location(ctx, "company-1")

	want, err := time.LoadLocation(settings.DefaultTimezone)
	require.NoError(t, err)
	assert.Equal(t, want.String(), loc.String())
}
