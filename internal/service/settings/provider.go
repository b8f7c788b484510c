package settings

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/attendly-app/attendance-backend-go/internal/domain/settings"
	"github.com/attendly-app/attendance-backend-go/internal/fixtures"
)

const cacheTTL = 5 * time.Minute

type cacheEntry struct {
	settings settings.CompanySettings
	loadedAt time.Time
}

// Provider serves company settings to the classification path. Lookups never
// fail: a missing row or a storage error falls back to the default
// configuration so check events can always be classified.
type Provider struct {
	repo   settings.Repository
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

func NewProvider(repo settings.Repository, logger *slog.Logger) *Provider {
	return &Provider{
		repo:   repo,
		logger: logger,
		cache:  make(map[string]cacheEntry),
	}
}

// Get returns the effective settings for a company. Storage misses and
// failures degrade to defaults; failures are logged, misses are not.
func (p *Provider) Get(ctx context.Context, companyID string) settings.CompanySettings {
	p.mu.RLock()
	entry, ok := p.cache[companyID]
	p.mu.RUnlock()
	if ok && time.Since(entry.loadedAt) < cacheTTL {
		return entry.settings
	}

	s, err := p.repo.GetByCompanyID(ctx, companyID)
	if err != nil {
		if !errors.Is(err, settings.ErrSettingsNotFound) {
			p.logger.Warn("failed to load company settings, using defaults",
				slog.String("company_id", companyID),
				slog.String("error", err.Error()),
			)
		}
		s = fixtures.DefaultSettings(companyID)
	}

	p.mu.Lock()
	p.cache[companyID] = cacheEntry{settings: s, loadedAt: time.Now()}
	p.mu.Unlock()

	return s
}

// Update validates and persists new settings, then drops the cached copy so
// the next classification sees them.
func (p *Provider) Update(ctx context.Context, s settings.CompanySettings) (settings.CompanySettings, error) {
	if err := s.Validate(); err != nil {
		return settings.CompanySettings{}, err
	}

	s.UpdatedAt = time.Now().UTC()
	if err := p.repo.Upsert(ctx, s); err != nil {
		return settings.CompanySettings{}, err
	}

	p.Invalidate(s.CompanyID)
	return s, nil
}

// Invalidate drops a company from the cache.
func (p *Provider) Invalidate(companyID string) {
	p.mu.Lock()
	delete(p.cache, companyID)
	p.mu.Unlock()
}

// Location resolves the company's timezone to a *time.Location. An
// unloadable timezone name falls back to the default timezone, then to UTC.
// The error is swallowed on purpose: misconfiguration must not block
// classification.
func (p *Provider) Location(ctx context.Context, companyID string) *time.Location {
	s := p.Get(ctx, companyID)

	loc, err := time.LoadLocation(s.Timezone)
	if err == nil {
		return loc
	}

	p.logger.Warn("unloadable company timezone, falling back to default",
		slog.String("company_id", companyID),
		slog.String("timezone", s.Timezone),
	)

	loc, err = time.LoadLocation(settings.DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
