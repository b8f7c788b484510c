package memory

import (
	"context"
	"sort"

	"github.com/attendly-app/attendance-backend-go/internal/domain/settings"
)

type settingsRepository struct {
	store *Store
}

func NewSettingsRepository(store *Store) settings.Repository {
	return &settingsRepository{store: store}
}

func (r *settingsRepository) GetByCompanyID(ctx context.Context, companyID string) (settings.CompanySettings, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.settings[companyID]
	if !ok {
		return settings.CompanySettings{}, settings.ErrSettingsNotFound
	}
	return s, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, s settings.CompanySettings) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.settings[s.CompanyID] = s
	return nil
}

func (r *settingsRepository) ListCompanyIDs(ctx context.Context) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := make([]string, 0, len(r.store.settings))
	for id := range r.store.settings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
