package settings

import (
	"context"
	"time"
)

// SettingsService is the configuration provider injected into every
// component that classifies or resolves attendance. Get and Location never
// fail; they degrade to defaults instead.
type SettingsService interface {
	Get(ctx context.Context, companyID string) CompanySettings
	Location(ctx context.Context, companyID string) *time.Location
	Update(ctx context.Context, s CompanySettings) (CompanySettings, error)
	Invalidate(companyID string)
}
