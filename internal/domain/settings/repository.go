package settings

import "context"

// Repository - interface for the company_settings document.
type Repository interface {
	GetByCompanyID(ctx context.Context, companyID string) (CompanySettings, error)
	Upsert(ctx context.Context, s CompanySettings) error
	ListCompanyIDs(ctx context.Context) ([]string, error)
}
