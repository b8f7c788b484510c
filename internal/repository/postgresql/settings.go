package postgresql

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/attendly-app/attendance-backend-go/internal/domain/settings"
	"github.com/attendly-app/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.Repository {
	return &settingsRepositoryImpl{db: db}
}

// GetByCompanyID implements settings.Repository.
func (s *settingsRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) (settings.CompanySettings, error) {
	q := GetQuerier(ctx, s.db)
	query := `
		SELECT company_id, timezone, time_windows, working_days, holidays, penalty_policy, updated_at
		FROM company_settings
		WHERE company_id = $1
	`

	var cs settings.CompanySettings
	var windowsJSON, workingDaysJSON, holidaysJSON, penaltyJSON []byte

	err := q.QueryRow(ctx, query, companyID).Scan(
		&cs.CompanyID, &cs.Timezone,
		&windowsJSON, &workingDaysJSON, &holidaysJSON, &penaltyJSON,
		&cs.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.CompanySettings{}, settings.ErrSettingsNotFound
		}
		return settings.CompanySettings{}, err
	}

	if err := json.Unmarshal(windowsJSON, &cs.TimeWindows); err != nil {
		return settings.CompanySettings{}, err
	}
	if err := json.Unmarshal(workingDaysJSON, &cs.WorkingDays); err != nil {
		return settings.CompanySettings{}, err
	}
	if err := json.Unmarshal(holidaysJSON, &cs.Holidays); err != nil {
		return settings.CompanySettings{}, err
	}
	if err := json.Unmarshal(penaltyJSON, &cs.Penalty); err != nil {
		return settings.CompanySettings{}, err
	}

	return cs, nil
}

// Upsert implements settings.Repository.
func (s *settingsRepositoryImpl) Upsert(ctx context.Context, cs settings.CompanySettings) error {
	q := GetQuerier(ctx, s.db)

	windowsJSON, err := json.Marshal(cs.TimeWindows)
	if err != nil {
		return err
	}
	workingDaysJSON, err := json.Marshal(cs.WorkingDays)
	if err != nil {
		return err
	}
	holidaysJSON, err := json.Marshal(cs.Holidays)
	if err != nil {
		return err
	}
	penaltyJSON, err := json.Marshal(cs.Penalty)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO company_settings (company_id, timezone, time_windows, working_days, holidays, penalty_policy, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (company_id) DO UPDATE SET
			timezone = EXCLUDED.timezone,
			time_windows = EXCLUDED.time_windows,
			working_days = EXCLUDED.working_days,
			holidays = EXCLUDED.holidays,
			penalty_policy = EXCLUDED.penalty_policy,
			updated_at = EXCLUDED.updated_at
	`
	_, err = q.Exec(ctx, query,
		cs.CompanyID, cs.Timezone,
		windowsJSON, workingDaysJSON, holidaysJSON, penaltyJSON,
		cs.UpdatedAt,
	)
	return err
}

// ListCompanyIDs implements settings.Repository.
func (s *settingsRepositoryImpl) ListCompanyIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, s.db)
	rows, err := q.Query(ctx, `SELECT company_id FROM company_settings ORDER BY company_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
