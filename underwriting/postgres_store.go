package underwriting

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// PostgresConfigStore reads the configuration tables from PostgreSQL. The
// schema lives in migrations/; see cmd/migrate.
type PostgresConfigStore struct {
	db *sql.DB
}

// NewPostgresConfigStore creates a store backed by an open database handle.
func NewPostgresConfigStore(db *sql.DB) *PostgresConfigStore {
	return &PostgresConfigStore{db: db}
}

// StateOverrides returns overrides keyed by state code.
func (s *PostgresConfigStore) StateOverrides() (map[string]StateOverride, error) {
	rows, err := s.db.Query(`
		SELECT state_code, continuous_gi, birthday_rule, anniversary_rule, under65_access, notes
		FROM state_overrides
		ORDER BY state_code ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list state overrides: %w", err)
	}
	defer rows.Close()

	out := make(map[string]StateOverride)
	for rows.Next() {
		var ov StateOverride
		if err := rows.Scan(&ov.StateCode, &ov.ContinuousGi, &ov.BirthdayRule,
			&ov.AnniversaryRule, &ov.Under65Access, &ov.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan state override: %w", err)
		}
		out[ov.StateCode] = ov
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating state overrides: %w", err)
	}
	return out, nil
}

// DeclineConditions returns decline conditions keyed by code.
func (s *PostgresConfigStore) DeclineConditions() (map[string]DeclineCondition, error) {
	rows, err := s.db.Query(`
		SELECT code, label, description
		FROM decline_conditions
		ORDER BY code ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list decline conditions: %w", err)
	}
	defer rows.Close()

	out := make(map[string]DeclineCondition)
	for rows.Next() {
		var c DeclineCondition
		if err := rows.Scan(&c.Code, &c.Label, &c.Description); err != nil {
			return nil, fmt.Errorf("failed to scan decline condition: %w", err)
		}
		out[c.Code] = c
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating decline conditions: %w", err)
	}
	return out, nil
}

// GiScenarios returns GI scenarios keyed by event type.
func (s *PostgresConfigStore) GiScenarios() (map[GiEventType]GiScenario, error) {
	rows, err := s.db.Query(`
		SELECT code, description, lookback_days, permitted_plan_letters
		FROM gi_scenarios
		ORDER BY code ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list GI scenarios: %w", err)
	}
	defer rows.Close()

	out := make(map[GiEventType]GiScenario)
	for rows.Next() {
		var sc GiScenario
		if err := rows.Scan(&sc.Code, &sc.Description, &sc.LookbackDays,
			pq.Array(&sc.PermittedPlanLetters)); err != nil {
			return nil, fmt.Errorf("failed to scan GI scenario: %w", err)
		}
		out[sc.Code] = sc
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating GI scenarios: %w", err)
	}
	return out, nil
}
