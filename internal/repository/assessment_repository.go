package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"

	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/domain"
)

const createAssessmentsTable = `
CREATE TABLE IF NOT EXISTS market_assessments (
    id            BIGSERIAL   PRIMARY KEY,
    asset         TEXT        NOT NULL,
    overall_score NUMERIC     NOT NULL,
    condition     TEXT        NOT NULL,
    readings      JSONB       NOT NULL,
    assessed_at   TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_market_assessments_asset_time
    ON market_assessments (asset, assessed_at DESC);
`

type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// AssessmentRepository persists the assessment history so condition changes
// over time can be inspected after the fact.
type AssessmentRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewAssessmentRepository(pool PgxPool, tracer trace.Tracer) *AssessmentRepository {
	return &AssessmentRepository{pool: pool, tracer: tracer}
}

func (r *AssessmentRepository) RunMigrations(ctx context.Context) error {
	_, span := r.tracer.Start(ctx, "assessment-repo.run-migrations")
	defer span.End()

	_, err := r.pool.Exec(ctx, createAssessmentsTable)
	return err
}

func (r *AssessmentRepository) Insert(ctx context.Context, assessment domain.MarketAssessment) error {
	_, span := r.tracer.Start(ctx, "assessment-repo.insert")
	defer span.End()

	readings, err := json.Marshal(assessment.Readings)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO market_assessments (asset, overall_score, condition, readings, assessed_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		assessment.Asset, assessment.OverallScore, string(assessment.Condition), readings, assessment.AssessedAt,
	)
	return err
}

// History returns the most recent assessments for an asset, newest first.
func (r *AssessmentRepository) History(ctx context.Context, asset string, limit int) ([]domain.MarketAssessment, error) {
	_, span := r.tracer.Start(ctx, "assessment-repo.history")
	defer span.End()

	if limit <= 0 {
		limit = 20
	}

	rows, err := r.pool.Query(ctx,
		`SELECT asset, overall_score, condition, readings, assessed_at
		 FROM market_assessments
		 WHERE asset = $1
		 ORDER BY assessed_at DESC
		 LIMIT $2`,
		asset, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MarketAssessment
	for rows.Next() {
		var (
			a         domain.MarketAssessment
			condition string
			readings  []byte
			at        time.Time
		)
		if err := rows.Scan(&a.Asset, &a.OverallScore, &condition, &readings, &at); err != nil {
			return nil, err
		}
		a.Condition = domain.MarketCondition(condition)
		a.AssessedAt = at
		if err := json.Unmarshal(readings, &a.Readings); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// DeleteOlderThan trims history beyond the retention window.
func (r *AssessmentRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	_, span := r.tracer.Start(ctx, "assessment-repo.delete-older-than")
	defer span.End()

	tag, err := r.pool.Exec(ctx,
		`DELETE FROM market_assessments WHERE assessed_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
