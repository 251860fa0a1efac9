package pgsql

import (
	"context"
	"fmt"

	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
	portsrepo "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements aggregate pipeline queries.
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingReader {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingReader = (*reportingRepository)(nil)

// CountApplicationsByStage returns the number of applications per stage for a
// job posting. Stages without applications are absent from the map.
func (r *reportingRepository) CountApplicationsByStage(ctx context.Context, jobPostingID string) (map[domain.ApplicationStage]int, error) {
	query := `
		SELECT current_stage, COUNT(*) AS total
		FROM applications
		WHERE job_posting_id = $1
		GROUP BY current_stage
	`
	rows, err := r.Pool.Query(ctx, query, jobPostingID)
	if err != nil {
		return nil, fmt.Errorf("error querying stage counts for posting %s: %w", jobPostingID, err)
	}
	defer rows.Close()

	counts := make(map[domain.ApplicationStage]int)
	for rows.Next() {
		var stage string
		var total int
		if err := rows.Scan(&stage, &total); err != nil {
			return nil, fmt.Errorf("error scanning stage count row: %w", err)
		}
		counts[domain.ApplicationStage(stage)] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stage count rows: %w", err)
	}
	return counts, nil
}
