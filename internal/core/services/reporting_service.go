package services

import (
	"context"
	"log/slog"

	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
	portsrepo "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/repositories"
	portssvc "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/services"
	"github.com/hirepipe/hiring_pipeline_app/internal/dto"
)

// reportingService implements the ReportingSvcFacade interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingReader
	postingRepo   portsrepo.JobPostingReader
	authz         portssvc.AuthorizerSvc
}

// NewReportingService creates a new reporting service with the provided dependencies
func NewReportingService(
	reportingRepo portsrepo.ReportingReader,
	postingRepo portsrepo.JobPostingReader,
	authz portssvc.AuthorizerSvc,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		postingRepo:   postingRepo,
		authz:         authz,
	}
}

// Ensure reportingService implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// PipelineSummary reports per-stage application counts for a posting
func (s *reportingService) PipelineSummary(ctx context.Context, jobPostingID string, requestingUserID string) (*dto.PipelineSummaryResponse, error) {
	posting, err := s.postingRepo.FindPostingByID(ctx, jobPostingID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authz.EnsureCapability(ctx, requestingUserID, domain.CapReview, posting.SchoolID); err != nil {
		return nil, err
	}

	counts, err := s.reportingRepo.CountApplicationsByStage(ctx, jobPostingID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count applications by stage",
			slog.String("job_posting_id", jobPostingID))
		return nil, err
	}

	stages := make(map[string]int, len(counts))
	total := 0
	for stage, count := range counts {
		stages[string(stage)] = count
		total += count
	}

	s.LogDebug(ctx, "Pipeline summary generated",
		slog.String("job_posting_id", jobPostingID),
		slog.Int("total", total))
	return &dto.PipelineSummaryResponse{
		JobPostingID: jobPostingID,
		Stages:       stages,
		Total:        total,
	}, nil
}
