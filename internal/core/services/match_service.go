package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
	portsrepo "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/repositories"
	portssvc "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/services"
)

// matchService implements the MatchSvcFacade interface
type matchService struct {
	BaseService
	slotRepo      portsrepo.SlotReader
	interviewRepo portsrepo.InterviewReader
	appRepo       portsrepo.ApplicationReader
	authz         portssvc.AuthorizerSvc
}

// NewMatchService creates a new match service with the provided dependencies
func NewMatchService(
	slotRepo portsrepo.SlotReader,
	interviewRepo portsrepo.InterviewReader,
	appRepo portsrepo.ApplicationReader,
	authz portssvc.AuthorizerSvc,
) portssvc.MatchSvcFacade {
	return &matchService{
		slotRepo:      slotRepo,
		interviewRepo: interviewRepo,
		appRepo:       appRepo,
		authz:         authz,
	}
}

// Ensure matchService implements the MatchSvcFacade interface
var _ portssvc.MatchSvcFacade = (*matchService)(nil)

// rankedWindow carries the creation instant of the candidate slot that
// produced the window, used as the final tie-break.
type rankedWindow struct {
	window    domain.MatchWindow
	createdAt time.Time
}

// SuggestMatches intersects the candidate's active slots with the hiring
// side's, drops windows colliding with either party's scheduled interviews,
// and ranks the rest Monday-first by start time.
func (s *matchService) SuggestMatches(ctx context.Context, applicationID string, requestingUserID string) ([]domain.MatchWindow, error) {
	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authz.EnsureParticipant(ctx, requestingUserID, app); err != nil {
		return nil, err
	}

	slots, err := s.slotRepo.FindSlotsByApplication(ctx, applicationID, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to load slots for matching",
			slog.String("application_id", applicationID))
		return nil, err
	}

	now := time.Now().UTC()
	active := lo.Filter(slots, func(slot domain.AvailabilitySlot, _ int) bool {
		return !slot.Expired(now)
	})

	candidateSlots, hiringSlots := lo.FilterReject(active, func(slot domain.AvailabilitySlot, _ int) bool {
		return slot.OwnerUserID == app.ApplicantUserID
	})
	if len(candidateSlots) == 0 || len(hiringSlots) == 0 {
		return []domain.MatchWindow{}, nil
	}

	busy, err := s.scheduledRounds(ctx, app, hiringSlots)
	if err != nil {
		return nil, err
	}

	ranked := make([]rankedWindow, 0)
	seen := make(map[domain.MatchWindow]bool)
	for _, c := range candidateSlots {
		for _, h := range hiringSlots {
			window, ok := c.Window().Intersect(h.Window())
			if !ok || seen[window] {
				continue
			}
			if s.collides(window, busy) {
				continue
			}
			seen[window] = true
			ranked = append(ranked, rankedWindow{window: window, createdAt: c.CreatedAt})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		wi, wj := ranked[i].window, ranked[j].window
		if domain.MondayFirst(wi.Day) != domain.MondayFirst(wj.Day) {
			return domain.MondayFirst(wi.Day) < domain.MondayFirst(wj.Day)
		}
		if wi.StartMinute != wj.StartMinute {
			return wi.StartMinute < wj.StartMinute
		}
		return ranked[i].createdAt.Before(ranked[j].createdAt)
	})

	windows := lo.Map(ranked, func(r rankedWindow, _ int) domain.MatchWindow {
		return r.window
	})

	s.LogDebug(ctx, "Match suggestions computed",
		slog.String("application_id", applicationID),
		slog.Int("count", len(windows)))
	return windows, nil
}

// scheduledRounds collects the SCHEDULED rounds of the applicant and every
// hiring-side slot owner, deduplicated by round id.
func (s *matchService) scheduledRounds(ctx context.Context, app *domain.Application, hiringSlots []domain.AvailabilitySlot) ([]domain.Interview, error) {
	participants := lo.Uniq(append(
		lo.Map(hiringSlots, func(slot domain.AvailabilitySlot, _ int) string { return slot.OwnerUserID }),
		app.ApplicantUserID,
	))

	busy := make([]domain.Interview, 0)
	for _, userID := range participants {
		rounds, err := s.interviewRepo.FindScheduledRoundsForUser(ctx, userID)
		if err != nil {
			s.LogError(ctx, err, "Failed to load scheduled rounds for conflict check",
				slog.String("user_id", userID))
			return nil, err
		}
		busy = append(busy, rounds...)
	}
	return lo.UniqBy(busy, func(r domain.Interview) string { return r.InterviewID }), nil
}

func (s *matchService) collides(window domain.MatchWindow, busy []domain.Interview) bool {
	for i := range busy {
		if busy[i].ConflictsWith(window) {
			return true
		}
	}
	return false
}
