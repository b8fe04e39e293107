package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/organigramma/organigramma/modules/assignment/domain/aggregates/assignment"
	"github.com/organigramma/organigramma/pkg/eventbus"
)

// Band buckets a person's total CURRENT load, expressed in percentage
// points. Bands are inclusive at their lower bound: below 50 is low, 50 up
// to but excluding 100 is normal, 100 to 120 is high and anything beyond
// that is overloaded.
type Band string

const (
	BandLow        Band = "low"
	BandNormal     Band = "normal"
	BandHigh       Band = "high"
	BandOverloaded Band = "overloaded"
)

var (
	lowCeiling    = decimal.NewFromFloat(0.5)
	normalCeiling = decimal.NewFromInt(1)
	highCeiling   = decimal.NewFromFloat(1.2)
)

// ClassifyLoad maps a summed percentage fraction to its band.
func ClassifyLoad(total decimal.Decimal) Band {
	switch {
	case total.LessThan(lowCeiling):
		return BandLow
	case total.LessThan(normalCeiling):
		return BandNormal
	case total.LessThanOrEqual(highCeiling):
		return BandHigh
	default:
		return BandOverloaded
	}
}

// PersonWorkload is a person's aggregated CURRENT load.
type PersonWorkload struct {
	PersonID    uuid.UUID
	Total       decimal.Decimal
	TotalPoints int
	Band        Band
	Assignments []assignment.Assignment
}

// WorkloadService aggregates CURRENT assignment percentages per person.
// Per-person results are cached until an assignment event touches that
// person; the events arrive synchronously after each committed mutation.
type WorkloadService struct {
	repo assignment.Repository

	mu    sync.RWMutex
	cache map[uuid.UUID]PersonWorkload
}

func NewWorkloadService(repo assignment.Repository, publisher eventbus.EventBus) *WorkloadService {
	svc := &WorkloadService{
		repo:  repo,
		cache: map[uuid.UUID]PersonWorkload{},
	}
	publisher.Subscribe(svc.onAssignmentCreated)
	publisher.Subscribe(svc.onAssignmentUpdated)
	publisher.Subscribe(svc.onAssignmentTerminated)
	return svc
}

// ForPerson returns the person's current workload. A person with no CURRENT
// assignments has a zero load in the low band.
func (s *WorkloadService) ForPerson(ctx context.Context, personID uuid.UUID) (PersonWorkload, error) {
	s.mu.RLock()
	cached, ok := s.cache[personID]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	current, err := s.repo.CurrentByPerson(ctx, personID)
	if err != nil {
		return PersonWorkload{}, err
	}

	total := decimal.Zero
	for _, a := range current {
		total = total.Add(a.Percentage())
	}

	load := PersonWorkload{
		PersonID:    personID,
		Total:       total,
		TotalPoints: int(total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()),
		Band:        ClassifyLoad(total),
		Assignments: current,
	}

	s.mu.Lock()
	s.cache[personID] = load
	s.mu.Unlock()
	return load, nil
}

// Report sums CURRENT loads for every person with at least one current
// assignment. The report is computed from the database each time; only the
// per-person lookups are cached.
func (s *WorkloadService) Report(ctx context.Context) ([]PersonWorkload, error) {
	loads, err := s.repo.CurrentLoads(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]PersonWorkload, 0, len(loads))
	for _, l := range loads {
		out = append(out, PersonWorkload{
			PersonID:    l.PersonID,
			Total:       l.Total,
			TotalPoints: int(l.Total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()),
			Band:        ClassifyLoad(l.Total),
		})
	}
	return out, nil
}

func (s *WorkloadService) invalidate(personID uuid.UUID) {
	s.mu.Lock()
	delete(s.cache, personID)
	s.mu.Unlock()
}

func (s *WorkloadService) onAssignmentCreated(event *assignment.CreatedEvent) {
	s.invalidate(event.Result.PersonID())
}

func (s *WorkloadService) onAssignmentUpdated(event *assignment.UpdatedEvent) {
	s.invalidate(event.Result.PersonID())
}

func (s *WorkloadService) onAssignmentTerminated(event *assignment.TerminatedEvent) {
	s.invalidate(event.Result.PersonID())
}
