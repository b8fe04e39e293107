package services_test

import (
	"context"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/organigramma/organigramma/modules/assignment/domain/aggregates/assignment"
	"github.com/organigramma/organigramma/modules/assignment/services"
	"github.com/organigramma/organigramma/pkg/eventbus"
	"github.com/organigramma/organigramma/pkg/itf"
	"github.com/organigramma/organigramma/pkg/serrors"
)

type inMemoryAssignmentRepo struct {
	rows map[uuid.UUID]assignment.Assignment
}

func newInMemoryAssignmentRepo() *inMemoryAssignmentRepo {
	return &inMemoryAssignmentRepo{rows: map[uuid.UUID]assignment.Assignment{}}
}

func (r *inMemoryAssignmentRepo) GetPaginated(_ context.Context, params *assignment.FindParams) ([]assignment.Assignment, int64, error) {
	var out []assignment.Assignment
	for _, a := range r.rows {
		if params != nil {
			if params.PersonID != nil && a.PersonID() != *params.PersonID {
				continue
			}
			if params.UnitID != nil && a.UnitID() != *params.UnitID {
				continue
			}
			if params.JobTitleID != nil && a.JobTitleID() != *params.JobTitleID {
				continue
			}
			if params.Status != "" && a.Status() != params.Status {
				continue
			}
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version() < out[j].Version() })
	return out, int64(len(out)), nil
}

func (r *inMemoryAssignmentRepo) GetByID(_ context.Context, id uuid.UUID) (assignment.Assignment, error) {
	a, ok := r.rows[id]
	if !ok {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	return a, nil
}

func (r *inMemoryAssignmentRepo) GetHistory(_ context.Context, lineageID uuid.UUID) ([]assignment.Assignment, error) {
	var out []assignment.Assignment
	for _, a := range r.rows {
		if a.LineageID() == lineageID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version() < out[j].Version() })
	return out, nil
}

func (r *inMemoryAssignmentRepo) GetCurrentByKey(_ context.Context, key assignment.LineageKey) (assignment.Assignment, error) {
	for _, a := range r.rows {
		if a.PersonID() == key.PersonID && a.UnitID() == key.UnitID && a.JobTitleID() == key.JobTitleID && a.IsCurrent() {
			return a, nil
		}
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}

func (r *inMemoryAssignmentRepo) LockLineage(context.Context, assignment.LineageKey) error {
	return nil
}

func (r *inMemoryAssignmentRepo) Create(_ context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	if a.IsCurrent() {
		key := assignment.LineageKey{PersonID: a.PersonID(), UnitID: a.UnitID(), JobTitleID: a.JobTitleID()}
		if _, err := r.GetCurrentByKey(context.Background(), key); err == nil {
			return assignment.Assignment{}, assignment.ErrDuplicateCurrent
		}
	}
	now := time.Now()
	created := assignment.Hydrate(
		uuid.New(), a.LineageID(), a.Version(),
		a.PersonID(), a.UnitID(), a.JobTitleID(),
		a.Percentage(), a.IsAdInterim(), a.IsUnitBoss(), a.Notes(),
		a.Status(), a.ValidFrom(), a.ValidTo(),
		now, now,
	)
	r.rows[created.ID()] = created
	return created, nil
}

func (r *inMemoryAssignmentRepo) Update(_ context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	existing, ok := r.rows[a.ID()]
	if !ok {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	updated := assignment.Hydrate(
		existing.ID(), existing.LineageID(), existing.Version(),
		existing.PersonID(), existing.UnitID(), existing.JobTitleID(),
		existing.Percentage(), existing.IsAdInterim(), existing.IsUnitBoss(), existing.Notes(),
		a.Status(), existing.ValidFrom(), a.ValidTo(),
		existing.CreatedAt(), time.Now(),
	)
	r.rows[a.ID()] = updated
	return updated, nil
}

func (r *inMemoryAssignmentRepo) CurrentByPerson(_ context.Context, personID uuid.UUID) ([]assignment.Assignment, error) {
	var out []assignment.Assignment
	for _, a := range r.rows {
		if a.PersonID() == personID && a.IsCurrent() {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ValidFrom().Before(out[j].ValidFrom()) })
	return out, nil
}

func (r *inMemoryAssignmentRepo) CurrentLoads(_ context.Context) ([]assignment.PersonLoad, error) {
	totals := map[uuid.UUID]decimal.Decimal{}
	for _, a := range r.rows {
		if a.IsCurrent() {
			totals[a.PersonID()] = totals[a.PersonID()].Add(a.Percentage())
		}
	}
	out := make([]assignment.PersonLoad, 0, len(totals))
	for personID, total := range totals {
		out = append(out, assignment.PersonLoad{PersonID: personID, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PersonID.String() < out[j].PersonID.String() })
	return out, nil
}

type assignmentFixture struct {
	ctx       context.Context
	repo      *inMemoryAssignmentRepo
	publisher eventbus.EventBus
	svc       *services.AssignmentService
}

func setupAssignmentService(t *testing.T) assignmentFixture {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	env := itf.NewTestContext().Build(t)
	repo := newInMemoryAssignmentRepo()
	publisher := eventbus.NewEventPublisher(log)
	return assignmentFixture{
		ctx:       env.Ctx,
		repo:      repo,
		publisher: publisher,
		svc:       services.NewAssignmentService(repo, publisher),
	}
}

func createDTO(personID, unitID, jobTitleID uuid.UUID, percentage int) *assignment.CreateDTO {
	return &assignment.CreateDTO{
		PersonID:   personID.String(),
		UnitID:     unitID.String(),
		JobTitleID: jobTitleID.String(),
		Percentage: percentage,
	}
}

func TestAssignmentService_Create(t *testing.T) {
	f := setupAssignmentService(t)
	personID, unitID, titleID := uuid.New(), uuid.New(), uuid.New()

	created, err := f.svc.Create(f.ctx, createDTO(personID, unitID, titleID, 60))
	require.NoError(t, err)
	assert.Equal(t, 1, created.Version())
	assert.Equal(t, assignment.StatusCurrent, created.Status())
	assert.Equal(t, 60, created.PercentagePoints())
	assert.True(t, created.Percentage().Equal(decimal.NewFromFloat(0.6)))
	assert.NotEqual(t, uuid.Nil, created.LineageID())
	assert.Nil(t, created.ValidTo())
}

func TestAssignmentService_Create_PercentageBounds(t *testing.T) {
	f := setupAssignmentService(t)
	personID, unitID, titleID := uuid.New(), uuid.New(), uuid.New()

	for _, points := range []int{0, -10, 101, 200} {
		_, err := f.svc.Create(f.ctx, createDTO(personID, unitID, titleID, points))
		require.Error(t, err, "percentage %d must be rejected", points)
		svcErr, ok := serrors.AsServiceError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnprocessableEntity, svcErr.Status)
		assert.Equal(t, "ASSIGNMENT_VALIDATION", svcErr.Code)
	}

	// Boundary values are accepted.
	_, err := f.svc.Create(f.ctx, createDTO(personID, unitID, titleID, 100))
	require.NoError(t, err)
	_, err = f.svc.Create(f.ctx, createDTO(personID, uuid.New(), titleID, 1))
	require.NoError(t, err)
}

func TestAssignmentService_Create_DuplicateCurrent(t *testing.T) {
	f := setupAssignmentService(t)
	personID, unitID, titleID := uuid.New(), uuid.New(), uuid.New()

	_, err := f.svc.Create(f.ctx, createDTO(personID, unitID, titleID, 60))
	require.NoError(t, err)

	_, err = f.svc.Create(f.ctx, createDTO(personID, unitID, titleID, 40))
	require.Error(t, err)
	svcErr, ok := serrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, svcErr.Status)
	assert.Equal(t, "ASSIGNMENT_DUPLICATE_CURRENT", svcErr.Code)

	// A different lineage key is unaffected.
	_, err = f.svc.Create(f.ctx, createDTO(personID, uuid.New(), titleID, 40))
	require.NoError(t, err)
}

func TestAssignmentService_Update_CreatesNextVersion(t *testing.T) {
	f := setupAssignmentService(t)
	personID, unitID, titleID := uuid.New(), uuid.New(), uuid.New()

	v1, err := f.svc.Create(f.ctx, createDTO(personID, unitID, titleID, 60))
	require.NoError(t, err)

	v2, err := f.svc.Update(f.ctx, v1.ID(), &assignment.UpdateDTO{Percentage: 80})
	require.NoError(t, err)
	assert.Equal(t, v1.LineageID(), v2.LineageID())
	assert.Equal(t, 2, v2.Version())
	assert.Equal(t, assignment.StatusCurrent, v2.Status())
	assert.Equal(t, 80, v2.PercentagePoints())

	// The predecessor is closed at exactly the successor's start.
	previous, err := f.svc.GetByID(f.ctx, v1.ID())
	require.NoError(t, err)
	assert.Equal(t, assignment.StatusHistorical, previous.Status())
	require.NotNil(t, previous.ValidTo())
	assert.True(t, previous.ValidTo().Equal(v2.ValidFrom()))

	// At no point may the lineage hold two CURRENT versions; the repository
	// rejects a second CURRENT insert, so the demotion must come first.
	history, err := f.svc.History(f.ctx, v1.ID())
	require.NoError(t, err)
	currents := 0
	for _, version := range history {
		if version.IsCurrent() {
			currents++
		}
	}
	assert.Equal(t, 1, currents)
}

func TestAssignmentService_Update_RejectsStartBeforePredecessor(t *testing.T) {
	f := setupAssignmentService(t)
	personID, unitID, titleID := uuid.New(), uuid.New(), uuid.New()

	dto := createDTO(personID, unitID, titleID, 60)
	dto.ValidFrom = "2025-06-01T00:00:00Z"
	v1, err := f.svc.Create(f.ctx, dto)
	require.NoError(t, err)

	// A successor starting before the current version would close the
	// predecessor with valid_to earlier than its valid_from.
	_, err = f.svc.Update(f.ctx, v1.ID(), &assignment.UpdateDTO{
		Percentage: 80,
		ValidFrom:  "2025-05-01T00:00:00Z",
	})
	require.Error(t, err)
	svcErr, ok := serrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, svcErr.Status)
	assert.Equal(t, "ASSIGNMENT_VALIDATION", svcErr.Code)

	still, err := f.svc.GetByID(f.ctx, v1.ID())
	require.NoError(t, err)
	assert.Equal(t, assignment.StatusCurrent, still.Status())
	assert.Nil(t, still.ValidTo())
}

func TestAssignmentService_Update_CarriesFlagsForward(t *testing.T) {
	f := setupAssignmentService(t)
	personID, unitID, titleID := uuid.New(), uuid.New(), uuid.New()

	dto := createDTO(personID, unitID, titleID, 60)
	dto.AdInterim = true
	dto.UnitBoss = true
	dto.Notes = "acting head"
	v1, err := f.svc.Create(f.ctx, dto)
	require.NoError(t, err)
	assert.True(t, v1.IsAdInterim())
	assert.True(t, v1.IsUnitBoss())
	assert.Equal(t, "acting head", v1.Notes())

	// Omitted fields keep the predecessor's values.
	v2, err := f.svc.Update(f.ctx, v1.ID(), &assignment.UpdateDTO{Percentage: 80})
	require.NoError(t, err)
	assert.True(t, v2.IsAdInterim())
	assert.True(t, v2.IsUnitBoss())
	assert.Equal(t, "acting head", v2.Notes())

	// Sent fields override them.
	off := false
	cleared := ""
	v3, err := f.svc.Update(f.ctx, v2.ID(), &assignment.UpdateDTO{
		Percentage: 80,
		AdInterim:  &off,
		Notes:      &cleared,
	})
	require.NoError(t, err)
	assert.False(t, v3.IsAdInterim())
	assert.True(t, v3.IsUnitBoss())
	assert.Equal(t, "", v3.Notes())
}

func TestAssignmentService_Update_RequiresCurrent(t *testing.T) {
	f := setupAssignmentService(t)
	personID, unitID, titleID := uuid.New(), uuid.New(), uuid.New()

	v1, err := f.svc.Create(f.ctx, createDTO(personID, unitID, titleID, 60))
	require.NoError(t, err)
	_, err = f.svc.Update(f.ctx, v1.ID(), &assignment.UpdateDTO{Percentage: 80})
	require.NoError(t, err)

	// Updating the superseded version again must fail.
	_, err = f.svc.Update(f.ctx, v1.ID(), &assignment.UpdateDTO{Percentage: 90})
	require.Error(t, err)
	svcErr, ok := serrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, svcErr.Status)
	assert.Equal(t, "ASSIGNMENT_INVALID_STATE", svcErr.Code)
}

func TestAssignmentService_Terminate(t *testing.T) {
	f := setupAssignmentService(t)
	personID, unitID, titleID := uuid.New(), uuid.New(), uuid.New()

	v1, err := f.svc.Create(f.ctx, createDTO(personID, unitID, titleID, 60))
	require.NoError(t, err)

	terminated, err := f.svc.Terminate(f.ctx, v1.ID(), nil)
	require.NoError(t, err)
	assert.Equal(t, assignment.StatusTerminated, terminated.Status())
	assert.Equal(t, 1, terminated.Version())
	require.NotNil(t, terminated.ValidTo())

	// No successor was created.
	history, err := f.svc.History(f.ctx, v1.ID())
	require.NoError(t, err)
	assert.Len(t, history, 1)

	// Terminating or updating a terminated version fails.
	_, err = f.svc.Terminate(f.ctx, v1.ID(), nil)
	require.Error(t, err)
	svcErr, ok := serrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "ASSIGNMENT_INVALID_STATE", svcErr.Code)

	_, err = f.svc.Update(f.ctx, v1.ID(), &assignment.UpdateDTO{Percentage: 50})
	require.Error(t, err)
	svcErr, ok = serrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "ASSIGNMENT_INVALID_STATE", svcErr.Code)
}

func TestAssignmentService_Terminate_RejectsDateBeforeStart(t *testing.T) {
	f := setupAssignmentService(t)
	personID, unitID, titleID := uuid.New(), uuid.New(), uuid.New()

	dto := createDTO(personID, unitID, titleID, 60)
	dto.ValidFrom = "2025-06-01T00:00:00Z"
	v1, err := f.svc.Create(f.ctx, dto)
	require.NoError(t, err)

	_, err = f.svc.Terminate(f.ctx, v1.ID(), &assignment.TerminateDTO{ValidTo: "2025-05-01T00:00:00Z"})
	require.Error(t, err)
	svcErr, ok := serrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, svcErr.Status)
	assert.Equal(t, "ASSIGNMENT_VALIDATION", svcErr.Code)

	// The version is untouched.
	still, err := f.svc.GetByID(f.ctx, v1.ID())
	require.NoError(t, err)
	assert.Equal(t, assignment.StatusCurrent, still.Status())
}

func TestAssignmentService_Terminate_FreesLineageKey(t *testing.T) {
	f := setupAssignmentService(t)
	personID, unitID, titleID := uuid.New(), uuid.New(), uuid.New()

	v1, err := f.svc.Create(f.ctx, createDTO(personID, unitID, titleID, 60))
	require.NoError(t, err)
	_, err = f.svc.Terminate(f.ctx, v1.ID(), nil)
	require.NoError(t, err)

	// The same key may be assigned again; it starts a fresh lineage at v1.
	fresh, err := f.svc.Create(f.ctx, createDTO(personID, unitID, titleID, 40))
	require.NoError(t, err)
	assert.NotEqual(t, v1.LineageID(), fresh.LineageID())
	assert.Equal(t, 1, fresh.Version())
}

func TestAssignmentService_History(t *testing.T) {
	f := setupAssignmentService(t)
	personID, unitID, titleID := uuid.New(), uuid.New(), uuid.New()

	v1, err := f.svc.Create(f.ctx, createDTO(personID, unitID, titleID, 50))
	require.NoError(t, err)
	v2, err := f.svc.Update(f.ctx, v1.ID(), &assignment.UpdateDTO{Percentage: 70})
	require.NoError(t, err)
	v3, err := f.svc.Update(f.ctx, v2.ID(), &assignment.UpdateDTO{Percentage: 90})
	require.NoError(t, err)

	// History is reachable from any version of the lineage.
	for _, id := range []uuid.UUID{v1.ID(), v2.ID(), v3.ID()} {
		history, err := f.svc.History(f.ctx, id)
		require.NoError(t, err)
		require.Len(t, history, 3)
		assert.Equal(t, 1, history[0].Version())
		assert.Equal(t, 2, history[1].Version())
		assert.Equal(t, 3, history[2].Version())
		assert.Equal(t, assignment.StatusHistorical, history[0].Status())
		assert.Equal(t, assignment.StatusHistorical, history[1].Status())
		assert.Equal(t, assignment.StatusCurrent, history[2].Status())
	}
}

func TestAssignmentService_Create_InvalidTimestamp(t *testing.T) {
	f := setupAssignmentService(t)

	dto := createDTO(uuid.New(), uuid.New(), uuid.New(), 60)
	dto.ValidFrom = "yesterday"
	_, err := f.svc.Create(f.ctx, dto)
	require.Error(t, err)
	svcErr, ok := serrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "ASSIGNMENT_VALIDATION", svcErr.Code)
}

func TestAssignmentService_Events(t *testing.T) {
	f := setupAssignmentService(t)
	personID, unitID, titleID := uuid.New(), uuid.New(), uuid.New()

	var created, updated, terminated int
	f.publisher.Subscribe(func(*assignment.CreatedEvent) { created++ })
	f.publisher.Subscribe(func(*assignment.UpdatedEvent) { updated++ })
	f.publisher.Subscribe(func(*assignment.TerminatedEvent) { terminated++ })

	v1, err := f.svc.Create(f.ctx, createDTO(personID, unitID, titleID, 60))
	require.NoError(t, err)
	v2, err := f.svc.Update(f.ctx, v1.ID(), &assignment.UpdateDTO{Percentage: 80})
	require.NoError(t, err)
	_, err = f.svc.Terminate(f.ctx, v2.ID(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, created)
	assert.Equal(t, 1, updated)
	assert.Equal(t, 1, terminated)

	// Failed operations publish nothing.
	_, err = f.svc.Update(f.ctx, v1.ID(), &assignment.UpdateDTO{Percentage: 10})
	require.Error(t, err)
	assert.Equal(t, 1, updated)
}
