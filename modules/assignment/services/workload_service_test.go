package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/organigramma/organigramma/modules/assignment/domain/aggregates/assignment"
	"github.com/organigramma/organigramma/modules/assignment/services"
)

func TestClassifyLoad(t *testing.T) {
	cases := []struct {
		points float64
		band   services.Band
	}{
		{0, services.BandLow},
		{10, services.BandLow},
		{49, services.BandLow},
		{50, services.BandNormal},
		{80, services.BandNormal},
		{99, services.BandNormal},
		// Lower bounds are inclusive: exactly 100 is already high.
		{100, services.BandHigh},
		{101, services.BandHigh},
		{120, services.BandHigh},
		{121, services.BandOverloaded},
		{130, services.BandOverloaded},
		{200, services.BandOverloaded},
	}
	for _, tc := range cases {
		total := decimal.NewFromFloat(tc.points / 100)
		assert.Equal(t, tc.band, services.ClassifyLoad(total), "%v%% must classify as %s", tc.points, tc.band)
	}
}

func TestWorkloadService_ForPerson(t *testing.T) {
	f := setupAssignmentService(t)
	workload := services.NewWorkloadService(f.repo, f.publisher)
	personID, titleID := uuid.New(), uuid.New()

	// No current assignments: zero load, low band.
	load, err := workload.ForPerson(f.ctx, personID)
	require.NoError(t, err)
	assert.Equal(t, 0, load.TotalPoints)
	assert.Equal(t, services.BandLow, load.Band)

	_, err = f.svc.Create(f.ctx, createDTO(personID, uuid.New(), titleID, 60))
	require.NoError(t, err)

	load, err = workload.ForPerson(f.ctx, personID)
	require.NoError(t, err)
	assert.Equal(t, 60, load.TotalPoints)
	assert.Equal(t, services.BandNormal, load.Band)
	assert.Len(t, load.Assignments, 1)
}

// Mirrors a full lifecycle: a 60% load grows to 80%, a second 50% assignment
// tips the person into overload, terminating it restores a normal load.
func TestWorkloadService_LifecycleScenario(t *testing.T) {
	f := setupAssignmentService(t)
	workload := services.NewWorkloadService(f.repo, f.publisher)
	personID, titleID := uuid.New(), uuid.New()
	unitA, unitB := uuid.New(), uuid.New()

	first, err := f.svc.Create(f.ctx, createDTO(personID, unitA, titleID, 60))
	require.NoError(t, err)

	load, err := workload.ForPerson(f.ctx, personID)
	require.NoError(t, err)
	assert.Equal(t, 60, load.TotalPoints)
	assert.Equal(t, services.BandNormal, load.Band)

	// Update to 80%: the cache must reflect the new version, not the stale 60.
	_, err = f.svc.Update(f.ctx, first.ID(), &assignment.UpdateDTO{Percentage: 80})
	require.NoError(t, err)

	load, err = workload.ForPerson(f.ctx, personID)
	require.NoError(t, err)
	assert.Equal(t, 80, load.TotalPoints)
	assert.Equal(t, services.BandNormal, load.Band)

	// A second assignment of 50% pushes the total to 130: overloaded.
	second, err := f.svc.Create(f.ctx, createDTO(personID, unitB, titleID, 50))
	require.NoError(t, err)

	load, err = workload.ForPerson(f.ctx, personID)
	require.NoError(t, err)
	assert.Equal(t, 130, load.TotalPoints)
	assert.Equal(t, services.BandOverloaded, load.Band)
	assert.Len(t, load.Assignments, 2)

	// Terminating the second assignment brings the person back to 80.
	_, err = f.svc.Terminate(f.ctx, second.ID(), nil)
	require.NoError(t, err)

	load, err = workload.ForPerson(f.ctx, personID)
	require.NoError(t, err)
	assert.Equal(t, 80, load.TotalPoints)
	assert.Equal(t, services.BandNormal, load.Band)
	assert.Len(t, load.Assignments, 1)
}

func TestWorkloadService_Report(t *testing.T) {
	f := setupAssignmentService(t)
	workload := services.NewWorkloadService(f.repo, f.publisher)
	titleID := uuid.New()
	light, heavy := uuid.New(), uuid.New()

	_, err := f.svc.Create(f.ctx, createDTO(light, uuid.New(), titleID, 30))
	require.NoError(t, err)
	_, err = f.svc.Create(f.ctx, createDTO(heavy, uuid.New(), titleID, 100))
	require.NoError(t, err)
	_, err = f.svc.Create(f.ctx, createDTO(heavy, uuid.New(), titleID, 25))
	require.NoError(t, err)

	report, err := workload.Report(f.ctx)
	require.NoError(t, err)
	require.Len(t, report, 2)

	byPerson := map[uuid.UUID]services.PersonWorkload{}
	for _, item := range report {
		byPerson[item.PersonID] = item
	}
	assert.Equal(t, 30, byPerson[light].TotalPoints)
	assert.Equal(t, services.BandLow, byPerson[light].Band)
	assert.Equal(t, 125, byPerson[heavy].TotalPoints)
	assert.Equal(t, services.BandOverloaded, byPerson[heavy].Band)

	// Terminated assignments drop out of the report entirely.
	current, err := f.repo.CurrentByPerson(f.ctx, light)
	require.NoError(t, err)
	require.Len(t, current, 1)
	_, err = f.svc.Terminate(f.ctx, current[0].ID(), nil)
	require.NoError(t, err)

	report, err = workload.Report(f.ctx)
	require.NoError(t, err)
	require.Len(t, report, 1)
	assert.Equal(t, heavy, report[0].PersonID)
}
