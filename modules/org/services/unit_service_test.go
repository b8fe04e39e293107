package services_test

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/organigramma/organigramma/modules/org/domain/aggregates/jobtitle"
	"github.com/organigramma/organigramma/modules/org/domain/aggregates/unit"
	"github.com/organigramma/organigramma/modules/org/domain/orgchart"
	"github.com/organigramma/organigramma/modules/org/services"
	"github.com/organigramma/organigramma/pkg/itf"
	"github.com/organigramma/organigramma/pkg/serrors"
)

type inMemoryUnitRepo struct {
	units       map[uuid.UUID]unit.Unit
	assignments map[uuid.UUID]bool
}

func newInMemoryUnitRepo() *inMemoryUnitRepo {
	return &inMemoryUnitRepo{
		units:       map[uuid.UUID]unit.Unit{},
		assignments: map[uuid.UUID]bool{},
	}
}

func (r *inMemoryUnitRepo) GetAll(_ context.Context) ([]unit.Unit, error) {
	out := make([]unit.Unit, 0, len(r.units))
	for _, u := range r.units {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code() < out[j].Code() })
	return out, nil
}

func (r *inMemoryUnitRepo) GetPaginated(ctx context.Context, params *unit.FindParams) ([]unit.Unit, int64, error) {
	all, _ := r.GetAll(ctx)
	if params != nil && params.Q != "" {
		q := strings.ToLower(params.Q)
		filtered := all[:0]
		for _, u := range all {
			if strings.Contains(strings.ToLower(u.Name()), q) || strings.Contains(strings.ToLower(u.Code()), q) {
				filtered = append(filtered, u)
			}
		}
		all = filtered
	}
	return all, int64(len(all)), nil
}

func (r *inMemoryUnitRepo) GetByID(_ context.Context, id uuid.UUID) (unit.Unit, error) {
	u, ok := r.units[id]
	if !ok {
		return unit.Unit{}, unit.ErrNotFound
	}
	return u, nil
}

func (r *inMemoryUnitRepo) GetByCode(_ context.Context, code string) (unit.Unit, error) {
	for _, u := range r.units {
		if u.Code() == code {
			return u, nil
		}
	}
	return unit.Unit{}, unit.ErrNotFound
}

func (r *inMemoryUnitRepo) Create(_ context.Context, u unit.Unit) (unit.Unit, error) {
	for _, existing := range r.units {
		if existing.Code() == u.Code() {
			return unit.Unit{}, unit.ErrCodeTaken
		}
	}
	now := time.Now()
	created := unit.Hydrate(uuid.New(), u.Name(), u.Code(), u.Description(), u.Type(), u.Emoji(), u.ParentID(), now, now)
	r.units[created.ID()] = created
	return created, nil
}

func (r *inMemoryUnitRepo) Update(_ context.Context, u unit.Unit) (unit.Unit, error) {
	existing, ok := r.units[u.ID()]
	if !ok {
		return unit.Unit{}, unit.ErrNotFound
	}
	for id, other := range r.units {
		if id != u.ID() && other.Code() == u.Code() {
			return unit.Unit{}, unit.ErrCodeTaken
		}
	}
	updated := unit.Hydrate(u.ID(), u.Name(), u.Code(), u.Description(), u.Type(), u.Emoji(), u.ParentID(), existing.CreatedAt(), time.Now())
	r.units[u.ID()] = updated
	return updated, nil
}

func (r *inMemoryUnitRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.units[id]; !ok {
		return unit.ErrNotFound
	}
	delete(r.units, id)
	return nil
}

func (r *inMemoryUnitRepo) HasChildren(_ context.Context, id uuid.UUID) (bool, error) {
	for _, u := range r.units {
		if parentID := u.ParentID(); parentID != nil && *parentID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *inMemoryUnitRepo) HasAssignments(_ context.Context, id uuid.UUID) (bool, error) {
	return r.assignments[id], nil
}

func setupUnitService(t *testing.T) (context.Context, *inMemoryUnitRepo, *services.UnitService) {
	t.Helper()
	env := itf.NewTestContext().Build(t)
	repo := newInMemoryUnitRepo()
	return env.Ctx, repo, services.NewUnitService(repo)
}

func mustCreateUnit(t *testing.T, ctx context.Context, svc *services.UnitService, name, code string, parentID *uuid.UUID) unit.Unit {
	t.Helper()
	dto := unit.CreateDTO{Name: name, Code: code, Type: string(unit.TypeOrganizational)}
	if parentID != nil {
		dto.ParentID = parentID.String()
	}
	created, err := svc.Create(ctx, &dto)
	require.NoError(t, err)
	return created
}

func TestUnitService_Create(t *testing.T) {
	ctx, _, svc := setupUnitService(t)

	root := mustCreateUnit(t, ctx, svc, "Direzione Generale", "dg", nil)
	assert.Equal(t, "DG", root.Code())
	assert.True(t, root.IsRoot())
	assert.Equal(t, unit.TypeOrganizational, root.Type())

	rootID := root.ID()
	child := mustCreateUnit(t, ctx, svc, "Risorse Umane", "HR", &rootID)
	require.NotNil(t, child.ParentID())
	assert.Equal(t, rootID, *child.ParentID())
}

func TestUnitService_Create_RejectsUnknownType(t *testing.T) {
	ctx, _, svc := setupUnitService(t)

	_, err := svc.Create(ctx, &unit.CreateDTO{Name: "Staff", Code: "STF", Type: "committee"})
	require.Error(t, err)
	svcErr, ok := serrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, svcErr.Status)
	assert.Equal(t, "UNIT_VALIDATION", svcErr.Code)
}

func TestUnitService_Create_ParentMustExist(t *testing.T) {
	ctx, _, svc := setupUnitService(t)

	missing := uuid.New()
	_, err := svc.Create(ctx, &unit.CreateDTO{Name: "Orphan", Code: "ORPH", Type: "organizational", ParentID: missing.String()})
	require.Error(t, err)
	svcErr, ok := serrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, svcErr.Status)
	assert.Equal(t, "UNIT_VALIDATION", svcErr.Code)
}

func TestUnitService_Move_RejectsCycles(t *testing.T) {
	ctx, _, svc := setupUnitService(t)

	root := mustCreateUnit(t, ctx, svc, "Root", "ROOT", nil)
	rootID := root.ID()
	mid := mustCreateUnit(t, ctx, svc, "Mid", "MID", &rootID)
	midID := mid.ID()
	leaf := mustCreateUnit(t, ctx, svc, "Leaf", "LEAF", &midID)

	// Self-parent.
	_, err := svc.Move(ctx, rootID, &unit.MoveDTO{NewParentID: rootID.String()})
	require.Error(t, err)
	svcErr, ok := serrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "UNIT_CYCLE", svcErr.Code)

	// Direct child as parent.
	_, err = svc.Move(ctx, rootID, &unit.MoveDTO{NewParentID: midID.String()})
	require.Error(t, err)
	svcErr, ok = serrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "UNIT_CYCLE", svcErr.Code)

	// Deeper descendant as parent.
	_, err = svc.Move(ctx, rootID, &unit.MoveDTO{NewParentID: leaf.ID().String()})
	require.Error(t, err)
	svcErr, ok = serrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "UNIT_CYCLE", svcErr.Code)
}

func TestUnitService_Move(t *testing.T) {
	ctx, _, svc := setupUnitService(t)

	rootA := mustCreateUnit(t, ctx, svc, "Root A", "RA", nil)
	rootB := mustCreateUnit(t, ctx, svc, "Root B", "RB", nil)
	rootAID := rootA.ID()
	child := mustCreateUnit(t, ctx, svc, "Child", "CH", &rootAID)

	moved, err := svc.Move(ctx, child.ID(), &unit.MoveDTO{NewParentID: rootB.ID().String()})
	require.NoError(t, err)
	require.NotNil(t, moved.ParentID())
	assert.Equal(t, rootB.ID(), *moved.ParentID())

	// Detaching makes the unit a root.
	detached, err := svc.Move(ctx, child.ID(), &unit.MoveDTO{})
	require.NoError(t, err)
	assert.True(t, detached.IsRoot())
}

func TestUnitService_Delete_Guards(t *testing.T) {
	ctx, repo, svc := setupUnitService(t)

	root := mustCreateUnit(t, ctx, svc, "Root", "ROOT", nil)
	rootID := root.ID()
	child := mustCreateUnit(t, ctx, svc, "Child", "CH", &rootID)

	err := svc.Delete(ctx, rootID)
	require.Error(t, err)
	svcErr, ok := serrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, svcErr.Status)
	assert.Equal(t, "UNIT_HAS_CHILDREN", svcErr.Code)

	repo.assignments[child.ID()] = true
	err = svc.Delete(ctx, child.ID())
	require.Error(t, err)
	svcErr, ok = serrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "UNIT_HAS_ASSIGNMENTS", svcErr.Code)

	repo.assignments[child.ID()] = false
	require.NoError(t, svc.Delete(ctx, child.ID()))
	require.NoError(t, svc.Delete(ctx, rootID))
}

type inMemoryJobTitleRepo struct {
	titles      map[uuid.UUID]jobtitle.JobTitle
	assignments map[uuid.UUID]bool
}

func newInMemoryJobTitleRepo() *inMemoryJobTitleRepo {
	return &inMemoryJobTitleRepo{
		titles:      map[uuid.UUID]jobtitle.JobTitle{},
		assignments: map[uuid.UUID]bool{},
	}
}

func (r *inMemoryJobTitleRepo) GetAll(_ context.Context) ([]jobtitle.JobTitle, error) {
	out := make([]jobtitle.JobTitle, 0, len(r.titles))
	for _, j := range r.titles {
		out = append(out, j)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code() < out[j].Code() })
	return out, nil
}

func (r *inMemoryJobTitleRepo) GetPaginated(ctx context.Context, _ *jobtitle.FindParams) ([]jobtitle.JobTitle, int64, error) {
	all, _ := r.GetAll(ctx)
	return all, int64(len(all)), nil
}

func (r *inMemoryJobTitleRepo) GetByID(_ context.Context, id uuid.UUID) (jobtitle.JobTitle, error) {
	j, ok := r.titles[id]
	if !ok {
		return jobtitle.JobTitle{}, jobtitle.ErrNotFound
	}
	return j, nil
}

func (r *inMemoryJobTitleRepo) GetByCode(_ context.Context, code string) (jobtitle.JobTitle, error) {
	for _, j := range r.titles {
		if j.Code() == code {
			return j, nil
		}
	}
	return jobtitle.JobTitle{}, jobtitle.ErrNotFound
}

func (r *inMemoryJobTitleRepo) Create(_ context.Context, j jobtitle.JobTitle) (jobtitle.JobTitle, error) {
	for _, existing := range r.titles {
		if existing.Code() == j.Code() {
			return jobtitle.JobTitle{}, jobtitle.ErrCodeTaken
		}
	}
	now := time.Now()
	created := jobtitle.Hydrate(uuid.New(), j.Name(), j.Code(), j.Description(), now, now)
	r.titles[created.ID()] = created
	return created, nil
}

func (r *inMemoryJobTitleRepo) Update(_ context.Context, j jobtitle.JobTitle) (jobtitle.JobTitle, error) {
	existing, ok := r.titles[j.ID()]
	if !ok {
		return jobtitle.JobTitle{}, jobtitle.ErrNotFound
	}
	updated := jobtitle.Hydrate(j.ID(), j.Name(), j.Code(), j.Description(), existing.CreatedAt(), time.Now())
	r.titles[j.ID()] = updated
	return updated, nil
}

func (r *inMemoryJobTitleRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.titles[id]; !ok {
		return jobtitle.ErrNotFound
	}
	delete(r.titles, id)
	return nil
}

func (r *inMemoryJobTitleRepo) HasAssignments(_ context.Context, id uuid.UUID) (bool, error) {
	return r.assignments[id], nil
}

func TestJobTitleService_CRUD(t *testing.T) {
	env := itf.NewTestContext().Build(t)
	ctx := env.Ctx
	repo := newInMemoryJobTitleRepo()
	svc := services.NewJobTitleService(repo)

	created, err := svc.Create(ctx, &jobtitle.CreateDTO{Name: "Engineer", Code: "eng"})
	require.NoError(t, err)
	assert.Equal(t, "ENG", created.Code())

	_, err = svc.Create(ctx, &jobtitle.CreateDTO{Name: "Other", Code: "ENG"})
	require.Error(t, err)
	svcErr, ok := serrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "JOB_TITLE_CODE_CONFLICT", svcErr.Code)

	updated, err := svc.Update(ctx, created.ID(), &jobtitle.UpdateDTO{Name: "Senior Engineer", Code: "ENG"})
	require.NoError(t, err)
	assert.Equal(t, "Senior Engineer", updated.Name())

	repo.assignments[created.ID()] = true
	err = svc.Delete(ctx, created.ID())
	require.Error(t, err)
	svcErr, ok = serrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "JOB_TITLE_HAS_ASSIGNMENTS", svcErr.Code)

	repo.assignments[created.ID()] = false
	require.NoError(t, svc.Delete(ctx, created.ID()))
}

type staticHeadcounts struct {
	matrix []orgchart.MatrixCell
	byUnit map[uuid.UUID]int
}

func (s staticHeadcounts) CurrentMatrix(context.Context) ([]orgchart.MatrixCell, error) {
	return s.matrix, nil
}

func (s staticHeadcounts) CurrentHeadcountByUnit(context.Context) (map[uuid.UUID]int, error) {
	return s.byUnit, nil
}

func TestOrgChartService_Tree(t *testing.T) {
	ctx, unitRepo, unitSvc := setupUnitService(t)

	root := mustCreateUnit(t, ctx, unitSvc, "Root", "ROOT", nil)
	rootID := root.ID()
	hr := mustCreateUnit(t, ctx, unitSvc, "HR", "HR", &rootID)
	eng := mustCreateUnit(t, ctx, unitSvc, "Engineering", "ENG", &rootID)
	engID := eng.ID()
	platform := mustCreateUnit(t, ctx, unitSvc, "Platform", "PLAT", &engID)

	chart := services.NewOrgChartService(unitRepo, newInMemoryJobTitleRepo(), staticHeadcounts{})

	roots, err := chart.Tree(ctx)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, rootID, roots[0].Unit.ID())
	require.Len(t, roots[0].Children, 2)
	// Children are name-ordered.
	assert.Equal(t, "Engineering", roots[0].Children[0].Unit.Name())
	assert.Equal(t, hr.ID(), roots[0].Children[1].Unit.ID())
	require.Len(t, roots[0].Children[0].Children, 1)
	assert.Equal(t, platform.ID(), roots[0].Children[0].Children[0].Unit.ID())

	subtree, err := chart.Subtree(ctx, engID)
	require.NoError(t, err)
	assert.Equal(t, engID, subtree.Unit.ID())
	require.Len(t, subtree.Children, 1)

	_, err = chart.Subtree(ctx, uuid.New())
	require.Error(t, err)
	svcErr, ok := serrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "UNIT_NOT_FOUND", svcErr.Code)

	path, err := chart.Ancestors(ctx, platform.ID())
	require.NoError(t, err)
	require.Len(t, path, 3)
	assert.Equal(t, rootID, path[0].ID())
	assert.Equal(t, engID, path[1].ID())
	assert.Equal(t, platform.ID(), path[2].ID())

	descendants, err := chart.Descendants(ctx, rootID)
	require.NoError(t, err)
	require.Len(t, descendants, 3)
	assert.Equal(t, "Engineering", descendants[0].Name())
	assert.Equal(t, "HR", descendants[1].Name())
	assert.Equal(t, "Platform", descendants[2].Name())
}

func TestOrgChartService_SpanOfControl(t *testing.T) {
	ctx, unitRepo, unitSvc := setupUnitService(t)

	root := mustCreateUnit(t, ctx, unitSvc, "Root", "ROOT", nil)
	rootID := root.ID()
	a := mustCreateUnit(t, ctx, unitSvc, "A", "A", &rootID)
	aID := a.ID()
	b := mustCreateUnit(t, ctx, unitSvc, "B", "B", &rootID)
	leaf := mustCreateUnit(t, ctx, unitSvc, "Leaf", "LEAF", &aID)

	chart := services.NewOrgChartService(unitRepo, newInMemoryJobTitleRepo(), staticHeadcounts{
		byUnit: map[uuid.UUID]int{
			rootID:    2,
			aID:       3,
			b.ID():    1,
			leaf.ID(): 4,
		},
	})

	span, err := chart.SpanOfControl(ctx, rootID)
	require.NoError(t, err)
	assert.Equal(t, 2, span.DirectChildren)
	assert.Equal(t, 3, span.TotalDescendants)
	assert.Equal(t, 2, span.DirectHeadcount)
	assert.Equal(t, 10, span.TotalHeadcount)

	span, err = chart.SpanOfControl(ctx, aID)
	require.NoError(t, err)
	assert.Equal(t, 1, span.DirectChildren)
	assert.Equal(t, 1, span.TotalDescendants)
	assert.Equal(t, 7, span.TotalHeadcount)
}

func TestOrgChartService_Matrix(t *testing.T) {
	ctx, unitRepo, unitSvc := setupUnitService(t)
	titleRepo := newInMemoryJobTitleRepo()
	titleSvc := services.NewJobTitleService(titleRepo)

	root := mustCreateUnit(t, ctx, unitSvc, "Root", "ROOT", nil)
	rootID := root.ID()
	eng := mustCreateUnit(t, ctx, unitSvc, "Engineering", "ENG", &rootID)

	developer, err := titleSvc.Create(ctx, &jobtitle.CreateDTO{Name: "Developer", Code: "DEV"})
	require.NoError(t, err)
	manager, err := titleSvc.Create(ctx, &jobtitle.CreateDTO{Name: "Manager", Code: "MGR"})
	require.NoError(t, err)

	chart := services.NewOrgChartService(unitRepo, titleRepo, staticHeadcounts{
		matrix: []orgchart.MatrixCell{
			{UnitID: eng.ID(), JobTitleID: developer.ID(), Headcount: 5},
			{UnitID: rootID, JobTitleID: manager.ID(), Headcount: 1},
		},
	})

	m, err := chart.Matrix(ctx)
	require.NoError(t, err)
	// Units come back in tree order, parents before children.
	require.Len(t, m.Units, 2)
	assert.Equal(t, rootID, m.Units[0].ID())
	assert.Equal(t, eng.ID(), m.Units[1].ID())
	require.Len(t, m.JobTitles, 2)
	assert.Equal(t, "Developer", m.JobTitles[0].Name())
	require.Len(t, m.Cells, 2)
}
