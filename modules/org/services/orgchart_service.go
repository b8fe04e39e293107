package services

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/organigramma/organigramma/modules/org/domain/aggregates/jobtitle"
	"github.com/organigramma/organigramma/modules/org/domain/aggregates/unit"
	"github.com/organigramma/organigramma/modules/org/domain/orgchart"
)

// TreeNode is a unit with its resolved children, ordered by name.
type TreeNode struct {
	Unit     unit.Unit
	Children []*TreeNode
}

type SpanOfControl struct {
	Unit             unit.Unit
	DirectChildren   int
	TotalDescendants int
	DirectHeadcount  int
	TotalHeadcount   int
}

type Matrix struct {
	Units     []unit.Unit
	JobTitles []jobtitle.JobTitle
	Cells     []orgchart.MatrixCell
}

type OrgChartService struct {
	units     unit.Repository
	jobTitles jobtitle.Repository
	stats     orgchart.HeadcountReader
}

func NewOrgChartService(units unit.Repository, jobTitles jobtitle.Repository, stats orgchart.HeadcountReader) *OrgChartService {
	return &OrgChartService{units: units, jobTitles: jobTitles, stats: stats}
}

// forest indexes the whole hierarchy once so every traversal below is a map
// walk instead of a query per level.
type forest struct {
	byID     map[uuid.UUID]unit.Unit
	children map[uuid.UUID][]uuid.UUID
	roots    []uuid.UUID
}

func (s *OrgChartService) loadForest(ctx context.Context) (*forest, error) {
	all, err := s.units.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	f := &forest{
		byID:     make(map[uuid.UUID]unit.Unit, len(all)),
		children: make(map[uuid.UUID][]uuid.UUID, len(all)),
	}
	for _, u := range all {
		f.byID[u.ID()] = u
	}
	for _, u := range all {
		parentID := u.ParentID()
		if parentID == nil {
			f.roots = append(f.roots, u.ID())
			continue
		}
		if _, ok := f.byID[*parentID]; !ok {
			// Orphaned by out-of-band deletion, surface it as a root.
			f.roots = append(f.roots, u.ID())
			continue
		}
		f.children[*parentID] = append(f.children[*parentID], u.ID())
	}

	f.sortByName(f.roots)
	for _, ids := range f.children {
		f.sortByName(ids)
	}
	return f, nil
}

func (f *forest) sortByName(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		a, b := f.byID[ids[i]], f.byID[ids[j]]
		if a.Name() != b.Name() {
			return a.Name() < b.Name()
		}
		return a.Code() < b.Code()
	})
}

func (f *forest) build(id uuid.UUID) *TreeNode {
	node := &TreeNode{Unit: f.byID[id]}
	for _, childID := range f.children[id] {
		node.Children = append(node.Children, f.build(childID))
	}
	return node
}

// Tree returns the full hierarchy as a forest of root nodes.
func (s *OrgChartService) Tree(ctx context.Context) ([]*TreeNode, error) {
	f, err := s.loadForest(ctx)
	if err != nil {
		return nil, err
	}
	nodes := make([]*TreeNode, 0, len(f.roots))
	for _, rootID := range f.roots {
		nodes = append(nodes, f.build(rootID))
	}
	return nodes, nil
}

// Subtree returns the hierarchy rooted at the given unit.
func (s *OrgChartService) Subtree(ctx context.Context, id uuid.UUID) (*TreeNode, error) {
	f, err := s.loadForest(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := f.byID[id]; !ok {
		return nil, mapUnitError(unit.ErrNotFound)
	}
	return f.build(id), nil
}

// Ancestors returns the breadcrumb path from the root down to the unit,
// inclusive.
func (s *OrgChartService) Ancestors(ctx context.Context, id uuid.UUID) ([]unit.Unit, error) {
	f, err := s.loadForest(ctx)
	if err != nil {
		return nil, err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, mapUnitError(unit.ErrNotFound)
	}

	var path []unit.Unit
	seen := map[uuid.UUID]bool{}
	for {
		if seen[u.ID()] {
			break
		}
		seen[u.ID()] = true
		path = append(path, u)
		parentID := u.ParentID()
		if parentID == nil {
			break
		}
		parent, ok := f.byID[*parentID]
		if !ok {
			break
		}
		u = parent
	}

	// Collected leaf-first, flip to root-first.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// Descendants returns every unit below the given one in breadth-first order,
// excluding the unit itself.
func (s *OrgChartService) Descendants(ctx context.Context, id uuid.UUID) ([]unit.Unit, error) {
	f, err := s.loadForest(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := f.byID[id]; !ok {
		return nil, mapUnitError(unit.ErrNotFound)
	}

	var out []unit.Unit
	queue := append([]uuid.UUID(nil), f.children[id]...)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		out = append(out, f.byID[current])
		queue = append(queue, f.children[current]...)
	}
	return out, nil
}

// SpanOfControl reports how wide and deep a unit's responsibility is, both
// structurally and in current headcount.
func (s *OrgChartService) SpanOfControl(ctx context.Context, id uuid.UUID) (SpanOfControl, error) {
	f, err := s.loadForest(ctx)
	if err != nil {
		return SpanOfControl{}, err
	}
	u, ok := f.byID[id]
	if !ok {
		return SpanOfControl{}, mapUnitError(unit.ErrNotFound)
	}

	headcounts, err := s.stats.CurrentHeadcountByUnit(ctx)
	if err != nil {
		return SpanOfControl{}, err
	}

	span := SpanOfControl{
		Unit:            u,
		DirectChildren:  len(f.children[id]),
		DirectHeadcount: headcounts[id],
		TotalHeadcount:  headcounts[id],
	}
	queue := append([]uuid.UUID(nil), f.children[id]...)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		span.TotalDescendants++
		span.TotalHeadcount += headcounts[current]
		queue = append(queue, f.children[current]...)
	}
	return span, nil
}

// Matrix cross-tabulates current headcount by unit and job title. Units come
// back in tree order so a client can render rows without re-sorting.
func (s *OrgChartService) Matrix(ctx context.Context) (Matrix, error) {
	f, err := s.loadForest(ctx)
	if err != nil {
		return Matrix{}, err
	}

	titles, err := s.jobTitles.GetAll(ctx)
	if err != nil {
		return Matrix{}, err
	}
	sort.Slice(titles, func(i, j int) bool { return titles[i].Name() < titles[j].Name() })

	cells, err := s.stats.CurrentMatrix(ctx)
	if err != nil {
		return Matrix{}, err
	}

	var units []unit.Unit
	var walk func(id uuid.UUID)
	walk = func(id uuid.UUID) {
		units = append(units, f.byID[id])
		for _, childID := range f.children[id] {
			walk(childID)
		}
	}
	for _, rootID := range f.roots {
		walk(rootID)
	}

	return Matrix{Units: units, JobTitles: titles, Cells: cells}, nil
}
