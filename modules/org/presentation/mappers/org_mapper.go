package mappers

import (
	"time"

	"github.com/organigramma/organigramma/modules/org/domain/aggregates/jobtitle"
	"github.com/organigramma/organigramma/modules/org/domain/aggregates/unit"
	"github.com/organigramma/organigramma/modules/org/presentation/viewmodels"
	"github.com/organigramma/organigramma/modules/org/services"
)

func UnitToViewModel(u unit.Unit) viewmodels.Unit {
	vm := viewmodels.Unit{
		ID:          u.ID().String(),
		Name:        u.Name(),
		Code:        u.Code(),
		Description: u.Description(),
		Type:        string(u.Type()),
		Emoji:       u.Emoji(),
		CreatedAt:   u.CreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt:   u.UpdatedAt().UTC().Format(time.RFC3339),
	}
	if parentID := u.ParentID(); parentID != nil {
		vm.ParentID = parentID.String()
	}
	return vm
}

func UnitsToList(items []unit.Unit, total int64) viewmodels.UnitList {
	out := make([]viewmodels.Unit, 0, len(items))
	for _, u := range items {
		out = append(out, UnitToViewModel(u))
	}
	return viewmodels.UnitList{Items: out, Total: total}
}

func UnitsToSlice(items []unit.Unit) []viewmodels.Unit {
	out := make([]viewmodels.Unit, 0, len(items))
	for _, u := range items {
		out = append(out, UnitToViewModel(u))
	}
	return out
}

func JobTitleToViewModel(j jobtitle.JobTitle) viewmodels.JobTitle {
	return viewmodels.JobTitle{
		ID:          j.ID().String(),
		Name:        j.Name(),
		Code:        j.Code(),
		Description: j.Description(),
		CreatedAt:   j.CreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt:   j.UpdatedAt().UTC().Format(time.RFC3339),
	}
}

func JobTitlesToList(items []jobtitle.JobTitle, total int64) viewmodels.JobTitleList {
	out := make([]viewmodels.JobTitle, 0, len(items))
	for _, j := range items {
		out = append(out, JobTitleToViewModel(j))
	}
	return viewmodels.JobTitleList{Items: out, Total: total}
}

func TreeNodeToViewModel(node *services.TreeNode) viewmodels.TreeNode {
	vm := viewmodels.TreeNode{
		Unit:     UnitToViewModel(node.Unit),
		Children: []viewmodels.TreeNode{},
	}
	for _, child := range node.Children {
		vm.Children = append(vm.Children, TreeNodeToViewModel(child))
	}
	return vm
}

func TreeToViewModel(roots []*services.TreeNode) viewmodels.Tree {
	out := viewmodels.Tree{Roots: []viewmodels.TreeNode{}}
	for _, root := range roots {
		out.Roots = append(out.Roots, TreeNodeToViewModel(root))
	}
	return out
}

func SpanOfControlToViewModel(span services.SpanOfControl) viewmodels.SpanOfControl {
	return viewmodels.SpanOfControl{
		Unit:             UnitToViewModel(span.Unit),
		DirectChildren:   span.DirectChildren,
		TotalDescendants: span.TotalDescendants,
		DirectHeadcount:  span.DirectHeadcount,
		TotalHeadcount:   span.TotalHeadcount,
	}
}

func MatrixToViewModel(m services.Matrix) viewmodels.Matrix {
	out := viewmodels.Matrix{
		Units:     UnitsToSlice(m.Units),
		JobTitles: []viewmodels.JobTitle{},
		Cells:     []viewmodels.MatrixCell{},
	}
	for _, j := range m.JobTitles {
		out.JobTitles = append(out.JobTitles, JobTitleToViewModel(j))
	}
	for _, cell := range m.Cells {
		out.Cells = append(out.Cells, viewmodels.MatrixCell{
			UnitID:     cell.UnitID.String(),
			JobTitleID: cell.JobTitleID.String(),
			Headcount:  cell.Headcount,
		})
	}
	return out
}
