package mappers

import (
	"time"

	"github.com/organigramma/organigramma/modules/assignment/domain/aggregates/assignment"
	"github.com/organigramma/organigramma/modules/assignment/presentation/viewmodels"
	"github.com/organigramma/organigramma/modules/assignment/services"
)

func AssignmentToViewModel(a assignment.Assignment) viewmodels.Assignment {
	vm := viewmodels.Assignment{
		ID:         a.ID().String(),
		LineageID:  a.LineageID().String(),
		Version:    a.Version(),
		PersonID:   a.PersonID().String(),
		UnitID:     a.UnitID().String(),
		JobTitleID: a.JobTitleID().String(),
		Percentage: a.PercentagePoints(),
		AdInterim:  a.IsAdInterim(),
		UnitBoss:   a.IsUnitBoss(),
		Notes:      a.Notes(),
		Status:     string(a.Status()),
		ValidFrom:  a.ValidFrom().UTC().Format(time.RFC3339),
		CreatedAt:  a.CreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt:  a.UpdatedAt().UTC().Format(time.RFC3339),
	}
	if validTo := a.ValidTo(); validTo != nil {
		vm.ValidTo = validTo.UTC().Format(time.RFC3339)
	}
	return vm
}

func AssignmentsToSlice(items []assignment.Assignment) []viewmodels.Assignment {
	out := make([]viewmodels.Assignment, 0, len(items))
	for _, a := range items {
		out = append(out, AssignmentToViewModel(a))
	}
	return out
}

func AssignmentsToList(items []assignment.Assignment, total int64) viewmodels.AssignmentList {
	return viewmodels.AssignmentList{Items: AssignmentsToSlice(items), Total: total}
}

func HistoryToViewModel(lineageID string, versions []assignment.Assignment) viewmodels.AssignmentHistory {
	return viewmodels.AssignmentHistory{
		LineageID: lineageID,
		Versions:  AssignmentsToSlice(versions),
	}
}

func WorkloadToViewModel(load services.PersonWorkload) viewmodels.PersonWorkload {
	return viewmodels.PersonWorkload{
		PersonID:    load.PersonID.String(),
		TotalPoints: load.TotalPoints,
		Band:        string(load.Band),
		Assignments: AssignmentsToSlice(load.Assignments),
	}
}

func WorkloadReportToViewModel(loads []services.PersonWorkload) viewmodels.WorkloadReport {
	out := viewmodels.WorkloadReport{Items: []viewmodels.PersonWorkload{}}
	for _, load := range loads {
		out.Items = append(out.Items, WorkloadToViewModel(load))
	}
	return out
}
