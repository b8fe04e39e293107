package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/organigramma/organigramma/modules/assignment/presentation/mappers"
	"github.com/organigramma/organigramma/modules/assignment/services"
	"github.com/organigramma/organigramma/pkg/application"
	"github.com/organigramma/organigramma/pkg/httpapi"
)

type WorkloadAPIController struct {
	app      application.Application
	workload *services.WorkloadService
	basePath string
}

func NewWorkloadAPIController(app application.Application) application.Controller {
	return &WorkloadAPIController{
		app:      app,
		workload: app.Service(services.WorkloadService{}).(*services.WorkloadService),
		basePath: "/workload",
	}
}

func (c *WorkloadAPIController) Key() string {
	return c.basePath
}

func (c *WorkloadAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/report", c.Report).Methods(http.MethodGet)
	router.HandleFunc("/persons/{id}", c.ForPerson).Methods(http.MethodGet)
}

func (c *WorkloadAPIController) Report(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	loads, err := c.workload.Report(r.Context())
	workloadReportDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.WorkloadReportToViewModel(loads))
}

func (c *WorkloadAPIController) ForPerson(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "PERSON_INVALID_ID", "id must be a uuid", nil)
		return
	}

	load, err := c.workload.ForPerson(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.WorkloadToViewModel(load))
}
