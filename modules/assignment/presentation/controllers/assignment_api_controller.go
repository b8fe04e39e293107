package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/organigramma/organigramma/modules/assignment/domain/aggregates/assignment"
	"github.com/organigramma/organigramma/modules/assignment/presentation/mappers"
	"github.com/organigramma/organigramma/modules/assignment/services"
	"github.com/organigramma/organigramma/pkg/application"
	"github.com/organigramma/organigramma/pkg/configuration"
	"github.com/organigramma/organigramma/pkg/httpapi"
)

type AssignmentAPIController struct {
	app         application.Application
	assignments *services.AssignmentService
	basePath    string
}

func NewAssignmentAPIController(app application.Application) application.Controller {
	return &AssignmentAPIController{
		app:         app,
		assignments: app.Service(services.AssignmentService{}).(*services.AssignmentService),
		basePath:    "/assignments",
	}
}

func (c *AssignmentAPIController) Key() string {
	return c.basePath
}

func (c *AssignmentAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id}/terminate", c.Terminate).Methods(http.MethodPost)
	router.HandleFunc("/{id}/history", c.History).Methods(http.MethodGet)
}

func (c *AssignmentAPIController) List(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()
	query := r.URL.Query()

	params := &assignment.FindParams{Limit: conf.PageSize}
	if v := strings.TrimSpace(query.Get("limit")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= conf.MaxPageSize {
			params.Limit = parsed
		}
	}
	if v := strings.TrimSpace(query.Get("offset")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			params.Offset = parsed
		}
	}
	if v := strings.TrimSpace(query.Get("person_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "ASSIGNMENT_INVALID_FILTER", "person_id must be a uuid", nil)
			return
		}
		params.PersonID = &id
	}
	if v := strings.TrimSpace(query.Get("unit_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "ASSIGNMENT_INVALID_FILTER", "unit_id must be a uuid", nil)
			return
		}
		params.UnitID = &id
	}
	if v := strings.TrimSpace(query.Get("job_title_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "ASSIGNMENT_INVALID_FILTER", "job_title_id must be a uuid", nil)
			return
		}
		params.JobTitleID = &id
	}
	if v := strings.TrimSpace(query.Get("status")); v != "" {
		status := assignment.Status(v)
		if !status.IsValid() {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "ASSIGNMENT_INVALID_FILTER", "status must be current, historical or terminated", nil)
			return
		}
		params.Status = status
	}

	items, total, err := c.assignments.GetPaginated(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.AssignmentsToList(items, total))
}

func (c *AssignmentAPIController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ASSIGNMENT_INVALID_ID", "id must be a uuid", nil)
		return
	}

	a, err := c.assignments.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.AssignmentToViewModel(a))
}

func (c *AssignmentAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto assignment.CreateDTO
	if err := decodeJSON(r.Body, &dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ASSIGNMENT_INVALID_JSON", "invalid json body", nil)
		return
	}

	created, err := c.assignments.Create(r.Context(), &dto)
	observeOperation("create", err)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusCreated, mappers.AssignmentToViewModel(created))
}

func (c *AssignmentAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ASSIGNMENT_INVALID_ID", "id must be a uuid", nil)
		return
	}

	var dto assignment.UpdateDTO
	if err := decodeJSON(r.Body, &dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ASSIGNMENT_INVALID_JSON", "invalid json body", nil)
		return
	}

	updated, err := c.assignments.Update(r.Context(), id, &dto)
	observeOperation("update", err)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.AssignmentToViewModel(updated))
}

func (c *AssignmentAPIController) Terminate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ASSIGNMENT_INVALID_ID", "id must be a uuid", nil)
		return
	}

	var dto assignment.TerminateDTO
	if r.ContentLength != 0 {
		if err := decodeJSON(r.Body, &dto); err != nil {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "ASSIGNMENT_INVALID_JSON", "invalid json body", nil)
			return
		}
	}

	terminated, err := c.assignments.Terminate(r.Context(), id, &dto)
	observeOperation("terminate", err)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.AssignmentToViewModel(terminated))
}

func (c *AssignmentAPIController) History(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ASSIGNMENT_INVALID_ID", "id must be a uuid", nil)
		return
	}

	versions, err := c.assignments.History(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	lineageID := ""
	if len(versions) > 0 {
		lineageID = versions[0].LineageID().String()
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.HistoryToViewModel(lineageID, versions))
}
