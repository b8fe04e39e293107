package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/organigramma/organigramma/modules/org/domain/aggregates/jobtitle"
	"github.com/organigramma/organigramma/modules/org/presentation/mappers"
	"github.com/organigramma/organigramma/modules/org/services"
	"github.com/organigramma/organigramma/pkg/application"
	"github.com/organigramma/organigramma/pkg/configuration"
	"github.com/organigramma/organigramma/pkg/httpapi"
)

type JobTitleAPIController struct {
	app       application.Application
	jobTitles *services.JobTitleService
	basePath  string
}

func NewJobTitleAPIController(app application.Application) application.Controller {
	return &JobTitleAPIController{
		app:       app,
		jobTitles: app.Service(services.JobTitleService{}).(*services.JobTitleService),
		basePath:  "/job-titles",
	}
}

func (c *JobTitleAPIController) Key() string {
	return c.basePath
}

func (c *JobTitleAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func (c *JobTitleAPIController) List(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()

	limit := conf.PageSize
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= conf.MaxPageSize {
			limit = parsed
		}
	}
	offset := 0
	if v := strings.TrimSpace(r.URL.Query().Get("offset")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	items, total, err := c.jobTitles.GetPaginated(r.Context(), &jobtitle.FindParams{Q: q, Limit: limit, Offset: offset})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.JobTitlesToList(items, total))
}

func (c *JobTitleAPIController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "JOB_TITLE_INVALID_ID", "id must be a uuid", nil)
		return
	}

	j, err := c.jobTitles.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.JobTitleToViewModel(j))
}

func (c *JobTitleAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto jobtitle.CreateDTO
	if err := decodeJSON(r.Body, &dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "JOB_TITLE_INVALID_JSON", "invalid json body", nil)
		return
	}

	created, err := c.jobTitles.Create(r.Context(), &dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusCreated, mappers.JobTitleToViewModel(created))
}

func (c *JobTitleAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "JOB_TITLE_INVALID_ID", "id must be a uuid", nil)
		return
	}

	var dto jobtitle.UpdateDTO
	if err := decodeJSON(r.Body, &dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "JOB_TITLE_INVALID_JSON", "invalid json body", nil)
		return
	}

	updated, err := c.jobTitles.Update(r.Context(), id, &dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.JobTitleToViewModel(updated))
}

func (c *JobTitleAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "JOB_TITLE_INVALID_ID", "id must be a uuid", nil)
		return
	}

	if err := c.jobTitles.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
