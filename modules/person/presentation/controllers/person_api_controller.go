package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/organigramma/organigramma/modules/person/domain/aggregates/person"
	"github.com/organigramma/organigramma/modules/person/presentation/mappers"
	"github.com/organigramma/organigramma/modules/person/services"
	"github.com/organigramma/organigramma/pkg/application"
	"github.com/organigramma/organigramma/pkg/configuration"
	"github.com/organigramma/organigramma/pkg/httpapi"
)

type PersonAPIController struct {
	app      application.Application
	persons  *services.PersonService
	basePath string
}

func NewPersonAPIController(app application.Application) application.Controller {
	return &PersonAPIController{
		app:      app,
		persons:  app.Service(services.PersonService{}).(*services.PersonService),
		basePath: "/persons",
	}
}

func (c *PersonAPIController) Key() string {
	return c.basePath
}

func (c *PersonAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func (c *PersonAPIController) List(w http.ResponseWriter, r *http.Request) {
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

	items, total, err := c.persons.GetPaginated(r.Context(), &person.FindParams{Q: q, Limit: limit, Offset: offset})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.PersonsToList(items, total))
}

func (c *PersonAPIController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "PERSON_INVALID_ID", "id must be a uuid", nil)
		return
	}

	p, err := c.persons.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.PersonToViewModel(p))
}

func (c *PersonAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto person.CreateDTO
	if err := decodeJSON(r.Body, &dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "PERSON_INVALID_JSON", "invalid json body", nil)
		return
	}

	created, err := c.persons.Create(r.Context(), &dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusCreated, mappers.PersonToViewModel(created))
}

func (c *PersonAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "PERSON_INVALID_ID", "id must be a uuid", nil)
		return
	}

	var dto person.UpdateDTO
	if err := decodeJSON(r.Body, &dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "PERSON_INVALID_JSON", "invalid json body", nil)
		return
	}

	updated, err := c.persons.Update(r.Context(), id, &dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.PersonToViewModel(updated))
}

func (c *PersonAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "PERSON_INVALID_ID", "id must be a uuid", nil)
		return
	}

	if err := c.persons.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
