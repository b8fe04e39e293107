package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/organigramma/organigramma/modules/org/domain/aggregates/unit"
	"github.com/organigramma/organigramma/modules/org/presentation/mappers"
	"github.com/organigramma/organigramma/modules/org/services"
	"github.com/organigramma/organigramma/pkg/application"
	"github.com/organigramma/organigramma/pkg/configuration"
	"github.com/organigramma/organigramma/pkg/httpapi"
)

type UnitAPIController struct {
	app      application.Application
	units    *services.UnitService
	basePath string
}

func NewUnitAPIController(app application.Application) application.Controller {
	return &UnitAPIController{
		app:      app,
		units:    app.Service(services.UnitService{}).(*services.UnitService),
		basePath: "/units",
	}
}

func (c *UnitAPIController) Key() string {
	return c.basePath
}

func (c *UnitAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/{id}/move", c.Move).Methods(http.MethodPost)
}

func (c *UnitAPIController) List(w http.ResponseWriter, r *http.Request) {
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

	items, total, err := c.units.GetPaginated(r.Context(), &unit.FindParams{Q: q, Limit: limit, Offset: offset})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.UnitsToList(items, total))
}

func (c *UnitAPIController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "UNIT_INVALID_ID", "id must be a uuid", nil)
		return
	}

	u, err := c.units.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.UnitToViewModel(u))
}

func (c *UnitAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto unit.CreateDTO
	if err := decodeJSON(r.Body, &dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "UNIT_INVALID_JSON", "invalid json body", nil)
		return
	}

	created, err := c.units.Create(r.Context(), &dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusCreated, mappers.UnitToViewModel(created))
}

func (c *UnitAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "UNIT_INVALID_ID", "id must be a uuid", nil)
		return
	}

	var dto unit.UpdateDTO
	if err := decodeJSON(r.Body, &dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "UNIT_INVALID_JSON", "invalid json body", nil)
		return
	}

	updated, err := c.units.Update(r.Context(), id, &dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.UnitToViewModel(updated))
}

func (c *UnitAPIController) Move(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "UNIT_INVALID_ID", "id must be a uuid", nil)
		return
	}

	var dto unit.MoveDTO
	if err := decodeJSON(r.Body, &dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "UNIT_INVALID_JSON", "invalid json body", nil)
		return
	}

	moved, err := c.units.Move(r.Context(), id, &dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.UnitToViewModel(moved))
}

func (c *UnitAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "UNIT_INVALID_ID", "id must be a uuid", nil)
		return
	}

	if err := c.units.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
