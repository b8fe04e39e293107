package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/organigramma/organigramma/modules/org/presentation/mappers"
	"github.com/organigramma/organigramma/modules/org/presentation/viewmodels"
	"github.com/organigramma/organigramma/modules/org/services"
	"github.com/organigramma/organigramma/pkg/application"
	"github.com/organigramma/organigramma/pkg/httpapi"
)

type OrgChartAPIController struct {
	app      application.Application
	chart    *services.OrgChartService
	basePath string
}

func NewOrgChartAPIController(app application.Application) application.Controller {
	return &OrgChartAPIController{
		app:      app,
		chart:    app.Service(services.OrgChartService{}).(*services.OrgChartService),
		basePath: "/orgchart",
	}
}

func (c *OrgChartAPIController) Key() string {
	return c.basePath
}

func (c *OrgChartAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/tree", c.Tree).Methods(http.MethodGet)
	router.HandleFunc("/tree/{id}", c.Subtree).Methods(http.MethodGet)
	router.HandleFunc("/matrix", c.Matrix).Methods(http.MethodGet)
	router.HandleFunc("/units/{id}/breadcrumbs", c.Breadcrumbs).Methods(http.MethodGet)
	router.HandleFunc("/units/{id}/descendants", c.Descendants).Methods(http.MethodGet)
	router.HandleFunc("/units/{id}/span", c.SpanOfControl).Methods(http.MethodGet)
}

func (c *OrgChartAPIController) Tree(w http.ResponseWriter, r *http.Request) {
	roots, err := c.chart.Tree(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.TreeToViewModel(roots))
}

func (c *OrgChartAPIController) Subtree(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "UNIT_INVALID_ID", "id must be a uuid", nil)
		return
	}

	node, err := c.chart.Subtree(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.TreeNodeToViewModel(node))
}

func (c *OrgChartAPIController) Matrix(w http.ResponseWriter, r *http.Request) {
	m, err := c.chart.Matrix(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.MatrixToViewModel(m))
}

func (c *OrgChartAPIController) Breadcrumbs(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "UNIT_INVALID_ID", "id must be a uuid", nil)
		return
	}

	path, err := c.chart.Ancestors(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.Breadcrumbs{Path: mappers.UnitsToSlice(path)})
}

func (c *OrgChartAPIController) Descendants(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "UNIT_INVALID_ID", "id must be a uuid", nil)
		return
	}

	items, err := c.chart.Descendants(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.Descendants{Items: mappers.UnitsToSlice(items)})
}

func (c *OrgChartAPIController) SpanOfControl(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "UNIT_INVALID_ID", "id must be a uuid", nil)
		return
	}

	span, err := c.chart.SpanOfControl(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.SpanOfControlToViewModel(span))
}
