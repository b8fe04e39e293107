package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/organigramma/organigramma/pkg/httpapi"
	"github.com/organigramma/organigramma/pkg/serrors"
)

func decodeJSON(body io.ReadCloser, out any) error {
	defer func() { _ = body.Close() }()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

func writeServiceError(w http.ResponseWriter, err error) {
	if svcErr, ok := serrors.AsServiceError(err); ok {
		_ = httpapi.WriteError(w, svcErr.Status, svcErr.Code, svcErr.Message, nil)
		return
	}
	_ = httpapi.WriteError(w, http.StatusInternalServerError, "ORG_INTERNAL", "internal error", nil)
}
