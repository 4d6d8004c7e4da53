package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/identity-admin/internal/api/metrics"
	"github.com/99minutos/identity-admin/internal/core/domain"
)

// errorBody is the payload for every expected domain failure: the kind for
// programmatic matching, the message for humans.
type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// domainError maps an expected domain failure onto its transport response.
// A kind without a mapping here is a programming error — it is handed back
// as a plain error so the central error handler logs it and answers with a
// generic 500, never a guessed status.
func domainError(c echo.Context, e *domain.Error) error {
	var status int
	switch e.Kind {
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindAlreadyExists:
		status = http.StatusConflict
	case domain.KindValidation:
		status = http.StatusBadRequest
	default:
		return fmt.Errorf("unmapped domain error kind %q: %s", e.Kind, e.Message)
	}

	metrics.DomainErrorsTotal.WithLabelValues(string(e.Kind)).Inc()
	return c.JSON(status, errorBody{Kind: string(e.Kind), Message: e.Message})
}
