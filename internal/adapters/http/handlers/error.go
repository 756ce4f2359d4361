package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/stockledger/internal/core/logger"
	"github.com/rafaelleal24/stockledger/internal/core/serviceerrors"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func HandleError(c *gin.Context, err error) {
	var svcErr *serviceerrors.ServiceError
	if errors.As(err, &svcErr) {
		c.JSON(mapKindToHTTP(svcErr.Kind), ErrorResponse{Error: svcErr.Message, Kind: svcErr.Kind.String()})
		return
	}

	logger.Error(c.Request.Context(), "http: unexpected error", err, map[string]any{
		"http.route": c.FullPath(),
	})
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// HandleBindError reports a request body or query that could not be decoded.
func HandleBindError(c *gin.Context, err error) {
	HandleError(c, serviceerrors.NewValidationError("invalid request: "+err.Error()))
}

func mapKindToHTTP(kind serviceerrors.ErrorKind) int {
	switch kind {
	case serviceerrors.KindValidation:
		return http.StatusBadRequest
	case serviceerrors.KindNotFound:
		return http.StatusNotFound
	case serviceerrors.KindConflict, serviceerrors.KindDuplicateSKU, serviceerrors.KindInvalidTransition:
		return http.StatusConflict
	case serviceerrors.KindUnprocessableEntity, serviceerrors.KindInsufficientStock:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
