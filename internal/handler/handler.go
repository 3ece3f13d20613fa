package handler

import (
	"errors"
	"net/http"

	"github.com/andersonjr667/MeuControle/internal/repository"
	"github.com/andersonjr667/MeuControle/internal/util"

	"github.com/gin-gonic/gin"
)

// writeRepoError maps repository errors onto the uniform error envelope.
// fallback is used for unexpected errors.
func writeRepoError(c *gin.Context, err error, fallback string) {
	var verr *repository.ValidationError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "record not found")
	case errors.Is(err, repository.ErrPermissionDenied):
		util.Error(c, http.StatusForbidden, util.CodeAuth, "record belongs to another user")
	case errors.As(err, &verr):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, verr.Error())
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, fallback)
	}
}
