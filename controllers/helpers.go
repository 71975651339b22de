package controllers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"laundryos-backend/store"
	"laundryos-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const notFoundMessage = "Not found"

// parseID reads the :id path parameter. On failure it has already responded:
// 422 for text that is not an integer, 404 for an integer no record can have.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		utils.RespondWithValidation(c, []utils.FieldError{{Field: "id", Error: "must be an integer"}})
		return 0, false
	}
	if err != nil || id <= 0 || id > math.MaxUint32 {
		utils.RespondWithError(c, http.StatusNotFound, notFoundMessage)
		return 0, false
	}
	return uint(id), true
}

// respondStoreError maps store errors onto 404/422 and anything else onto 500.
func respondStoreError(c *gin.Context, log *zap.Logger, err error, message string) {
	var verr *store.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, notFoundMessage)
	case errors.As(err, &verr):
		utils.RespondWithValidation(c, []utils.FieldError{{Field: verr.Field, Error: verr.Message}})
	default:
		log.Error(message,
			zap.Error(err),
			zap.String("request_id", utils.GetRequestID(c)),
		)
		utils.RespondWithError(c, http.StatusInternalServerError, message)
	}
}
