package handlers

import (
	"errors"
	"net/http"

	"casa_arbol_gateway/internal/backend"
	"casa_arbol_gateway/internal/services"
	"casa_arbol_gateway/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service errors to responses. Gateway-side
// validation sentinels become 400s; everything else is a backend error and
// goes through the taxonomy mapping.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingCredentials),
		errors.Is(err, services.ErrGuardianRequired),
		errors.Is(err, services.ErrNotificationTarget),
		errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, services.ErrClientIDRequired),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrUnknownPayStatus),
		errors.Is(err, services.ErrMissingPlanChoice),
		errors.Is(err, services.ErrTokenValueRequired),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrContentRequired):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), ""))
	case errors.Is(err, services.ErrNoSession):
		apiErr := utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication required.", "")
		apiErr.Next = c.Request.URL.Path
		utils.RespondWithError(c, apiErr)
	case errors.Is(err, services.ErrNoOrganization):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Select an organization first.", ""))
	default:
		respondBackendError(c, err)
	}
}

// respondBackendError maps a resource client error onto the response
// envelope. Pages render the discriminated kind; they never re-derive error
// shapes per call site. Cancellations produce no response at all since the
// requester is gone.
func respondBackendError(c *gin.Context, err error) {
	apiErr, ok := backend.AsAPIError(err)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Internal error.", err.Error()))
		return
	}
	if apiErr.Canceled {
		c.Abort()
		return
	}

	switch apiErr.Kind {
	case backend.KindValidation:
		out := utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeValidationFailed, apiErr.Message, "")
		if len(apiErr.Details) > 0 {
			out.Fields = apiErr.Details
		}
		utils.RespondWithError(c, out)
	case backend.KindAuth:
		status := apiErr.StatusCode
		code := utils.ErrCodeForbidden
		if status == http.StatusUnauthorized {
			code = utils.ErrCodeUnauthorized
		}
		out := utils.NewAPIError(status, code, apiErr.Message, "")
		if status == http.StatusUnauthorized {
			out.Next = c.Request.URL.Path
		}
		utils.RespondWithError(c, out)
	case backend.KindNotFound:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, apiErr.Message, ""))
	case backend.KindConflict:
		// Domain conflicts carry actionable messages; render them verbatim.
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, apiErr.Message, ""))
	case backend.KindTransport:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadGateway, utils.ErrCodeUpstreamUnavailable, "The membership service is unreachable. Try again.", apiErr.Message))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Internal error.", apiErr.Message))
	}
}

// respondBadRequest is the shape for request binding failures.
func respondBadRequest(c *gin.Context, err error) {
	utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid request payload.", err.Error()))
}

// pageParams reads skip/limit query parameters with sane defaults.
func pageParams(c *gin.Context) (int, int) {
	skip := utils.ParseIntDefault(c.Query("skip"), 0)
	limit := utils.ParseIntDefault(c.Query("limit"), 100)
	return skip, limit
}
