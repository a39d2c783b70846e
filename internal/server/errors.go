package server

import (
	"errors"
	"net/http"
	"strings"

	announcementdomain "github.com/steeplehq/steeple/internal/announcement/domain"
	authdomain "github.com/steeplehq/steeple/internal/auth/domain"
	"github.com/steeplehq/steeple/internal/authorization"
	checkindomain "github.com/steeplehq/steeple/internal/checkin/domain"
	churchdomain "github.com/steeplehq/steeple/internal/church/domain"
	eventdomain "github.com/steeplehq/steeple/internal/event/domain"
	featuredomain "github.com/steeplehq/steeple/internal/feature/domain"
	"github.com/gin-gonic/gin"
	groupdomain "github.com/steeplehq/steeple/internal/group/domain"
	overridedomain "github.com/steeplehq/steeple/internal/override/domain"
	peopledomain "github.com/steeplehq/steeple/internal/people/domain"
	plandomain "github.com/steeplehq/steeple/internal/plan/domain"
	signupdomain "github.com/steeplehq/steeple/internal/signup/domain"
	subscriptiondomain "github.com/steeplehq/steeple/internal/subscription/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInternal           = errors.New("internal_error")
	ErrNotFound           = errors.New("not_found")
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrTooManyRequests    = errors.New("too_many_requests")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

// classifyErrorForLog feeds the request logger; it mirrors mapError
// without building response bodies.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	_ = status
	code := payload.Type
	if len(payload.Errors) > 0 {
		code = payload.Errors[0].Code
	}
	return payload.Type, code
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrInvalidSession),
		errors.Is(err, authdomain.ErrSessionNotFound),
		errors.Is(err, authdomain.ErrSessionExpired),
		errors.Is(err, authdomain.ErrSessionRevoked):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden),
		errors.Is(err, authorization.ErrForbidden),
		errors.Is(err, checkindomain.ErrSecurityCodeWrong):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case errors.Is(err, ErrConflict),
		errors.Is(err, authdomain.ErrUserExists),
		errors.Is(err, groupdomain.ErrAlreadyMember),
		errors.Is(err, checkindomain.ErrAlreadyCheckedIn),
		errors.Is(err, checkindomain.ErrSessionClosed),
		errors.Is(err, announcementdomain.ErrAlreadyPublished),
		errors.Is(err, subscriptiondomain.ErrPlanUnchanged),
		errors.Is(err, subscriptiondomain.ErrSubscriptionConflict):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case errors.Is(err, ErrTooManyRequests),
		errors.Is(err, checkindomain.ErrRateLimited):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "too_many_requests",
			Message: "too many requests",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, signupdomain.ErrInvalidRequest):
		return true
	case isChurchValidationError(err),
		isPeopleValidationError(err),
		isGroupValidationError(err),
		isEventValidationError(err),
		isCheckinValidationError(err),
		isAnnouncementValidationError(err),
		isSubscriptionValidationError(err),
		isOverrideValidationError(err),
		errors.Is(err, featuredomain.ErrInvalidKey):
		return true
	default:
		return false
	}
}

func isChurchValidationError(err error) bool {
	return errors.Is(err, churchdomain.ErrInvalidName) ||
		errors.Is(err, churchdomain.ErrInvalidID) ||
		errors.Is(err, churchdomain.ErrInvalidCampusMode) ||
		errors.Is(err, churchdomain.ErrInvalidChurch)
}

func isPeopleValidationError(err error) bool {
	return errors.Is(err, peopledomain.ErrInvalidChurch) ||
		errors.Is(err, peopledomain.ErrInvalidID) ||
		errors.Is(err, peopledomain.ErrInvalidName)
}

func isGroupValidationError(err error) bool {
	return errors.Is(err, groupdomain.ErrInvalidChurch) ||
		errors.Is(err, groupdomain.ErrInvalidID) ||
		errors.Is(err, groupdomain.ErrInvalidName) ||
		errors.Is(err, groupdomain.ErrInvalidRole)
}

func isEventValidationError(err error) bool {
	return errors.Is(err, eventdomain.ErrInvalidChurch) ||
		errors.Is(err, eventdomain.ErrInvalidID) ||
		errors.Is(err, eventdomain.ErrInvalidTitle) ||
		errors.Is(err, eventdomain.ErrInvalidTime)
}

func isCheckinValidationError(err error) bool {
	return errors.Is(err, checkindomain.ErrInvalidChurch) ||
		errors.Is(err, checkindomain.ErrInvalidID) ||
		errors.Is(err, checkindomain.ErrInvalidName)
}

func isAnnouncementValidationError(err error) bool {
	return errors.Is(err, announcementdomain.ErrInvalidChurch) ||
		errors.Is(err, announcementdomain.ErrInvalidID) ||
		errors.Is(err, announcementdomain.ErrInvalidTitle) ||
		errors.Is(err, announcementdomain.ErrInvalidPageToken)
}

func isSubscriptionValidationError(err error) bool {
	return errors.Is(err, subscriptiondomain.ErrInvalidChurch) ||
		errors.Is(err, subscriptiondomain.ErrInvalidPlan)
}

func isOverrideValidationError(err error) bool {
	return errors.Is(err, overridedomain.ErrInvalidChurch) ||
		errors.Is(err, overridedomain.ErrInvalidFeatureKey) ||
		errors.Is(err, overridedomain.ErrUnknownFeatureKey)
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, authdomain.ErrUserNotFound),
		errors.Is(err, churchdomain.ErrNotFound),
		errors.Is(err, peopledomain.ErrNotFound),
		errors.Is(err, groupdomain.ErrNotFound),
		errors.Is(err, groupdomain.ErrPersonNotFound),
		errors.Is(err, eventdomain.ErrNotFound),
		errors.Is(err, checkindomain.ErrSessionNotFound),
		errors.Is(err, checkindomain.ErrCheckinNotFound),
		errors.Is(err, checkindomain.ErrPersonNotFound),
		errors.Is(err, announcementdomain.ErrNotFound),
		errors.Is(err, featuredomain.ErrNotFound),
		errors.Is(err, plandomain.ErrNotFound),
		errors.Is(err, subscriptiondomain.ErrSubscriptionNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, signupdomain.ErrInvalidRequest):
		return "invalid_request"
	default:
		return strings.ReplaceAll(err.Error(), " ", "_")
	}
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}
