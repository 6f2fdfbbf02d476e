package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

var messages = map[string]string{
	"invalid_location":      "Unknown location.",
	"invalid_date":          "Invalid date.",
	"date_in_past":          "Date is in the past.",
	"invalid_time_slot":     "Time slot is not offered on this date.",
	"slot_unavailable":      "Time slot is already booked.",
	"slot_taken":            "Time slot was booked by someone else.",
	"booking_not_found":     "Booking not found.",
	"invalid_transition":    "Booking status cannot change this way.",
	"cannot_cancel":         "Booking can no longer be cancelled.",
	"loyalty_not_found":     "Loyalty account not found.",
	"customer_not_found":    "Customer not found.",
	"admin_only":            "Admin access required.",
	"not_your_resource":     "Access denied.",
	"email_already_used":    "Email is already registered.",
	"invalid_email_domain":  "Email domain does not look valid.",
	"invalid_credentials":   "Invalid email or password.",
	"export_disabled":       "Report export is not configured.",
	"loyalty_update_failed": "Could not update loyalty, please retry.",
	"booking_create_failed": "Could not create booking, please retry.",
	"booking_update_failed": "Could not update booking, please retry.",
	"export_failed":         "Could not export report.",
	"invalid_request":       "Invalid request payload.",
	"missing_token":         "Authorization token required.",
	"invalid_token":         "Invalid or expired token.",
	"rate_limited":          "Too many requests, slow down.",
}

func messageFor(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return "Request failed."
}

// Respond maps err to a JSON error response. Unclassified errors become 500.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		Internal(c, "internal_error", "Unexpected error.")
		return
	}

	switch be.Kind {
	case KindValidation, KindInvalidTransition:
		BadRequest(c, be.Code, messageFor(be.Code))
	case KindNotFound:
		NotFound(c, be.Code, messageFor(be.Code))
	case KindRaceCondition:
		Conflict(c, be.Code, messageFor(be.Code))
	case KindForbidden:
		Forbidden(c, be.Code, messageFor(be.Code))
	case KindUnauthorized:
		Unauthorized(c, be.Code, messageFor(be.Code))
	default:
		Internal(c, be.Code, messageFor(be.Code))
	}
}
