package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKinds(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("create booking: %w", ErrPersistence("booking_create_failed", cause))

	assert.True(t, IsKind(err, KindPersistence))
	assert.True(t, IsBusiness(err, "booking_create_failed"))
	assert.ErrorIs(t, err, cause)

	assert.True(t, IsKind(ErrValidation("x"), KindValidation))
	assert.False(t, IsKind(errors.New("plain"), KindValidation))
}

func TestRespond_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{ErrValidation("invalid_location"), http.StatusBadRequest, "invalid_location"},
		{ErrInvalidTransition("invalid_transition"), http.StatusBadRequest, "invalid_transition"},
		{ErrNotFound("booking_not_found"), http.StatusNotFound, "booking_not_found"},
		{ErrRaceCondition("slot_taken"), http.StatusConflict, "slot_taken"},
		{ErrForbidden("admin_only"), http.StatusForbidden, "admin_only"},
		{ErrUnauthorized("invalid_credentials"), http.StatusUnauthorized, "invalid_credentials"},
		{ErrPersistence("booking_create_failed", errors.New("db")), http.StatusInternalServerError, "booking_create_failed"},
		{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Respond(c, tc.err)

		assert.Equal(t, tc.status, w.Code, tc.code)
		var body HTTPError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tc.code, body.Code)
		assert.NotEmpty(t, body.Message)
	}
}
