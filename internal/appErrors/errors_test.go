package appErrors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDetails_DoesNotMutatePredefined(t *testing.T) {
	detailed := ErrInvalidTransition.WithDetails(map[string]string{"from": "hired", "to": "rejected"})

	assert.NotNil(t, detailed.Details)
	assert.Nil(t, ErrInvalidTransition.Details, "предопределенная ошибка не должна мутировать")
	assert.Equal(t, ErrInvalidTransition.Code, detailed.Code)
}

func TestIs_MatchesClones(t *testing.T) {
	detailed := ErrInvalidTransition.WithDetails(map[string]string{"from": "completed"})
	assert.True(t, Is(detailed, ErrInvalidTransition))

	wrapped := ErrInsufficientFunds.WithError(errors.New("balance 0"))
	assert.True(t, Is(wrapped, ErrInsufficientFunds))

	assert.False(t, Is(detailed, ErrInsufficientFunds))
}

func TestHTTPCodes(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, ErrInvalidCredentials.HTTPCode)
	assert.Equal(t, http.StatusConflict, ErrEmailAlreadyExists.HTTPCode)
	assert.Equal(t, http.StatusConflict, ErrInvalidTransition.HTTPCode)
	assert.Equal(t, http.StatusConflict, ErrDisputeAlreadyOpen.HTTPCode)
	assert.Equal(t, http.StatusUnprocessableEntity, ErrInsufficientFunds.HTTPCode)
	assert.Equal(t, http.StatusForbidden, ErrNotParticipant.HTTPCode)
	assert.Equal(t, http.StatusNotFound, ErrReferralNotFound.HTTPCode)
}

func TestMarshalJSON_OmitsInternal(t *testing.T) {
	wrapped := ErrInsufficientFunds.WithError(errors.New("secret internals"))
	data, err := wrapped.MarshalJSON()
	require.NoError(t, err)

	assert.Contains(t, string(data), string(CodeInsufficientFunds))
	assert.NotContains(t, string(data), "secret internals", "вложенная ошибка не утекает клиенту")
}

func TestDatabaseError_WrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := DatabaseError(cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode)
}
