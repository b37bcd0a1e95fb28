package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMessage(t *testing.T) {
	err := New(ErrCodeNotFound, "report not found")
	assert.Equal(t, "NOT_FOUND: report not found", err.Error())

	wrapped := Wrap(stderrors.New("no rows"), ErrCodeDatabaseQuery, "lookup failed")
	assert.Equal(t, "DATABASE_QUERY: lookup failed (caused by: no rows)", wrapped.Error())
	assert.Equal(t, "no rows", stderrors.Unwrap(wrapped).Error())
}

func TestHTTPCodeMapping(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeFileAbsent, http.StatusNotFound},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeFormatError, http.StatusUnprocessableEntity},
		{ErrCodeDecodeFailed, http.StatusUnprocessableEntity},
		{ErrCodeAPIRateLimit, http.StatusTooManyRequests},
		{ErrCodeAnalysisFailed, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, New(tt.code, "x").GetHTTPCode(), string(tt.code))
	}
}

func TestFileAbsentErrorMessage(t *testing.T) {
	err := FileAbsentError("/mnt/media/kick.wav")

	assert.Equal(t, ErrCodeFileAbsent, err.Code)
	assert.Equal(t, "File not found: /mnt/media/kick.wav", err.Message)
	assert.Equal(t, "/mnt/media/kick.wav", err.Details["path"])
}

func TestIsAndGetCode(t *testing.T) {
	err := FormatError("mix.rpp", stderrors.New("bad tempo"))

	assert.True(t, Is(err, ErrCodeFormatError))
	assert.False(t, Is(err, ErrCodeNotFound))
	assert.Equal(t, ErrCodeFormatError, GetCode(err))
	assert.Equal(t, ErrCodeInternal, GetCode(stderrors.New("plain")))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPCode(stderrors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrCodeValidation, "bad input").WithDetail("field", "track")

	assert.Equal(t, "track", err.Details["field"])
}
