package gyazo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		code     int
		expected APIStatus
	}{
		{400, StatusInvalidRequest},
		{401, StatusUnauthenticated},
		{402, StatusProRequired},
		{403, StatusUnauthorized},
		{404, StatusNotFound},
		{422, StatusUnprocessable},
		{429, StatusRateLimited},
		{500, StatusUnexpected},
		{418, StatusUndocumented},
		{503, StatusUndocumented},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyStatus(tt.code))
		})
	}
}

func TestAPIError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &APIError{
			Message:    "API get request failed",
			Status:     StatusNotFound,
			StatusCode: 404,
			Body:       `{"message":"Not Found"}`,
		}
		assert.Equal(t, `API get request failed: not found ({"message":"Not Found"})`, err.Error())
	})

	t.Run("Undocumented includes code", func(t *testing.T) {
		err := &APIError{Message: "failed", Status: StatusUndocumented, StatusCode: 418, Body: "teapot"}
		assert.Contains(t, err.Error(), "418")
	})

	t.Run("IsRateLimited", func(t *testing.T) {
		assert.True(t, (&APIError{Status: ClassifyStatus(429)}).IsRateLimited())
		assert.False(t, (&APIError{Status: ClassifyStatus(500)}).IsRateLimited())
	})

	t.Run("IsUnauthorized", func(t *testing.T) {
		tests := []struct {
			code     int
			expected bool
		}{
			{401, true},
			{403, true},
			{404, false},
			{500, false},
		}

		for _, tt := range tests {
			err := &APIError{Status: ClassifyStatus(tt.code), StatusCode: tt.code}
			assert.Equal(t, tt.expected, err.IsUnauthorized())
		}
	})
}

func TestMissingCredentialError(t *testing.T) {
	var err error = &MissingCredentialError{Credential: CredentialDevice}
	assert.True(t, errors.Is(err, ErrMissingCredential))
	assert.Equal(t, "no device ID configured", err.Error())

	wrapped := fmt.Errorf("upload failed: %w", err)
	var missing *MissingCredentialError
	assert.True(t, errors.As(wrapped, &missing))
	assert.Equal(t, CredentialDevice, missing.Credential)
}

func TestDecodeErrorKeepsText(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := &DecodeError{Message: "decode failed", Text: `{"image_id":`, TypeName: "gyazo.Image", Err: cause}

	assert.Contains(t, err.Error(), `{"image_id":`)
	assert.Contains(t, err.Error(), "gyazo.Image")
	assert.ErrorIs(t, err, cause)
}
