package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsInnerCode(t *testing.T) {
	inner := DataUnavailable("./missing.csv", fmt.Errorf("open: no such file"))
	wrapped := Wrap(inner, "load dataset")

	assert.Equal(t, CodeDataUnavailable, GetCode(wrapped))
	assert.True(t, Is(wrapped, CodeDataUnavailable))
	assert.Contains(t, wrapped.Error(), "load dataset")
	assert.Contains(t, wrapped.Error(), "no such file")
}

func TestWrapPlainErrorIsInternal(t *testing.T) {
	wrapped := Wrapf(fmt.Errorf("boom"), "step %d", 3)
	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Equal(t, "step 3: boom", wrapped.Error())
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestGetCodeThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", UnknownColumn("colour"))
	assert.Equal(t, CodeUnknownColumn, GetCode(err))
	assert.True(t, IsAppError(err))
	assert.Equal(t, "UNKNOWN", GetCode(fmt.Errorf("plain")))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{DataUnavailable("x", nil), http.StatusServiceUnavailable},
		{UnknownColumn("x"), http.StatusBadRequest},
		{InvalidInput("x"), http.StatusBadRequest},
		{UnhandledColumnCombination("bivariate(numeric)"), http.StatusInternalServerError},
		{fmt.Errorf("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), tt.err.Error())
	}
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeInvalidInput, fmt.Errorf("bad plot"))
	assert.Equal(t, CodeInvalidInput, GetCode(err))
	assert.Nil(t, WithCode(CodeInvalidInput, nil))
}
