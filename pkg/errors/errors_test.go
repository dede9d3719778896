package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs_MatchesByCode(t *testing.T) {
	unknownFormat := New(CodeUnsupportedFormat, "unknown export format")
	emptyNote := New(CodeEmptyNote, "there is no note to export")

	assert.True(t, stderrors.Is(unknownFormat.WithDetail("rtf"), unknownFormat))
	assert.True(t, stderrors.Is(fmt.Errorf("export: %w", emptyNote), emptyNote))
	assert.False(t, stderrors.Is(emptyNote, unknownFormat))
	assert.False(t, stderrors.Is(unknownFormat, ErrInvalidParam))
}

func TestCodeToHTTPStatus(t *testing.T) {
	cases := map[ErrorCode]int{
		CodeInvalidParam:      http.StatusBadRequest,
		CodeUnsupportedFormat: http.StatusBadRequest,
		CodeEmptyNote:         http.StatusBadRequest,
		CodeEmptyMessage:      http.StatusBadRequest,
		CodeValidationFailed:  http.StatusUnprocessableEntity,
		CodeTooManyRequests:   http.StatusTooManyRequests,
		CodeSuperseded:        http.StatusConflict,
		CodeLLMUnavailable:    http.StatusServiceUnavailable,
		CodeExportFailed:      http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, New(code, "x").HTTPStatus, code)
	}
}

func TestAsAppError_WrapsPlainErrors(t *testing.T) {
	appErr := AsAppError(stderrors.New("boom"))
	assert.Equal(t, CodeUnknown, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus)

	assert.Same(t, ErrTooManyRequests, AsAppError(ErrTooManyRequests))
}
