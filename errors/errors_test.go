package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapToHTTPStatus(t *testing.T) {
	req := require.New(t)

	req.Equal(http.StatusOK, MapToHTTPStatus(nil))
	req.Equal(http.StatusBadRequest, MapToHTTPStatus(fmt.Errorf("%w: nome", ErrValidation)))
	req.Equal(http.StatusBadRequest, MapToHTTPStatus(ErrMissingProtocol))
	req.Equal(http.StatusNotFound, MapToHTTPStatus(fmt.Errorf("get chat 123: %w", ErrChatNotFound)))
	req.Equal(http.StatusInternalServerError, MapToHTTPStatus(fmt.Errorf("%w: disk full", ErrPersistence)))
	req.Equal(http.StatusInternalServerError, MapToHTTPStatus(fmt.Errorf("boom")))
}
