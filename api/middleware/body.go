package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	pkgerrors "github.com/lumenfoto/studio-backend/pkg/errors"
)

const maxBufferedBody = 1 << 20

// bufferBody reads at most maxBufferedBody bytes and rewinds r.Body for the next handler.
func bufferBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBufferedBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "request body too large")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request")
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}
