package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/iota-uz/campus-sdk/pkg/serrors"
)

var ErrMalformedBody = serrors.NewError("MALFORMED_BODY", "גוף הבקשה אינו תקין")

// Decode reads the JSON request body into dst.
func Decode(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return ErrMalformedBody
	}
	return nil
}
