package api

import (
	"errors"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/tripnest/inputguard/pkg/bodyguard"
	"github.com/tripnest/inputguard/pkg/sanitizer"
)

var knownContexts = []any{
	sanitizer.ContextText, sanitizer.ContextEmail, sanitizer.ContextURL,
	sanitizer.ContextPhone, sanitizer.ContextFilename, sanitizer.ContextSQL,
	sanitizer.ContextJSON, sanitizer.ContextRichText,
}

// ValidateRequest is the body of POST /v1/validate.
type ValidateRequest struct {
	Input   *string           `json:"input"`
	Options sanitizer.Options `json:"options"`
}

func (r ValidateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Input, validation.NotNil.Error("is required")),
		validation.Field(&r.Options, validation.By(validateOptions)),
	)
}

func validateOptions(value any) error {
	opts, _ := value.(sanitizer.Options)
	return validation.ValidateStruct(&opts,
		validation.Field(&opts.Type, validation.In(knownContexts...).Error("must be a known context")),
		validation.Field(&opts.MaxLength, validation.Min(0)),
	)
}

// DetectRequest is the body of POST /v1/detect.
type DetectRequest struct {
	Input *string `json:"input"`
}

func (r DetectRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Input, validation.NotNil.Error("is required")),
	)
}

// DetectResponse reports which detectors matched.
type DetectResponse struct {
	XSS bool `json:"xss"`
	SQL bool `json:"sql"`
}

// decodeRequest reads a JSON body of at most limit bytes into dst and
// validates it.
func decodeRequest(w http.ResponseWriter, r *http.Request, limit int64, dst validation.Validatable) error {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return bodyguard.ErrBodyTooLarge
		}
		return errors.Join(bodyguard.ErrMalformedJSON, err)
	}
	if err := responseJSON.Unmarshal(data, dst); err != nil {
		return bodyguard.ErrMalformedJSON
	}
	return dst.Validate()
}
