package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/m-mizutani/goerr/v2"
	"github.com/prodsync/pdgate/pkg/domain/model"
	"github.com/prodsync/pdgate/pkg/domain/types"
)

//go:embed openapi.yaml
var openapiSpec []byte

const maxRequestBodySize = 1 << 20

// requestSchema names a component schema and the string properties that hold timestamps
type requestSchema struct {
	name       string
	timestamps []string
}

var (
	prepareRequestSchema     = requestSchema{name: "PrepareRequest", timestamps: []string{"StartDate", "EndDate"}}
	getDownloadRequestSchema = requestSchema{name: "GetDownloadRequest"}
)

// validator checks request bodies against the embedded OpenAPI document
type validator struct {
	doc *openapi3.T
}

func newValidator(ctx context.Context) (*validator, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load OpenAPI document")
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, goerr.Wrap(err, "invalid OpenAPI document")
	}

	return &validator{doc: doc}, nil
}

// decode reads the request body, validates it and unmarshals it into dst. Problems are
// returned as model.ValidationErrors tagged with types.ErrTagValidation.
func (v *validator) decode(w http.ResponseWriter, r *http.Request, schema requestSchema, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
	if err != nil {
		return invalidBody(model.ValidationErrors{{Reason: err.Error(), Type: "value_error"}})
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return invalidBody(model.ValidationErrors{{Reason: "JSON decode error: " + err.Error(), Type: "value_error.jsondecode"}})
	}

	ref, ok := v.doc.Components.Schemas[schema.name]
	if !ok || ref.Value == nil {
		return goerr.New("schema not found", goerr.V("schema", schema.name))
	}

	if err := ref.Value.VisitJSON(raw, openapi3.MultiErrors()); err != nil {
		return invalidBody(toValidationErrors(err))
	}

	// Shape is valid, so the timestamp properties are present strings or numbers
	obj, _ := raw.(map[string]any)
	var verrs model.ValidationErrors
	for _, field := range schema.timestamps {
		value, err := json.Marshal(obj[field])
		if err == nil {
			var ts model.Timestamp
			err = ts.UnmarshalJSON(value)
		}
		if err != nil {
			verrs = append(verrs, &model.ValidationError{
				Field:  field,
				Reason: "invalid datetime format",
				Type:   "value_error.datetime",
			})
		}
	}
	if len(verrs) > 0 {
		return invalidBody(verrs)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return invalidBody(model.ValidationErrors{{Reason: err.Error(), Type: "value_error"}})
	}
	return nil
}

func invalidBody(verrs model.ValidationErrors) error {
	return goerr.Wrap(verrs, "invalid request body", goerr.T(types.ErrTagValidation))
}

func toValidationErrors(err error) model.ValidationErrors {
	var verrs model.ValidationErrors
	for _, e := range flattenErrors(err) {
		var schemaErr *openapi3.SchemaError
		if !errors.As(e, &schemaErr) {
			verrs = append(verrs, &model.ValidationError{Reason: e.Error(), Type: "value_error"})
			continue
		}

		verrs = append(verrs, &model.ValidationError{
			Field:  strings.Join(schemaErr.JSONPointer(), "."),
			Reason: schemaErr.Reason,
			Type:   "value_error." + schemaErr.SchemaField,
		})
	}
	return verrs
}

// flattenErrors expands nested openapi3.MultiError values
func flattenErrors(err error) []error {
	multi, ok := err.(openapi3.MultiError)
	if !ok {
		return []error{err}
	}

	var errs []error
	for _, e := range multi {
		errs = append(errs, flattenErrors(e)...)
	}
	return errs
}

func (v *validator) handleSpec(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, v.doc)
}
