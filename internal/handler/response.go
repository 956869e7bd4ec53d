package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/global-express/whatsapp-notifier/internal/domain"
	"github.com/global-express/whatsapp-notifier/internal/middleware"
)

// maxBodyBytes caps inbound payloads; notification bodies are small.
const maxBodyBytes = 64 << 10

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Caller-facing failure texts
const (
	configErrorMessage   = "Le service n'est pas configuré : identifiants Twilio manquants."
	internalErrorMessage = middleware.InternalErrorMessage
	invalidBodyMessage   = "Le corps de la requête doit être un objet JSON valide."
)

// JSON writes v as a JSON response
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// DecodeJSON decodes a JSON object request body into v. Unknown fields are
// ignored. Every failure is a domain.ValidationError.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return domain.NewValidationError("body", "request body is required")
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return domain.NewValidationError("body", "failed to read body")
	}
	if len(raw) > maxBodyBytes {
		return domain.NewValidationError("body", "request body too large")
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return domain.NewValidationError("body", "request body is required")
	}
	if raw[0] != '{' {
		return domain.NewValidationError("body", "request body must be a JSON object")
	}

	if err := json.Unmarshal(raw, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return domain.NewValidationError(typeErr.Field, "must be a "+typeErr.Type.String())
		}
		return domain.NewValidationError("body", "invalid JSON: "+err.Error())
	}

	return nil
}

// newValidator returns a validator reporting JSON field names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct converts validator failures into domain.ValidationErrors
func validateStruct(v *validator.Validate, req any) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := domain.ValidationErrors{Errors: make([]domain.ValidationError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		msg := "field is required"
		if fe.Tag() != "required" {
			msg = fmt.Sprintf("failed on %q", fe.Tag())
		}
		out.Errors = append(out.Errors, domain.NewValidationError(fe.Field(), msg))
	}
	return out
}

// clientErrorMessage renders a request validation failure for the caller,
// naming the offending field(s).
func clientErrorMessage(err error) string {
	var errs domain.ValidationErrors
	if errors.As(err, &errs) {
		fields := errs.Fields()
		if len(fields) == 1 {
			return fmt.Sprintf("Le champ '%s' est requis.", fields[0])
		}
		return fmt.Sprintf("Champs requis manquants : %s.", strings.Join(fields, ", "))
	}

	var ve domain.ValidationError
	if errors.As(err, &ve) {
		if ve.Field == "body" {
			return invalidBodyMessage
		}
		return fmt.Sprintf("Le champ '%s' est invalide : %s.", ve.Field, ve.Message)
	}

	return invalidBodyMessage
}
