package api

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return v
}

// bind decodes and validates the request body, answering 400 on failure.
func (h *Handler) bind(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(r, dst); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request", Fields: fieldErrors(err)})
		return false
	}
	return true
}

func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fieldKey(fe.Namespace())] = messageForTag(fe.Tag(), fe.Param())
		}
		return out
	}
	out["_"] = "invalid request"
	return out
}

// fieldKey drops the root struct name from a namespace such as
// "createOrderRequest.items[0].name".
func fieldKey(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "numeric":
		return "must contain digits only"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	case "oneof":
		return "must be one of: " + param
	case "gte":
		return "must be " + param + " or more"
	default:
		return "invalid value"
	}
}
