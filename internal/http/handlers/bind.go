package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message,omitempty"`
}

// report validation failures under the json names clients send
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func jsonFieldName(sf reflect.StructField) string {
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return sf.Name
	}
	return name
}

func BindJSON(ctx *gin.Context, out interface{}) bool {
	err := ctx.ShouldBindJSON(out)

	if err != nil {
		RespondBadRequest(ctx, bindErrorMessage(err), parseBindError(err))

		return false
	}

	return true
}

func bindErrorMessage(err error) string {
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		return "Request body too large"
	}
	return "Invalid request body"
}

func parseBindError(err error) interface{} {
	// validator errors (struct bind tags)
	var validationErrors validator.ValidationErrors

	if errors.As(err, &validationErrors) {
		fields := make([]FieldError, 0, len(validationErrors))

		for _, fe := range validationErrors {
			fields = append(fields, FieldError{
				Field:   fieldPath(fe),
				Rule:    fe.Tag(),
				Param:   fe.Param(),
				Message: validationMessage(fe.Tag(), fe.Param()),
			})
		}
		return gin.H{"fields": fields}
	}

	var syntaxError *json.SyntaxError

	if errors.As(err, &syntaxError) {
		return gin.H{
			"json":   "invalid_json_syntax",
			"offset": syntaxError.Offset,
		}
	}

	// encoding/json already reports the path with json names
	var typeError *json.UnmarshalTypeError

	if errors.As(err, &typeError) {
		field := strings.TrimSpace(typeError.Field)

		return gin.H{
			"json":  "invalid_json_type",
			"field": field,
			"fields": []FieldError{
				{
					Field:   field,
					Rule:    "type",
					Message: fmt.Sprintf("must be of type %s", typeError.Type.String()),
				},
			},
		}
	}

	var maxBytesError *http.MaxBytesError

	if errors.As(err, &maxBytesError) {
		return gin.H{"limitBytes": maxBytesError.Limit}
	}

	if errors.Is(err, io.EOF) {
		return gin.H{"json": "empty_body"}
	}

	// final fallback if the error could not be deciphered
	return gin.H{"reason": err.Error()}
}

// fieldPath drops the root struct name from the namespace, e.g. "CreateMeetupRequest.ownerId" -> "ownerId".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok && rest != "" {
		return rest
	}
	return fe.Field()
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	case "datetime":
		return "must be a date formatted as YYYY-MM-DD"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(param, " ", ", ")
	default:
		if param != "" {
			return fmt.Sprintf("failed %s validation (%s)", rule, param)
		}
		return "failed " + rule + " validation"
	}
}
