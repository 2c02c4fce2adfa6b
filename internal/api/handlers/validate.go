package handlers

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/nikhilbhutani/voicechat/internal/apperr"
	"github.com/nikhilbhutani/voicechat/internal/language"
	"github.com/nikhilbhutani/voicechat/internal/pipeline"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validate.RegisterValidation("supported_language", func(fl validator.FieldLevel) bool {
			return language.IsSupported(fl.Field().String())
		})
	})
	return validate
}

// validateRequest reports one failing field as a validation error whose
// message is safe to return to the client. An unsupported language outranks
// any other field error.
func validateRequest(req any) error {
	err := getValidator().Struct(req)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return apperr.Wrap(apperr.KindValidation, "handlers.validate", "validation failed", err)
	}

	fe := fieldErrs[0]
	for _, candidate := range fieldErrs {
		if candidate.Tag() == "supported_language" {
			fe = candidate
			break
		}
	}
	switch fe.Tag() {
	case "supported_language":
		return pipeline.UnsupportedLanguage(fmt.Sprint(fe.Value()))
	case "required":
		if fe.Field() == "audio" {
			return apperr.New(apperr.KindValidation, "handlers.validate", "No audio provided.")
		}
		return apperr.New(apperr.KindValidation, "handlers.validate", fe.Field()+" is required")
	default:
		return apperr.New(apperr.KindValidation, "handlers.validate", fe.Field()+" is invalid")
	}
}
