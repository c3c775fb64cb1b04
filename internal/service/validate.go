// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"errors"
	"fmt"
	"html"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	"github.com/shootingzone/studio-cms/internal/apperr"
)

// richTextPolicy keeps safe formatting in section copy while stripping
// scripts, event handlers and the like.
var richTextPolicy = bluemonday.UGCPolicy()

// plainTextPolicy removes every tag from review text.
var plainTextPolicy = bluemonday.StrictPolicy()

// newValidator returns a validator that reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs struct validation and converts failures into an
// apperr validation error keyed by JSON field name.
func (s *ContentService) validateStruct(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Internal("validation failed", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		// Element errors from dive come back as "features[2]".
		if idx := strings.IndexByte(name, '['); idx > 0 {
			name = name[:idx]
		}
		if _, seen := fields[name]; !seen {
			fields[name] = reason(fe)
		}
	}
	return apperr.Validation(fields)
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}

// plainText strips every tag from s. StrictPolicy entity-encodes the text it
// keeps, so the result is unescaped to store what the client typed.
func plainText(s string) string {
	return html.UnescapeString(plainTextPolicy.Sanitize(s))
}

// sanitizeRich cleans optional rich text in place.
func sanitizeRich(s *string) *string {
	if s == nil {
		return nil
	}
	clean := richTextPolicy.Sanitize(*s)
	return &clean
}
