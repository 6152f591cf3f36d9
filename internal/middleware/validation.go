package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/kSibalic/nba/internal/errors"
	"github.com/kSibalic/nba/pkg/contracts/domain"
)

// Query structs for the dataset endpoints. Fields are filled from the URL
// query by their `query` tag, then checked against their `validate` tag.

// LimitQuery is ?n=. Zero means the configured default.
type LimitQuery struct {
	N int `query:"n" json:"n" validate:"gte=0,lte=500"`
}

// StatQuery is ?stat=.
type StatQuery struct {
	Stat string `query:"stat" json:"stat" validate:"required,stat"`
}

// TopQuery is the ranking query ?stat=&n=&order=&dedup=.
type TopQuery struct {
	Stat  string `query:"stat" json:"stat" validate:"required,stat"`
	N     int    `query:"n" json:"n" validate:"gte=0,lte=500"`
	Order string `query:"order" json:"order" validate:"omitempty,oneof=asc desc ascending descending"`
	Dedup bool   `query:"dedup" json:"dedup"`
}

// HistogramQuery is ?stat=&bins=.
type HistogramQuery struct {
	Stat string `query:"stat" json:"stat" validate:"required,stat"`
	Bins int    `query:"bins" json:"bins" validate:"gte=0,lte=200"`
}

// ShotsQuery is ?n= for the synthetic shot chart.
type ShotsQuery struct {
	N int `query:"n" json:"n" validate:"gte=0,lte=1000"`
}

// ValidationMiddleware decodes and validates request parameters using struct tags
type ValidationMiddleware struct {
	validator *validator.Validate
	logger    *slog.Logger
}

// NewValidationMiddleware creates a new validation middleware
func NewValidationMiddleware(logger *slog.Logger) *ValidationMiddleware {
	v := validator.New()

	// Register custom validators
	v.RegisterValidation("stat", isStatField)

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &ValidationMiddleware{
		validator: v,
		logger:    logger.With(slog.String("component", "validation_middleware")),
	}
}

// DecodeQuery fills dst, a pointer to a struct with `query` tags, from the
// request's URL query and validates it. Absent parameters keep dst's value.
func (m *ValidationMiddleware) DecodeQuery(r *http.Request, dst interface{}) error {
	if err := decodeQuery(r.URL.Query(), dst); err != nil {
		m.logger.DebugContext(r.Context(), "query decode failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		return err
	}
	return m.ValidateStruct(dst)
}

// ValidateStruct validates a struct and returns validation errors
func (m *ValidationMiddleware) ValidateStruct(v interface{}) error {
	err := m.validator.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewInternalError(err.Error())
	}

	validationErrors := make([]apperrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		validationErrors = append(validationErrors, apperrors.ValidationError{
			Field:   fe.Field(),
			Message: m.formatValidationError(fe),
		})
	}
	return apperrors.NewValidationErrors(validationErrors)
}

func decodeQuery(values url.Values, dst interface{}) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("decode query: want pointer to struct, got %T", dst)
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := range rt.NumField() {
		name := rt.Field(i).Tag.Get("query")
		if name == "" || !values.Has(name) {
			continue
		}
		raw := strings.TrimSpace(values.Get(name))
		field := rv.Field(i)

		switch field.Kind() {
		case reflect.String:
			field.SetString(raw)
		case reflect.Int:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return apperrors.InvalidParameter(name, err)
			}
			field.SetInt(int64(n))
		case reflect.Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return apperrors.InvalidParameter(name, err)
			}
			field.SetBool(b)
		default:
			return fmt.Errorf("decode query: unsupported field kind %s for %q", field.Kind(), name)
		}
	}
	return nil
}

// formatValidationError formats validation error messages
func (m *ValidationMiddleware) formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "stat":
		return fmt.Sprintf("%s must name a numeric column, got %q", field, err.Value())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}

// Custom validators

func isStatField(fl validator.FieldLevel) bool {
	return domain.IsStatField(fl.Field().String())
}
