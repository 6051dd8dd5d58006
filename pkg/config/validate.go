package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"MarketGen/pkg/types"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Let numeric tags (gt, gte, lte) apply to decimal fields.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = validate.RegisterValidation("interval", func(fl validator.FieldLevel) bool {
		return types.IsValidInterval(types.Interval(fl.Field().String()))
	})

	validate.RegisterStructValidation(bounds, GeneratorConfig{})
}

// bounds enforces the cross-field price ordering: 0 < min < starting < max.
func bounds(sl validator.StructLevel) {
	c := sl.Current().Interface().(GeneratorConfig)
	if c.MinPrice.LessThanOrEqual(decimal.Zero) {
		sl.ReportError(c.MinPrice, "MinPrice", "MinPrice", "gt", "0")
		return
	}
	if c.MinPrice.GreaterThanOrEqual(c.MaxPrice) {
		sl.ReportError(c.MinPrice, "MinPrice", "MinPrice", "ltfield", "MaxPrice")
		return
	}
	if c.StartingPrice.LessThan(c.MinPrice) || c.StartingPrice.GreaterThan(c.MaxPrice) {
		sl.ReportError(c.StartingPrice, "StartingPrice", "StartingPrice", "betweenfield", "MinPrice/MaxPrice")
	}
}

// ConfigError reports the first violated invariant of a resolved config. All
// config errors are recoverable: fix the input and build again.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

// Validate checks a fully resolved config. It only consumes values — the
// defaulting pass fills them, validation never corrects them.
func (c *GeneratorConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ConfigError{Field: fe.Field(), Reason: reason(fe)}
	}
	return &ConfigError{Field: "config", Reason: err.Error()}
}

func reason(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "interval":
		return fmt.Sprintf("%s is not a supported interval", field)
	case "ltfield":
		return fmt.Sprintf("%s must be less than %s", field, fe.Param())
	case "betweenfield":
		return fmt.Sprintf("%s must lie between %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}
