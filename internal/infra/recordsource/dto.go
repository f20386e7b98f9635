package recordsource

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aalvaropc/statemelt/internal/domain"
)

// recordDTO is the decoded shape of one state before validation.
// Pointers distinguish a missing field from a zero value.
type recordDTO struct {
	Name              *string  `json:"name" yaml:"name" validate:"required"`
	ObesityPercentage *float64 `json:"obesity_percentage" yaml:"obesity_percentage" validate:"required,finite"`

	McDonalds *float64 `json:"McDonalds" yaml:"McDonalds" validate:"required,finite"`
	Starbucks *float64 `json:"Starbucks" yaml:"Starbucks" validate:"required,finite"`
	Subway    *float64 `json:"Subway" yaml:"Subway" validate:"required,finite"`
	TacoBell  *float64 `json:"Taco_Bell" yaml:"Taco_Bell" validate:"required,finite"`
}

// Column names as they appear in every source format.
const (
	colName    = "name"
	colObesity = "obesity_percentage"
)

var recordColumns = []string{
	colName,
	colObesity,
	string(domain.ChainMcDonalds),
	string(domain.ChainStarbucks),
	string(domain.ChainSubway),
	string(domain.ChainTacoBell),
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		if f.Kind() == reflect.Ptr {
			if f.IsNil() {
				return true
			}
			f = f.Elem()
		}
		switch f.Kind() {
		case reflect.Float32, reflect.Float64:
			return !math.IsNaN(f.Float()) && !math.IsInf(f.Float(), 0)
		default:
			return true
		}
	})
	return v
}

func (l *Loader) mapAndValidate(path string, dtos []recordDTO) ([]domain.InputRecord, error) {
	out := make([]domain.InputRecord, 0, len(dtos))
	for i, d := range dtos {
		if err := l.validate.Struct(d); err != nil {
			var ves validator.ValidationErrors
			if errors.As(err, &ves) && len(ves) > 0 {
				fe := ves[0]
				return nil, invalidRecord(path, fmt.Sprintf("records[%d].%s", i, fe.Field()), describe(fe))
			}
			return nil, invalidRecord(path, fmt.Sprintf("records[%d]", i), err.Error())
		}

		out = append(out, domain.InputRecord{
			Name:              *d.Name,
			ObesityPercentage: *d.ObesityPercentage,
			McDonalds:         *d.McDonalds,
			Starbucks:         *d.Starbucks,
			Subway:            *d.Subway,
			TacoBell:          *d.TacoBell,
		})
	}
	return out, nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "finite":
		return "must be a finite number"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

func invalidRecord(path, field, msg string) error {
	return &domain.OpError{
		Op:   "recordsource.validate",
		Kind: domain.KindInvalidRecord,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidRecord),
	}
}
