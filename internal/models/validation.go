package models

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report fields by their JSON names so clients can map errors back to the payload.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// ValidationError lists every offending field of a payload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed on %s", strings.Join(names, ", "))
}

// Validate checks a create payload.
func (c OrderCreate) Validate() error {
	return check(c)
}

// orderUpdateCheck mirrors OrderUpdate with pointers so absent fields are skipped.
type orderUpdateCheck struct {
	Items       *[]OrderItem `json:"items" validate:"omitnil,min=1,dive"`
	TotalAmount *float64     `json:"total_amount" validate:"omitnil,gt=0"`
	Status      *string      `json:"status" validate:"omitnil,max=50"`
}

// Validate checks only the fields present in the patch.
func (p OrderUpdate) Validate() error {
	return check(orderUpdateCheck{
		Items:       p.Items.ptr(),
		TotalAmount: p.TotalAmount.ptr(),
		Status:      p.Status.ptr(),
	})
}

func check(s any) error {
	err := validatorInstance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		fields[fieldPath(e.Namespace())] = describe(e)
	}
	return &ValidationError{Fields: fields}
}

// fieldPath drops the root struct name: "OrderCreate.items[0].price" -> "items[0].price".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must contain at least %s item(s)", e.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", e.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "uuid":
		return "must be a valid UUID"
	default:
		return fmt.Sprintf("failed on the '%s' tag", e.Tag())
	}
}
