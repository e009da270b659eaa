package validators

import (
	"clubcal/cmd/internal/domain/entity"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Register installs the custom rules used by request structs and makes
// validation errors report json field names.
func Register(validate *validator.Validate) {
	validate.RegisterTagNameFunc(jsonName)
	_ = validate.RegisterValidation("appttype", IsAppointmentType)
	_ = validate.RegisterValidation("responsetype", IsResponseType)
	_ = validate.RegisterValidation("nodupes", NoDupes)
	_ = validate.RegisterValidation("loglevel", IsLogLevel)
}

func IsAppointmentType(fl validator.FieldLevel) bool {
	return entity.AppointmentType(fl.Field().String()).IsValid()
}

func IsResponseType(fl validator.FieldLevel) bool {
	return entity.ResponseType(fl.Field().String()).IsValid()
}

func IsLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// NoDupes reports whether a slice of strings holds every value at most once.
func NoDupes(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice && field.Kind() != reflect.Array {
		return false
	}
	if field.Type().Elem().Kind() != reflect.String {
		return false
	}

	seen := make(map[string]struct{}, field.Len())
	for i := 0; i < field.Len(); i++ {
		v := field.Index(i).String()
		if _, ok := seen[v]; ok {
			return false
		}
		seen[v] = struct{}{}
	}
	return true
}

func jsonName(field reflect.StructField) string {
	for _, tag := range []string{"json", "yaml"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}
