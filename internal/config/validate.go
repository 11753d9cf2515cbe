package config

import (
	"github.com/go-playground/validator/v10"

	"github.com/hupe1980/cgmdust/geometry"
	"github.com/hupe1980/cgmdust/persistence"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	_ = validate.RegisterValidation("angunit", validateUnit)
	_ = validate.RegisterValidation("compression", validateCompression)
	validate.RegisterStructValidation(validateStorage, StorageConfig{})
}

func validateUnit(fl validator.FieldLevel) bool {
	_, err := geometry.ParseUnit(fl.Field().String())
	return err == nil
}

func validateCompression(fl validator.FieldLevel) bool {
	_, err := persistence.ParseCompression(fl.Field().String())
	return err == nil
}

// validateStorage requires a bucket for object store backends.
func validateStorage(sl validator.StructLevel) {
	s := sl.Current().Interface().(StorageConfig)
	if (s.Backend == "minio" || s.Backend == "s3") && s.Bucket == "" {
		sl.ReportError(s.Bucket, "Bucket", "Bucket", "required_for_backend", s.Backend)
	}
}
