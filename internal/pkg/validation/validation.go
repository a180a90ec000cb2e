// Package validation membungkus go-playground/validator dengan pesan berbahasa Indonesia
// dan nama field mengikuti tag json.
package validation

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/id"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	id_translations "github.com/go-playground/validator/v10/translations/id"

	"sdm-yayasan-backend/internal/pkg/apperror"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags
	tanggalTag  = "tanggal"
	jamTag      = "jam"
	notBlankTag = "notblank"
)

func init() {
	Validate = validator.New()

	_id := id.New()
	uni := ut.New(_id, _id)
	Translator, _ = uni.GetTranslator("id")
	_ = id_translations.RegisterDefaultTranslations(Validate, Translator)

	// Use JSON tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	_ = Validate.RegisterValidation(tanggalTag, layoutValidation("2006-01-02"))
	_ = Validate.RegisterValidation(jamTag, layoutValidation("15:04"))
	_ = Validate.RegisterValidation(notBlankTag, notBlankValidation)

	registerCustomValidationsTranslations(tanggalTag, jamTag, notBlankTag)
}

// registerCustomValidationsTranslations mendaftarkan pesan untuk tag buatan sendiri.
// RegisterTranslation butuh fungsi registrasi, tapi translator sudah terdaftar sehingga cukup noop.
func registerCustomValidationsTranslations(tags ...string) {
	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range tags {
		_ = Validate.RegisterTranslation(tag, Translator, registerFn, translateCustomValidationErrs)
	}
}

func translateCustomValidationErrs(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case tanggalTag:
		return fe.Field() + " harus berformat YYYY-MM-DD"
	case jamTag:
		return fe.Field() + " harus berformat HH:MM"
	case notBlankTag:
		return fe.Field() + " tidak boleh kosong"
	default:
		return fe.Field() + " tidak valid"
	}
}

func layoutValidation(layout string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		if str == "" {
			return true // gunakan tag required untuk mewajibkan
		}
		_, err := time.Parse(layout, str)
		return err == nil
	}
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

// Fields memvalidasi s dan mengembalikan pesan per field. Nil berarti valid.
func Fields(s interface{}) map[string]string {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Translate(Translator)
	}
	return out
}

// Struct memvalidasi s dan mengembalikan *apperror.Error berstatus 422 bila ada yang salah.
func Struct(s interface{}) error {
	if fields := Fields(s); fields != nil {
		return apperror.Validation(fields)
	}
	return nil
}
