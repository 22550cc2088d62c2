package helper

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	es_translations "github.com/go-playground/validator/v10/translations/es"
)

var (
	translatorOnce sync.Once
	translator     ut.Translator
	translatorErr  error
)

// ValidationTranslator configures gin's validator to report JSON field names
// and returns the Spanish translator for its messages. Safe to call from
// several places; the engine is only configured once.
func ValidationTranslator() (ut.Translator, error) {
	translatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			translatorErr = errors.New("unexpected validator engine")
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)

		locale := es.New()
		uni := ut.New(locale, locale)
		translator, _ = uni.GetTranslator("es")
		translatorErr = es_translations.RegisterDefaultTranslations(v, translator)
	})
	return translator, translatorErr
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}
