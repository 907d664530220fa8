package handlers

import (
	"reflect"
	"strings"
	"sync"

	"github.com/SscSPs/ledger_books_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const accountTypeTag = "account_type"

var registerValidatorsOnce sync.Once

// RegisterValidators installs custom tags on gin's validator and reports fields by their JSON names.
func RegisterValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation(accountTypeTag, func(fl validator.FieldLevel) bool {
			return domain.AccountType(fl.Field().String()).IsValid()
		})
	})
}
