// Package validation собирает настроенный валидатор входных данных.
//
// Помимо стандартных правил go-playground/validator регистрируются два
// прикладных правила:
//
//	strongpassword — минимум 8 символов, хотя бы одна буква, одна цифра
//	                 и один символ из набора @$!%*#?&;
//	pettype        — вид питомца из фиксированного перечня, без учёта регистра.
package validation

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/pet-registry/internal/models"
)

const passwordSymbols = "@$!%*#?&"

// New возвращает валидатор с зарегистрированными прикладными правилами.
func New() *validator.Validate {
	validate := validator.New()
	// Регистрация не возвращает ошибку при корректных аргументах,
	// поэтому результат сознательно игнорируется.
	_ = validate.RegisterValidation("strongpassword", strongPassword)
	_ = validate.RegisterValidation("pettype", petType)
	return validate
}

func strongPassword(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if len(value) < 8 {
		return false
	}
	var hasLetter, hasDigit, hasSymbol bool
	for _, r := range value {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}
	return hasLetter && hasDigit && hasSymbol
}

func petType(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	for _, t := range models.PetTypes {
		if value == t {
			return true
		}
	}
	return false
}
