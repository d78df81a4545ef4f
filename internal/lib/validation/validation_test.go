package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type passwordProbe struct {
	Password string `validate:"strongpassword"`
}

type typeProbe struct {
	Type string `validate:"pettype"`
}

func TestStrongPassword(t *testing.T) {
	validate := New()

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"валидный пароль", "Password1!", true},
		{"минимальная длина", "abcd12@h", true},
		{"слишком короткий", "Ab1@", false},
		{"без цифры", "Password!", false},
		{"без буквы", "12345678!", false},
		{"без символа", "Password1", false},
		{"символ вне набора", "Password1^", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(passwordProbe{Password: tt.password})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestPetType(t *testing.T) {
	validate := New()

	tests := []struct {
		name    string
		petType string
		valid   bool
	}{
		{"собака", "dog", true},
		{"кот в верхнем регистре", "CAT", true},
		{"смешанный регистр", "Bird", true},
		{"неизвестный вид", "dragon", false},
		{"пустой вид", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(typeProbe{Type: tt.petType})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
