package utils

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("user_role", validateUserRole); err != nil {
		return
	}
	if err := validate.RegisterValidation("exam_mode", validateExamMode); err != nil {
		return
	}
	if err := validate.RegisterValidation("exam_level", validateExamLevel); err != nil {
		return
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateUserRole(fl validator.FieldLevel) bool {
	role := fl.Field().String()
	validRoles := []string{"student", "admin"}

	for _, validRole := range validRoles {
		if role == validRole {
			return true
		}
	}
	return false
}

func validateExamMode(fl validator.FieldLevel) bool {
	mode := fl.Field().String()
	for _, valid := range []string{"Online", "Offline", "Hybrid"} {
		if mode == valid {
			return true
		}
	}
	return false
}

func validateExamLevel(fl validator.FieldLevel) bool {
	level := fl.Field().String()
	for _, valid := range []string{"National", "State", "Entrance", "Regional"} {
		if level == valid {
			return true
		}
	}
	return false
}
