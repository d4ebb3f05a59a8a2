package http

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate instance tunggal; validator.New mahal dan thread-safe dipakai ulang.
var validate = validator.New()

// validateStruct menjalankan tag validate pada body request dan
// mengembalikan pesan yang enak dibaca klien.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	var msgs []string
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s wajib diisi", field)
	case "email":
		return fmt.Sprintf("%s harus berupa email valid", field)
	case "nefield":
		return fmt.Sprintf("%s harus berbeda dengan %s", field, strings.ToLower(fe.Param()))
	case "min":
		return fmt.Sprintf("%s minimal %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s maksimal %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s tidak valid", field)
	}
}
