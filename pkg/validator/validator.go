package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

func FormatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, fieldError := range validationErrors {
			message := getFieldErrorMessage(fieldError)
			messages = append(messages, message)
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s est requis", field)
	case "email":
		return fmt.Sprintf("%s doit être une adresse email valide", field)
	case "min":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s doit contenir au moins %s caractères", field, fe.Param())
		}
		return fmt.Sprintf("%s doit être au moins %s", field, fe.Param())
	case "max":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s doit contenir au plus %s caractères", field, fe.Param())
		}
		return fmt.Sprintf("%s doit être au plus %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s doit être l'une des valeurs : %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s n'est pas valide", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Username":    "Le nom d'utilisateur",
		"Email":       "L'email",
		"Password":    "Le mot de passe",
		"Identifier":  "L'identifiant",
		"Classe":      "La classe",
		"Title":       "Le titre",
		"Subject":     "La matière",
		"DueDate":     "La date de rendu",
		"Description": "La description",
		"Content":     "Le contenu",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
