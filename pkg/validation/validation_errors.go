package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldMessages maps struct field names to the exact messages the API
// reports when the field fails its "required" rule.
var FieldMessages = map[string]string{
	// Auth / registration fields
	"Name":     "Name is required",
	"Email":    "Please include a valid email",
	"Password": "Password is required",

	// Profile fields
	"Status": "Status is required",
	"Skills": "Skills is required",

	// Experience fields
	"Title":   "Title is required",
	"Company": "Company is required",
	"From":    "From date is required",

	// Education fields
	"School":       "School is required",
	"Degree":       "Degree is required",
	"FieldOfStudy": "Field of study is required",
}

// Messages converts a binding/validation error into the structured error
// list for the {"errors":[{"msg":...}]} envelope. Non-validator errors
// (malformed JSON and the like) collapse into a single generic entry.
func Messages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Invalid request body"}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, messageFor(fe))
	}
	return msgs
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "email":
		return "Please include a valid email"
	case "min":
		if fe.Field() == "Password" {
			return fmt.Sprintf("Please enter a password with %s or more characters", fe.Param())
		}
		// min=1 is the not-empty rule; report it like a missing field
		if msg, ok := FieldMessages[fe.Field()]; ok && fe.Param() == "1" {
			return msg
		}
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	}

	if msg, ok := FieldMessages[fe.Field()]; ok {
		return msg
	}
	if fe.Tag() == "required" {
		return fmt.Sprintf("%s is required", fe.Field())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
