// internal/validation/validator.go
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/nazgool97/salon-bot-sub000/internal/config"
	"github.com/nazgool97/salon-bot-sub000/internal/statemachine"
	"github.com/nazgool97/salon-bot-sub000/internal/utils"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ========================================================================
// CUSTOM VALIDATOR - Enhanced Validation with go-playground/validator
// ========================================================================

var (
	// Global validator instance
	validate *validator.Validate

	// Phone regex (E.164 format with minimum length requirement)
	// Must start with + and have at least 7 digits total
	phoneRegex = regexp.MustCompile(`^\+[1-9]\d{6,14}$`)

	// Booking number format regex (e.g., BK-20240101-0001)
	bookingNumberRegex = regexp.MustCompile(`^BK-\d{8}-\d{4}$`)
)

// Initialize sets up the validator with custom validators. It registers
// them on gin's own binding engine (not a separate instance) so that
// c.ShouldBindJSON in the handlers actually enforces these tags.
func Initialize() {
	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validate = engine
	} else {
		validate = validator.New()
	}

	_ = validate.RegisterValidation("phone", validatePhone)
	_ = validate.RegisterValidation("booking_number", validateBookingNumber)
	_ = validate.RegisterValidation("booking_status", validateBookingStatus)
	_ = validate.RegisterValidation("payment_method", validatePaymentMethod)
	_ = validate.RegisterValidation("rating_1_5", validateRating1To5)
	_ = validate.RegisterValidation("not_future", validateNotFuture)
	_ = validate.RegisterValidation("not_past", validateNotPast)
}

// GetValidator returns the global validator instance
func GetValidator() *validator.Validate {
	if validate == nil {
		Initialize()
	}
	return validate
}

// ========================================================================
// CUSTOM VALIDATORS
// ========================================================================

// validatePhone validates phone numbers (E.164 format with minimum length)
func validatePhone(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	if phone == "" {
		return true // Optional fields handled by 'required' tag
	}
	return phoneRegex.MatchString(phone)
}

// validateBookingNumber validates booking number format
func validateBookingNumber(fl validator.FieldLevel) bool {
	number := fl.Field().String()
	if number == "" {
		return true
	}
	return bookingNumberRegex.MatchString(number)
}

// validateBookingStatus validates a booking status against statemachine.Valid.
func validateBookingStatus(fl validator.FieldLevel) bool {
	status := fl.Field().String()
	if status == "" {
		return true
	}
	return statemachine.Valid(statemachine.Status(status))
}

// validatePaymentMethod validates the two payment methods the orchestrator
// accepts (spec.md §4.8 Hold/Finalize).
func validatePaymentMethod(fl validator.FieldLevel) bool {
	method := fl.Field().String()
	return method == config.PaymentMethodCash || method == config.PaymentMethodOnline
}

// validateRating1To5 validates the closed 1..5 rating range (spec.md §9 Open
// Question: 0 and >5 are both invalid, no partial/half stars).
func validateRating1To5(fl validator.FieldLevel) bool {
	rating := fl.Field().Int()
	return rating >= config.MinRating && rating <= config.MaxRating
}

// validateNotFuture validates that a time field is not after now.
func validateNotFuture(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok || t.IsZero() {
		return true
	}
	return !t.After(time.Now())
}

// validateNotPast validates that a time field is not before now.
func validateNotPast(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok || t.IsZero() {
		return true
	}
	return !t.Before(time.Now())
}

// ========================================================================
// VALIDATION HELPERS
// ========================================================================

// ValidateStruct validates a struct and returns user-friendly errors
func ValidateStruct(s interface{}) error {
	if err := GetValidator().Struct(s); err != nil {
		return FormatValidationErrors(err)
	}
	return nil
}

// FormatValidationErrors converts validator errors to user-friendly messages
func FormatValidationErrors(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var messages []string
	for _, e := range validationErrs {
		messages = append(messages, formatFieldError(e))
	}

	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}

// formatFieldError creates a user-friendly error message for a field
// Uses the shared utils.GetValidationMessage for consistent error messages
func formatFieldError(e validator.FieldError) string {
	field := utils.ToSnakeCase(e.Field())
	return utils.GetValidationMessage(field, e.Tag(), e.Param())
}

// Note: toSnakeCase moved to internal/utils/strings.go as utils.ToSnakeCase

// ========================================================================
// CONVENIENCE FUNCTIONS
// ========================================================================

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	type EmailStruct struct {
		Email string `validate:"required,email"`
	}
	return ValidateStruct(&EmailStruct{Email: email})
}

// ValidatePhone validates a phone number
func ValidatePhone(phone string) error {
	type PhoneStruct struct {
		Phone string `validate:"required,phone"`
	}
	return ValidateStruct(&PhoneStruct{Phone: phone})
}

// ValidateUUID validates a UUID
func ValidateUUID(uuid string) error {
	type UUIDStruct struct {
		UUID string `validate:"required,uuid"`
	}
	return ValidateStruct(&UUIDStruct{UUID: uuid})
}
