package checkout

import (
	"regexp"
	"strings"

	"github.com/bwalia/kisaan.com-sub001/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateForm checks the checkout form and returns field errors in form
// order, so the first entry is the field the UI scrolls to and focuses.
func ValidateForm(f domain.CheckoutForm) []FieldError {
	var errs []FieldError
	add := func(field, message string) {
		errs = append(errs, FieldError{Field: field, Message: message})
	}

	if strings.TrimSpace(f.CustomerFirstName) == "" {
		add("customer_first_name", "First name is required")
	}
	if strings.TrimSpace(f.CustomerLastName) == "" {
		add("customer_last_name", "Last name is required")
	}
	if strings.TrimSpace(f.CustomerEmail) == "" {
		add("customer_email", "Email is required")
	} else if !emailPattern.MatchString(f.CustomerEmail) {
		add("customer_email", "Please enter a valid email address")
	}

	b := f.BillingAddress
	if strings.TrimSpace(b.Name) == "" {
		add("billing_name", "Full name is required")
	}
	if strings.TrimSpace(b.Address1) == "" {
		add("billing_address1", "Street address is required")
	}
	if strings.TrimSpace(b.City) == "" {
		add("billing_city", "City is required")
	}
	if strings.TrimSpace(b.State) == "" {
		add("billing_state", "State is required")
	}
	if strings.TrimSpace(b.Zip) == "" {
		add("billing_zip", "Postal code is required")
	} else if len(strings.TrimSpace(b.Zip)) < 3 {
		add("billing_zip", "Please enter a valid postal code (minimum 3 characters)")
	}

	return errs
}
