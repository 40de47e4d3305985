package domain

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidPhoneFormat = errors.New("Phone number must be in format: '+1234567890' or '123-456-7890'")
)

// phonePattern accepts international numbers (+ followed by 10-15 digits)
// or 3-3-4 digit groups with an optional leading country code 1.
var phonePattern = regexp.MustCompile(`^\+?1?-?\d{3}-?\d{3}-?\d{4}$|^\+?\d{10,15}$`)

// Customer represents a CRM customer. Customers are immutable once created.
type Customer struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone,omitempty" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewCustomer builds a customer with a fresh ID, validating the phone format.
// Email uniqueness is enforced at the store level and checked by the service.
func NewCustomer(name, email, phone string) (*Customer, error) {
	if err := ValidatePhone(phone); err != nil {
		return nil, err
	}

	return &Customer{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: time.Now(),
	}, nil
}

// ValidatePhone checks the phone format. An empty phone is allowed.
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if !phonePattern.MatchString(phone) {
		return ErrInvalidPhoneFormat
	}
	return nil
}
