// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

package auth

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/nyaruka/phonenumbers"
)

// BirthDateLayout is the accepted birth date format.
const BirthDateLayout = "2006-01-02"

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// DefaultPhoneRegion is used to parse telephone numbers written without a country prefix.
const DefaultPhoneRegion = "US"

// Validation messages.
const (
	msgUsername        = "Please provide a valid username, minimum 5 characters!"
	msgName            = "Please provide a valid name, minimum 5 characters!!"
	msgEmail           = "Please provide a valid email address!"
	msgTelephone       = "Please provide a valid telephone number!"
	msgPassword        = "Password must contain minimum 8 characters!"
	msgPasswordLength  = "Password must contain maximum 72 bytes!"
	msgPasswordRepeat  = "Password repetition must match password!"
	msgStreet          = "Please provide a valid street, minimum 3 characters!!"
	msgNeighborhood    = "Please provide a valid neighborhood, minimum 3 characters!!"
	msgGender          = "Please provide a valid gender!"
	msgCity            = "Please provide a valid city!"
	msgPostalCode      = "Please provide a valid postal code!"
	msgBirthDate       = "birth date format invalid"
	msgProfileID       = "Please provide a valid profile id, minimum 5 characters!"
	msgNoIdentifier    = "no username, email ou telephone provide"
	msgManyIdentifiers = "provide only one of username, email or telephone"
)

// SignInRequest is the external sign-in shape. Exactly one identifier must be set.
type SignInRequest struct {
	Username  *string `json:"username,omitempty" jsonschema:"example=john.doe"`
	Email     *string `json:"email,omitempty" jsonschema:"example=johndoe@company.com"`
	Telephone *string `json:"telephone,omitempty" jsonschema:"example=+1 415 237 0800"`
	Password  string  `json:"password" jsonschema:"example=12345678"`
}

// Validate checks field constraints and returns the first violation as KindInvalidArgument.
func (r SignInRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Username, present(r.Username, msgUsername, validation.Length(5, 0).Error(msgUsername))...),
		validation.Field(&r.Email, present(r.Email, msgEmail, is.Email.Error(msgEmail))...),
		validation.Field(&r.Telephone, present(r.Telephone, msgTelephone, validation.Length(7, 0).Error(msgTelephone))...),
		validation.Field(&r.Password, validation.Required.Error(msgPassword), validation.Length(8, 0).Error(msgPassword)),
	)
	return firstViolation(err, "username", "email", "telephone", "password")
}

// Draft converts the request into its internal form.
func (r SignInRequest) Draft() (SignInDraft, error) {
	var keys []LookupKey
	if r.Username != nil {
		keys = append(keys, ByUsername(*r.Username))
	}
	if r.Email != nil {
		keys = append(keys, ByEmail(*r.Email))
	}
	if r.Telephone != nil {
		keys = append(keys, ByTelephone(*r.Telephone))
	}

	switch len(keys) {
	case 0:
		return SignInDraft{}, InvalidArgument(msgNoIdentifier)
	case 1:
		return SignInDraft{Key: keys[0], Password: PlainPassword(r.Password)}, nil
	default:
		return SignInDraft{}, InvalidArgument(msgManyIdentifiers)
	}
}

// RegistrationRequest is the external registration shape.
type RegistrationRequest struct {
	Name                string  `json:"name" jsonschema:"example=John Doe"`
	Username            string  `json:"username" jsonschema:"example=john.doe"`
	BirthDate           string  `json:"birth_date" jsonschema:"example=1999-12-31"`
	GenderID            int32   `json:"gender_id" jsonschema:"example=1"`
	Password            string  `json:"password" jsonschema:"example=12345678"`
	PasswordRepetition  string  `json:"password_repetition" jsonschema:"example=12345678"`
	AddressStreet       string  `json:"address_street" jsonschema:"example=153 W 57th St"`
	AddressNeighborhood string  `json:"address_neighborhood" jsonschema:"example=manhattan"`
	AddressCityID       int32   `json:"address_city_id" jsonschema:"example=4"`
	AddressPostalCode   int32   `json:"address_postal_code" jsonschema:"example=10019"`
	Email               string  `json:"email" jsonschema:"example=johndoe@company.com"`
	Telephone           *string `json:"telephone,omitempty" jsonschema:"example=+1 415 237 0800"`
}

// Validate checks field constraints and returns the first violation as KindInvalidArgument.
func (r RegistrationRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error(msgName), validation.Length(5, 0).Error(msgName)),
		validation.Field(&r.Username, validation.Required.Error(msgUsername), validation.Length(5, 0).Error(msgUsername)),
		validation.Field(&r.BirthDate, validation.Required.Error(msgBirthDate), validation.Date(BirthDateLayout).Error(msgBirthDate)),
		validation.Field(&r.GenderID, validation.Required.Error(msgGender), validation.Min(int32(1)).Error(msgGender)),
		validation.Field(&r.Password, newPasswordRules()...),
		validation.Field(&r.PasswordRepetition, validation.By(equalTo(r.Password, msgPasswordRepeat))),
		validation.Field(&r.AddressStreet, validation.Required.Error(msgStreet), validation.Length(3, 0).Error(msgStreet)),
		validation.Field(&r.AddressNeighborhood, validation.Required.Error(msgNeighborhood), validation.Length(3, 0).Error(msgNeighborhood)),
		validation.Field(&r.AddressCityID, validation.Required.Error(msgCity), validation.Min(int32(1)).Error(msgCity)),
		validation.Field(&r.AddressPostalCode, validation.Required.Error(msgPostalCode), validation.Min(int32(1)).Error(msgPostalCode)),
		validation.Field(&r.Email, validation.Required.Error(msgEmail), is.Email.Error(msgEmail)),
		validation.Field(&r.Telephone, present(r.Telephone, msgTelephone, validation.By(phoneNumber(msgTelephone)))...),
	)
	return firstViolation(err,
		"name", "username", "birth_date", "gender_id", "password", "password_repetition",
		"address_street", "address_neighborhood", "address_city_id", "address_postal_code",
		"email", "telephone",
	)
}

// Draft converts the request into a registration with a plaintext password and no id.
func (r RegistrationRequest) Draft() (Registration[NoID, PlainPassword], error) {
	birthDate, err := time.Parse(BirthDateLayout, r.BirthDate)
	if err != nil {
		return Registration[NoID, PlainPassword]{}, InvalidArgument(msgBirthDate)
	}

	return Registration[NoID, PlainPassword]{
		Name:         r.Name,
		Username:     r.Username,
		BirthDate:    birthDate,
		GenderID:     r.GenderID,
		Password:     PlainPassword(r.Password),
		Street:       r.AddressStreet,
		Neighborhood: r.AddressNeighborhood,
		CityID:       r.AddressCityID,
		PostalCode:   r.AddressPostalCode,
		Email:        r.Email,
		Telephone:    r.Telephone,
	}, nil
}

// ChangePasswordRequest is the external password-change shape.
type ChangePasswordRequest struct {
	ProfileID          string `json:"profile_id" jsonschema:"example=77285939-bdaa-4c5f-9805-3873fca3396e"`
	OldPassword        string `json:"old_password" jsonschema:"example=12345678"`
	Password           string `json:"password" jsonschema:"example=87654321"`
	PasswordRepetition string `json:"password_repetition" jsonschema:"example=87654321"`
}

// Validate checks field constraints and returns the first violation as KindInvalidArgument.
func (r ChangePasswordRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.ProfileID, validation.Required.Error(msgProfileID), validation.Length(5, 0).Error(msgProfileID)),
		validation.Field(&r.OldPassword, validation.Required.Error(msgPassword), validation.Length(8, 0).Error(msgPassword)),
		validation.Field(&r.Password, newPasswordRules()...),
		validation.Field(&r.PasswordRepetition, validation.By(equalTo(r.Password, msgPasswordRepeat))),
	)
	return firstViolation(err, "profile_id", "old_password", "password", "password_repetition")
}

// Draft converts the request into its internal form.
func (r ChangePasswordRequest) Draft() ChangePasswordDraft {
	return ChangePasswordDraft{
		ProfileID:   r.ProfileID,
		OldPassword: PlainPassword(r.OldPassword),
		NewPassword: PlainPassword(r.Password),
	}
}

// AuthenticationResult is returned by sign-in and registration.
type AuthenticationResult struct {
	ID       string `json:"id" jsonschema:"example=cc3b95d3-4ba4-4a90-bc09-119fd2a4c659"`
	Username string `json:"username" jsonschema:"example=john.doe"`
	Name     string `json:"name" jsonschema:"example=John Doe"`
	Token    string `json:"token"`
}

// present makes rules apply to an optional field only when it was supplied,
// in which case an empty value is a violation too.
func present(value *string, message string, rules ...validation.Rule) []validation.Rule {
	if value == nil {
		return nil
	}
	return append([]validation.Rule{validation.Required.Error(message)}, rules...)
}

// newPasswordRules applies to passwords that are about to be hashed.
func newPasswordRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error(msgPassword),
		validation.Length(8, 0).Error(msgPassword),
		validation.By(maxBytes(MaxPasswordBytes, msgPasswordLength)),
	}
}

// maxBytes bounds the encoded length, unlike validation.Length which counts runes.
func maxBytes(limit int, message string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if len(s) > limit {
			return errors.New(message)
		}
		return nil
	}
}

func equalTo(expected, message string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != expected {
			return errors.New(message)
		}
		return nil
	}
}

func phoneNumber(message string) validation.RuleFunc {
	return func(value interface{}) error {
		s, ok := value.(*string)
		if !ok || s == nil {
			return nil
		}
		num, err := phonenumbers.Parse(*s, DefaultPhoneRegion)
		if err != nil || !phonenumbers.IsValidNumber(num) {
			return errors.New(message)
		}
		return nil
	}
}

// firstViolation picks the first failing field in declaration order.
func firstViolation(err error, order ...string) error {
	if err == nil {
		return nil
	}
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return KindInternal.Builder().With("operation", "validate request").Wrap(err)
	}
	for _, field := range order {
		if fe, ok := fieldErrs[field]; ok && fe != nil {
			return KindInvalidArgument.Builder().With("field", field).New(fe.Error())
		}
	}
	return InvalidArgument(fieldErrs.Error())
}
