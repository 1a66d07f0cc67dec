package testutil

import (
	"fmt"
	"time"

	"github.com/pulsepoint/pulsepoint-api/internal/domain/model"
)

// DonorSignupBuilder provides a fluent interface for building DonorSignup
// payloads for testing.
type DonorSignupBuilder struct {
	s *model.DonorSignup
}

// NewDonorSignup creates a new DonorSignupBuilder with sensible defaults.
func NewDonorSignup() *DonorSignupBuilder {
	return &DonorSignupBuilder{
		s: &model.DonorSignup{
			FirstName:        "Ada",
			LastName:         "Okafor",
			Email:            fmt.Sprintf("ada-%d@example.com", time.Now().UnixNano()),
			Phone:            "+2348012345678",
			DateOfBirth:      time.Date(1995, 6, 14, 0, 0, 0, 0, time.UTC),
			Gender:           "female",
			BloodType:        model.BloodOPos,
			State:            "Lagos",
			City:             "Ikeja",
			Address:          "12 Allen Avenue",
			EmergencyContact: "+2348098765432",
			Password:         "correct horse battery",
		},
	}
}

// WithEmail sets the signup email.
func (b *DonorSignupBuilder) WithEmail(email string) *DonorSignupBuilder {
	b.s.Email = email
	return b
}

// WithName sets the first and last name.
func (b *DonorSignupBuilder) WithName(first, last string) *DonorSignupBuilder {
	b.s.FirstName = first
	b.s.LastName = last
	return b
}

// WithBloodType sets the blood type.
func (b *DonorSignupBuilder) WithBloodType(bt model.BloodType) *DonorSignupBuilder {
	b.s.BloodType = bt
	return b
}

// WithState sets the state.
func (b *DonorSignupBuilder) WithState(state string) *DonorSignupBuilder {
	b.s.State = state
	return b
}

// WithPassword sets the password.
func (b *DonorSignupBuilder) WithPassword(pw string) *DonorSignupBuilder {
	b.s.Password = pw
	return b
}

// Build returns the constructed DonorSignup.
func (b *DonorSignupBuilder) Build() *model.DonorSignup {
	return b.s
}

// HospitalSignupBuilder provides a fluent interface for building
// HospitalSignup payloads for testing.
type HospitalSignupBuilder struct {
	s *model.HospitalSignup
}

// NewHospitalSignup creates a new HospitalSignupBuilder with sensible defaults.
func NewHospitalSignup() *HospitalSignupBuilder {
	return &HospitalSignupBuilder{
		s: &model.HospitalSignup{
			HospitalName:       fmt.Sprintf("St. Mary Hospital %d", time.Now().UnixNano()),
			ContactPerson:      "Dr. Bello",
			Position:           "Medical Director",
			Email:              fmt.Sprintf("hospital-%d@example.com", time.Now().UnixNano()),
			Phone:              "+2348011112222",
			Type:               model.HospitalTypeGeneral,
			RegistrationNumber: "RC-445566",
			LicenseNumber:      "LIC-778899",
			EmergencyLine:      "+2348033334444",
			State:              "Lagos",
			City:               "Surulere",
			Address:            "3 Bode Thomas Street",
			Password:           "correct horse battery",
		},
	}
}

// WithEmail sets the signup email.
func (b *HospitalSignupBuilder) WithEmail(email string) *HospitalSignupBuilder {
	b.s.Email = email
	return b
}

// WithHospitalName sets the facility name.
func (b *HospitalSignupBuilder) WithHospitalName(name string) *HospitalSignupBuilder {
	b.s.HospitalName = name
	return b
}

// WithPassword sets the password.
func (b *HospitalSignupBuilder) WithPassword(pw string) *HospitalSignupBuilder {
	b.s.Password = pw
	return b
}

// Build returns the constructed HospitalSignup.
func (b *HospitalSignupBuilder) Build() *model.HospitalSignup {
	return b.s
}

// RequestInputBuilder provides a fluent interface for building
// PostRequestInput payloads for testing.
type RequestInputBuilder struct {
	in *model.PostRequestInput
}

// NewRequestInput creates a new RequestInputBuilder with sensible defaults.
// HospitalID must be set by the caller.
func NewRequestInput() *RequestInputBuilder {
	return &RequestInputBuilder{
		in: &model.PostRequestInput{
			BloodType:        model.BloodONeg,
			Quantity:         3,
			QuantityUnit:     "pints",
			Urgency:          model.UrgencyHigh,
			Deadline:         time.Now().Add(48 * time.Hour).UTC(),
			MedicalCondition: "Postpartum hemorrhage",
			Location:         "Lagos University Teaching Hospital",
			ContactPerson:    "Dr. Bello",
			ContactPhone:     "+2348011112222",
			ContactEmail:     "bloodbank@example.com",
		},
	}
}

// WithHospitalID sets the posting hospital.
func (b *RequestInputBuilder) WithHospitalID(id string) *RequestInputBuilder {
	b.in.HospitalID = id
	return b
}

// WithBloodType sets the blood type.
func (b *RequestInputBuilder) WithBloodType(bt model.BloodType) *RequestInputBuilder {
	b.in.BloodType = bt
	return b
}

// WithQuantity sets the quantity.
func (b *RequestInputBuilder) WithQuantity(q int) *RequestInputBuilder {
	b.in.Quantity = q
	return b
}

// WithUrgency sets the urgency level.
func (b *RequestInputBuilder) WithUrgency(u model.Urgency) *RequestInputBuilder {
	b.in.Urgency = u
	return b
}

// WithDeadline sets the deadline.
func (b *RequestInputBuilder) WithDeadline(d time.Time) *RequestInputBuilder {
	b.in.Deadline = d
	return b
}

// Build returns the constructed PostRequestInput.
func (b *RequestInputBuilder) Build() *model.PostRequestInput {
	return b.in
}
