package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPostInput() PostRequestInput {
	return PostRequestInput{
		HospitalID:       "hosp-1",
		BloodType:        BloodONeg,
		Quantity:         2,
		QuantityUnit:     "units",
		Urgency:          UrgencyCritical,
		Deadline:         time.Date(2025, 9, 20, 8, 0, 0, 0, time.UTC),
		MedicalCondition: "Surgery",
		Location:         "Ward 3",
		ContactPerson:    "Dr. X",
		ContactPhone:     "+2348000000000",
		ContactEmail:     "x@h.com",
	}
}

func TestPostRequestInputValidate(t *testing.T) {
	in := validPostInput()
	require.NoError(t, in.Validate())

	zeroQty := validPostInput()
	zeroQty.Quantity = 0
	assert.Error(t, zeroQty.Validate())

	negQty := validPostInput()
	negQty.Quantity = -1
	assert.Error(t, negQty.Validate())

	badType := validPostInput()
	badType.BloodType = "Z+"
	assert.Error(t, badType.Validate())

	noDeadline := validPostInput()
	noDeadline.Deadline = time.Time{}
	assert.Error(t, noDeadline.Validate())

	noContact := validPostInput()
	noContact.ContactPhone = "  "
	assert.Error(t, noContact.Validate())
}

// Past deadlines are accepted so hospitals can backfill records.
func TestPostRequestInputValidateAllowsPastDeadline(t *testing.T) {
	in := validPostInput()
	in.Deadline = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, in.Validate())
}

func TestDonorSignupValidate(t *testing.T) {
	s := DonorSignup{
		FirstName:        "Ada",
		LastName:         "Obi",
		Email:            "ada@x.com",
		Phone:            "+2348000000000",
		DateOfBirth:      time.Date(1995, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:           "female",
		BloodType:        BloodOPos,
		State:            "Lagos",
		City:             "Ikeja",
		Address:          "1 Allen Ave",
		EmergencyContact: "+2348000000001",
		Password:         "s3cret",
	}
	require.NoError(t, s.Validate())

	s.Email = "not-an-email"
	assert.Error(t, s.Validate())
}

func TestHospitalSignupValidate(t *testing.T) {
	s := HospitalSignup{
		HospitalName:       "Lagos General",
		ContactPerson:      "Dr. Bello",
		Position:           "CMO",
		Email:              "admin@lagosgeneral.ng",
		Phone:              "+2348000000000",
		Type:               HospitalTypeGeneral,
		RegistrationNumber: "RN-1001",
		LicenseNumber:      "LN-2002",
		EmergencyLine:      "+2348000000009",
		State:              "Lagos",
		City:               "Ikeja",
		Address:            "12 Hospital Rd",
		Password:           "s3cret",
	}
	require.NoError(t, s.Validate())

	s.HospitalName = ""
	assert.Error(t, s.Validate())
}
