package wizard

// Field names mirror the form field identifiers used by the web client.
const (
	// Shared fields.
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldState    = "state"
	FieldCity     = "city"
	FieldAddress  = "address"
	FieldPassword = "password"
	FieldConfirm  = "confirmPassword"
	FieldTerms    = "terms"

	// Donor signup fields.
	FieldFirstName         = "firstName"
	FieldLastName          = "lastName"
	FieldDateOfBirth       = "dateOfBirth"
	FieldGender            = "gender"
	FieldBloodType         = "bloodType"
	FieldEmergencyContact  = "emergencyContact"
	FieldMedicalConditions = "medicalConditions"

	// Hospital signup fields.
	FieldHospitalName       = "hospitalName"
	FieldContactPerson      = "contactPerson"
	FieldPosition           = "position"
	FieldHospitalType       = "hospitalType"
	FieldRegistrationNumber = "registrationNumber"
	FieldLicenseNumber      = "licenseNumber"
	FieldEmergencyLine      = "emergencyLine"

	// Blood request fields.
	FieldQuantity         = "quantity"
	FieldQuantityUnit     = "quantityUnit"
	FieldUrgency          = "urgency"
	FieldDeadline         = "deadline"
	FieldMedicalCondition = "medicalCondition"
	FieldLocation         = "location"
	FieldContactPhone     = "contactPhone"
	FieldContactEmail     = "contactEmail"
	FieldPatientAge       = "patientAge"
	FieldPatientGender    = "patientGender"
	FieldAdditionalNotes  = "additionalNotes"
)

// requiredFields lists, per category and 1-indexed step, the fields that must
// pass validation before the step can be advanced past (or submitted from).
var requiredFields = map[Category][TotalSteps][]string{
	CategoryDonorSignup: {
		{FieldFirstName, FieldLastName, FieldEmail, FieldPhone, FieldDateOfBirth, FieldGender},
		{FieldBloodType, FieldState, FieldCity, FieldAddress, FieldEmergencyContact},
		{FieldPassword, FieldConfirm, FieldTerms},
	},
	CategoryHospitalSignup: {
		{FieldHospitalName, FieldContactPerson, FieldPosition, FieldEmail, FieldPhone},
		{FieldHospitalType, FieldRegistrationNumber, FieldLicenseNumber, FieldEmergencyLine, FieldState, FieldCity, FieldAddress},
		{FieldPassword, FieldConfirm, FieldTerms},
	},
	CategoryBloodRequest: {
		{FieldBloodType, FieldQuantity, FieldQuantityUnit, FieldUrgency, FieldDeadline},
		{FieldMedicalCondition, FieldLocation},
		{FieldContactPerson, FieldContactPhone, FieldContactEmail},
	},
}

// optionalFields lists fields that belong to a category's payload but are
// never required for step advancement.
var optionalFields = map[Category][]string{
	CategoryDonorSignup:    {FieldMedicalConditions},
	CategoryHospitalSignup: {},
	CategoryBloodRequest:   {FieldPatientAge, FieldPatientGender, FieldAdditionalNotes, FieldEmergencyContact},
}

// knownFields is the superset of all fields across categories and steps.
var knownFields = buildKnownFields()

func buildKnownFields() map[string]bool {
	known := make(map[string]bool)
	for _, steps := range requiredFields {
		for _, fields := range steps {
			for _, f := range fields {
				known[f] = true
			}
		}
	}
	for _, fields := range optionalFields {
		for _, f := range fields {
			known[f] = true
		}
	}
	return known
}

// RequiredFields returns the required field names for a category and
// 1-indexed step. The returned slice must not be mutated.
func RequiredFields(c Category, step int) []string {
	steps, ok := requiredFields[c]
	if !ok || step < 1 || step > TotalSteps {
		return nil
	}
	return steps[step-1]
}

// categoryFieldSet returns all fields (required and optional) belonging to a
// category's payload.
func categoryFieldSet(c Category) map[string]bool {
	set := make(map[string]bool)
	for step := 1; step <= TotalSteps; step++ {
		for _, f := range RequiredFields(c, step) {
			set[f] = true
		}
	}
	for _, f := range optionalFields[c] {
		set[f] = true
	}
	return set
}
