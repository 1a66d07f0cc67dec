package httpx

import (
	"context"
	"net/http"
	"testing"

	"github.com/pulsepoint/pulsepoint-api/internal/data"
	"github.com/pulsepoint/pulsepoint-api/internal/domain/auth"
	"github.com/pulsepoint/pulsepoint-api/internal/domain/model"
	"github.com/pulsepoint/pulsepoint-api/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func donorSignupFields() map[string]string {
	return map[string]string{
		wizard.FieldFirstName:        "Ada",
		wizard.FieldLastName:         "Okafor",
		wizard.FieldEmail:            "ada@example.com",
		wizard.FieldPhone:            "+2348012345678",
		wizard.FieldDateOfBirth:      "1995-06-14",
		wizard.FieldGender:           "female",
		wizard.FieldBloodType:        "O+",
		wizard.FieldState:            "Lagos",
		wizard.FieldCity:             "Ikeja",
		wizard.FieldAddress:          "12 Allen Avenue",
		wizard.FieldEmergencyContact: "+2348098765432",
		wizard.FieldPassword:         "correct horse battery",
		wizard.FieldConfirm:          "correct horse battery",
		wizard.FieldTerms:            "true",
	}
}

func TestSignup_Donor(t *testing.T) {
	f := newRouterFixture(t)

	f.accounts.EXPECT().
		CreateDonor(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, signup *model.DonorSignup, _ string) (*model.Account, error) {
			assert.Equal(t, "ada@example.com", signup.Email)
			assert.Equal(t, model.BloodOPos, signup.BloodType)
			return &model.Account{
				ID:          "acct-1",
				Email:       signup.Email,
				Role:        auth.RoleDonor,
				DisplayName: "Ada Okafor",
				BloodType:   model.BloodOPos,
			}, nil
		})

	rec := f.doJSON(t, http.MethodPost, "/api/signup", map[string]any{
		"category": string(wizard.CategoryDonorSignup),
		"fields":   donorSignupFields(),
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["authenticated"])

	// registration logs the new account in
	cookie := sessionCookieFrom(t, rec)
	rec = f.doJSON(t, http.MethodGet, "/auth/session", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["authenticated"])
}

func TestSignup_MissingRequiredFields(t *testing.T) {
	f := newRouterFixture(t)

	fields := donorSignupFields()
	delete(fields, wizard.FieldBloodType)
	delete(fields, wizard.FieldEmergencyContact)

	rec := f.doJSON(t, http.MethodPost, "/api/signup", map[string]any{
		"category": string(wizard.CategoryDonorSignup),
		"fields":   fields,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "validation", body["error"])
	assert.Contains(t, body["message"], wizard.FieldBloodType)
	assert.Contains(t, body["message"], wizard.FieldEmergencyContact)
}

func TestSignup_PasswordMismatch(t *testing.T) {
	f := newRouterFixture(t)

	fields := donorSignupFields()
	fields[wizard.FieldConfirm] = "different"

	rec := f.doJSON(t, http.MethodPost, "/api/signup", map[string]any{
		"category": string(wizard.CategoryDonorSignup),
		"fields":   fields,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	f := newRouterFixture(t)

	f.accounts.EXPECT().
		CreateDonor(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, data.ErrEmailExists)

	rec := f.doJSON(t, http.MethodPost, "/api/signup", map[string]any{
		"category": string(wizard.CategoryDonorSignup),
		"fields":   donorSignupFields(),
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "conflict", body["error"])
	assert.Equal(t, "email", body["field"])
}

func TestSignup_RejectsRequestCategory(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.doJSON(t, http.MethodPost, "/api/signup", map[string]any{
		"category": string(wizard.CategoryBloodRequest),
		"fields":   map[string]string{},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_category", decodeBody(t, rec)["error"])
}

func TestSignup_Hospital(t *testing.T) {
	f := newRouterFixture(t)

	f.accounts.EXPECT().
		CreateHospital(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&model.Account{
			ID:           "acct-2",
			Email:        "hospital@example.com",
			Role:         auth.RoleHospital,
			DisplayName:  "St. Mary Hospital",
			HospitalName: "St. Mary Hospital",
		}, nil)

	rec := f.doJSON(t, http.MethodPost, "/api/signup", map[string]any{
		"category": string(wizard.CategoryHospitalSignup),
		"fields": map[string]string{
			wizard.FieldHospitalName:       "St. Mary Hospital",
			wizard.FieldContactPerson:      "Dr. Bello",
			wizard.FieldPosition:           "Medical Director",
			wizard.FieldEmail:              "hospital@example.com",
			wizard.FieldPhone:              "+2348011112222",
			wizard.FieldHospitalType:       string(model.HospitalTypeGeneral),
			wizard.FieldRegistrationNumber: "RC-445566",
			wizard.FieldLicenseNumber:      "LIC-778899",
			wizard.FieldEmergencyLine:      "+2348033334444",
			wizard.FieldState:              "Lagos",
			wizard.FieldCity:               "Surulere",
			wizard.FieldAddress:            "3 Bode Thomas Street",
			wizard.FieldPassword:           "correct horse battery",
			wizard.FieldConfirm:            "correct horse battery",
			wizard.FieldTerms:              "true",
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, string(auth.RoleHospital), user["role"])
}
