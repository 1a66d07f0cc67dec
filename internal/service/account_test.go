package service

import (
	"context"
	"testing"

	"github.com/pulsepoint/pulsepoint-api/internal/data"
	"github.com/pulsepoint/pulsepoint-api/internal/domain/auth"
	"github.com/pulsepoint/pulsepoint-api/internal/domain/model"
	apperrors "github.com/pulsepoint/pulsepoint-api/internal/errors"
	"github.com/pulsepoint/pulsepoint-api/internal/mocks"
	"github.com/pulsepoint/pulsepoint-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func newAccountService(repo *mocks.MockAccountRepository) *AccountService {
	return NewAccountService(AccountServiceOptions{
		Accounts: repo,
		HashCost: bcrypt.MinCost,
	})
}

func TestAccountService_SignupDonor(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAccountRepository(ctrl)
	svc := newAccountService(repo)

	signup := testutil.NewDonorSignup().WithEmail("ada@example.com").Build()

	repo.EXPECT().EmailTaken(gomock.Any(), "ada@example.com").Return(false, nil)
	repo.EXPECT().
		CreateDonor(gomock.Any(), signup, gomock.Any()).
		DoAndReturn(func(_ context.Context, s *model.DonorSignup, hash string) (*model.Account, error) {
			// the stored hash must verify against the plaintext password
			require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(s.Password)))
			return &model.Account{
				ID:          "acct-1",
				Email:       s.Email,
				Role:        auth.RoleDonor,
				DisplayName: s.FirstName + " " + s.LastName,
				BloodType:   s.BloodType,
			}, nil
		})

	user, err := svc.SignupDonor(context.Background(), signup)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", user.ID)
	assert.Equal(t, auth.RoleDonor, user.Role)
	assert.True(t, user.IsDonor())
}

func TestAccountService_SignupDonor_DuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAccountRepository(ctrl)
	svc := newAccountService(repo)

	// The email is already registered, whichever persona holds it: the
	// signup must stop before any insert is attempted.
	repo.EXPECT().EmailTaken(gomock.Any(), gomock.Any()).Return(true, nil)

	_, err := svc.SignupDonor(context.Background(), testutil.NewDonorSignup().Build())
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "email", apperrors.GetField(err))
}

func TestAccountService_SignupDonor_DuplicateEmailRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAccountRepository(ctrl)
	svc := newAccountService(repo)

	// The pre-check passes but a concurrent signup wins the insert; the
	// repository's conflict still surfaces as a field error.
	repo.EXPECT().EmailTaken(gomock.Any(), gomock.Any()).Return(false, nil)
	repo.EXPECT().
		CreateDonor(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, data.ErrEmailExists)

	_, err := svc.SignupDonor(context.Background(), testutil.NewDonorSignup().Build())
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "email", apperrors.GetField(err))
}

func TestAccountService_SignupHospital_EmailHeldByDonor(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAccountRepository(ctrl)
	svc := newAccountService(repo)

	signup := testutil.NewHospitalSignup().WithEmail("ada@example.com").Build()

	repo.EXPECT().EmailTaken(gomock.Any(), "ada@example.com").Return(true, nil)

	_, err := svc.SignupHospital(context.Background(), signup)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "email", apperrors.GetField(err))
}

func TestAccountService_SignupDonor_InvalidPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAccountRepository(ctrl)
	svc := newAccountService(repo)

	signup := testutil.NewDonorSignup().Build()
	signup.Email = "not-an-email"

	_, err := svc.SignupDonor(context.Background(), signup)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAccountService_SignupDonor_ShortPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAccountRepository(ctrl)
	svc := newAccountService(repo)

	signup := testutil.NewDonorSignup().WithPassword("short").Build()

	_, err := svc.SignupDonor(context.Background(), signup)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "password", apperrors.GetField(err))
}

func TestAccountService_SignupHospital(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAccountRepository(ctrl)
	svc := newAccountService(repo)

	signup := testutil.NewHospitalSignup().WithHospitalName("Gen Hospital").Build()

	repo.EXPECT().EmailTaken(gomock.Any(), signup.Email).Return(false, nil)
	repo.EXPECT().
		CreateHospital(gomock.Any(), signup, gomock.Any()).
		Return(&model.Account{
			ID:           "acct-2",
			Email:        signup.Email,
			Role:         auth.RoleHospital,
			DisplayName:  signup.HospitalName,
			HospitalName: signup.HospitalName,
		}, nil)

	user, err := svc.SignupHospital(context.Background(), signup)
	require.NoError(t, err)
	assert.True(t, user.IsHospital())
	assert.Equal(t, "Gen Hospital", user.HospitalName)
}

func TestAccountService_Authenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAccountRepository(ctrl)
	svc := newAccountService(repo)

	hash, err := bcrypt.GenerateFromPassword([]byte("opensesame"), bcrypt.MinCost)
	require.NoError(t, err)
	acct := &model.Account{
		ID:           "acct-1",
		Email:        "ada@example.com",
		PasswordHash: string(hash),
		Role:         auth.RoleDonor,
		DisplayName:  "Ada Okafor",
	}

	repo.EXPECT().GetByEmail(gomock.Any(), "ada@example.com").Return(acct, nil).Times(2)

	user, err := svc.Authenticate(context.Background(), "ada@example.com", "opensesame")
	require.NoError(t, err)
	assert.Equal(t, "acct-1", user.ID)

	_, err = svc.Authenticate(context.Background(), "ada@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestAccountService_Authenticate_UnknownEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAccountRepository(ctrl)
	svc := newAccountService(repo)

	repo.EXPECT().
		GetByEmail(gomock.Any(), "ghost@example.com").
		Return(nil, data.ErrAccountNotFound)

	_, err := svc.Authenticate(context.Background(), "ghost@example.com", "whatever")
	require.Error(t, err)
	// indistinguishable from a wrong password
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestAccountService_Authenticate_EmptyInputs(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAccountRepository(ctrl)
	svc := newAccountService(repo)

	_, err := svc.Authenticate(context.Background(), "", "pw")
	assert.True(t, apperrors.IsUnauthorized(err))

	_, err = svc.Authenticate(context.Background(), "a@b.com", "")
	assert.True(t, apperrors.IsUnauthorized(err))
}
