package data

import (
	"context"
	"testing"

	"database/sql"

	"github.com/pulsepoint/pulsepoint-api/internal/domain/auth"
	"github.com/pulsepoint/pulsepoint-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepo_CreateDonor_GetByEmail(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewAccountRepo(db)

		signup := testutil.NewDonorSignup().
			WithName("Ngozi", "Eze").
			WithEmail("Ngozi.Eze@Example.com").
			Build()

		acct, err := repo.CreateDonor(ctx, signup, "$2a$10$fakehashfortest")
		require.NoError(t, err)
		require.NotEmpty(t, acct.ID)
		assert.Equal(t, auth.RoleDonor, acct.Role)
		assert.Equal(t, "ngozi.eze@example.com", acct.Email)
		assert.Equal(t, "Ngozi Eze", acct.DisplayName)
		assert.Equal(t, "$2a$10$fakehashfortest", acct.PasswordHash)
		assert.NotZero(t, acct.CreatedAt)

		// lookup is case-insensitive on email
		got, err := repo.GetByEmail(ctx, "NGOZI.EZE@example.com")
		require.NoError(t, err)
		assert.Equal(t, acct.ID, got.ID)

		byID, err := repo.GetByID(ctx, acct.ID)
		require.NoError(t, err)
		assert.Equal(t, acct.Email, byID.Email)

		// signup also creates the directory entry
		donors, err := NewDonorRepo(db).List(ctx, donorListAll())
		require.NoError(t, err)
		require.Len(t, donors, 1)
		assert.Equal(t, "Ngozi", donors[0].FirstName)
		require.NotNil(t, donors[0].AccountID)
		assert.Equal(t, acct.ID, *donors[0].AccountID)
		assert.True(t, donors[0].Available)
	})
}

func TestAccountRepo_CreateHospital_GetByEmail(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewAccountRepo(db)

		signup := testutil.NewHospitalSignup().
			WithHospitalName("Reddington Hospital").
			WithEmail("frontdesk@reddington.example").
			Build()

		acct, err := repo.CreateHospital(ctx, signup, "$2a$10$fakehashfortest")
		require.NoError(t, err)
		assert.Equal(t, auth.RoleHospital, acct.Role)
		assert.Equal(t, "Reddington Hospital", acct.DisplayName)
		assert.Equal(t, "Reddington Hospital", acct.HospitalName)
		assert.Empty(t, string(acct.BloodType))

		got, err := repo.GetByEmail(ctx, "frontdesk@reddington.example")
		require.NoError(t, err)
		assert.Equal(t, acct.ID, got.ID)
		assert.Equal(t, auth.RoleHospital, got.Role)
	})
}

func TestAccountRepo_DuplicateEmail(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewAccountRepo(db)

		signup := testutil.NewDonorSignup().WithEmail("dup@example.com").Build()
		_, err := repo.CreateDonor(ctx, signup, "$2a$10$fakehashfortest")
		require.NoError(t, err)

		again := testutil.NewDonorSignup().WithEmail("dup@example.com").Build()
		_, err = repo.CreateDonor(ctx, again, "$2a$10$fakehashfortest")
		require.ErrorIs(t, err, ErrEmailExists)

		taken, err := repo.EmailTaken(ctx, "DUP@example.com")
		require.NoError(t, err)
		assert.True(t, taken)
	})
}

func TestAccountRepo_EmailSharedAcrossPersonas(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewAccountRepo(db)

		hospital := testutil.NewHospitalSignup().WithEmail("shared@example.com").Build()
		acct, err := repo.CreateHospital(ctx, hospital, "$2a$10$fakehashfortest")
		require.NoError(t, err)

		// the UNIQUE indexes are per-table, so the cross-persona check has to
		// catch a donor signup reusing a hospital's email
		donor := testutil.NewDonorSignup().WithEmail("Shared@Example.com").Build()
		_, err = repo.CreateDonor(ctx, donor, "$2a$10$fakehashfortest")
		require.ErrorIs(t, err, ErrEmailExists)

		// the hospital still owns the login
		got, err := repo.GetByEmail(ctx, "shared@example.com")
		require.NoError(t, err)
		assert.Equal(t, acct.ID, got.ID)
		assert.Equal(t, auth.RoleHospital, got.Role)

		// and a donor can't be shadowed by a hospital signup either
		first := testutil.NewDonorSignup().WithEmail("donor-first@example.com").Build()
		_, err = repo.CreateDonor(ctx, first, "$2a$10$fakehashfortest")
		require.NoError(t, err)

		squatter := testutil.NewHospitalSignup().WithEmail("donor-first@example.com").Build()
		_, err = repo.CreateHospital(ctx, squatter, "$2a$10$fakehashfortest")
		require.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestAccountRepo_GetByEmail_NotFound(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewAccountRepo(db)
		_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
		require.ErrorIs(t, err, ErrAccountNotFound)

		taken, err := repo.EmailTaken(context.Background(), "nobody@example.com")
		require.NoError(t, err)
		assert.False(t, taken)
	})
}
