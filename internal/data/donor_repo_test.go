package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pulsepoint/pulsepoint-api/internal/domain/model"
	"github.com/pulsepoint/pulsepoint-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func donorListAll() model.DonorsListOptions {
	return model.DonorsListOptions{Limit: 100}
}

func createTestDonor(t *testing.T, db *sql.DB, first, last string, bt model.BloodType, state string) *model.Donor {
	t.Helper()
	d, err := NewDonorRepo(db).Create(context.Background(), &model.CreateDonorRequest{
		FirstName: first,
		LastName:  last,
		Email:     first + "." + last + "@example.com",
		Phone:     "+2348000000000",
		BloodType: bt,
		State:     state,
		City:      "Ikeja",
	})
	require.NoError(t, err)
	return d
}

func TestDonorRepo_Create_Get(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewDonorRepo(db)

		d := createTestDonor(t, db, "Tunde", "Bakare", model.BloodAPos, "Oyo")
		require.NotEmpty(t, d.ID)
		assert.Nil(t, d.AccountID)
		assert.True(t, d.Available)
		assert.Equal(t, "Tunde Bakare", d.DisplayName())

		got, err := repo.GetByID(ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, d.ID, got.ID)
		assert.Equal(t, model.BloodAPos, got.BloodType)
	})
}

func TestDonorRepo_Create_Invalid(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewDonorRepo(db)
		_, err := repo.Create(context.Background(), &model.CreateDonorRequest{
			FirstName: "OnlyFirst",
		})
		require.Error(t, err)
	})
}

func TestDonorRepo_List_Filters(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewDonorRepo(db)

		createTestDonor(t, db, "Amaka", "Obi", model.BloodOPos, "Lagos")
		createTestDonor(t, db, "Chidi", "Obi", model.BloodONeg, "Lagos")
		createTestDonor(t, db, "Yusuf", "Sani", model.BloodOPos, "Kano")

		// filter by state
		lagos, err := repo.List(ctx, model.DonorsListOptions{State: testutil.StringPtr("Lagos")})
		require.NoError(t, err)
		assert.Len(t, lagos, 2)

		// filter by blood type
		bt := model.BloodOPos
		opos, err := repo.List(ctx, model.DonorsListOptions{BloodType: &bt})
		require.NoError(t, err)
		assert.Len(t, opos, 2)

		// substring search hits first name, last name, and email
		byName, err := repo.List(ctx, model.DonorsListOptions{Q: testutil.StringPtr("obi")})
		require.NoError(t, err)
		assert.Len(t, byName, 2)

		byEmail, err := repo.List(ctx, model.DonorsListOptions{Q: testutil.StringPtr("yusuf.sani@")})
		require.NoError(t, err)
		assert.Len(t, byEmail, 1)

		// combined filters
		combined, err := repo.List(ctx, model.DonorsListOptions{
			State:     testutil.StringPtr("Lagos"),
			BloodType: &bt,
		})
		require.NoError(t, err)
		assert.Len(t, combined, 1)
		assert.Equal(t, "Amaka", combined[0].FirstName)
	})
}

func TestDonorRepo_List_SortAndPaging(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewDonorRepo(db)

		createTestDonor(t, db, "Ada", "Zulu", model.BloodAPos, "Lagos")
		createTestDonor(t, db, "Bola", "Abah", model.BloodAPos, "Lagos")

		sorted, err := repo.List(ctx, model.DonorsListOptions{Sort: "last_name", Dir: "asc"})
		require.NoError(t, err)
		require.Len(t, sorted, 2)
		assert.Equal(t, "Abah", sorted[0].LastName)

		// unknown sort falls back to created_at; paging applies
		page, err := repo.List(ctx, model.DonorsListOptions{Limit: 1, Offset: 1, Sort: "nope"})
		require.NoError(t, err)
		assert.Len(t, page, 1)
	})
}

func TestDonorRepo_SetAvailability(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewDonorRepo(db)

		d := createTestDonor(t, db, "Femi", "Ade", model.BloodBPos, "Lagos")

		ok, err := repo.SetAvailability(ctx, d.ID, false)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := repo.GetByID(ctx, d.ID)
		require.NoError(t, err)
		assert.False(t, got.Available)

		avail := true
		listed, err := repo.List(ctx, model.DonorsListOptions{Available: &avail})
		require.NoError(t, err)
		assert.Empty(t, listed)
	})
}

func TestDonorRepo_RecordDonation(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewDonorRepo(db)

		d := createTestDonor(t, db, "Kemi", "Ola", model.BloodABNeg, "Lagos")
		require.Nil(t, d.LastDonation)

		ok, err := repo.RecordDonation(ctx, d.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := repo.GetByID(ctx, d.ID)
		require.NoError(t, err)
		assert.NotNil(t, got.LastDonation)
	})
}

func TestDonorRepo_GetByID_NotFound(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewDonorRepo(db)
		_, err := repo.GetByID(context.Background(), "00000000-0000-0000-0000-000000000000")
		require.ErrorIs(t, err, ErrDonorNotFound)
	})
}
