package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pulsepoint/pulsepoint-api/internal/data/pgxutil"
	"github.com/pulsepoint/pulsepoint-api/internal/domain/auth"
	"github.com/pulsepoint/pulsepoint-api/internal/domain/model"
)

// AccountRepo provides credential and profile storage for both personas.
// Donor and hospital accounts live in separate tables; queries project both
// into the shared model.Account shape.
type AccountRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAccountRepo creates a new AccountRepo with real time provider.
func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewAccountRepoWithTimeProvider creates a new AccountRepo with a custom time provider (useful for tests).
func NewAccountRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *AccountRepo {
	return &AccountRepo{DB: db, timeProvider: tp}
}

// CreateDonor stores a donor account and its directory entry in one
// transaction. The directory row carries account_id so availability and
// donation history stay linked to the login.
func (r *AccountRepo) CreateDonor(
	ctx context.Context,
	signup *model.DonorSignup,
	passwordHash string,
) (*model.Account, error) {
	if signup == nil {
		return nil, errors.New("donor signup is required")
	}
	if err := signup.Validate(); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, errors.New("password hash is required")
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.Account
	if err := pgxutil.WithPgxTx(ctx, r.DB, func(tx pgx.Tx) error {
		if err := ensureEmailUnused(ctx, tx, emailInHospitalAccountsQuery, normalizeEmail(signup.Email)); err != nil {
			return err
		}

		rows, err := tx.Query(ctx, `
			INSERT INTO donor_accounts (
				email, password_hash, first_name, last_name, phone, date_of_birth,
				gender, blood_type, state, city, address, emergency_contact,
				medical_conditions, created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14
			) RETURNING `+donorAccountColumns,
			normalizeEmail(signup.Email),
			passwordHash,
			strings.TrimSpace(signup.FirstName),
			strings.TrimSpace(signup.LastName),
			strings.TrimSpace(signup.Phone),
			signup.DateOfBirth,
			signup.Gender,
			signup.BloodType,
			signup.State,
			signup.City,
			strings.TrimSpace(signup.Address),
			strings.TrimSpace(signup.EmergencyContact),
			strings.TrimSpace(signup.MedicalConditions),
			createdAt,
		)
		if err != nil {
			return err
		}
		out, err = collectAccount(rows)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO donors (
				account_id, first_name, last_name, email, phone, blood_type,
				state, city, address, emergency_contact, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`,
			out.ID,
			strings.TrimSpace(signup.FirstName),
			strings.TrimSpace(signup.LastName),
			normalizeEmail(signup.Email),
			strings.TrimSpace(signup.Phone),
			signup.BloodType,
			signup.State,
			signup.City,
			strings.TrimSpace(signup.Address),
			strings.TrimSpace(signup.EmergencyContact),
			createdAt,
		)
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err)
	}
	return &out, nil
}

// CreateHospital stores a hospital account and facility profile.
func (r *AccountRepo) CreateHospital(
	ctx context.Context,
	signup *model.HospitalSignup,
	passwordHash string,
) (*model.Account, error) {
	if signup == nil {
		return nil, errors.New("hospital signup is required")
	}
	if err := signup.Validate(); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, errors.New("password hash is required")
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.Account
	if err := pgxutil.WithPgxTx(ctx, r.DB, func(tx pgx.Tx) error {
		if err := ensureEmailUnused(ctx, tx, emailInDonorAccountsQuery, normalizeEmail(signup.Email)); err != nil {
			return err
		}

		rows, err := tx.Query(ctx, `
			INSERT INTO hospital_accounts (
				email, password_hash, name, contact_person, position, phone, type,
				registration_number, license_number, emergency_line, state, city,
				address, created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14
			) RETURNING `+hospitalAccountColumns,
			normalizeEmail(signup.Email),
			passwordHash,
			strings.TrimSpace(signup.HospitalName),
			strings.TrimSpace(signup.ContactPerson),
			strings.TrimSpace(signup.Position),
			strings.TrimSpace(signup.Phone),
			signup.Type,
			strings.TrimSpace(signup.RegistrationNumber),
			strings.TrimSpace(signup.LicenseNumber),
			strings.TrimSpace(signup.EmergencyLine),
			signup.State,
			signup.City,
			strings.TrimSpace(signup.Address),
			createdAt,
		)
		if err != nil {
			return err
		}
		out, err = collectAccount(rows)
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err)
	}
	return &out, nil
}

// GetByEmail finds an account of either persona by email. Donor accounts are
// checked first; emails are unique within each table and signup rejects an
// email already used by either persona.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	email = normalizeEmail(email)
	acct, err := r.getOne(ctx, accountByEmailDonorQuery, email)
	if err == nil {
		return acct, nil
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return nil, err
	}
	return r.getOne(ctx, accountByEmailHospitalQuery, email)
}

// GetByID finds an account of either persona by ID.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*model.Account, error) {
	acct, err := r.getOne(ctx, accountByIDDonorQuery, id)
	if err == nil {
		return acct, nil
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return nil, err
	}
	return r.getOne(ctx, accountByIDHospitalQuery, id)
}

// EmailTaken reports whether either persona already uses the email.
func (r *AccountRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrAccountNotFound) {
		return false, nil
	}
	return false, err
}

// --- helpers ---

// Column projections that shape each persona's table into model.Account.
// Roles are literals so the scanner can tell personas apart.
const (
	donorAccountColumns = `
		id, email, password_hash, '` + string(auth.RoleDonor) + `' AS role,
		trim(first_name || ' ' || last_name) AS display_name,
		avatar_url, blood_type, '' AS hospital_name, created_at`

	hospitalAccountColumns = `
		id, email, password_hash, '` + string(auth.RoleHospital) + `' AS role,
		name AS display_name, avatar_url, '' AS blood_type,
		name AS hospital_name, created_at`

	accountByEmailDonorQuery = `
		SELECT` + donorAccountColumns + `
		FROM donor_accounts
		WHERE email = $1`

	accountByEmailHospitalQuery = `
		SELECT` + hospitalAccountColumns + `
		FROM hospital_accounts
		WHERE email = $1`

	accountByIDDonorQuery = `
		SELECT` + donorAccountColumns + `
		FROM donor_accounts
		WHERE id = $1`

	accountByIDHospitalQuery = `
		SELECT` + hospitalAccountColumns + `
		FROM hospital_accounts
		WHERE id = $1`

	emailInDonorAccountsQuery    = `SELECT 1 FROM donor_accounts WHERE email = $1`
	emailInHospitalAccountsQuery = `SELECT 1 FROM hospital_accounts WHERE email = $1`
)

// ensureEmailUnused guards the cross-persona email invariant. Each table has
// its own UNIQUE index, so the other persona's table must be checked inside
// the same transaction as the insert.
func ensureEmailUnused(ctx context.Context, tx pgx.Tx, query, email string) error {
	var one int
	err := tx.QueryRow(ctx, query, email).Scan(&one)
	if err == nil {
		return ErrEmailExists
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	return err
}

func collectAccount(rows pgx.Rows) (model.Account, error) {
	defer rows.Close()
	return pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Account])
}

func (r *AccountRepo) getOne(ctx context.Context, q string, arg any) (*model.Account, error) {
	var acct model.Account
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, arg)
		if err != nil {
			return err
		}
		acct, err = collectAccount(rows)
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &acct, nil
}

func (r *AccountRepo) mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrEmailExists
	}
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
