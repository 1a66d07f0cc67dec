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
	"github.com/pulsepoint/pulsepoint-api/internal/core"
	"github.com/pulsepoint/pulsepoint-api/internal/data/database"
	"github.com/pulsepoint/pulsepoint-api/internal/data/pgxutil"
	"github.com/pulsepoint/pulsepoint-api/internal/domain/model"
)

// ErrUnknownHospital is returned when posting a request against a hospital
// account that does not exist.
var ErrUnknownHospital = errors.New("hospital account not found")

// BloodRequestRepo provides database operations for posted blood requests.
type BloodRequestRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewBloodRequestRepo creates a new BloodRequestRepo with real time provider.
func NewBloodRequestRepo(db *sql.DB) *BloodRequestRepo {
	return &BloodRequestRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewBloodRequestRepoWithTimeProvider creates a new BloodRequestRepo with a custom time provider (useful for tests).
func NewBloodRequestRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *BloodRequestRepo {
	return &BloodRequestRepo{DB: db, timeProvider: tp}
}

// Create inserts a new blood request in active status.
func (r *BloodRequestRepo) Create(
	ctx context.Context,
	in *model.PostRequestInput,
) (*model.BloodRequest, error) {
	if in == nil {
		return nil, errors.New("post request input is required")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.BloodRequest
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO blood_requests (
				hospital_id, blood_type, quantity, quantity_unit, urgency, deadline,
				medical_condition, location, contact_person, contact_phone,
				contact_email, notes, status, created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14
			) RETURNING `+strings.Join(bloodRequestColumns(), ", "),
			in.HospitalID,
			in.BloodType,
			in.Quantity,
			strings.TrimSpace(in.QuantityUnit),
			in.Urgency,
			in.Deadline.UTC(),
			strings.TrimSpace(in.MedicalCondition),
			strings.TrimSpace(in.Location),
			strings.TrimSpace(in.ContactPerson),
			strings.TrimSpace(in.ContactPhone),
			strings.TrimSpace(in.ContactEmail),
			strings.TrimSpace(in.Notes),
			model.RequestStatusActive,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.BloodRequest])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err)
	}
	return &out, nil
}

// GetByID retrieves a blood request by ID.
func (r *BloodRequestRepo) GetByID(ctx context.Context, id string) (*model.BloodRequest, error) {
	var req model.BloodRequest
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, bloodRequestGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		req, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.BloodRequest])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get blood request by ID: %w", err)
	}
	return &req, nil
}

// List retrieves blood requests with optional filters and sorting.
func (r *BloodRequestRepo) List(
	ctx context.Context,
	opts model.RequestsListOptions,
) ([]*model.BloodRequest, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	query, args := database.BuildListQuery(r.buildRequestQueryOptions(opts, limit, offset))

	var rowsOut []model.BloodRequest
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.BloodRequest])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list blood requests: %w", err)
	}

	res := make([]*model.BloodRequest, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// UpdateStatus moves a request through its lifecycle. The hospital ID is part
// of the WHERE clause so a hospital can only touch its own requests; a miss
// on either column reports false, not an error.
func (r *BloodRequestRepo) UpdateStatus(
	ctx context.Context,
	params core.UpdateRequestStatusParams,
) (bool, error) {
	if !params.Status.Valid() {
		return false, errors.New("request status is invalid")
	}

	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `
			UPDATE blood_requests
			SET status = $1, updated_at = $2
			WHERE id = $3 AND hospital_id = $4`,
			params.Status, r.timeProvider.Now().UTC(), params.ID, params.HospitalID)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to update blood request status: %w", err)
	}
	return rows > 0, nil
}

// ExpireOverdue marks active requests past their deadline as expired and
// returns how many rows changed. Run periodically from the admin CLI.
func (r *BloodRequestRepo) ExpireOverdue(ctx context.Context) (int64, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		now := r.timeProvider.Now().UTC()
		ct, err := conn.Exec(ctx, `
			UPDATE blood_requests
			SET status = $1, updated_at = $2
			WHERE status = $3 AND deadline < $2`,
			model.RequestStatusExpired, now, model.RequestStatusActive)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to expire overdue requests: %w", err)
	}
	return rows, nil
}

// --- helpers ---

const bloodRequestGetByIDQuery = `
	SELECT id, hospital_id, blood_type, quantity, quantity_unit, urgency,
	       deadline, medical_condition, location, contact_person, contact_phone,
	       contact_email, notes, status, created_at, updated_at
	FROM blood_requests
	WHERE id = $1`

func bloodRequestColumns() []string {
	return []string{
		"id",
		"hospital_id",
		"blood_type",
		"quantity",
		"quantity_unit",
		"urgency",
		"deadline",
		"medical_condition",
		"location",
		"contact_person",
		"contact_phone",
		"contact_email",
		"notes",
		"status",
		"created_at",
		"updated_at",
	}
}

func (r *BloodRequestRepo) buildRequestQueryOptions(
	opts model.RequestsListOptions,
	limit, offset int,
) *database.ListQueryOptions {
	queryOpts := []database.ListQueryOption{
		database.WithColumns(bloodRequestColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}

	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		needle := "%" + strings.TrimSpace(*opts.Q) + "%"
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereRawCond(
				"(medical_condition ILIKE $1 OR location ILIKE $1 OR contact_person ILIKE $1)",
				needle,
			),
		))
	}
	if opts.BloodType != nil && opts.BloodType.Valid() {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("blood_type", database.Equal, *opts.BloodType),
		))
	}
	if opts.Urgency != nil && opts.Urgency.Valid() {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("urgency", database.Equal, *opts.Urgency),
		))
	}
	if opts.Status != nil && opts.Status.Valid() {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("status", database.Equal, *opts.Status),
		))
	}
	if opts.HospitalID != nil && strings.TrimSpace(*opts.HospitalID) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("hospital_id", database.Equal, strings.TrimSpace(*opts.HospitalID)),
		))
	}

	sortCol, sortDir := validateSortOptions(opts.Sort, opts.Dir, map[string]string{
		"created_at": "created_at",
		"deadline":   "deadline",
		"urgency":    "urgency",
	})
	queryOpts = append(queryOpts, database.WithOrderBy(sortCol, sortDir))

	return database.NewListQueryOptions("blood_requests", queryOpts...)
}

func (r *BloodRequestRepo) mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		return ErrUnknownHospital
	}
	return err
}
