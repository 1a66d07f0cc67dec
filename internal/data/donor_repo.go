package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/pulsepoint/pulsepoint-api/internal/data/database"
	"github.com/pulsepoint/pulsepoint-api/internal/data/pgxutil"
	"github.com/pulsepoint/pulsepoint-api/internal/domain/model"
)

const (
	sortDirAsc  = "ASC"
	sortDirDesc = "DESC"
)

// DonorRepo provides database operations for the donor directory.
type DonorRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewDonorRepo creates a new DonorRepo with real time provider.
func NewDonorRepo(db *sql.DB) *DonorRepo {
	return &DonorRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewDonorRepoWithTimeProvider creates a new DonorRepo with a custom time provider (useful for tests).
func NewDonorRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *DonorRepo {
	return &DonorRepo{DB: db, timeProvider: tp}
}

// Create inserts a hospital-entered donor record. Self-registered donors get
// their directory rows from AccountRepo.CreateDonor instead.
func (r *DonorRepo) Create(ctx context.Context, req *model.CreateDonorRequest) (*model.Donor, error) {
	if req == nil {
		return nil, errors.New("create donor request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.Donor
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO donors (
				first_name, last_name, email, phone, blood_type, state, city,
				address, created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $9
			) RETURNING `+strings.Join(donorColumns(), ", "),
			strings.TrimSpace(req.FirstName),
			strings.TrimSpace(req.LastName),
			normalizeEmail(req.Email),
			strings.TrimSpace(req.Phone),
			req.BloodType,
			req.State,
			req.City,
			strings.TrimSpace(req.Address),
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Donor])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create donor: %w", err)
	}
	return &out, nil
}

// GetByID retrieves a donor by ID.
func (r *DonorRepo) GetByID(ctx context.Context, id string) (*model.Donor, error) {
	var donor model.Donor
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, donorGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		donor, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Donor])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDonorNotFound
		}
		return nil, fmt.Errorf("failed to get donor by ID: %w", err)
	}
	return &donor, nil
}

// List retrieves donors with optional filters and sorting.
func (r *DonorRepo) List(ctx context.Context, opts model.DonorsListOptions) ([]*model.Donor, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	query, args := database.BuildListQuery(r.buildDonorQueryOptions(opts, limit, offset))

	var rowsOut []model.Donor
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Donor])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list donors: %w", err)
	}

	res := make([]*model.Donor, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// SetAvailability flips whether the donor shows as reachable. Returns false
// when no donor matches the ID.
func (r *DonorRepo) SetAvailability(ctx context.Context, id string, available bool) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx,
			`UPDATE donors SET available = $1, updated_at = $2 WHERE id = $3`,
			available, r.timeProvider.Now().UTC(), id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to set donor availability: %w", err)
	}
	return rows > 0, nil
}

// RecordDonation stamps the donor's last donation time.
func (r *DonorRepo) RecordDonation(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		now := r.timeProvider.Now().UTC()
		ct, err := conn.Exec(ctx,
			`UPDATE donors SET last_donation = $1, updated_at = $1 WHERE id = $2`,
			now, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to record donation: %w", err)
	}
	return rows > 0, nil
}

// --- helpers ---

const donorGetByIDQuery = `
	SELECT id, account_id, first_name, last_name, email, phone, blood_type,
	       state, city, address, emergency_contact, last_donation, available,
	       created_at, updated_at
	FROM donors
	WHERE id = $1`

func donorColumns() []string {
	return []string{
		"id",
		"account_id",
		"first_name",
		"last_name",
		"email",
		"phone",
		"blood_type",
		"state",
		"city",
		"address",
		"emergency_contact",
		"last_donation",
		"available",
		"created_at",
		"updated_at",
	}
}

func (r *DonorRepo) buildDonorQueryOptions(
	opts model.DonorsListOptions,
	limit, offset int,
) *database.ListQueryOptions {
	queryOpts := []database.ListQueryOption{
		database.WithColumns(donorColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}

	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		needle := "%" + strings.TrimSpace(*opts.Q) + "%"
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereRawCond(
				"(first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1)",
				needle,
			),
		))
	}
	if opts.BloodType != nil && opts.BloodType.Valid() {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("blood_type", database.Equal, *opts.BloodType),
		))
	}
	if opts.State != nil && strings.TrimSpace(*opts.State) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("state", database.Equal, strings.TrimSpace(*opts.State)),
		))
	}
	if opts.Available != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("available", database.Equal, *opts.Available),
		))
	}

	sortCol, sortDir := validateSortOptions(opts.Sort, opts.Dir, map[string]string{
		"created_at": "created_at",
		"last_name":  "last_name",
		"blood_type": "blood_type",
	})
	queryOpts = append(queryOpts, database.WithOrderBy(sortCol, sortDir))

	return database.NewListQueryOptions("donors", queryOpts...)
}

// validateSortOptions validates and returns safe sort column and direction.
// Unknown columns fall back to created_at, unknown directions to DESC.
func validateSortOptions(sort, dir string, allowedSorts map[string]string) (string, string) {
	sortCol := "created_at"
	sortDir := sortDirDesc

	if sort != "" {
		if validSort, ok := allowedSorts[strings.ToLower(strings.TrimSpace(sort))]; ok {
			sortCol = validSort
		}
	}
	if dir != "" {
		allowedDirs := map[string]string{
			"asc":  sortDirAsc,
			"desc": sortDirDesc,
		}
		if validDir, ok := allowedDirs[strings.ToLower(strings.TrimSpace(dir))]; ok {
			sortDir = validDir
		}
	}
	return sortCol, sortDir
}
