package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildListQuery_Basic(t *testing.T) {
	opts := NewListQueryOptions("donors",
		WithColumns("id", "full_name"),
		WithLimit(10),
		WithOffset(5),
	)
	query, args := BuildListQuery(opts)
	assert.Equal(t, `SELECT "id", "full_name" FROM "donors" LIMIT $1 OFFSET $2`, query)
	assert.Equal(t, []any{10, 5}, args)
}

func TestBuildListQuery_Conditions(t *testing.T) {
	opts := NewListQueryOptions("donors",
		WithColumns("id"),
		WithCondition(WhereCond("blood_type", Equal, "O+")),
		WithCondition(WhereCond("full_name", ILike, "%ade%")),
		WithOrderBy("created_at", "desc"),
	)
	query, args := BuildListQuery(opts)
	assert.Equal(t,
		`SELECT "id" FROM "donors" WHERE "blood_type" = $1 AND "full_name" ILIKE $2 ORDER BY "created_at" DESC`,
		query)
	assert.Equal(t, []any{"O+", "%ade%"}, args)
}

func TestBuildListQuery_InCondition(t *testing.T) {
	opts := NewListQueryOptions("blood_requests",
		WithCondition(WhereCond("urgency", In, []string{"critical", "high"})),
	)
	query, args := BuildListQuery(opts)
	assert.Equal(t, `SELECT * FROM "blood_requests" WHERE "urgency" IN ($1, $2)`, query)
	assert.Equal(t, []any{"critical", "high"}, args)
}

func TestBuildListQuery_EmptyInSkipped(t *testing.T) {
	opts := NewListQueryOptions("blood_requests",
		WithCondition(WhereCond("urgency", In, []string{})),
	)
	query, args := BuildListQuery(opts)
	assert.Equal(t, `SELECT * FROM "blood_requests"`, query)
	assert.Empty(t, args)
}

func TestBuildListQuery_CountOnly(t *testing.T) {
	opts := NewListQueryOptions("donors",
		WithCountOnly(),
		WithCondition(WhereCond("state", Equal, "Lagos")),
		WithLimit(10),
	)
	query, args := BuildListQuery(opts)
	assert.Equal(t, `SELECT COUNT(*) FROM "donors" WHERE "state" = $1`, query)
	assert.Equal(t, []any{"Lagos"}, args)
}

func TestBuildListQuery_SanitizesIdentifiers(t *testing.T) {
	opts := NewListQueryOptions("donors",
		WithColumns("id"),
		WithOrderBy("created_at; DROP TABLE donors", "desc"),
	)
	query, _ := BuildListQuery(opts)
	assert.Contains(t, query, `"created_at; DROP TABLE donors"`)
}

func TestBuildListQuery_InvalidDirectionOmitted(t *testing.T) {
	opts := NewListQueryOptions("donors",
		WithOrderBy("created_at", "sideways"),
	)
	query, _ := BuildListQuery(opts)
	assert.Equal(t, `SELECT * FROM "donors" ORDER BY "created_at"`, query)
}

func TestBuildListQuery_RawCondition(t *testing.T) {
	opts := NewListQueryOptions("donors",
		WithCondition(WhereCond("state", Equal, "Lagos")),
		WithCondition(WhereRawCond("(first_name ILIKE $1 OR last_name ILIKE $1)", "%ade%")),
		WithLimit(20),
	)
	query, args := BuildListQuery(opts)
	assert.Equal(t,
		`SELECT * FROM "donors" WHERE "state" = $1 AND (first_name ILIKE $2 OR last_name ILIKE $2) LIMIT $3`,
		query)
	assert.Equal(t, []any{"Lagos", "%ade%", 20}, args)
}

func TestBuildListQuery_NilOptions(t *testing.T) {
	query, args := BuildListQuery(nil)
	assert.Empty(t, query)
	assert.Nil(t, args)
}
