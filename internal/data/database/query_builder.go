package database

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

type ConditionType string

const (
	Equal              ConditionType = "="
	NotEqual           ConditionType = "!="
	GreaterThan        ConditionType = ">"
	LessThan           ConditionType = "<"
	LessThanOrEqual    ConditionType = "<="
	GreaterThanOrEqual ConditionType = ">="
	Like               ConditionType = "LIKE"
	ILike              ConditionType = "ILIKE"
	In                 ConditionType = "IN"

	defaultLimit  = -1
	defaultOffset = -1
)

// Condition is a single WHERE predicate. Field names are sanitized at
// build time via pgx.Identifier.
type Condition struct {
	Field    string
	Type     ConditionType
	Value    any
	rawQuery string
	rawArgs  []any
}

func WhereCond(field string, condType ConditionType, value any) Condition {
	return Condition{Field: field, Type: condType, Value: value}
}

// WhereRawCond adds a raw SQL fragment, used for predicates the typed
// conditions can't express (OR groups, expressions). Placeholders must be
// written as $1..$n relative to params; they are renumbered at build time.
// The raw fragment itself is not sanitized.
func WhereRawCond(rawQuery string, params ...any) Condition {
	return Condition{rawQuery: rawQuery, rawArgs: params}
}

// ListQueryOptions describes a filtered, ordered, paginated SELECT.
type ListQueryOptions struct {
	Table      string
	Columns    []string
	CountOnly  bool
	Conditions []Condition
	OrderBy    string
	OrderDir   string
	Limit      int
	Offset     int
}

type ListQueryOption func(*ListQueryOptions)

func NewListQueryOptions(table string, opts ...ListQueryOption) *ListQueryOptions {
	options := &ListQueryOptions{
		Table:      table,
		Columns:    []string{},
		Conditions: []Condition{},
		Limit:      defaultLimit,
		Offset:     defaultOffset,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithColumns sets the columns to select.
func WithColumns(cols ...string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Columns = cols
	}
}

// WithCondition adds a single condition.
func WithCondition(cond Condition) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Conditions = append(o.Conditions, cond)
	}
}

// WithOrderBy sets the ordering column and direction.
func WithOrderBy(column, direction string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.OrderBy = column
		o.OrderDir = direction
	}
}

// WithLimit sets the limit. Accepts 0.
func WithLimit(limit int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if limit >= 0 {
			o.Limit = limit
		}
	}
}

// WithOffset sets the offset. Accepts 0.
func WithOffset(offset int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if offset >= 0 {
			o.Offset = offset
		}
	}
}

// WithCountOnly sets the query to count only.
func WithCountOnly() ListQueryOption {
	return func(o *ListQueryOptions) {
		o.CountOnly = true
	}
}

func sanitizeIdentifier(ident string) string {
	return pgx.Identifier{ident}.Sanitize()
}

func buildSelectClause(options *ListQueryOptions) string {
	if options.CountOnly {
		return "SELECT COUNT(*) "
	}
	if len(options.Columns) == 0 {
		return "SELECT * "
	}
	cols := make([]string, len(options.Columns))
	for i, col := range options.Columns {
		cols[i] = sanitizeIdentifier(col)
	}
	return fmt.Sprintf("SELECT %s ", strings.Join(cols, ", "))
}

func processRawCondition(cond Condition, paramCount int) (string, []any, int) {
	if cond.rawQuery == "" {
		return "", nil, paramCount
	}
	re := regexp.MustCompile(`\$(\d+)`)
	args := make([]any, 0, len(cond.rawArgs))
	idxMap := make(map[int]int)
	conditionStr := re.ReplaceAllStringFunc(cond.rawQuery, func(m string) string {
		n, err := strconv.Atoi(m[1:])
		if err != nil || n < 1 || n > len(cond.rawArgs) {
			return m
		}
		if _, ok := idxMap[n]; !ok {
			idxMap[n] = paramCount
			args = append(args, cond.rawArgs[n-1])
			paramCount++
		}
		return fmt.Sprintf("$%d", idxMap[n])
	})
	return conditionStr, args, paramCount
}

func processCondition(cond Condition, paramCount int) (string, []any, int) {
	if cond.rawQuery != "" {
		return processRawCondition(cond, paramCount)
	}
	if cond.Field == "" {
		return "", nil, paramCount
	}
	field := sanitizeIdentifier(cond.Field)

	if cond.Type == In {
		rv := reflect.ValueOf(cond.Value)
		if rv.Kind() != reflect.Slice || rv.Len() == 0 {
			return "", nil, paramCount
		}
		placeholders := make([]string, rv.Len())
		args := make([]any, rv.Len())
		for i := range rv.Len() {
			placeholders[i] = fmt.Sprintf("$%d", paramCount)
			args[i] = rv.Index(i).Interface()
			paramCount++
		}
		return fmt.Sprintf("%s IN (%s)", field, strings.Join(placeholders, ", ")), args, paramCount
	}

	conditionStr := fmt.Sprintf("%s %s $%d", field, cond.Type, paramCount)
	return conditionStr, []any{cond.Value}, paramCount + 1
}

func buildWhereClause(inputConditions []Condition, startParamIndex int) (string, []any, int) {
	conditions := make([]string, 0, len(inputConditions))
	args := []any{}
	paramCount := startParamIndex

	for _, cond := range inputConditions {
		conditionStr, newArgs, nextParamCount := processCondition(cond, paramCount)
		if conditionStr != "" {
			conditions = append(conditions, conditionStr)
			args = append(args, newArgs...)
			paramCount = nextParamCount
		}
	}
	if len(conditions) == 0 {
		return "", args, paramCount
	}
	return "WHERE " + strings.Join(conditions, " AND "), args, paramCount
}

// BuildListQuery constructs a SQL query string and arguments from options,
// sanitizing identifiers. Conditions are joined with AND.
func BuildListQuery(options *ListQueryOptions) (string, []any) {
	if options == nil {
		return "", nil
	}

	var query strings.Builder
	query.WriteString(buildSelectClause(options))
	query.WriteString("FROM ")
	query.WriteString(sanitizeIdentifier(options.Table))

	whereClause, args, paramCount := buildWhereClause(options.Conditions, 1)
	if whereClause != "" {
		query.WriteString(" ")
		query.WriteString(whereClause)
	}

	if options.CountOnly {
		return query.String(), args
	}

	if options.OrderBy != "" {
		query.WriteString(" ORDER BY ")
		query.WriteString(sanitizeIdentifier(options.OrderBy))
		upperDir := strings.ToUpper(options.OrderDir)
		if upperDir == "ASC" || upperDir == "DESC" {
			query.WriteString(" ")
			query.WriteString(upperDir)
		}
	}
	if options.Limit != defaultLimit {
		query.WriteString(fmt.Sprintf(" LIMIT $%d", paramCount))
		args = append(args, options.Limit)
		paramCount++
	}
	if options.Offset != defaultOffset {
		query.WriteString(fmt.Sprintf(" OFFSET $%d", paramCount))
		args = append(args, options.Offset)
	}

	return query.String(), args
}
