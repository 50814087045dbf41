package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Conversion helpers between Go values and their pgtype representations.
// Zero values map to invalid (NULL) columns except where noted.

// UUID wraps a google/uuid value for use as a query parameter.
func UUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: id != uuid.Nil}
}

// ToUUID unwraps a pgtype.UUID, returning uuid.Nil for NULL.
func ToUUID(id pgtype.UUID) uuid.UUID {
	if !id.Valid {
		return uuid.Nil
	}
	return uuid.UUID(id.Bytes)
}

// Text wraps a string, treating empty as NULL.
func Text(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

// Timestamptz wraps a time, treating the zero time as NULL.
func Timestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: !t.IsZero()}
}

// Int4 wraps an int32 as a non-NULL column value.
func Int4(n int32) pgtype.Int4 {
	return pgtype.Int4{Int32: n, Valid: true}
}

// Float8 wraps a float64 as a non-NULL column value.
func Float8(f float64) pgtype.Float8 {
	return pgtype.Float8{Float64: f, Valid: true}
}

// Date wraps a time, treating the zero time as NULL.
func Date(t time.Time) pgtype.Date {
	return pgtype.Date{Time: t, Valid: !t.IsZero()}
}
