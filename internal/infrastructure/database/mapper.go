package database

import "github.com/jackc/pgx/v5/pgtype"

// textOrEmpty returns t.String when Valid, else "".
func textOrEmpty(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}
