package repository

import "database/sql"

// requireRow converts a zero-row update/delete into sql.ErrNoRows so
// services can map it to a NotFound response.
func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
