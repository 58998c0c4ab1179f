package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/vault-keeper/models"
)

const usersTable = "users"

var userColumns = []string{"user_id", "username", "salt", "vault_path", "created_at"}

// buildCreateUserQuery returns an INSERT for a new registry record that
// hands back the generated user_id.
func buildCreateUserQuery(ph sq.PlaceholderFormat, user models.User, createdAt time.Time) (string, []any, error) {
	return sq.Insert(usersTable).
		Columns("username", "salt", "vault_path", "created_at").
		Values(user.Username, user.Salt, user.VaultPath, createdAt).
		Suffix("RETURNING user_id").
		PlaceholderFormat(ph).
		ToSql()
}

// buildFindUserByUsernameQuery returns a SELECT of the full registry record
// for one username.
func buildFindUserByUsernameQuery(ph sq.PlaceholderFormat, username string) (string, []any, error) {
	return sq.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"username": username}).
		PlaceholderFormat(ph).
		ToSql()
}

// buildVaultPathQuery returns a SELECT of the vault location of one user.
func buildVaultPathQuery(ph sq.PlaceholderFormat, username string) (string, []any, error) {
	return sq.Select("vault_path").
		From(usersTable).
		Where(sq.Eq{"username": username}).
		PlaceholderFormat(ph).
		ToSql()
}
