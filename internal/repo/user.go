package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	"github.com/jlfs-dev/picshare/internal/apperrors"
	"github.com/jlfs-dev/picshare/internal/models"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// ==========================
// Save (insert or full replace)
// ==========================
// Save inserts the record when ID is zero, assigning the generated id.
// Otherwise it replaces the full row. Unique violations surface as
// *apperrors.FieldExistsError so concurrent sign-ups that slip past the
// service precheck still map to a conflict.
func (r *UserRepo) Save(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == 0 {
		query := `
			INSERT INTO users (full_name, username, email, encrypted_password)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`
		err := r.DB.QueryRowContext(ctx, query,
			user.FullName, user.Username, user.Email, user.EncryptedPassword).
			Scan(&user.ID)
		if err != nil {
			return nil, translateUnique(err)
		}
		return user, nil
	}

	query := `
		UPDATE users
		SET full_name = $1, username = $2, email = $3, encrypted_password = $4
		WHERE id = $5
	`
	res, err := r.DB.ExecContext(ctx, query,
		user.FullName, user.Username, user.Email, user.EncryptedPassword, user.ID)
	if err != nil {
		return nil, translateUnique(err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apperrors.ErrNoSuchUser
	}
	return user, nil
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, full_name, username, email, encrypted_password
		FROM users
		WHERE id = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.FullName, &user.Username, &user.Email, &user.EncryptedPassword)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNoSuchUser
		}
		return nil, err
	}

	return user, nil
}

// ==========================
// Get By Username (case-sensitive exact match)
// ==========================
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, full_name, username, email, encrypted_password
		FROM users
		WHERE username = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.FullName, &user.Username, &user.Email, &user.EncryptedPassword)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNoSuchUser
		}
		return nil, err
	}

	return user, nil
}

// ==========================
// Existence checks
// ==========================
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	return exists, err
}

func (r *UserRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// ==========================
// List Users
// ==========================
func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, full_name, username, email, encrypted_password FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Username, &u.Email, &u.EncryptedPassword); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// ==========================
// Count
// ==========================
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// ==========================
// Delete User
// ==========================
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return apperrors.ErrNoSuchUser
	}

	return nil
}

// ==========================
// Partial update (column-wise conditional write)
// ==========================
// UpdatePartial overwrites only the non-nil fields of patch in a single
// transactional statement: new = supplied ?? existing. It returns the number
// of rows affected (0 when no row matches the id, 1 on success) and is
// idempotent for repeated identical calls.
func (r *UserRepo) UpdatePartial(ctx context.Context, patch models.UserPatch) (int64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	query := `
		UPDATE users
		SET full_name = COALESCE($1, full_name),
		    username = COALESCE($2, username),
		    email = COALESCE($3, email),
		    encrypted_password = COALESCE($4, encrypted_password)
		WHERE id = $5
	`
	res, err := tx.ExecContext(ctx, query,
		patch.FullName, patch.Username, patch.Email, patch.EncryptedPassword, patch.ID)
	if err != nil {
		return 0, translateUnique(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return rows, nil
}

// translateUnique maps Postgres unique violations (23505) onto the domain
// conflict error, keyed by the constraint that fired.
func translateUnique(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		switch {
		case strings.Contains(pqErr.Constraint, "email"):
			return &apperrors.FieldExistsError{Field: "email", Message: "email already in use"}
		case strings.Contains(pqErr.Constraint, "username"):
			return &apperrors.FieldExistsError{Field: "username", Message: "username already in use"}
		default:
			return &apperrors.FieldExistsError{Field: pqErr.Constraint, Message: "field already in use"}
		}
	}
	return err
}
