package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/volcano/internal/model"
	"github.com/xxxsen/volcano/internal/pkg/dateutil"
	"github.com/xxxsen/volcano/internal/pkg/dbutil"
	appErr "github.com/xxxsen/volcano/internal/pkg/errors"
)

func userFields() []string {
	return []string{"id", "email", "password_hash", "first_name", "last_name", "dob", "address"}
}

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, email, passwordHash string) error {
	data := map[string]interface{}{
		"email":         email,
		"password_hash": passwordHash,
	}
	sqlStr, args, err := builder.BuildInsert("users", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	where := map[string]interface{}{"email": email}
	sqlStr, args, err := builder.BuildSelect("users", where, userFields())
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, appErr.ErrNotFound
	}
	var user model.User
	var firstName, lastName, address sql.NullString
	var dob sql.NullTime
	if err := rows.Scan(&user.ID, &user.Email, &user.PasswordHash, &firstName, &lastName, &dob, &address); err != nil {
		return nil, err
	}
	user.FirstName = stringPtr(firstName)
	user.LastName = stringPtr(lastName)
	user.DOB = timePtr(dob)
	user.Address = stringPtr(address)
	return &user, nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, email string, update model.ProfileUpdate) error {
	where := map[string]interface{}{"email": email}
	data := map[string]interface{}{
		"first_name": update.FirstName,
		"last_name":  update.LastName,
		"dob":        dateutil.Format(update.DOB),
		"address":    update.Address,
	}
	sqlStr, args, err := builder.BuildUpdate("users", where, data)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}
