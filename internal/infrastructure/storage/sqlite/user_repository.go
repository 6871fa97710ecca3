package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"golang.org/x/exp/slog"

	"moneytracker/internal/domain/errs"
	"moneytracker/internal/domain/user"
)

type UserRepository struct {
	storage *Storage
	log     *slog.Logger
}

func NewUserRepository(storage *Storage, log *slog.Logger) *UserRepository {
	return &UserRepository{
		storage: storage,
		log:     log,
	}
}

func (r *UserRepository) Create(ctx context.Context, name string, encryptedPassword []byte) (int64, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	res, err := r.storage.db.ExecContext(ctx,
		`INSERT INTO users (name, encrypted_password) VALUES (?, ?)`,
		name, encryptedPassword)
	if err != nil {
		return 0, r.storage.fail("create user", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, r.storage.fail("create user", err)
	}
	return id, nil
}

// Authenticate reports whether a user with name and exactly these credential
// bytes exists.
func (r *UserRepository) Authenticate(ctx context.Context, name string, encryptedPassword []byte) (bool, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	var n int
	err := r.storage.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE name = ? AND encrypted_password = ?`,
		name, encryptedPassword).Scan(&n)
	if err != nil {
		return false, r.storage.fail("authenticate", err)
	}
	return n > 0, nil
}

func (r *UserRepository) ChangePassword(ctx context.Context, name string, encryptedPassword []byte) error {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	res, err := r.storage.db.ExecContext(ctx,
		`UPDATE users SET encrypted_password = ? WHERE name = ?`,
		encryptedPassword, name)
	if err != nil {
		return r.storage.fail("change password", err)
	}
	return r.exactlyOne("change password", res)
}

func (r *UserRepository) ChangeUsername(ctx context.Context, oldName, newName string) error {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	res, err := r.storage.db.ExecContext(ctx,
		`UPDATE users SET name = ? WHERE name = ?`,
		newName, oldName)
	if err != nil {
		return r.storage.fail("change username", err)
	}
	return r.exactlyOne("change username", res)
}

func (r *UserRepository) FindByName(ctx context.Context, name string) (user.User, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	var u user.User
	err := r.storage.db.QueryRowContext(ctx,
		`SELECT id, name, encrypted_password FROM users WHERE name = ?`, name).
		Scan(&u.ID, &u.Name, &u.EncryptedPassword)
	if errors.Is(err, sql.ErrNoRows) {
		return user.User{}, errs.Wrap(errs.ErrNotFound, "find user", nil)
	}
	if err != nil {
		return user.User{}, r.storage.fail("find user", err)
	}
	return u, nil
}

func (r *UserRepository) exactlyOne(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return r.storage.fail(op, err)
	}
	if n != 1 {
		r.log.Debug("no user changed", "op", op, "rows", n)
		return errs.Wrap(errs.ErrNotFound, op, nil)
	}
	return nil
}
