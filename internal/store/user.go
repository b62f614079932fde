package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/navanexis/site/internal/authz"
	"github.com/pkg/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var userMigrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY,

		subject TEXT NOT NULL,
		provider TEXT NOT NULL,

		nickname TEXT,
		email TEXT,

		role TEXT NOT NULL DEFAULT 'member',

		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		connected_at INTEGER,

		UNIQUE (subject, provider)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_users_role ON users(role);`,
}

type User struct {
	ID int64

	Provider string
	Subject  string

	Role authz.Role

	CreatedAt   time.Time
	UpdatedAt   time.Time
	ConnectedAt time.Time

	Nickname string
	Email    string
}

// Provider implements authn.User.
func (u *User) UserProvider() string {
	return u.Provider
}

// Subject implements authn.User.
func (u *User) UserSubject() string {
	return u.Subject
}

func (u *User) IsAdmin() bool {
	return u.Role == authz.RoleAdmin
}

func (s *Store) FindOrCreateUser(ctx context.Context, subject, provider string) (*User, error) {
	var user *User
	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`SELECT %s FROM users WHERE subject = ? AND provider = ? LIMIT 1`, userAttributes)
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{subject, provider},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user = &User{}
				return errors.WithStack(s.bindUser(stmt, user))
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		if user != nil {
			return nil
		}

		now := time.Now().UTC().Unix()

		query = fmt.Sprintf(`
			INSERT INTO users (subject, provider, role, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
			RETURNING %s
		`, userAttributes)

		err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{subject, provider, string(authz.RoleMember), now, now},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user = &User{}
				return errors.WithStack(s.bindUser(stmt, user))
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return user, nil
}

// UpdateUser persists the profile, role and connection time of the given
// user. A zero ConnectedAt leaves the stored value untouched.
func (s *Store) UpdateUser(ctx context.Context, user *User) (*User, error) {
	if !user.Role.Valid() {
		return nil, errors.Errorf("invalid role '%s'", user.Role)
	}

	var updatedUser *User

	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`
			UPDATE users SET
				nickname = ?,
				email = ?,
				role = ?,
				connected_at = COALESCE(?, connected_at),
				updated_at = ?
			WHERE id = ? RETURNING %s
		`, userAttributes)

		updatedAt := time.Now().UTC().Unix()
		if !user.UpdatedAt.IsZero() {
			updatedAt = user.UpdatedAt.Unix()
		}

		var connectedAt any
		if !user.ConnectedAt.IsZero() {
			connectedAt = user.ConnectedAt.Unix()
		}

		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{user.Nickname, user.Email, string(user.Role), connectedAt, updatedAt, user.ID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				updatedUser = &User{}
				return errors.WithStack(s.bindUser(stmt, updatedUser))
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		if updatedUser == nil {
			return errors.Errorf("user '%d' not found", user.ID)
		}

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return updatedUser, nil
}

func (s *Store) GetUsers(ctx context.Context, userIDs ...int64) ([]*User, error) {
	var users []*User

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		var query string
		var args []any

		if len(userIDs) > 0 {
			placeholders := make([]string, len(userIDs))
			args = make([]any, len(userIDs))

			for i, id := range userIDs {
				placeholders[i] = "?"
				args[i] = id
			}

			query = fmt.Sprintf("SELECT %s FROM users WHERE id IN (%s) ORDER BY id",
				userAttributes, strings.Join(placeholders, ", "))
		} else {
			query = fmt.Sprintf("SELECT %s FROM users ORDER BY id", userAttributes)
		}

		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: args,
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user := &User{}
				if err := s.bindUser(stmt, user); err != nil {
					return errors.WithStack(err)
				}

				users = append(users, user)
				return nil
			},
		}))
	})

	return users, errors.WithStack(err)
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	return s.count(ctx, "SELECT COUNT(*) FROM users")
}

func (s *Store) CountAdmins(ctx context.Context) (int64, error) {
	return s.count(ctx, "SELECT COUNT(*) FROM users WHERE role = ?", string(authz.RoleAdmin))
}

func (s *Store) count(ctx context.Context, query string, args ...any) (int64, error) {
	var count int64

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: args,
			ResultFunc: func(stmt *sqlite.Stmt) error {
				count = stmt.ColumnInt64(0)
				return nil
			},
		}))
	})

	return count, errors.WithStack(err)
}

var userAttributes = `id, subject, provider, nickname, email, role, created_at, updated_at, connected_at`

func (s *Store) bindUser(stmt *sqlite.Stmt, user *User) error {
	user.ID = stmt.ColumnInt64(0)
	user.Subject = stmt.ColumnText(1)
	user.Provider = stmt.ColumnText(2)
	user.Nickname = stmt.ColumnText(3)
	user.Email = stmt.ColumnText(4)

	role, err := authz.ParseRole(stmt.ColumnText(5))
	if err != nil {
		return errors.WithStack(err)
	}

	user.Role = role
	user.CreatedAt = time.Unix(stmt.ColumnInt64(6), 0).UTC()
	user.UpdatedAt = time.Unix(stmt.ColumnInt64(7), 0).UTC()

	if stmt.ColumnType(8) != sqlite.TypeNull {
		user.ConnectedAt = time.Unix(stmt.ColumnInt64(8), 0).UTC()
	}

	return nil
}
