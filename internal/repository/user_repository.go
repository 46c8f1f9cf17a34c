package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/hrstack/hr-api/internal/models"
)

// ErrInvalidCredentials is returned for unknown emails, wrong passwords, and
// inactive accounts alike, so callers cannot distinguish them.
var ErrInvalidCredentials = errors.New("invalid credentials")

type UserRepository interface {
	CreateUser(ctx context.Context, email, password, firstName, lastName string, roles []models.UserRole, employeeID *int64) (models.User, error)
	AuthenticateUser(ctx context.Context, email, password string) (models.User, error)
	GetUserByID(ctx context.Context, userID string) (models.User, error)
	UpdateUserRoles(ctx context.Context, userID string, roles []models.UserRole) (models.User, error)
	DeactivateUser(ctx context.Context, userID string) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (u *userRepository) CreateUser(ctx context.Context, email, password, firstName, lastName string, roles []models.UserRole, employeeID *int64) (models.User, error) {
	roles = models.EnsureDefaultRole(models.NormalizeRoles(roles))
	if !models.IsValidRoleList(roles) {
		return models.User{}, errors.New("invalid roles")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return models.User{}, errors.New("email is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		PasswordHash: string(hash),
		IsActive:     true,
		Roles:        roles,
		EmployeeID:   employeeID,
	}

	const query = `
		INSERT INTO hr.users (id, email, first_name, last_name, password_hash, is_active, roles, employee_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = u.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.IsActive,
		pq.Array(toStringSlice(user.Roles)),
		user.EmployeeID,
	)
	if err != nil {
		return models.User{}, errors.Wrap(err, "insert user")
	}

	return user, nil
}

func (u *userRepository) AuthenticateUser(ctx context.Context, email, password string) (models.User, error) {
	user, err := u.getByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if !user.IsActive {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}

const userColumns = `id, email, first_name, last_name, password_hash, is_active, roles, employee_id`

func (u *userRepository) getByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM hr.users WHERE email = $1`
	return u.scanUser(u.db.QueryRowContext(ctx, query, email))
}

func (u *userRepository) GetUserByID(ctx context.Context, userID string) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM hr.users WHERE id = $1`
	user, err := u.scanUser(u.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (u *userRepository) UpdateUserRoles(ctx context.Context, userID string, roles []models.UserRole) (models.User, error) {
	roles = models.EnsureDefaultRole(models.NormalizeRoles(roles))
	if !models.IsValidRoleList(roles) {
		return models.User{}, errors.New("invalid roles")
	}

	const query = `
		UPDATE hr.users SET roles = $1 WHERE id = $2
		RETURNING ` + userColumns
	user, err := u.scanUser(u.db.QueryRowContext(ctx, query, pq.Array(toStringSlice(roles)), userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, errors.Wrap(err, "update user roles")
	}
	return user, nil
}

func (u *userRepository) DeactivateUser(ctx context.Context, userID string) error {
	res, err := u.db.ExecContext(ctx, `UPDATE hr.users SET is_active = FALSE WHERE id = $1`, userID)
	if err != nil {
		return errors.Wrap(err, "deactivate user")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (u *userRepository) scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	var roles pq.StringArray
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.IsActive,
		&roles,
		&user.EmployeeID,
	)
	if err != nil {
		return models.User{}, err
	}

	user.Roles = models.EnsureDefaultRole(models.NormalizeRoles(toUserRoleSlice(roles)))
	if !models.IsValidRoleList(user.Roles) {
		return models.User{}, errors.New("user has invalid roles")
	}
	return user, nil
}

func toStringSlice(roles []models.UserRole) []string {
	out := make([]string, len(roles))
	for i, role := range roles {
		out[i] = string(role)
	}
	return out
}

func toUserRoleSlice(values pq.StringArray) []models.UserRole {
	out := make([]models.UserRole, len(values))
	for i, v := range values {
		out[i] = models.UserRole(v)
	}
	return out
}
