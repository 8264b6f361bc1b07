package postgresqltest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/user"
	"github.com/sensacion-hr/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newOperator(t *testing.T, username string, role user.Role) user.User {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	return user.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hashedPassword),
		Name:         "Test " + username,
		Role:         role,
		Active:       true,
	}
}

// ===== OPERATOR REPOSITORY TESTS =====

func TestUserRepository_Create_Success(t *testing.T) {
	setup := SetupTestDatabase(t)
	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(setup.DB)

	newUser := newOperator(t, "recepcion", user.RoleOperator)

	created, err := userRepo.Create(ctx, newUser)

	assert.NoError(t, err)
	assert.Equal(t, newUser.ID, created.ID)
	assert.Equal(t, "recepcion", created.Username)
	assert.Equal(t, user.RoleOperator, created.Role)
	assert.True(t, created.Active)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	setup := SetupTestDatabase(t)
	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(setup.DB)

	_, err := userRepo.Create(ctx, newOperator(t, "admin", user.RoleAdmin))
	require.NoError(t, err)

	_, err = userRepo.Create(ctx, newOperator(t, "admin", user.RoleOperator))
	assert.ErrorIs(t, err, user.ErrUsernameExists)
}

func TestUserRepository_GetByUsername(t *testing.T) {
	setup := SetupTestDatabase(t)
	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(setup.DB)

	created, err := userRepo.Create(ctx, newOperator(t, "admin", user.RoleAdmin))
	require.NoError(t, err)

	retrieved, err := userRepo.GetByUsername(ctx, "admin")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, retrieved.ID)
	assert.True(t, retrieved.IsAdmin())

	_, err = userRepo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_Count(t *testing.T) {
	setup := SetupTestDatabase(t)
	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(setup.DB)

	count, err := userRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	_, err = userRepo.Create(ctx, newOperator(t, "admin", user.RoleAdmin))
	require.NoError(t, err)

	count, err = userRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
