package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models"
	"github.com/Ayesha-Rimione/hackmate/internal/app/models/dto"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/apperrors"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/auth"
)

type fakeAuthUserRepo struct {
	nextID int64
	users  map[int64]*models.User
}

func newFakeAuthUserRepo() *fakeAuthUserRepo {
	return &fakeAuthUserRepo{users: make(map[int64]*models.User)}
}

func (f *fakeAuthUserRepo) Create(_ context.Context, user *models.User) (int64, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.IsActive = true
	f.users[user.ID] = user
	return user.ID, nil
}

func (f *fakeAuthUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeAuthUserRepo) GetWithProfile(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func newAuthFixture() (AuthService, *fakeAuthUserRepo) {
	repo := newFakeAuthUserRepo()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "hackmate.test",
	})
	return NewAuthService(repo, jwtService, zerolog.Nop()), repo
}

func TestRegisterThenLogin(t *testing.T) {
	service, _ := newAuthFixture()
	ctx := context.Background()

	registered, err := service.Register(ctx, &dto.RegisterRequest{
		Email:     "Ada@Uni.edu",
		Password:  "s3cretpass",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@uni.edu", registered.User.Email)
	assert.NotEmpty(t, registered.Token.AccessToken)
	assert.Equal(t, "Bearer", registered.Token.TokenType)

	resp, err := service.Login(ctx, &dto.LoginRequest{Email: "ada@uni.edu", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, resp.User.ID)
	assert.NotEmpty(t, resp.Token.RefreshToken)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	service, _ := newAuthFixture()
	ctx := context.Background()

	_, err := service.Register(ctx, &dto.RegisterRequest{
		Email:     "ada@uni.edu",
		Password:  "s3cretpass",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)

	_, err = service.Login(ctx, &dto.LoginRequest{Email: "ada@uni.edu", Password: "wrongpass1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginDoesNotRevealUnknownEmails(t *testing.T) {
	service, _ := newAuthFixture()

	_, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@uni.edu",
		Password: "whatever1",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	service, repo := newAuthFixture()
	ctx := context.Background()

	registered, err := service.Register(ctx, &dto.RegisterRequest{
		Email:     "ada@uni.edu",
		Password:  "s3cretpass",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)

	repo.users[registered.User.ID].IsActive = false

	_, err = service.Login(ctx, &dto.LoginRequest{Email: "ada@uni.edu", Password: "s3cretpass"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
