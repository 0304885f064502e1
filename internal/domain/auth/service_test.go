package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	u.ID = 1
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockJWT struct {
	mock.Mock
}

func (m *mockJWT) GenerateToken(userID int64, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}

func TestRegisterSuccess(t *testing.T) {
	repo := new(mockUserRepo)
	jwt := new(mockJWT)
	svc := NewService(repo, jwt)

	repo.On("ExistsByEmail", mock.Anything, "new@shop.vn").Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*auth.User")).Return(nil)
	jwt.On("GenerateToken", int64(1), "new@shop.vn").Return("token-123", nil)

	res, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "New@Shop.vn",
		Password: "secret-password",
		Name:     "Linh",
	})

	assert.NoError(t, err)
	assert.Equal(t, "token-123", res.Token)
	assert.Equal(t, "new@shop.vn", res.User.Email)
	assert.NotEqual(t, "secret-password", res.User.PasswordHash)
	repo.AssertExpectations(t)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := new(mockUserRepo)
	jwt := new(mockJWT)
	svc := NewService(repo, jwt)

	repo.On("ExistsByEmail", mock.Anything, "taken@shop.vn").Return(true, nil)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "taken@shop.vn",
		Password: "secret-password",
		Name:     "Linh",
	})

	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLoginSuccess(t *testing.T) {
	repo := new(mockUserRepo)
	jwt := new(mockJWT)
	svc := NewService(repo, jwt)

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	repo.On("GetByEmail", mock.Anything, "linh@shop.vn").Return(&User{
		ID:           7,
		Email:        "linh@shop.vn",
		PasswordHash: string(hash),
	}, nil)
	jwt.On("GenerateToken", int64(7), "linh@shop.vn").Return("token-7", nil)

	res, err := svc.Login(context.Background(), &LoginRequest{Email: "linh@shop.vn", Password: "correct-horse"})

	assert.NoError(t, err)
	assert.Equal(t, "token-7", res.Token)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := new(mockUserRepo)
	jwt := new(mockJWT)
	svc := NewService(repo, jwt)

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	repo.On("GetByEmail", mock.Anything, "linh@shop.vn").Return(&User{
		ID:           7,
		Email:        "linh@shop.vn",
		PasswordHash: string(hash),
	}, nil)

	_, err := svc.Login(context.Background(), &LoginRequest{Email: "linh@shop.vn", Password: "wrong"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := new(mockUserRepo)
	jwt := new(mockJWT)
	svc := NewService(repo, jwt)

	repo.On("GetByEmail", mock.Anything, "ghost@shop.vn").Return(nil, ErrUserNotFound)

	_, err := svc.Login(context.Background(), &LoginRequest{Email: "ghost@shop.vn", Password: "whatever"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
