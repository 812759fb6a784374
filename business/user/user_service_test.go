package user

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopifyPulse/domain"
	"shopifyPulse/pkg/utils"
)

type fakeUserRepo struct {
	byEmail map[string]domain.User
	byID    map[uint]domain.User
	nextID  uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: map[string]domain.User{},
		byID:    map[uint]domain.User{},
		nextID:  1,
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = f.nextID
	f.nextID++
	f.byEmail[user.Email] = *user
	f.byID[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return domain.User{}, errors.New("user not found")
	}
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, errors.New("user not found")
	}
	return user, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.byID[user.ID]; !ok {
		return errors.New("user not found")
	}
	f.byID[user.ID] = *user
	f.byEmail[user.Email] = *user
	return nil
}

func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, validator.New())

	user, err := svc.Register(context.Background(), &domain.User{
		Email:     "owner@urbanthreads.example.com",
		Password:  "longenough",
		FirstName: "Maya",
		StoreID:   1,
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, RoleMember, user.Role)
	assert.Empty(t, user.Password)

	// The stored hash verifies against the original password.
	stored := repo.byEmail["owner@urbanthreads.example.com"]
	assert.True(t, utils.CheckPassword("longenough", stored.Password))
	assert.NotEqual(t, "longenough", stored.Password)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), validator.New())

	_, err := svc.Register(context.Background(), &domain.User{Email: "not-an-email", Password: "longenough"})
	require.Error(t, err)
	assert.Equal(t, "invalid email format", err.Error())

	_, err = svc.Register(context.Background(), &domain.User{Email: "ok@example.com", Password: "short"})
	require.Error(t, err)
	assert.Equal(t, "password must be at least 8 characters", err.Error())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, validator.New())

	_, err := svc.Register(context.Background(), &domain.User{Email: "dup@example.com", Password: "longenough"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &domain.User{Email: "dup@example.com", Password: "longenough"})
	require.Error(t, err)
	assert.Equal(t, "email already exists", err.Error())
}

func TestLogin(t *testing.T) {
	utils.InitJWT("test-secret")

	repo := newFakeUserRepo()
	svc := NewUserService(repo, validator.New())

	_, err := svc.Register(context.Background(), &domain.User{Email: "login@example.com", Password: "longenough"})
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "login@example.com", "longenough")
	require.NoError(t, err)

	assert.NotEmpty(t, token)
	assert.Empty(t, user.Password)

	claims, err := utils.ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, RoleMember, claims.Role)

	// Last login is stamped on success.
	stored := repo.byID[user.ID]
	assert.NotNil(t, stored.LastLogin)
}

func TestLoginWrongPassword(t *testing.T) {
	utils.InitJWT("test-secret")

	repo := newFakeUserRepo()
	svc := NewUserService(repo, validator.New())

	_, err := svc.Register(context.Background(), &domain.User{Email: "login@example.com", Password: "longenough"})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "login@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "invalid credentials", err.Error())

	_, _, err = svc.Login(context.Background(), "missing@example.com", "whatever")
	require.Error(t, err)
	assert.Equal(t, "invalid credentials", err.Error())
}
