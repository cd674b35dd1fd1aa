package application

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/Harishkumar132003/service-app-backend/internal/api/middleware"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/user"
	"github.com/Harishkumar132003/service-app-backend/internal/repository"
	"github.com/Harishkumar132003/service-app-backend/internal/repository/mock"
	"github.com/Harishkumar132003/service-app-backend/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupAuthService(t *testing.T) (*AuthService, *mock.MockUserRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockUser := mock.NewMockUserRepo(ctrl)
	svc := NewAuthService(&repository.Repos{User: mockUser})
	return svc, mockUser
}

// --------------------- Register ---------------------

func TestRegister_Success(t *testing.T) {
	svc, mockUser := setupAuthService(t)

	mockUser.EXPECT().FindByEmail("alice@test.com").Return(user.User{}, gorm.ErrRecordNotFound)
	mockUser.EXPECT().Create(gomock.Any()).DoAndReturn(func(u *user.User) error {
		assert.Equal(t, "alice@test.com", u.Email)
		assert.Equal(t, user.RoleUser, u.Role)
		assert.NotEqual(t, "123456", u.PasswordHash)
		return nil
	})

	err := svc.Register(user.CreateUserInput{Email: " Alice@Test.com ", Password: "123456"})
	assert.NoError(t, err)
}

func TestRegister_EmailTaken(t *testing.T) {
	svc, mockUser := setupAuthService(t)

	mockUser.EXPECT().FindByEmail("taken@test.com").Return(user.User{ID: "u1"}, nil)

	err := svc.Register(user.CreateUserInput{Email: "taken@test.com", Password: "123456"})
	assert.Equal(t, ErrUserExists, err)
}

func TestRegister_BadRole(t *testing.T) {
	svc, _ := setupAuthService(t)

	err := svc.Register(user.CreateUserInput{Email: "x@test.com", Password: "123456", Role: "superadmin"})
	assert.Equal(t, ErrInvalidRole, err)
}

// --------------------- Login ---------------------

func TestLogin_Success(t *testing.T) {
	svc, mockUser := setupAuthService(t)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	mockUser.EXPECT().FindByEmail("bob@test.com").Return(
		user.User{ID: "u1", Email: "bob@test.com", PasswordHash: string(hashed), Role: user.RoleManager}, nil)

	oldGen := middleware.GenerateToken
	middleware.GenerateToken = func(userID, email, role string, exp time.Duration) (string, error) {
		assert.Equal(t, "u1", userID)
		// The stored role is asserted, never a client-supplied one.
		assert.Equal(t, "manager", role)
		return "token123", nil
	}
	defer func() { middleware.GenerateToken = oldGen }()

	u, token, err := svc.Login("Bob@Test.com", "123456")
	assert.NoError(t, err)
	assert.Equal(t, "bob@test.com", u.Email)
	assert.Equal(t, "token123", token)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, mockUser := setupAuthService(t)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	mockUser.EXPECT().FindByEmail("bob@test.com").Return(
		user.User{ID: "u1", PasswordHash: string(hashed)}, nil)

	_, _, err := svc.Login("bob@test.com", "wrong")
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, mockUser := setupAuthService(t)

	mockUser.EXPECT().FindByEmail("ghost@test.com").Return(user.User{}, gorm.ErrRecordNotFound)

	_, _, err := svc.Login("ghost@test.com", "123456")
	assert.Equal(t, ErrInvalidCredentials, err)
}

// --------------------- Verify ---------------------

func TestVerify_EmptyToken(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.Verify("")
	assert.True(t, apperr.IsKind(err, apperr.KindAuthentication))
}

func TestVerify_Garbage(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.Verify("not-a-token")
	assert.True(t, apperr.IsKind(err, apperr.KindAuthentication))
}
