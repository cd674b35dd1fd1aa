package application

import (
	"errors"
	"strings"

	"github.com/Harishkumar132003/service-app-backend/internal/domain/user"
	"github.com/Harishkumar132003/service-app-backend/internal/repository"
	"github.com/Harishkumar132003/service-app-backend/pkg/apperr"
	"gorm.io/gorm"
)

var ErrUserNotFound = apperr.NotFound("User not found")

type UserService struct {
	Repos *repository.Repos
}

func NewUserService(repos *repository.Repos) *UserService {
	return &UserService{Repos: repos}
}

func (s *UserService) List(role string) ([]user.UserView, error) {
	users, err := s.Repos.User.List(strings.ToLower(strings.TrimSpace(role)))
	if err != nil {
		return nil, err
	}
	views := make([]user.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, user.UserView{ID: u.ID, Email: u.Email, Role: string(u.Role)})
	}
	return views, nil
}

// SetOversight replaces a manager's or accountant's oversight company set.
// Every company must exist and be active.
func (s *UserService) SetOversight(userID string, companyIDs []string) error {
	u, err := s.Repos.User.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if u.Role != user.RoleManager && u.Role != user.RoleAccountant {
		return apperr.Validation("Oversight set applies to manager and accountant roles only")
	}

	for _, cid := range companyIDs {
		if _, err := s.Repos.Company.FindByID(cid); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Company not found: " + cid)
			}
			return err
		}
	}
	return s.Repos.User.ReplaceCompanies(userID, companyIDs)
}
