package application

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Harishkumar132003/service-app-backend/internal/domain/company"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/user"
	"github.com/Harishkumar132003/service-app-backend/internal/repository"
	"github.com/Harishkumar132003/service-app-backend/pkg/apperr"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound   = apperr.NotFound("Company not found")
	ErrCompanyEmailInUse = apperr.Conflict("Company with this email already exists")
	ErrUserNotInCompany  = apperr.NotFound("User not found in this company")
	ErrUserEmailInUse    = apperr.Conflict("User with this email already exists")
)

// defaultMemberPassword is assigned when an admin creates a user without
// one; it is expected to be changed on first login.
const defaultMemberPassword = "defaultPassword123"

type CompanyService struct {
	Repos *repository.Repos
}

func NewCompanyService(repos *repository.Repos) *CompanyService {
	return &CompanyService{Repos: repos}
}

func (s *CompanyService) Create(input company.CreateCompanyInput) (*company.Company, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" {
		return nil, apperr.Validation("Company name is required")
	}
	if email == "" {
		return nil, apperr.Validation("Company email is required")
	}

	if _, err := s.Repos.Company.FindByEmail(email); err == nil {
		return nil, ErrCompanyEmailInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c := &company.Company{
		ID:     uuid.NewString(),
		Name:   name,
		Email:  email,
		Phone:  strings.TrimSpace(input.Phone),
		Active: true,
	}
	if err := s.Repos.Company.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CompanyService) List() ([]company.CompanyView, error) {
	companies, err := s.Repos.Company.List()
	if err != nil {
		return nil, err
	}
	views := make([]company.CompanyView, 0, len(companies))
	for _, c := range companies {
		view, err := s.view(c)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *CompanyService) Get(id string) (company.CompanyView, error) {
	c, err := s.Repos.Company.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return company.CompanyView{}, ErrCompanyNotFound
		}
		return company.CompanyView{}, err
	}
	return s.view(c)
}

func (s *CompanyService) view(c company.Company) (company.CompanyView, error) {
	users, err := s.Repos.User.ListByCompany(c.ID)
	if err != nil {
		return company.CompanyView{}, err
	}
	members := make([]company.MemberView, 0, len(users))
	for _, u := range users {
		name := u.Name
		if name == "" {
			name = u.Email
		}
		members = append(members, company.MemberView{
			ID:        u.ID,
			Name:      name,
			Email:     u.Email,
			Role:      string(u.Role),
			Verified:  u.Verified,
			CreatedAt: u.CreatedAt.Unix(),
		})
	}
	return company.CompanyView{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt.Unix(),
		Users:     members,
	}, nil
}

func (s *CompanyService) Update(id string, input company.UpdateCompanyInput) error {
	fields := map[string]any{}

	if input.Name != nil {
		if name := strings.TrimSpace(*input.Name); name != "" {
			fields["name"] = name
		}
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != "" {
			existing, err := s.Repos.Company.FindByEmail(email)
			if err == nil && existing.ID != id {
				return apperr.Conflict("Email already used by another company")
			}
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			fields["email"] = email
		}
	}
	if input.Phone != nil {
		fields["phone"] = strings.TrimSpace(*input.Phone)
	}

	if len(fields) == 0 {
		return apperr.Validation("No valid fields to update")
	}

	matched, err := s.Repos.Company.Updates(id, fields)
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

// Deactivate soft-deletes a company. A company that still has users cannot
// be deactivated.
func (s *CompanyService) Deactivate(id string) error {
	count, err := s.Repos.User.CountByCompany(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Validation(fmt.Sprintf("Cannot delete company with %d users. Remove users first.", count))
	}

	matched, err := s.Repos.Company.Updates(id, map[string]any{"active": false})
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (s *CompanyService) AddUser(companyID string, input user.CreateUserInput) (*user.User, error) {
	if _, err := s.Repos.Company.FindByID(companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	role := strings.ToLower(strings.TrimSpace(input.Role))
	if role == "" {
		role = string(user.RoleUser)
	}
	if name == "" {
		return nil, apperr.Validation("User name is required")
	}
	if email == "" {
		return nil, apperr.Validation("User email is required")
	}
	if !user.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	if _, err := s.Repos.User.FindByEmail(email); err == nil {
		return nil, ErrUserEmailInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	password := input.Password
	if password == "" {
		password = defaultMemberPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         user.Role(role),
		CompanyID:    &companyID,
	}
	if err := s.Repos.User.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *CompanyService) ListUsers(companyID string) ([]company.MemberView, error) {
	view, err := s.Get(companyID)
	if err != nil {
		return nil, err
	}
	return view.Users, nil
}

func (s *CompanyService) UpdateUser(companyID, userID string, input user.UpdateUserInput) error {
	u, err := s.memberOf(companyID, userID)
	if err != nil {
		return err
	}

	changed := false
	if input.Name != nil {
		if name := strings.TrimSpace(*input.Name); name != "" {
			u.Name = name
			changed = true
		}
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != "" && email != u.Email {
			existing, err := s.Repos.User.FindByEmail(email)
			if err == nil && existing.ID != userID {
				return apperr.Conflict("Email already in use")
			}
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			u.Email = email
			changed = true
		}
	}
	if input.Role != nil {
		role := strings.ToLower(strings.TrimSpace(*input.Role))
		if user.ValidRole(role) {
			u.Role = user.Role(role)
			changed = true
		}
	}

	if !changed {
		return apperr.Validation("No valid fields to update")
	}
	return s.Repos.User.Save(&u)
}

func (s *CompanyService) RemoveUser(companyID, userID string) error {
	if _, err := s.memberOf(companyID, userID); err != nil {
		return err
	}
	return s.Repos.User.Delete(userID)
}

func (s *CompanyService) memberOf(companyID, userID string) (user.User, error) {
	u, err := s.Repos.User.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, ErrUserNotInCompany
		}
		return user.User{}, err
	}
	if u.CompanyID == nil || *u.CompanyID != companyID {
		return user.User{}, ErrUserNotInCompany
	}
	return u, nil
}
