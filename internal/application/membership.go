package application

import (
	"github.com/Harishkumar132003/service-app-backend/internal/repository"
)

// MembershipIndex resolves a user to the set of companies they may act for.
// Managers and accountants carry an oversight set; everyone else falls back
// to their single primary company.
type MembershipIndex struct {
	users repository.UserRepo
}

func NewMembershipIndex(users repository.UserRepo) *MembershipIndex {
	return &MembershipIndex{users: users}
}

func (m *MembershipIndex) CompanyIDs(userID string) ([]string, error) {
	return m.users.CompanyIDs(userID)
}

// Contains reports whether companyID is in the user's membership set. An
// unresolvable scope yields false, never an error grant.
func (m *MembershipIndex) Contains(userID, companyID string) (bool, error) {
	if companyID == "" {
		return false, nil
	}
	ids, err := m.users.CompanyIDs(userID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == companyID {
			return true, nil
		}
	}
	return false, nil
}
