package seed

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/Harishkumar132003/service-app-backend/internal/domain/category"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/ticket"
	"github.com/Harishkumar132003/service-app-backend/internal/domain/user"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v2"
	"gorm.io/gorm"
)

type File struct {
	Categories []string    `yaml:"categories"`
	Users      []UserEntry `yaml:"users"`
}

type UserEntry struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// Run applies the bootstrap seed file, then backfills legacy tickets.
// Every step is idempotent so the seed can run on every start.
func Run(db *gorm.DB, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("seed file %s not found, skipping bootstrap", path)
			return BackfillCreators(db)
		}
		return err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return err
	}

	for _, name := range f.Categories {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		nameLower := strings.ToLower(name)
		var existing category.Category
		err := db.Where("name_lower = ?", nameLower).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		c := category.Category{
			ID:        uuid.NewString(),
			Name:      name,
			NameLower: nameLower,
			Active:    true,
		}
		if err := db.Create(&c).Error; err != nil {
			return err
		}
	}

	for _, entry := range f.Users {
		email := strings.ToLower(strings.TrimSpace(entry.Email))
		if email == "" || entry.Password == "" {
			continue
		}
		role := strings.ToLower(strings.TrimSpace(entry.Role))
		if !user.ValidRole(role) {
			log.Printf("seed: skipping %s, unknown role %q", email, entry.Role)
			continue
		}

		var existing user.User
		err := db.Where("email = ?", email).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(entry.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u := user.User{
			ID:           uuid.NewString(),
			Name:         strings.TrimSpace(entry.Name),
			Email:        email,
			PasswordHash: string(hashed),
			Role:         user.Role(role),
			Verified:     true,
		}
		if err := db.Create(&u).Error; err != nil {
			return err
		}
		log.Printf("seed: created %s (%s)", email, role)
	}

	return BackfillCreators(db)
}

// BackfillCreators resolves tickets that still carry only a legacy creator
// email to the matching account ID. Tickets whose email matches no account
// are left untouched; the creator match falls back to the email at
// authorization time.
func BackfillCreators(db *gorm.DB) error {
	var tickets []ticket.Ticket
	if err := db.Where("created_by = '' AND created_by_email <> ''").Find(&tickets).Error; err != nil {
		return err
	}

	for _, t := range tickets {
		var u user.User
		err := db.Where("email = ?", strings.ToLower(t.CreatedByEmail)).First(&u).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if err := db.Model(&ticket.Ticket{}).
			Where("id = ? AND created_by = ''", t.ID).
			Update("created_by", u.ID).Error; err != nil {
			return err
		}
	}
	return nil
}
