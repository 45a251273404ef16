// Package seed loads test accounts from a YAML fixture.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"ifnexus/internal/model"
	"ifnexus/internal/repository"
)

// UserFixture is one account in the fixture file.
type UserFixture struct {
	Name       string `yaml:"nome"`
	Email      string `yaml:"email"`
	Password   string `yaml:"senha"`
	Role       string `yaml:"tipo_usuario"`
	Enrollment string `yaml:"matricula"`
	Campus     string `yaml:"campus"`
}

// Fixture is the top level of the fixture file.
type Fixture struct {
	Users []UserFixture `yaml:"usuarios"`
}

// Parse decodes a fixture, rejecting unknown keys.
func Parse(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	for i, u := range f.Users {
		if strings.TrimSpace(u.Email) == "" || strings.TrimSpace(u.Name) == "" || u.Password == "" {
			return nil, fmt.Errorf("usuario %d: nome, email and senha are required", i+1)
		}
	}
	return &f, nil
}

// Users creates the fixture's accounts. Emails that already exist are
// skipped, never updated.
func Users(ctx context.Context, repo repository.UserRepository, users []UserFixture) (created, skipped int, err error) {
	for _, u := range users {
		email := strings.TrimSpace(u.Email)
		_, err := repo.FindByEmail(ctx, email)
		if err == nil {
			skipped++
			log.Debug().Str("email", email).Msg("user exists, skipping")
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, skipped, fmt.Errorf("find %s: %w", email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return created, skipped, fmt.Errorf("hash password for %s: %w", email, err)
		}

		role := u.Role
		if role == "" {
			role = model.RoleGuest
		}
		user := &model.User{
			Name:         strings.TrimSpace(u.Name),
			Email:        email,
			PasswordHash: string(hash),
			Role:         role,
			Enrollment:   u.Enrollment,
			Campus:       u.Campus,
		}
		if err := repo.Create(ctx, user); err != nil {
			return created, skipped, fmt.Errorf("create %s: %w", email, err)
		}
		created++
	}
	return created, skipped, nil
}
