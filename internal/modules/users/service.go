package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/shared/apperr"
)

const (
	RoleCustomer = "customer"
	RoleOperator = "operator"
)

type User struct {
	ID           string    `gorm:"primaryKey;type:char(36)"`
	Email        string    `gorm:"size:255;not null;uniqueIndex:ux_users_email"`
	Name         string    `gorm:"size:100;not null"`
	PasswordHash []byte    `gorm:"not null"`
	Role         string    `gorm:"size:16;not null;default:customer"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (User) TableName() string { return "users" }

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) Register(ctx context.Context, email, name, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var count int64
	if err := s.db.WithContext(ctx).Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return User{}, apperr.Wrap(err)
	}
	if count > 0 {
		return User{}, apperr.ConflictErr("E-mail já cadastrado.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, apperr.Wrap(err)
	}

	now := time.Now()
	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Role:         RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return User{}, apperr.Wrap(err)
	}
	return u, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var u User
	err := s.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, apperr.UnauthorizedErr("E-mail ou senha inválidos.")
	}
	if err != nil {
		return User{}, apperr.Wrap(err)
	}

	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return User{}, apperr.UnauthorizedErr("E-mail ou senha inválidos.")
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	var u User
	err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, apperr.NotFoundErr("Usuário não encontrado.")
	}
	if err != nil {
		return User{}, apperr.Wrap(err)
	}
	return u, nil
}
