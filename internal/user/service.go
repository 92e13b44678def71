package user

import (
	"errors"

	"blog-service/internal/shared/apperr"

	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Register(email, password, name string) (*User, error)
	Login(email, password string) (*User, error)
	GetByID(id uint) (*User, error)
}

type service struct{ repo Repository }

func NewService(r Repository) Service { return &service{repo: r} }

func (s *service) Register(email, password, name string) (*User, error) {
	if exist, _ := s.repo.FindByEmail(email); exist != nil {
		return nil, &apperr.Validation{Field: "email", Msg: "user already exists"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("hash fail")
	}
	return s.repo.Create(&User{Email: email, PassHash: string(hash), Name: name})
}

func (s *service) Login(email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, errors.New("wrong credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PassHash), []byte(password)) != nil {
		return nil, errors.New("wrong credentials")
	}
	return u, nil
}

func (s *service) GetByID(id uint) (*User, error) { return s.repo.FindByID(id) }
