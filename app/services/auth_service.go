package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/apperr"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/bind"
)

// AuthService registers customers and logs them in.
type AuthService struct {
	customers *repositories.CustomerRepository
	issuer    *auth.Issuer
}

func NewAuthService(customers *repositories.CustomerRepository, issuer *auth.Issuer) *AuthService {
	return &AuthService{customers: customers, issuer: issuer}
}

// LoginResult is the body of a successful login.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	Email       string `json:"email"`
	Name        string `json:"name"`
}

// Login verifies credentials and issues a session token. An unknown email
// and a wrong password fail with the same InvalidCredentials error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, apperr.New(apperr.EmailOrPasswordRequired)
	}

	customer, err := s.customers.FindByEmail(ctx, email)
	if err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return nil, apperr.New(apperr.InvalidCredentials)
		}
		return nil, err
	}

	if !auth.CheckPassword(customer.Password, password) {
		return nil, apperr.New(apperr.InvalidCredentials)
	}

	token, err := s.issuer.Issue(auth.Identity{ID: customer.ID, Email: customer.Email, Name: customer.Name})
	if err != nil {
		return nil, fmt.Errorf("services: login: %w", err)
	}

	return &LoginResult{AccessToken: token, Email: customer.Email, Name: customer.Name}, nil
}

// RegisterInput is the registration request body.
type RegisterInput struct {
	Name        string `json:"name"        validate:"required,max=255"`
	Email       string `json:"email"       validate:"required,email,max=255"`
	Password    string `json:"password"    validate:"required,min=6,max=72"`
	PhoneNumber string `json:"phoneNumber" validate:"max=50"`
	Address     string `json:"address"`
}

// Register validates in, hashes the password and stores a new customer.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.Customer, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := bind.Struct(in); err != nil {
		return nil, err
	}

	taken, err := s.customers.EmailTaken(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.New(apperr.Conflict)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("services: register: %w", err)
	}

	customer := &models.Customer{
		Name:        in.Name,
		Email:       in.Email,
		Password:    hash,
		PhoneNumber: in.PhoneNumber,
		Address:     in.Address,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}
