package usecase

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-devnetwork-backend/internal/domain"
	"go-devnetwork-backend/pkg/apperror"
	"go-devnetwork-backend/pkg/token"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type authUsecase struct {
	userRepo domain.UserRepository
	tokens   *token.Service
}

func NewAuthUsecase(userRepo domain.UserRepository, tokens *token.Service) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo, tokens: tokens}
}

// Register creates a user and returns a signed token for it.
func (u *authUsecase) Register(ctx context.Context, name, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := u.userRepo.GetByEmail(ctx, email); err == nil {
		return "", apperror.Validation("User already exists")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", apperror.Internal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", apperror.Internal(err)
	}

	now := time.Now()
	user := &domain.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  string(hash),
		Avatar:    gravatarURL(email),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return "", apperror.Validation("User already exists")
		}
		return "", apperror.Internal(err)
	}

	signed, err := u.tokens.Issue(user.ID)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return signed, nil
}

// Login verifies credentials and returns a signed token. Unknown email
// and wrong password produce the same error so the response never leaks
// which half was wrong.
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", apperror.Validation("Invalid Credentials")
		}
		return "", apperror.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperror.Validation("Invalid Credentials")
	}

	signed, err := u.tokens.Issue(user.ID)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return signed, nil
}

// CurrentUser returns the authenticated user record. The password hash
// stays server-side via the json:"-" tag on the entity.
func (u *authUsecase) CurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func gravatarURL(email string) string {
	sum := md5.Sum([]byte(email))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", sum)
}
