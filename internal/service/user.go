package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"unicode"

	"github.com/notuna/order-service/internal/config"
	"github.com/notuna/order-service/internal/entities"
	"github.com/notuna/order-service/pkg/auth"
)

type UserRepo interface {
	CreateUser(ctx context.Context, u entities.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (entities.User, error)
	GetUserByID(ctx context.Context, userID int64) (entities.User, error)
	GetUserByBuyerID(ctx context.Context, buyerID int64) (entities.User, error)
	GetUserBySellerID(ctx context.Context, sellerID int64) (entities.User, error)
	LinkBuyer(ctx context.Context, userID, buyerID int64) error
	LinkSeller(ctx context.Context, userID, sellerID int64) error

	UpsertBuyer(ctx context.Context, d entities.PartyDetails) (int64, error)
	UpsertSeller(ctx context.Context, d entities.PartyDetails) (int64, error)
	GetBuyer(ctx context.Context, buyerID int64) (entities.Buyer, error)
	GetSeller(ctx context.Context, sellerID int64) (entities.Seller, error)
}

// Session is the login response payload.
type Session struct {
	UserID    int64
	Email     string
	NameFirst string
	NameLast  string
	BuyerID   int64
	SellerID  int64
	Token     string
}

type userService struct {
	logger *slog.Logger
	repo   UserRepo
	cfg    config.Auth
}

func NewUserService(logger *slog.Logger, repo UserRepo, cfg config.Auth) *userService {
	return &userService{
		logger: logger.With(slog.String("service", "user")),
		repo:   repo,
		cfg:    cfg,
	}
}

func (s *userService) Register(ctx context.Context, nameFirst, nameLast, email, password string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: please use a valid email format", entities.ErrInvalidInput)
	}
	if err := validName(nameFirst, "first name"); err != nil {
		return err
	}
	if err := validName(nameLast, "last name"); err != nil {
		return err
	}
	if !validPassword(password) {
		return fmt.Errorf("%w: password must be 8 or more characters with at least one number and letter", entities.ErrInvalidInput)
	}

	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return entities.ErrEmailTaken
	} else if !errors.Is(err, entities.ErrUserNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = s.repo.CreateUser(ctx, entities.User{
		NameFirst:    nameFirst,
		NameLast:     nameLast,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "user registered", slog.String("email", email))
	return nil
}

// Login verifies the credentials and issues a session token carrying the
// user's buyer and seller links.
func (s *userService) Login(ctx context.Context, email, password string) (Session, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, entities.ErrUserNotFound) {
		return Session{}, entities.ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return Session{}, entities.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken([]byte(s.cfg.JWTSecret), s.cfg.TokenTTL, user.ID, user.Email)
	if err != nil {
		return Session{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return Session{
		UserID:    user.ID,
		Email:     user.Email,
		NameFirst: user.NameFirst,
		NameLast:  user.NameLast,
		BuyerID:   user.BuyerID,
		SellerID:  user.SellerID,
		Token:     token,
	}, nil
}

// CheckBuyerID reports whether the user has a linked buyer identity.
func (s *userService) CheckBuyerID(ctx context.Context, userID int64) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.BuyerID == 0 {
		return entities.ErrNoPartyLink
	}
	return nil
}

func (s *userService) CheckSellerID(ctx context.Context, userID int64) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.SellerID == 0 {
		return entities.ErrNoPartyLink
	}
	return nil
}

// CreateBuyer resolves the buyer tuple and links it to the user account.
func (s *userService) CreateBuyer(ctx context.Context, userID int64, details entities.PartyDetails) (int64, error) {
	buyerID, err := s.repo.UpsertBuyer(ctx, details)
	if err != nil {
		return 0, err
	}
	if err := s.repo.LinkBuyer(ctx, userID, buyerID); err != nil {
		return 0, err
	}
	return buyerID, nil
}

func (s *userService) CreateSeller(ctx context.Context, userID int64, details entities.PartyDetails) (int64, error) {
	sellerID, err := s.repo.UpsertSeller(ctx, details)
	if err != nil {
		return 0, err
	}
	if err := s.repo.LinkSeller(ctx, userID, sellerID); err != nil {
		return 0, err
	}
	return sellerID, nil
}

func (s *userService) BuyerDetails(ctx context.Context, buyerID int64) (entities.Buyer, error) {
	return s.repo.GetBuyer(ctx, buyerID)
}

func (s *userService) SellerDetails(ctx context.Context, sellerID int64) (entities.Seller, error) {
	return s.repo.GetSeller(ctx, sellerID)
}

func (s *userService) UserByEmail(ctx context.Context, email string) (entities.User, error) {
	return s.repo.GetUserByEmail(ctx, email)
}

func (s *userService) UserByBuyerID(ctx context.Context, buyerID int64) (entities.User, error) {
	return s.repo.GetUserByBuyerID(ctx, buyerID)
}

func (s *userService) UserBySellerID(ctx context.Context, sellerID int64) (entities.User, error) {
	return s.repo.GetUserBySellerID(ctx, sellerID)
}

func validName(name, label string) error {
	if len(name) < 2 || len(name) > 20 {
		return fmt.Errorf("%w: %s must be between 2-20 characters", entities.ErrInvalidInput, label)
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && r != '-' && r != ' ' && r != '\'' {
			return fmt.Errorf("%w: %s can only contain letters, hyphens, spaces, and apostrophes", entities.ErrInvalidInput, label)
		}
	}
	return nil
}

func validPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
