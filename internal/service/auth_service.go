package service

import (
	"context"
	"errors"
	"time"

	"github.com/stayfindz/backend/internal/auth"
	"github.com/stayfindz/backend/internal/models"
	"github.com/stayfindz/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type ProfileInput struct {
	Name      string
	Phone     string
	AvatarURL string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	UpdateProfile(ctx context.Context, id uint, in ProfileInput) (*models.User, error)
	BecomeHost(ctx context.Context, id uint) (*models.User, error)
	SetBlocked(ctx context.Context, id uint, blocked bool) error
	ToggleWishlist(ctx context.Context, userID, listingID uint) (bool, error)
	Wishlist(ctx context.Context, userID uint) ([]models.Listing, error)
}

type authService struct {
	userRepo    repository.UserRepository
	listingRepo repository.ListingRepository
	jwtSecret   string
	jwtExpiry   time.Duration
}

func NewAuthService(userRepo repository.UserRepository, listingRepo repository.ListingRepository, jwtSecret string, jwtExpiry time.Duration) AuthService {
	return &authService{
		userRepo:    userRepo,
		listingRepo: listingRepo,
		jwtSecret:   jwtSecret,
		jwtExpiry:   jwtExpiry,
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	if _, err := s.userRepo.FindByEmail(ctx, in.Email); err == nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := auth.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if user.Blocked {
		return nil, "", ErrUserBlocked
	}

	token, err := auth.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, id uint, in ProfileInput) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	user.Phone = in.Phone
	user.AvatarURL = in.AvatarURL

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) BecomeHost(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == models.RoleUser {
		if err := s.userRepo.SetRole(ctx, id, models.RoleHost); err != nil {
			return nil, err
		}
		user.Role = models.RoleHost
	}
	return user, nil
}

func (s *authService) SetBlocked(ctx context.Context, id uint, blocked bool) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	return s.userRepo.SetBlocked(ctx, id, blocked)
}

// ToggleWishlist adds the listing when absent and removes it when present.
// Returns true when the listing ended up in the wishlist.
func (s *authService) ToggleWishlist(ctx context.Context, userID, listingID uint) (bool, error) {
	if _, err := s.listingRepo.FindByID(ctx, listingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrListingNotFound
		}
		return false, err
	}

	present, err := s.userRepo.InWishlist(ctx, userID, listingID)
	if err != nil {
		return false, err
	}
	if present {
		return false, s.userRepo.RemoveFromWishlist(ctx, userID, listingID)
	}
	return true, s.userRepo.AddToWishlist(ctx, userID, listingID)
}

func (s *authService) Wishlist(ctx context.Context, userID uint) ([]models.Listing, error) {
	return s.userRepo.Wishlist(ctx, userID)
}
