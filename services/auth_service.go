package services

import (
	"errors"
	"strings"
	"time"

	"github.com/dhnushshetty/food-cart-jsf/entity"
	"github.com/dhnushshetty/food-cart-jsf/pkg/apperr"
	"github.com/dhnushshetty/food-cart-jsf/repository"
	"github.com/dhnushshetty/food-cart-jsf/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles registration and login.
type AuthService struct {
	DB        *gorm.DB
	userRepo  *repository.UserRepository
	cartRepo  *repository.CartRepository
	shopRepo  *repository.ShopRepository
	jwtSecret string
	jwtTTL    time.Duration
	log       *zap.Logger
}

func NewAuthService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	cartRepo *repository.CartRepository,
	shopRepo *repository.ShopRepository,
	secret string,
	ttl time.Duration,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		DB:        db,
		userRepo:  userRepo,
		cartRepo:  cartRepo,
		shopRepo:  shopRepo,
		jwtSecret: secret,
		jwtTTL:    ttl,
		log:       log,
	}
}

type RegisterCustomerIn struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type RegisterOwnerIn struct {
	Username        string `json:"username" binding:"required,min=3"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ShopName        string `json:"shopName" binding:"required"`
	ShopDescription string `json:"shopDescription"`
	ShopAddress     string `json:"shopAddress" binding:"required"`
}

type LoginIn struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginOut struct {
	Token    string `json:"token"`
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// RegisterCustomer creates the user and its empty cart together.
func (s *AuthService) RegisterCustomer(in *RegisterCustomerIn) (*entity.User, error) {
	var user *entity.User
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		u, err := s.createUser(tx, in.Username, in.Email, in.Password, entity.RoleCustomer)
		if err != nil {
			return err
		}
		if err := s.cartRepo.Create(tx, &entity.Cart{UserID: u.ID}); err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("customer registered", zap.Uint("userId", user.ID), zap.String("username", user.Username))
	return user, nil
}

// RegisterOwner creates the owner and its shop together.
func (s *AuthService) RegisterOwner(in *RegisterOwnerIn) (*entity.User, *entity.Shop, error) {
	var (
		user *entity.User
		shop *entity.Shop
	)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		u, err := s.createUser(tx, in.Username, in.Email, in.Password, entity.RoleOwner)
		if err != nil {
			return err
		}
		sh := &entity.Shop{
			Name:        strings.TrimSpace(in.ShopName),
			Description: strings.TrimSpace(in.ShopDescription),
			Address:     strings.TrimSpace(in.ShopAddress),
			OwnerID:     u.ID,
		}
		if err := s.shopRepo.Create(tx, sh); err != nil {
			return err
		}
		user, shop = u, sh
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	s.log.Info("owner registered",
		zap.Uint("userId", user.ID),
		zap.String("username", user.Username),
		zap.Uint("shopId", shop.ID),
	)
	return user, shop, nil
}

func (s *AuthService) createUser(tx *gorm.DB, username, email, password, role string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	count, err := s.userRepo.CountByUsernameOrEmail(tx, username, email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Conflict("username or email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("hash password failed")
	}

	user := &entity.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.insertUser(tx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// insertUser catches a concurrent registration that slipped past the count
// check and hit the unique index.
func (s *AuthService) insertUser(tx *gorm.DB, user *entity.User) error {
	err := s.userRepo.Create(tx, user)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict("username or email already registered")
	}
	return err
}

// Login checks the credentials and issues a JWT.
func (s *AuthService) Login(in *LoginIn) (*LoginOut, error) {
	user, err := s.userRepo.FindByUsername(strings.TrimSpace(in.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("invalid credentials")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, errors.New("cannot generate token")
	}
	return &LoginOut{Token: token, UserID: user.ID, Username: user.Username, Role: user.Role}, nil
}
