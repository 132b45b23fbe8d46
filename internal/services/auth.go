package services

import (
  "context"
  "errors"
  "strings"
  "time"
  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "golang.org/x/crypto/bcrypt"
  "gorm.io/gorm"
  "github.com/WeBoost/aurora-backend/internal/errs"
  "github.com/WeBoost/aurora-backend/internal/logger"
  "github.com/WeBoost/aurora-backend/internal/repos"
  "github.com/WeBoost/aurora-backend/internal/types"
)

type TokenPair struct {
  AccessToken  string `json:"access_token"`
  RefreshToken string `json:"refresh_token"`
}

type AuthService interface {
  Register(ctx context.Context, email, password, fullName string) (*types.User, TokenPair, error)
  Login(ctx context.Context, email, password string) (*types.User, TokenPair, error)
  Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
  Logout(ctx context.Context, userID uuid.UUID) error
  VerifyAccessToken(tokenString string) (uuid.UUID, error)
}

type authService struct {
  db            *gorm.DB
  log           *logger.Logger
  userRepo      repos.UserRepo
  userTokenRepo repos.UserTokenRepo
  jwtSecret     []byte
  accessTTL     time.Duration
  refreshTTL    time.Duration
}

func NewAuthService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, userTokenRepo repos.UserTokenRepo, jwtSecret string, accessTTL, refreshTTL time.Duration) AuthService {
  serviceLog := log.With("service", "AuthService")
  return &authService{
    db:            db,
    log:           serviceLog,
    userRepo:      userRepo,
    userTokenRepo: userTokenRepo,
    jwtSecret:     []byte(jwtSecret),
    accessTTL:     accessTTL,
    refreshTTL:    refreshTTL,
  }
}

func (as *authService) Register(ctx context.Context, email, password, fullName string) (*types.User, TokenPair, error) {
  email = strings.ToLower(strings.TrimSpace(email))
  if email == "" || password == "" {
    return nil, TokenPair{}, errs.InvalidArgumentf("email and password required")
  }

  exists, err := as.userRepo.EmailExists(ctx, nil, email)
  if err != nil {
    return nil, TokenPair{}, err
  }
  if exists {
    return nil, TokenPair{}, errs.InvalidArgumentf("email already registered")
  }

  hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
  if err != nil {
    return nil, TokenPair{}, err
  }
  user, err := as.userRepo.Create(ctx, nil, &types.User{
    Email:    email,
    Password: string(hashed),
    FullName: strings.TrimSpace(fullName),
  })
  if err != nil {
    return nil, TokenPair{}, err
  }

  pair, err := as.issueTokens(ctx, user.ID)
  if err != nil {
    return nil, TokenPair{}, err
  }
  return user, pair, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*types.User, TokenPair, error) {
  email = strings.ToLower(strings.TrimSpace(email))
  user, err := as.userRepo.GetByEmail(ctx, nil, email)
  if err != nil {
    if errors.Is(err, errs.ErrNotFound) {
      return nil, TokenPair{}, errs.ErrUnauthorized
    }
    return nil, TokenPair{}, err
  }
  if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
    return nil, TokenPair{}, errs.ErrUnauthorized
  }

  pair, err := as.issueTokens(ctx, user.ID)
  if err != nil {
    return nil, TokenPair{}, err
  }
  return user, pair, nil
}

func (as *authService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
  stored, err := as.userTokenRepo.GetByRefreshToken(ctx, nil, refreshToken)
  if err != nil {
    if errors.Is(err, errs.ErrNotFound) {
      return TokenPair{}, errs.ErrUnauthorized
    }
    return TokenPair{}, err
  }
  if time.Now().UTC().After(stored.ExpiresAt) {
    return TokenPair{}, errs.ErrUnauthorized
  }
  if err := as.userTokenRepo.DeleteByUser(ctx, nil, stored.UserID); err != nil {
    return TokenPair{}, err
  }
  return as.issueTokens(ctx, stored.UserID)
}

func (as *authService) Logout(ctx context.Context, userID uuid.UUID) error {
  if userID == uuid.Nil {
    return errs.InvalidArgumentf("user id required")
  }
  return as.userTokenRepo.DeleteByUser(ctx, nil, userID)
}

func (as *authService) VerifyAccessToken(tokenString string) (uuid.UUID, error) {
  token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
    if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, errs.ErrUnauthorized
    }
    return as.jwtSecret, nil
  })
  if err != nil || !token.Valid {
    return uuid.Nil, errs.ErrUnauthorized
  }
  claims, ok := token.Claims.(jwt.MapClaims)
  if !ok {
    return uuid.Nil, errs.ErrUnauthorized
  }
  sub, err := claims.GetSubject()
  if err != nil {
    return uuid.Nil, errs.ErrUnauthorized
  }
  userID, err := uuid.Parse(sub)
  if err != nil {
    return uuid.Nil, errs.ErrUnauthorized
  }
  return userID, nil
}

func (as *authService) issueTokens(ctx context.Context, userID uuid.UUID) (TokenPair, error) {
  now := time.Now().UTC()
  claims := jwt.MapClaims{
    "sub": userID.String(),
    "iat": now.Unix(),
    "exp": now.Add(as.accessTTL).Unix(),
  }
  access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(as.jwtSecret)
  if err != nil {
    return TokenPair{}, err
  }

  refresh := uuid.NewString() + uuid.NewString()
  if _, err := as.userTokenRepo.Create(ctx, nil, &types.UserToken{
    UserID:       userID,
    RefreshToken: refresh,
    ExpiresAt:    now.Add(as.refreshTTL),
  }); err != nil {
    return TokenPair{}, err
  }
  return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
