package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"vetclinic-booking/config"
	"vetclinic-booking/internal/converter"
	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/domain/entity"
	"vetclinic-booking/internal/domain/repository"
	"vetclinic-booking/internal/gateway/mailer"
	"vetclinic-booking/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email is already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrAccountNotVerified     = errors.New("account email is not verified")
	ErrAccountAlreadyVerified = errors.New("account is already verified")
	ErrInvalidOTP             = errors.New("invalid or expired OTP code")
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidRefreshToken    = errors.New("invalid or revoked refresh token")
)

type AuthUseCase interface {
	Register(ctx context.Context, request *dto.RegisterRequest) (*dto.UserResponse, error)
	VerifyOTP(ctx context.Context, request *dto.VerifyOTPRequest) (*dto.TokenResponse, error)
	ResendOTP(ctx context.Context, request *dto.ResendOTPRequest) error
	Login(ctx context.Context, request *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, request *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, tokenID string) error
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUseCase struct {
	db           *gorm.DB
	log          *logrus.Logger
	cfg          *config.Config
	userRepo     repository.UserRepository
	auditRepo    repository.AuditLogRepository
	jwtService   *jwt.JWTService
	redisClient  *redis.Client
	mailerClient *mailer.Client
}

func NewAuthUseCase(
	db *gorm.DB,
	log *logrus.Logger,
	cfg *config.Config,
	userRepo repository.UserRepository,
	auditRepo repository.AuditLogRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	mailerClient *mailer.Client,
) AuthUseCase {
	return &authUseCase{
		db:           db,
		log:          log,
		cfg:          cfg,
		userRepo:     userRepo,
		auditRepo:    auditRepo,
		jwtService:   jwtService,
		redisClient:  redisClient,
		mailerClient: mailerClient,
	}
}

func otpKey(email string) string {
	return "otp:" + email
}

func accessTokenKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("access_token:%s:%s", userID, tokenID)
}

func refreshTokenKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("refresh_token:%s:%s", userID, tokenID)
}

// generateOTP returns a zero-padded 6-digit code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Register creates an unverified account and sends a verification OTP.
// A mailer failure does not roll the account back; the client can resend.
func (u *authUseCase) Register(ctx context.Context, request *dto.RegisterRequest) (*dto.UserResponse, error) {
	db := u.db.WithContext(ctx)

	existing, err := u.userRepo.FindByEmail(db, request.Email)
	if err != nil {
		u.log.Warnf("Failed to check existing user: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		RoleID:   entity.RoleIDClient,
		Email:    request.Email,
		Password: string(hashed),
		FullName: request.FullName,
	}

	if err := u.userRepo.Create(db, user); err != nil {
		if isDuplicateKeyError(err, "") {
			return nil, ErrEmailAlreadyRegistered
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	if err := u.auditRepo.Create(db, &entity.AuditLog{
		UserID: &user.ID,
		Action: entity.AuditActionUserRegister,
		Metadata: entity.JSON{
			"email": user.Email,
		},
	}); err != nil {
		u.log.Warnf("Failed to write register audit log (non-fatal): %+v", err)
	}

	if err := u.sendOTP(ctx, user); err != nil {
		u.log.Warnf("Failed to send verification OTP to %s (non-fatal): %+v", user.Email, err)
	}

	return converter.UserToResponse(user), nil
}

func (u *authUseCase) sendOTP(ctx context.Context, user *entity.User) error {
	code, err := generateOTP()
	if err != nil {
		return err
	}

	if err := u.redisClient.Set(ctx, otpKey(user.Email), code, u.cfg.Booking.OTPExpiry).Err(); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	return u.mailerClient.SendOTP(ctx, user.Email, code, user.FullName)
}

// VerifyOTP marks the account verified and logs the user in.
func (u *authUseCase) VerifyOTP(ctx context.Context, request *dto.VerifyOTPRequest) (*dto.TokenResponse, error) {
	db := u.db.WithContext(ctx)

	user, err := u.userRepo.FindByEmail(db, request.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.IsVerified {
		return nil, ErrAccountAlreadyVerified
	}

	stored, err := u.redisClient.Get(ctx, otpKey(request.Email)).Result()
	if err == redis.Nil || stored != request.OTPCode {
		return nil, ErrInvalidOTP
	}
	if err != nil {
		u.log.Warnf("Failed to read OTP from redis: %+v", err)
		return nil, err
	}

	user.IsVerified = true
	if err := u.userRepo.Update(db, user); err != nil {
		u.log.Warnf("Failed to mark user verified: %+v", err)
		return nil, err
	}

	if err := u.redisClient.Del(ctx, otpKey(request.Email)).Err(); err != nil {
		u.log.Warnf("Failed to delete consumed OTP (non-fatal): %+v", err)
	}

	if err := u.auditRepo.Create(db, &entity.AuditLog{
		UserID: &user.ID,
		Action: entity.AuditActionUserVerify,
	}); err != nil {
		u.log.Warnf("Failed to write verify audit log (non-fatal): %+v", err)
	}

	return u.issueTokens(ctx, user)
}

// ResendOTP regenerates and redelivers the verification code.
func (u *authUseCase) ResendOTP(ctx context.Context, request *dto.ResendOTPRequest) error {
	db := u.db.WithContext(ctx)

	user, err := u.userRepo.FindByEmail(db, request.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.IsVerified {
		return ErrAccountAlreadyVerified
	}

	return u.sendOTP(ctx, user)
}

// Login authenticates a verified account and issues a token pair.
func (u *authUseCase) Login(ctx context.Context, request *dto.LoginRequest) (*dto.TokenResponse, error) {
	db := u.db.WithContext(ctx)

	user, err := u.userRepo.FindByEmail(db, request.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, ErrAccountNotVerified
	}

	return u.issueTokens(ctx, user)
}

// issueTokens generates an access/refresh pair and whitelists both in
// redis; the auth middleware rejects tokens whose key has been removed.
func (u *authUseCase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, user.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(user.ID, user.Email, user.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.redisClient.Set(ctx, accessTokenKey(user.ID, accessTokenID), "1", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token: %+v", err)
		return nil, err
	}
	if err := u.redisClient.Set(ctx, refreshTokenKey(user.ID, refreshTokenID), "1", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

// RefreshToken rotates a valid refresh token for a new pair. The old
// refresh token is revoked so each one is single use.
func (u *authUseCase) RefreshToken(ctx context.Context, request *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(request.RefreshToken)
	if err != nil || claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidRefreshToken
	}

	key := refreshTokenKey(claims.UserID, claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, key).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrInvalidRefreshToken
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := u.redisClient.Del(ctx, key).Err(); err != nil {
		u.log.Warnf("Failed to revoke rotated refresh token (non-fatal): %+v", err)
	}

	return u.issueTokens(ctx, user)
}

// Logout revokes the caller's access token.
func (u *authUseCase) Logout(ctx context.Context, userID uuid.UUID, tokenID string) error {
	if err := u.redisClient.Del(ctx, accessTokenKey(userID, tokenID)).Err(); err != nil {
		u.log.Warnf("Failed to revoke access token: %+v", err)
		return err
	}
	return nil
}

// GetCurrentUser returns the authenticated user's profile.
func (u *authUseCase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return converter.UserToResponse(user), nil
}
