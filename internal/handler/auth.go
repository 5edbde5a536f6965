package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/chuk05/myy-signature-myy-style/internal/domain"
	"github.com/chuk05/myy-signature-myy-style/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

type AuthClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func resetPasswordKey(email string) string {
	return fmt.Sprintf("otp_%s_reset_password", strings.ToLower(email))
}

func resetPasswordAttemptsKey(email string) string {
	return fmt.Sprintf("otp_%s_reset_password_attempts", strings.ToLower(email))
}

func (h *Handler) redisContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
}

// signIn issues the session token of profile as an HTTP-only cookie.
func (h *Handler) signIn(w http.ResponseWriter, profile *domain.Profile) error {
	now := time.Now()
	expiration := now.Add(time.Duration(h.config.JWT.Expiration) * time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AuthClaims{
		Role: string(profile.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiration),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   profile.ID.String(),
		},
	})
	ss, err := token.SignedString([]byte(h.config.JWT.Secret))
	if err != nil {
		return err
	}

	cookie := &http.Cookie{
		Name:     authCookieName,
		Value:    ss,
		Expires:  expiration,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
	}

	if h.config.Environment == "production" {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteStrictMode
	}

	http.SetCookie(w, cookie)
	return nil
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string  `json:"email" validate:"required,email"`
		Password string  `json:"password" validate:"required,min=8"`
		FullName string  `json:"fullName" validate:"required,max=100"`
		Phone    *string `json:"phone" validate:"omitempty,max=30"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	profile := &domain.Profile{
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hashedPassword),
		FullName:     req.FullName,
		Phone:        req.Phone,
		Role:         domain.RoleCustomer,
	}

	if err := h.repository.CreateProfile(profile); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "profiles_email_key":
			h.conflict(w, r, "email is already registered")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.signIn(w, profile); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.createdResponse(w, r, "registration successful", profile)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	profile, err := h.repository.GetProfileByEmail(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.unauthorized(w, r, "invalid email or password")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			h.unauthorized(w, r, "invalid email or password")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.signIn(w, profile); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "signed in", profile)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
	})

	h.successResponse(w, r, "signed out", nil)
}

func (h *Handler) RequireResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	const sent = "a verification code has been sent if the account exists"

	profile, err := h.repository.GetProfileByEmail(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// unknown addresses get the same answer so accounts cannot be enumerated
			h.successResponse(w, r, sent, nil)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	otp := utils.GenerateRandomOTP()

	ctx, cancel := h.redisContext()
	defer cancel()

	expiration := time.Duration(h.config.OTP.Expiration) * time.Second
	if _, err := h.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, resetPasswordKey(profile.Email), otp, expiration)
		pipe.Del(ctx, resetPasswordAttemptsKey(profile.Email))
		return nil
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	mailMessage := domain.MailMessage{
		Type: domain.MailResetPassword,
		To:   profile.Email,
		Data: domain.ResetPasswordMailData{
			FullName:   profile.FullName,
			OTP:        otp,
			Expiration: h.config.OTP.Expiration / 60, // minutes in the e-mail, seconds in config
		},
	}

	if err := h.mailPublisher.Publish(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, sent, nil)
}

func (h *Handler) ConfirmResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		OTP      string `json:"otp" validate:"required,len=6,numeric"`
		Password string `json:"password" validate:"required,min=8"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ctx, cancel := h.redisContext()
	defer cancel()

	key := resetPasswordKey(req.Email)
	otp, err := h.redisClient.Get(ctx, key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		h.internalServerError(w, r, err)
		return
	}
	if err != nil {
		h.badRequest(w, r, errors.New("invalid verification code"))
		return
	}
	if otp != req.OTP {
		if err := h.recordResetAttempt(ctx, req.Email); err != nil {
			h.internalServerError(w, r, err)
			return
		}
		h.badRequest(w, r, errors.New("invalid verification code"))
		return
	}

	profile, err := h.repository.GetProfileByEmail(req.Email)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	profile.PasswordHash = string(hashedPassword)

	if err := h.repository.UpdateProfile(profile); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "the account was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.redisClient.Del(ctx, key, resetPasswordAttemptsKey(req.Email)).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "password has been reset", nil)
}

// recordResetAttempt counts a wrong code for email. Once the limit is reached
// the code is discarded and a new one has to be requested.
func (h *Handler) recordResetAttempt(ctx context.Context, email string) error {
	attemptsKey := resetPasswordAttemptsKey(email)

	attempts, err := h.redisClient.Incr(ctx, attemptsKey).Result()
	if err != nil {
		return err
	}
	if attempts == 1 {
		if err := h.redisClient.Expire(ctx, attemptsKey, time.Duration(h.config.OTP.Expiration)*time.Second).Err(); err != nil {
			return err
		}
	}

	if attempts >= int64(h.config.OTP.MaxAttempts) {
		return h.redisClient.Del(ctx, resetPasswordKey(email), attemptsKey).Err()
	}
	return nil
}
