// Package auth runs the login and registration forms against the remote
// auth functions and records the signed-in identity in the session.
package auth

import (
	"context"
	"fmt"

	"github.com/yashrajoria/storefront/clients"
	"github.com/yashrajoria/storefront/common/validation"
	"github.com/yashrajoria/storefront/models"
	"go.uber.org/zap"
)

// Messages shown to the customer.
const (
	MsgFillAllFields    = "Заполните все поля"
	MsgInvalidEmail     = "Введите корректный email"
	MsgPasswordTooShort = "Пароль должен содержать не менее 8 символов"
	MsgPasswordMismatch = "Пароли не совпадают"
	MsgLoginFailed      = "Ошибка входа"
	MsgRegisterFailed   = "Ошибка регистрации"
)

// API is the remote side of login and registration.
type API interface {
	Login(ctx context.Context, email, password string) (clients.LoginResponse, error)
	Register(ctx context.Context, email, password string) error
}

// IdentityWriter records a successful login.
type IdentityWriter interface {
	SignIn(ctx context.Context, id models.Identity) error
}

// LoginForm is the login form as posted.
type LoginForm struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterForm is the registration form as posted.
type RegisterForm struct {
	Email           string `json:"email" validate:"contact_email"`
	Password        string `json:"password" validate:"min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"eqfield=Password"`
}

var registerMessages = map[string]string{
	"email":            MsgInvalidEmail,
	"password":         MsgPasswordTooShort,
	"confirm_password": MsgPasswordMismatch,
}

// Failure is a login or registration the remote side refused.
type Failure struct {
	Message string
	Err     error
}

func (e *Failure) Error() string { return e.Message }
func (e *Failure) Unwrap() error { return e.Err }

type Service struct {
	api       API
	validator *validation.Validator
	logger    *zap.Logger
}

func NewService(api API, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{api: api, validator: validation.New(), logger: logger}
}

// Login checks the credentials remotely and signs the session in.
func (s *Service) Login(ctx context.Context, session IdentityWriter, form LoginForm) (models.Identity, error) {
	if verr := s.validator.Struct(form); verr.OrNil() != nil {
		for i := range verr.Fields {
			verr.Fields[i].Message = MsgFillAllFields
		}
		return models.Identity{}, verr
	}

	resp, err := s.api.Login(ctx, form.Email, form.Password)
	if err != nil {
		s.logger.Info("login rejected", zap.String("email", form.Email), zap.Error(err))
		return models.Identity{}, failure(err, MsgLoginFailed)
	}

	id := models.Identity{UserID: resp.UserID.String(), Email: resp.Email}
	if err := session.SignIn(ctx, id); err != nil {
		return models.Identity{}, fmt.Errorf("store identity: %w", err)
	}
	return id, nil
}

// Register validates the form and creates the account. It does not sign in.
func (s *Service) Register(ctx context.Context, form RegisterForm) error {
	if verr := s.validator.Struct(form); verr.OrNil() != nil {
		for i, f := range verr.Fields {
			if msg, ok := registerMessages[f.Field]; ok {
				verr.Fields[i].Message = msg
			}
		}
		return verr
	}

	if err := s.api.Register(ctx, form.Email, form.Password); err != nil {
		s.logger.Info("registration rejected", zap.String("email", form.Email), zap.Error(err))
		return failure(err, MsgRegisterFailed)
	}
	return nil
}

func failure(err error, fallback string) *Failure {
	msg := fallback
	if serverMsg, ok := clients.ServerMessage(err); ok {
		msg = serverMsg
	}
	return &Failure{Message: msg, Err: err}
}
