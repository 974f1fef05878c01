package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-sql-trainer/internal/config"
	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/MKhiriev/go-sql-trainer/internal/store"
	"github.com/MKhiriev/go-sql-trainer/internal/utils"
	"github.com/MKhiriev/go-sql-trainer/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and the session
// token lifecycle using a UserRepository for persistence and bcrypt for
// password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify session tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// sessionDuration controls how long a newly issued token remains valid.
	sessionDuration time.Duration

	// bcryptCost is the work factor of new password hashes.
	bcryptCost int

	// unknownUserHash is compared against when the e-mail is not registered
	// so that both login failures cost one bcrypt comparison.
	unknownUserHashOnce sync.Once
	unknownUserHash     []byte

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:  userRepository,
		tokenSignKey:    cfg.SecretKey,
		tokenIssuer:     cfg.TokenIssuer,
		sessionDuration: cfg.SessionDuration,
		bcryptCost:      bcrypt.DefaultCost,
		logger:          logger,
	}
}

// RegisterUser creates a new user account.
//
// The e-mail is checked for existence before insert; the unique index on
// users.email still guards against concurrent registrations.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if email or password is empty.
//   - ErrPasswordTooLong if the password is longer than bcrypt accepts.
//   - store.ErrEmailAlreadyExists if the e-mail is taken.
//   - A wrapped storage error if the repository call fails.
func (a *authService) RegisterUser(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		log.Error().Str("email", email).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	_, err := a.userRepository.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		log.Warn().Str("email", email).Msg("email already registered")
		return models.User{}, store.ErrEmailAlreadyExists
	case !errors.Is(err, store.ErrNoUserWasFound):
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	passwordHash, err := a.hashPassword(password)
	if err != nil {
		log.Err(err).Str("email", email).Msg("password hashing failed")
		return models.User{}, err
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{Email: email, PasswordHash: passwordHash})
	if err != nil {
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// An unknown e-mail and a wrong password both yield ErrWrongCredentials.
// Storage failures other than "not found" are returned wrapped.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		log.Error().Str("email", email).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		_ = bcrypt.CompareHashAndPassword(a.dummyHash(), []byte(password))
		log.Warn().Str("email", email).Msg("login attempt for unknown email")
		return models.User{}, ErrWrongCredentials
	}
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(password)); err != nil {
		log.Warn().Int64("id", foundUser.UserID).Str("email", foundUser.Email).Msg("wrong password")
		return models.User{}, ErrWrongCredentials
	}

	return foundUser, nil
}

// CreateSession issues a signed token for the given user.
func (a *authService) CreateSession(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.sessionDuration, a.tokenSignKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("id", user.UserID).Msg("session token creation failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrSessionCreationFailed, err)
	}

	return token, nil
}

// ResolveSession validates tokenString and loads the user it was issued to.
//
// Any validation failure (expired, wrong issuer, malformed) and a token whose
// user no longer exists are normalised to ErrSessionInvalid. Storage failures
// are returned wrapped so that callers can tell them apart.
func (a *authService) ResolveSession(ctx context.Context, tokenString string) (models.User, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		log.Debug().Err(err).Msg("session token rejected")
		return models.User{}, ErrSessionInvalid
	}

	user, err := a.userRepository.FindUserByID(ctx, token.UserID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Warn().Int64("id", token.UserID).Msg("session refers to a deleted user")
		return models.User{}, ErrSessionInvalid
	}
	if err != nil {
		log.Err(err).Int64("id", token.UserID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

func (a *authService) hashPassword(password string) (string, error) {
	return hashPassword(password, a.bcryptCost)
}

func (a *authService) dummyHash() []byte {
	a.unknownUserHashOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("unknown user"), a.bcryptCost)
		if err != nil {
			a.logger.Err(err).Msg("error generating unknown user hash")
			return
		}
		a.unknownUserHash = hash
	})
	return a.unknownUserHash
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: %w", ErrPasswordTooLong, err)
	}
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hash), nil
}
