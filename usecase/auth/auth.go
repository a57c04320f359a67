package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nodebucket/backend/domain"
	"github.com/nodebucket/backend/repository"
)

// SigninResult carries the signed session token back to the client
// together with the display fields the board header shows.
type SigninResult struct {
	Token     string `json:"token"`
	EmpID     int    `json:"empId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type UseCase struct {
	employees repository.EmployeeRepository
	sessions  repository.SessionRepository
	secret    []byte
	issuer    string
	ttl       time.Duration
	logger    *zap.Logger
}

func New(employees repository.EmployeeRepository, sessions repository.SessionRepository, secret, issuer string, ttl time.Duration, logger *zap.Logger) *UseCase {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		employees: employees,
		sessions:  sessions,
		secret:    []byte(secret),
		issuer:    issuer,
		ttl:       ttl,
		logger:    logger,
	}
}

// Signin verifies the employee exists, stores a server-side session and
// returns a signed token. The token replaces the client-writable cookie
// the browser UI used to rely on.
func (uc *UseCase) Signin(ctx context.Context, empID int) (*SigninResult, error) {
	emp, err := uc.employees.FindByID(ctx, empID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		EmpID:     emp.EmpID,
		Name:      fmt.Sprintf("%s %s", emp.FirstName, emp.LastName),
		CreatedAt: now,
		ExpiresAt: now.Add(uc.ttl),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"session_id": session.ID,
		"emp_id":     emp.EmpID,
		"iss":        uc.issuer,
		"exp":        session.ExpiresAt.Unix(),
	})
	signed, err := token.SignedString(uc.secret)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("employee signed in", zap.Int("empId", emp.EmpID))

	return &SigninResult{
		Token:     signed,
		EmpID:     emp.EmpID,
		FirstName: emp.FirstName,
		LastName:  emp.LastName,
	}, nil
}

// ValidateToken parses a signed token and confirms its session still
// exists server-side. It returns the employee id the session belongs to.
func (uc *UseCase) ValidateToken(ctx context.Context, tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return uc.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, domain.ErrUnauthorized
	}
	sessionID, _ := claims["session_id"].(string)
	if sessionID == "" {
		return 0, domain.ErrUnauthorized
	}

	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return 0, domain.ErrUnauthorized
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return 0, domain.ErrUnauthorized
	}
	return session.EmpID, nil
}

// Signout drops the server-side session for the given token, if any.
func (uc *UseCase) Signout(ctx context.Context, tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return uc.secret, nil
	})
	if err != nil || !token.Valid {
		return domain.ErrUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.ErrUnauthorized
	}
	sessionID, _ := claims["session_id"].(string)
	if sessionID == "" {
		return domain.ErrUnauthorized
	}
	return uc.sessions.Delete(ctx, sessionID)
}
