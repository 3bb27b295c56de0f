package handler

import (
	"context"

	"go.uber.org/zap"

	"attendance-backend/entity"
	"attendance-backend/errs"
	"attendance-backend/jwt"
	"attendance-backend/log"
)

// guard authenticates every method of a service except the public ones.
type guard struct {
	tokens *jwt.Issuer
	public map[string]bool
}

func newGuard(tokens *jwt.Issuer, public ...string) guard {
	g := guard{tokens: tokens, public: make(map[string]bool, len(public))}
	for _, m := range public {
		g.public[m] = true
	}
	return g
}

func (g guard) AuthFuncOverride(ctx context.Context, fullMethodName string) (context.Context, error) {
	if g.public[fullMethodName] {
		return ctx, nil
	}
	return g.tokens.AuthFunc(ctx)
}

func caller(ctx context.Context) (*jwt.AccessClaims, error) {
	claims, ok := jwt.GetClaimsFromCtx(ctx)
	if !ok {
		return nil, errs.ErrUnauthorized
	}
	return claims, nil
}

func requireRole(ctx context.Context, roles ...entity.Role) (*jwt.AccessClaims, error) {
	claims, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		if claims.Role == r {
			return claims, nil
		}
	}
	return nil, errs.ErrPermissionDenied
}

func requireAdmin(ctx context.Context) (*jwt.AccessClaims, error) {
	claims, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if claims.Role != entity.RoleAdmin {
		return nil, errs.ErrNotAdmin
	}
	return claims, nil
}

// studentScope resolves which student a request is about. Students are
// pinned to themselves; staff may ask about anyone, including everyone when
// studentID is empty.
func studentScope(claims *jwt.AccessClaims, studentID string) (string, error) {
	if claims.Role != entity.RoleStudent {
		return studentID, nil
	}
	if studentID != "" && studentID != claims.UserID {
		return "", errs.ErrPermissionDenied
	}
	return claims.UserID, nil
}

// selfOrAdmin lets a user act on their own data, and admins on anyone's.
func selfOrAdmin(claims *jwt.AccessClaims, userID string) (string, error) {
	if userID == "" {
		return claims.UserID, nil
	}
	if userID != claims.UserID && claims.Role != entity.RoleAdmin {
		return "", errs.ErrPermissionDenied
	}
	return userID, nil
}

func requestLogger(claims *jwt.AccessClaims) *zap.Logger {
	return log.Logger.With(zap.String("userID", claims.UserID), zap.String("role", string(claims.Role)))
}
