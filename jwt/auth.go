package jwt

import (
	"context"

	grpc_auth "github.com/grpc-ecosystem/go-grpc-middleware/auth"
	grpc_ctxtags "github.com/grpc-ecosystem/go-grpc-middleware/tags"

	"attendance-backend/errs"
)

type claimsKey struct{}

// AuthFunc reads the bearer token from the request metadata and stores its
// claims in the returned context.
func (i *Issuer) AuthFunc(ctx context.Context) (context.Context, error) {
	token, err := grpc_auth.AuthFromMD(ctx, "bearer")
	if err != nil {
		return nil, errs.ErrUnauthorized
	}

	claims, err := i.ValidateAccessToken(token)
	if err != nil {
		if err == ErrExpired {
			return nil, errs.ErrTokenExpired
		}
		return nil, errs.ErrJWT
	}

	grpc_ctxtags.Extract(ctx).Set("auth.sub", claims.UserID)

	return WithClaims(ctx, claims), nil
}

func WithClaims(ctx context.Context, claims *AccessClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

func GetClaimsFromCtx(ctx context.Context) (*AccessClaims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*AccessClaims)
	return c, ok && c != nil
}
