package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/corkboard/corkboard/internal/auth"
	"github.com/corkboard/corkboard/internal/domain"
	"github.com/corkboard/corkboard/internal/server/middleware"
)

type SignupInput struct {
	Body struct {
		Email     string `json:"email" minLength:"3" maxLength:"255" doc:"User email"`
		Password  string `json:"password" minLength:"8" maxLength:"128" doc:"Password"` //nolint:gosec // G117: login credential DTO
		FirstName string `json:"first_name" minLength:"1" maxLength:"150" doc:"First name"`
		LastName  string `json:"last_name" minLength:"1" maxLength:"150" doc:"Last name"`
	}
}

type SignupOutput struct {
	Body struct {
		User         *domain.User `json:"user"`
		AccessToken  string       `json:"access_token"`  //nolint:gosec // G117: auth response DTO
		RefreshToken string       `json:"refresh_token"` //nolint:gosec // G117: auth response DTO
	}
}

type SigninInput struct {
	Body struct {
		Email    string `json:"email" minLength:"3" maxLength:"255" doc:"User email"`
		Password string `json:"password" minLength:"1" maxLength:"128" doc:"Password"` //nolint:gosec // G117: login credential DTO
	}
}

type SigninOutput struct {
	Body struct {
		AccessToken  string `json:"access_token"`  //nolint:gosec // G117: auth response DTO
		RefreshToken string `json:"refresh_token"` //nolint:gosec // G117: auth response DTO
	}
}

type RefreshInput struct {
	Body struct {
		RefreshToken string `json:"refresh_token" minLength:"1" doc:"Refresh token"` //nolint:gosec // G117: token refresh DTO
	}
}

type RefreshOutput struct {
	Body struct {
		AccessToken string `json:"access_token"` //nolint:gosec // G117: auth response DTO
	}
}

type IssueTicketOutput struct {
	Body struct {
		UUID string `json:"uuid" doc:"Websocket connection ticket"`
	}
}

func RegisterAuthRoutes(api huma.API, authSvc AuthService) {
	huma.Register(api, huma.Operation{
		OperationID: "signup",
		Method:      http.MethodPost,
		Path:        "/auth/signup",
		Summary:     "Register a new user",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *SignupInput) (*SignupOutput, error) {
		user, err := authSvc.Signup(ctx, input.Body.Email, input.Body.Password, input.Body.FirstName, input.Body.LastName)
		if err != nil {
			if errors.Is(err, auth.ErrUserAlreadyExists) {
				return nil, huma.Error409Conflict("user already exists")
			}
			return nil, huma.Error500InternalServerError("failed to sign up", err)
		}

		accessToken, refreshToken, err := authSvc.Signin(ctx, input.Body.Email, input.Body.Password)
		if err != nil {
			return nil, huma.Error500InternalServerError("signed up but failed to issue tokens", err)
		}

		out := &SignupOutput{}
		out.Body.User = user
		out.Body.AccessToken = accessToken
		out.Body.RefreshToken = refreshToken
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "signin",
		Method:      http.MethodPost,
		Path:        "/auth/signin",
		Summary:     "Sign in with email and password",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *SigninInput) (*SigninOutput, error) {
		accessToken, refreshToken, err := authSvc.Signin(ctx, input.Body.Email, input.Body.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				return nil, huma.Error401Unauthorized("invalid email or password")
			}
			return nil, huma.Error500InternalServerError("sign in failed", err)
		}

		out := &SigninOutput{}
		out.Body.AccessToken = accessToken
		out.Body.RefreshToken = refreshToken
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "refresh-token",
		Method:      http.MethodPost,
		Path:        "/auth/refresh",
		Summary:     "Exchange a refresh token for a new access token",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *RefreshInput) (*RefreshOutput, error) {
		accessToken, err := authSvc.Refresh(ctx, input.Body.RefreshToken)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				return nil, huma.Error401Unauthorized("invalid refresh token")
			}
			return nil, huma.Error500InternalServerError("token refresh failed", err)
		}

		out := &RefreshOutput{}
		out.Body.AccessToken = accessToken
		return out, nil
	})
}

// RegisterTicketRoutes exposes the websocket handshake ticket endpoint.
// Browsers cannot attach an Authorization header to a websocket upgrade, so
// an authenticated client first trades its JWT here for a short-lived ticket
// and passes it as the uuid query parameter when dialing.
func RegisterTicketRoutes(api huma.API, tickets TicketIssuer) {
	huma.Register(api, huma.Operation{
		OperationID: "issue-ws-ticket",
		Method:      http.MethodGet,
		Path:        "/ws_auth_uuid",
		Summary:     "Issue a websocket connection ticket",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, _ *struct{}) (*IssueTicketOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		ticket, err := tickets.Issue(ctx, userID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to issue ticket", err)
		}

		out := &IssueTicketOutput{}
		out.Body.UUID = ticket
		return out, nil
	})
}
