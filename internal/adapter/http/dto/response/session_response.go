package response

import (
	"time"

	"estimador/internal/domain/entities"
	"estimador/internal/usecase"
)

type IdentityResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// SessionResponse tells the client who is logged in and which screens to
// offer.
type SessionResponse struct {
	User          IdentityResponse `json:"user"`
	LandingScreen string           `json:"landing_screen"`
	Screens       []string         `json:"screens"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
	SessionResponse
}

func FromIdentity(id entities.Identity) SessionResponse {
	screens := entities.ScreensFor(id.Role)
	names := make([]string, 0, len(screens))
	for _, s := range screens {
		names = append(names, string(s))
	}
	return SessionResponse{
		User:          IdentityResponse{ID: id.UserID, Username: id.Username, Role: string(id.Role)},
		LandingScreen: string(entities.LandingScreen(id.Role)),
		Screens:       names,
	}
}

func FromSession(s usecase.Session) LoginResponse {
	return LoginResponse{
		Token:           s.Token,
		TokenType:       "Bearer",
		ExpiresAt:       s.ExpiresAt,
		SessionResponse: FromIdentity(s.Identity),
	}
}
