package entities

// Identity is the authenticated caller carried by a session token.
type Identity struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Screen names a client view. Admin-only screens are also enforced on the
// routes that back them.
type Screen string

const (
	ScreenUserManagement     Screen = "user_management"
	ScreenTemplateManagement Screen = "template_management"
	ScreenEstimateCreation   Screen = "estimate_creation"
	ScreenReports            Screen = "reports"
)

// LandingScreen is the screen shown right after login.
func LandingScreen(role Role) Screen {
	if role == RoleAdmin {
		return ScreenUserManagement
	}
	return ScreenEstimateCreation
}

// ScreensFor lists the screens reachable by a role, in navigation order.
func ScreensFor(role Role) []Screen {
	if role == RoleAdmin {
		return []Screen{ScreenUserManagement, ScreenTemplateManagement, ScreenEstimateCreation, ScreenReports}
	}
	return []Screen{ScreenEstimateCreation, ScreenReports}
}
