package request

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest carries no binding rules: every bad login gets the same
// answer, including an empty form.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
