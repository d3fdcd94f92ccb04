package role

type ChangeRoleRequest struct {
	UserExternalID string `json:"user_external_id" binding:"required"`
	Role           string `json:"role" binding:"required"`
}

// RoleResult is the {success, error} result of a role change.
type RoleResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type MemberResponse struct {
	UserID     string `json:"user_id"`
	ExternalID string `json:"external_id"`
	Email      string `json:"email"`
	LegalName  string `json:"legal_name"`
	Role       string `json:"role"`
}
