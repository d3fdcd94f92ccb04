package user

type UserResponse struct {
	ID                string `json:"id"`
	ExternalID        string `json:"external_id"`
	Email             string `json:"email"`
	LegalName         string `json:"legal_name"`
	BillingEntityName string `json:"billing_entity_name"`
	BusinessEntity    bool   `json:"business_entity"`
	CountryCode       string `json:"country_code"`
}

type LookupUserRequest struct {
	Email string `form:"email" binding:"required,email"`
}
