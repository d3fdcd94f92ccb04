package captable

type InvestorInput struct {
	UserExternalID string `json:"user_external_id" binding:"required"`
	Shares         int64  `json:"shares" binding:"required,gt=0"`
}

type CreateCapTableRequest struct {
	Investors []InvestorInput `json:"investors" binding:"dive"`
}

// CreateCapTableResult mirrors the {success, errors} result of a cap table
// creation; Errors is always present.
type CreateCapTableResult struct {
	Success            bool               `json:"success"`
	Errors             []string           `json:"errors"`
	FullyDilutedShares int64              `json:"fully_diluted_shares,omitempty"`
	Investors          []InvestorResponse `json:"investors,omitempty"`
}

type HoldingResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	ShareClass         string `json:"share_class,omitempty"`
	NumberOfShares     int64  `json:"number_of_shares"`
	SharePriceUSD      string `json:"share_price_usd"`
	TotalAmountInCents int64  `json:"total_amount_in_cents"`
	ShareHolderName    string `json:"share_holder_name"`
	IssuedAt           string `json:"issued_at"`
}

type InvestorResponse struct {
	ID                      string            `json:"id"`
	ExternalID              string            `json:"external_id"`
	UserID                  string            `json:"user_id"`
	InvestmentAmountInCents int64             `json:"investment_amount_in_cents"`
	TotalShares             int64             `json:"total_shares"`
	Holdings                []HoldingResponse `json:"holdings"`
}

type CapTableResponse struct {
	CompanyID          string             `json:"company_id"`
	FullyDilutedShares int64              `json:"fully_diluted_shares"`
	Investors          []InvestorResponse `json:"investors"`
}
