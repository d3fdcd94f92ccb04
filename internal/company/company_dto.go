package company

type CompanyResponse struct {
	ID                 string  `json:"id"`
	ExternalID         string  `json:"external_id"`
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	EquityEnabled      bool    `json:"equity_enabled"`
	FullyDilutedShares int64   `json:"fully_diluted_shares"`
	SharePriceInUSD    *string `json:"share_price_in_usd,omitempty"`
}

type UpdateCompanyRequest struct {
	Name            string  `json:"name"`
	EquityEnabled   *bool   `json:"equity_enabled"`
	SharePriceInUSD *string `json:"share_price_in_usd"`
}
