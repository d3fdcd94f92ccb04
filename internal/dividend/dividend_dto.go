package dividend

type DividendResponse struct {
	ID                    string `json:"id"`
	CompanyInvestorID     string `json:"company_investor_id"`
	TotalAmountInCents    int64  `json:"total_amount_in_cents"`
	NetAmountInCents      *int64 `json:"net_amount_in_cents"`
	WithholdingPercentage *int   `json:"withholding_percentage"`
	WithheldTaxCents      *int64 `json:"withheld_tax_cents"`
	NumberOfShares        int64  `json:"number_of_shares"`
	Status                string `json:"status"`
}

type DividendRoundResponse struct {
	ID                   string             `json:"id"`
	ExternalID           string             `json:"external_id"`
	IssuedAt             string             `json:"issued_at"`
	NumberOfShares       int64              `json:"number_of_shares"`
	NumberOfShareholders int                `json:"number_of_shareholders"`
	TotalAmountInCents   int64              `json:"total_amount_in_cents"`
	Status               string             `json:"status"`
	ReturnOfCapital      bool               `json:"return_of_capital"`
	Dividends            []DividendResponse `json:"dividends,omitempty"`
}

type OutputResponse struct {
	CompanyInvestorID   string `json:"company_investor_id"`
	ShareClass          string `json:"share_class"`
	NumberOfShares      int64  `json:"number_of_shares"`
	DividendAmountInUSD string `json:"dividend_amount_in_usd"`
	TotalAmountInUSD    string `json:"total_amount_in_usd"`
}

type ComputationResponse struct {
	ID                    string           `json:"id"`
	ExternalID            string           `json:"external_id"`
	TotalAmountInUSD      string           `json:"total_amount_in_usd"`
	DividendsIssuanceDate string           `json:"dividends_issuance_date"`
	ReturnOfCapital       bool             `json:"return_of_capital"`
	State                 string           `json:"state"`
	FinalizedAt           *string          `json:"finalized_at"`
	DividendRoundID       *string          `json:"dividend_round_id"`
	Outputs               []OutputResponse `json:"outputs"`
}

// FinalizeResult is the {success, dividendRound, error} result of a
// finalization.
type FinalizeResult struct {
	Success       bool                   `json:"success"`
	DividendRound *DividendRoundResponse `json:"dividend_round,omitempty"`
	Error         string                 `json:"error,omitempty"`
}
