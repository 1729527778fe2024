package entity

// Bank represents a banking entity vouchers are deposited into
type Bank struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	BankCode string `json:"bankCode"`
}
