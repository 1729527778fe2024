package entity

// Status constants for Affiliate
const (
	AffiliateStatusActive   = "ACTIVE"
	AffiliateStatusInactive = "INACTIVE"
)

// AffiliateCodePrefix prefixes the provisional code derived from the identity card
const AffiliateCodePrefix = "AF-"
