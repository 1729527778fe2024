package client

import (
	"context"
	"net/http"

	"github.com/travesia/voucher-admin/internal/domain/entity"
)

const affiliatesPath = "/finance/affiliates"

// CreateAffiliateRequest is the standalone affiliate create payload used on
// the voucher edit path. The caller supplies the provisional affiliate code
// derived from the identity card, the admission timestamp and the status.
type CreateAffiliateRequest struct {
	FirstName       string `json:"firstName"`
	SecondName      string `json:"secondName"`
	PaternalSurname string `json:"paternalSurname"`
	MaternalSurname string `json:"maternalSurname"`
	IdentityCard    string `json:"identityCard"`
	AffiliateCode   string `json:"affiliateCode"`
	AdmissionDate   string `json:"admissionDate"`
	Status          string `json:"status"`
}

// ListAffiliates fetches the full affiliate list
func (c *Client) ListAffiliates(ctx context.Context) ([]entity.Affiliate, error) {
	var affiliates []entity.Affiliate
	if err := c.do(ctx, http.MethodGet, affiliatesPath, nil, &affiliates); err != nil {
		return nil, err
	}
	return affiliates, nil
}

// CreateAffiliate registers an affiliate and returns it with the
// server-assigned id
func (c *Client) CreateAffiliate(ctx context.Context, req CreateAffiliateRequest) (*entity.Affiliate, error) {
	var affiliate entity.Affiliate
	if err := c.do(ctx, http.MethodPost, affiliatesPath, req, &affiliate); err != nil {
		return nil, err
	}
	return &affiliate, nil
}
