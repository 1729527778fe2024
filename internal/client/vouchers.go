package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/travesia/voucher-admin/internal/domain/entity"
)

const vouchersPath = "/finance/vouchers"

// BankPayload is the nested bank object on the voucher create payload.
// ID null means "register inline"; a resolved id travels with empty
// string fields.
type BankPayload struct {
	ID       *int64 `json:"id"`
	Name     string `json:"name"`
	BankCode string `json:"bankCode"`
}

// AffiliatePayload is the nested affiliate object on the voucher create payload
type AffiliatePayload struct {
	ID              *int64 `json:"id"`
	FirstName       string `json:"firstName"`
	SecondName      string `json:"secondName"`
	PaternalSurname string `json:"paternalSurname"`
	MaternalSurname string `json:"maternalSurname"`
	IdentityCard    string `json:"identityCard"`
}

// CreateVoucherRequest is the create payload: nested objects, with the
// server resolving inline entities atomically
type CreateVoucherRequest struct {
	DepositNumber int64            `json:"depositNumber"`
	DepositDate   string           `json:"depositDate"`
	Amount        float64          `json:"amount"`
	Period        string           `json:"period"`
	Bank          BankPayload      `json:"bank"`
	Affiliate     AffiliatePayload `json:"affiliate"`
}

// UpdateVoucherRequest is the update payload: scalar fields plus
// pre-resolved bank and person ids. Unlike the create path it never
// carries nested objects.
type UpdateVoucherRequest struct {
	DepositNumber int64   `json:"depositNumber"`
	DepositDate   string  `json:"depositDate"`
	Amount        float64 `json:"amount"`
	Period        string  `json:"period"`
	BankID        int64   `json:"bankId"`
	PersonID      int64   `json:"personId"`
}

// ListVouchers fetches the full voucher list
func (c *Client) ListVouchers(ctx context.Context) ([]entity.Voucher, error) {
	var vouchers []entity.Voucher
	if err := c.do(ctx, http.MethodGet, vouchersPath, nil, &vouchers); err != nil {
		return nil, err
	}
	return vouchers, nil
}

// CreateVoucher creates a voucher from the nested-object payload
func (c *Client) CreateVoucher(ctx context.Context, req CreateVoucherRequest) (*entity.Voucher, error) {
	var voucher entity.Voucher
	if err := c.do(ctx, http.MethodPost, vouchersPath, req, &voucher); err != nil {
		return nil, err
	}
	return &voucher, nil
}

// UpdateVoucher performs a full-record update with pre-resolved ids
func (c *Client) UpdateVoucher(ctx context.Context, id int64, req UpdateVoucherRequest) (*entity.Voucher, error) {
	var voucher entity.Voucher
	path := fmt.Sprintf("%s/%d", vouchersPath, id)
	if err := c.do(ctx, http.MethodPut, path, req, &voucher); err != nil {
		return nil, err
	}
	return &voucher, nil
}

// DeleteVoucher deletes the voucher with the given id
func (c *Client) DeleteVoucher(ctx context.Context, id int64) error {
	path := fmt.Sprintf("%s/%d", vouchersPath, id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
