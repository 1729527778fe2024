package client

import (
	"context"
	"net/http"

	"github.com/travesia/voucher-admin/internal/domain/entity"
)

const banksPath = "/finance/banks"

// CreateBankRequest is the standalone bank create payload used on the
// voucher edit path, where dependent entities are created before the update
type CreateBankRequest struct {
	Name     string `json:"name"`
	BankCode string `json:"bankCode"`
}

// ListBanks fetches the full bank list
func (c *Client) ListBanks(ctx context.Context) ([]entity.Bank, error) {
	var banks []entity.Bank
	if err := c.do(ctx, http.MethodGet, banksPath, nil, &banks); err != nil {
		return nil, err
	}
	return banks, nil
}

// CreateBank registers a bank and returns it with the server-assigned id
func (c *Client) CreateBank(ctx context.Context, req CreateBankRequest) (*entity.Bank, error) {
	var bank entity.Bank
	if err := c.do(ctx, http.MethodPost, banksPath, req, &bank); err != nil {
		return nil, err
	}
	return &bank, nil
}
