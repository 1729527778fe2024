package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, zap.NewNop()), srv
}

func TestListVouchers(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/finance/vouchers", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1, "depositNumber": 12345, "depositDate": "2026-02-10T09:30:00",
			 "registrationDate": "2026-02-10T09:31:12", "amount": 350.5,
			 "period": "2026-02-01",
			 "bank": {"id": 2, "name": "BANCO GANADERO", "bankCode": "BG"},
			 "affiliate": {"id": 3, "fullName": "JUAN PEREZ", "firstName": "JUAN",
			               "identityCard": "4839201"}}
		]`))
	})

	vouchers, err := c.ListVouchers(context.Background())
	require.NoError(t, err)
	require.Len(t, vouchers, 1)

	v := vouchers[0]
	assert.Equal(t, int64(1), v.ID)
	assert.Equal(t, int64(12345), v.DepositNumber)
	assert.Equal(t, 350.5, v.Amount)
	assert.Equal(t, "2026-02-10T09:30:00", v.DepositDate.Format("2006-01-02T15:04:05"))
	assert.Equal(t, "2026-02-01", v.Period.Format("2006-01-02"))
	assert.Equal(t, "BANCO GANADERO", v.Bank.Name)
	assert.Equal(t, "4839201", v.Affiliate.IdentityCard)
}

func TestCreateVoucher_NestedPayloadShape(t *testing.T) {
	var captured map[string]interface{}

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/finance/vouchers", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 10, "depositNumber": 12345, "depositDate": "2026-02-10T09:30:00",
			"registrationDate": "2026-02-10T09:31:12", "amount": 350.5, "period": "2026-02-01",
			"bank": {"id": 5}, "affiliate": {"id": 3}}`))
	})

	affiliateID := int64(3)
	req := CreateVoucherRequest{
		DepositNumber: 12345,
		DepositDate:   "2026-02-10T09:30:00",
		Amount:        350.5,
		Period:        "2026-02-01",
		Bank: BankPayload{
			ID:       nil,
			Name:     "BANCO GANADERO",
			BankCode: "BG",
		},
		Affiliate: AffiliatePayload{ID: &affiliateID},
	}

	voucher, err := c.CreateVoucher(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(10), voucher.ID)

	// New bank travels with an explicit null id
	bank := captured["bank"].(map[string]interface{})
	assert.Nil(t, bank["id"])
	assert.Equal(t, "BANCO GANADERO", bank["name"])

	// Existing affiliate travels with its numeric id and empty string fields
	affiliate := captured["affiliate"].(map[string]interface{})
	assert.Equal(t, float64(3), affiliate["id"])
	assert.Equal(t, "", affiliate["firstName"])
	assert.Equal(t, "", affiliate["identityCard"])
}

func TestUpdateVoucher_FlatPayloadShape(t *testing.T) {
	var captured map[string]interface{}

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/finance/vouchers/7", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 7, "depositNumber": 999, "depositDate": "2026-02-10T09:30:00",
			"registrationDate": "2026-02-01T08:00:00", "amount": 100, "period": "2026-02-01",
			"bank": {"id": 5}, "affiliate": {"id": 3}}`))
	})

	_, err := c.UpdateVoucher(context.Background(), 7, UpdateVoucherRequest{
		DepositNumber: 999,
		DepositDate:   "2026-02-10T09:30:00",
		Amount:        100,
		Period:        "2026-02-01",
		BankID:        5,
		PersonID:      3,
	})
	require.NoError(t, err)

	// The update contract is flat resolved ids, never nested objects
	assert.Equal(t, float64(5), captured["bankId"])
	assert.Equal(t, float64(3), captured["personId"])
	assert.NotContains(t, captured, "bank")
	assert.NotContains(t, captured, "affiliate")
}

func TestDeleteVoucher(t *testing.T) {
	called := false
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/finance/vouchers/42", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteVoucher(context.Background(), 42))
	assert.True(t, called)
}

func TestErrorStatusSurfacesAsFailure(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "boom"}`))
	})

	_, err := c.ListVouchers(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")

	err = c.DeleteVoucher(context.Background(), 1)
	require.Error(t, err)
}

func TestCreateBank(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/finance/banks", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 9, "name": "BANCO UNION", "bankCode": "BU"}`))
	})

	bank, err := c.CreateBank(context.Background(), CreateBankRequest{Name: "BANCO UNION", BankCode: "BU"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), bank.ID)
}

func TestCreateAffiliate(t *testing.T) {
	var captured map[string]interface{}

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/finance/affiliates", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 11, "fullName": "JUAN PEREZ", "firstName": "JUAN", "identityCard": "4839201"}`))
	})

	affiliate, err := c.CreateAffiliate(context.Background(), CreateAffiliateRequest{
		FirstName:     "JUAN",
		IdentityCard:  "4839201",
		AffiliateCode: "AF-4839201",
		AdmissionDate: "2026-02-11T14:30:00",
		Status:        "ACTIVE",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), affiliate.ID)
	assert.Equal(t, "AF-4839201", captured["affiliateCode"])
	assert.Equal(t, "ACTIVE", captured["status"])
}
