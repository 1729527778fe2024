package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travesia/voucher-admin/internal/domain/entity"
	"github.com/travesia/voucher-admin/internal/export"
	"github.com/travesia/voucher-admin/internal/repository"
	"github.com/travesia/voucher-admin/internal/service"
	"github.com/travesia/voucher-admin/pkg/database"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	db, err := database.New(database.Config{
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	migrator := database.NewMigrator(db, logger)
	require.NoError(t, migrator.RunMigrations("../../migrations"))

	svc := service.NewVoucherService(
		db,
		repository.NewVoucherRepository(db.DB, logger),
		repository.NewBankRepository(db.DB, logger),
		repository.NewAffiliateRepository(db.DB, logger),
		logger,
	)
	return NewRouter(NewHandlers(svc, export.NewReportWriter(logger), logger), logger)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func nestedVoucherBody() map[string]interface{} {
	return map[string]interface{}{
		"depositNumber": 445566,
		"depositDate":   "2026-02-10T14:30:00",
		"amount":        1234.56,
		"period":        "2026-02-01",
		"bank": map[string]interface{}{
			"id":       nil,
			"name":     "banco ganadero",
			"bankCode": "bga",
		},
		"affiliate": map[string]interface{}{
			"id":              nil,
			"firstName":       "maria",
			"secondName":      "",
			"paternalSurname": "quispe",
			"maternalSurname": "",
			"identityCard":    "1234567",
		},
	}
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestCreateBank_NormalizesFields(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/finance/banks", map[string]interface{}{
		"name":     "  banco ganadero ",
		"bankCode": "bga",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var bank entity.Bank
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bank))
	assert.NotZero(t, bank.ID)
	assert.Equal(t, "BANCO GANADERO", bank.Name)
	assert.Equal(t, "BGA", bank.BankCode)

	w = doJSON(t, router, http.MethodGet, "/finance/banks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var banks []entity.Bank
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &banks))
	assert.Len(t, banks, 1)
}

func TestCreateBank_MissingFields(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/finance/banks", map[string]interface{}{
		"name": "BANCO GANADERO",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestCreateAffiliate_ComposesFullName(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/finance/affiliates", map[string]interface{}{
		"firstName":       "maria",
		"secondName":      "",
		"paternalSurname": "quispe",
		"maternalSurname": "mamani",
		"identityCard":    " 1234567 ",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var affiliate entity.Affiliate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &affiliate))
	assert.Equal(t, "MARIA QUISPE MAMANI", affiliate.FullName)
	assert.Equal(t, "1234567", affiliate.IdentityCard)
}

func TestCreateVoucher_InlineEntities(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/finance/vouchers", nestedVoucherBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var voucher entity.Voucher
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &voucher))
	assert.NotZero(t, voucher.ID)
	assert.Equal(t, int64(445566), voucher.DepositNumber)
	assert.NotZero(t, voucher.Bank.ID, "inline bank persisted with the voucher")
	assert.Equal(t, "BANCO GANADERO", voucher.Bank.Name)
	assert.NotZero(t, voucher.Affiliate.ID)
	assert.Equal(t, "MARIA QUISPE", voucher.Affiliate.FullName)

	w = doJSON(t, router, http.MethodGet, "/finance/vouchers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var vouchers []entity.Voucher
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &vouchers))
	require.Len(t, vouchers, 1)
	assert.Equal(t, voucher.ID, vouchers[0].ID)
}

func TestCreateVoucher_ExistingReferences(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/finance/vouchers", nestedVoucherBody())
	require.Equal(t, http.StatusCreated, w.Code)
	var first entity.Voucher
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))

	body := nestedVoucherBody()
	body["depositNumber"] = 778899
	body["bank"] = map[string]interface{}{"id": first.Bank.ID, "name": "", "bankCode": ""}
	body["affiliate"] = map[string]interface{}{"id": first.Affiliate.ID, "firstName": "", "secondName": "",
		"paternalSurname": "", "maternalSurname": "", "identityCard": ""}

	w = doJSON(t, router, http.MethodPost, "/finance/vouchers", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var second entity.Voucher
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.Equal(t, first.Bank.ID, second.Bank.ID)
	assert.Equal(t, first.Affiliate.ID, second.Affiliate.ID)
}

func TestCreateVoucher_UnknownBankIs404(t *testing.T) {
	router := newTestRouter(t)

	body := nestedVoucherBody()
	body["bank"] = map[string]interface{}{"id": 999, "name": "", "bankCode": ""}

	w := doJSON(t, router, http.MethodPost, "/finance/vouchers", body)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateVoucher_ZeroAmountIs400(t *testing.T) {
	router := newTestRouter(t)

	body := nestedVoucherBody()
	body["amount"] = 0

	w := doJSON(t, router, http.MethodPost, "/finance/vouchers", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateVoucher_FlatPayload(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/finance/vouchers", nestedVoucherBody())
	require.Equal(t, http.StatusCreated, w.Code)
	var created entity.Voucher
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/finance/vouchers/%d", created.ID), map[string]interface{}{
		"depositNumber": 445566,
		"depositDate":   "2026-02-10T14:30:00",
		"amount":        999.99,
		"period":        "2026-02-01",
		"bankId":        created.Bank.ID,
		"personId":      created.Affiliate.ID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated entity.Voucher
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 999.99, updated.Amount)
}

func TestUpdateVoucher_UnknownIDIs404(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/finance/banks", map[string]interface{}{
		"name": "BANCO UNION", "bankCode": "BUN",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var bank entity.Bank
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bank))

	w = doJSON(t, router, http.MethodPost, "/finance/affiliates", map[string]interface{}{
		"firstName": "JUAN", "paternalSurname": "MAMANI", "identityCard": "7654321",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var affiliate entity.Affiliate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &affiliate))

	w = doJSON(t, router, http.MethodPut, "/finance/vouchers/999", map[string]interface{}{
		"depositNumber": 1,
		"depositDate":   "2026-02-10T14:30:00",
		"amount":        10,
		"period":        "2026-02-01",
		"bankId":        bank.ID,
		"personId":      affiliate.ID,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteVoucher(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/finance/vouchers", nestedVoucherBody())
	require.Equal(t, http.StatusCreated, w.Code)
	var created entity.Voucher
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	path := fmt.Sprintf("/finance/vouchers/%d", created.ID)
	w = doJSON(t, router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "second delete finds nothing")

	w = doJSON(t, router, http.MethodGet, "/finance/vouchers", nil)
	var vouchers []entity.Voucher
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &vouchers))
	assert.Empty(t, vouchers)
}

func TestExportVouchers_StreamsWorkbook(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/finance/vouchers", nestedVoucherBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/finance/reports/vouchers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, w.Body.Len())
}
