package table

import (
	"context"

	"github.com/travesia/voucher-admin/internal/cache"
	"github.com/travesia/voucher-admin/internal/domain/entity"
	"go.uber.org/zap"
)

const (
	deleteSuccessMsg = "Voucher eliminado exitosamente."
	deleteFailureMsg = "Error al eliminar el voucher."
)

// Deleter issues the voucher delete call
type Deleter interface {
	DeleteVoucher(ctx context.Context, id int64) error
}

// Notifier receives the outcome messages of the delete flow
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// ConfirmFlow is the two-phase deletion guard: a delete request only marks
// the voucher as pending, and nothing reaches the network until Confirm.
type ConfirmFlow struct {
	deleter  Deleter
	vouchers *cache.VoucherCache
	notifier Notifier
	logger   *zap.Logger

	pending *entity.Voucher
}

// NewConfirmFlow creates an idle confirmation flow
func NewConfirmFlow(deleter Deleter, vouchers *cache.VoucherCache, notifier Notifier, logger *zap.Logger) *ConfirmFlow {
	return &ConfirmFlow{
		deleter:  deleter,
		vouchers: vouchers,
		notifier: notifier,
		logger:   logger,
	}
}

// Request marks the voucher as pending confirmation, replacing any
// previous pending one
func (f *ConfirmFlow) Request(v entity.Voucher) {
	f.pending = &v
}

// Pending returns the voucher awaiting confirmation, or nil when idle
func (f *ConfirmFlow) Pending() *entity.Voucher {
	return f.pending
}

// Cancel discards the pending request without any call
func (f *ConfirmFlow) Cancel() {
	f.pending = nil
}

// Confirm deletes the pending voucher. The flow returns to idle whether
// the call succeeds or fails; a retry starts over with a new Request.
func (f *ConfirmFlow) Confirm(ctx context.Context) bool {
	if f.pending == nil {
		return false
	}

	id := f.pending.ID
	f.pending = nil

	if err := f.deleter.DeleteVoucher(ctx, id); err != nil {
		f.logger.Error("Voucher delete failed", zap.Int64("id", id), zap.Error(err))
		f.notifier.Error(deleteFailureMsg)
		return false
	}

	f.vouchers.Invalidate()
	f.notifier.Success(deleteSuccessMsg)
	return true
}
