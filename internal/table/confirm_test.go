package table

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travesia/voucher-admin/internal/cache"
	"github.com/travesia/voucher-admin/internal/domain/entity"
	"go.uber.org/zap"
)

type fakeDeleter struct {
	ids []int64
	err error
}

func (d *fakeDeleter) DeleteVoucher(ctx context.Context, id int64) error {
	d.ids = append(d.ids, id)
	return d.err
}

type fakeNotifier struct {
	successes []string
	errors    []string
}

func (n *fakeNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *fakeNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

func newConfirmRig(t *testing.T) (*ConfirmFlow, *fakeDeleter, *fakeNotifier, *int) {
	t.Helper()

	fetches := new(int)
	store := cache.NewStore(zap.NewNop())
	vouchers := cache.NewVoucherCache(store, time.Minute, func(ctx context.Context) ([]entity.Voucher, error) {
		*fetches++
		return nil, nil
	})

	deleter := &fakeDeleter{}
	notifier := &fakeNotifier{}
	return NewConfirmFlow(deleter, vouchers, notifier, zap.NewNop()), deleter, notifier, fetches
}

func TestConfirmFlow_RequestThenConfirm(t *testing.T) {
	flow, deleter, notifier, _ := newConfirmRig(t)

	flow.Request(entity.Voucher{ID: 7})
	require.NotNil(t, flow.Pending())
	assert.Equal(t, int64(7), flow.Pending().ID)
	assert.Empty(t, deleter.ids, "nothing reaches the network before Confirm")

	assert.True(t, flow.Confirm(context.Background()))
	assert.Equal(t, []int64{7}, deleter.ids)
	assert.Nil(t, flow.Pending())
	assert.Equal(t, []string{deleteSuccessMsg}, notifier.successes)
}

func TestConfirmFlow_ConfirmInvalidatesVoucherCache(t *testing.T) {
	flow, _, _, fetches := newConfirmRig(t)
	ctx := context.Background()

	_, _ = flow.vouchers.Get(ctx)
	require.Equal(t, 1, *fetches)

	flow.Request(entity.Voucher{ID: 7})
	require.True(t, flow.Confirm(ctx))

	_, _ = flow.vouchers.Get(ctx)
	assert.Equal(t, 2, *fetches, "delete invalidates the voucher list")
}

func TestConfirmFlow_CancelMakesNoCall(t *testing.T) {
	flow, deleter, notifier, _ := newConfirmRig(t)

	flow.Request(entity.Voucher{ID: 7})
	flow.Cancel()
	assert.Nil(t, flow.Pending())
	assert.Empty(t, deleter.ids)
	assert.Empty(t, notifier.errors)

	assert.False(t, flow.Confirm(context.Background()), "confirm without a pending request is a no-op")
	assert.Empty(t, deleter.ids)
}

func TestConfirmFlow_FailureReturnsToIdle(t *testing.T) {
	flow, deleter, notifier, fetches := newConfirmRig(t)
	deleter.err = errors.New("boom")

	ctx := context.Background()
	_, _ = flow.vouchers.Get(ctx)

	flow.Request(entity.Voucher{ID: 7})
	assert.False(t, flow.Confirm(ctx))
	assert.Nil(t, flow.Pending(), "failure also returns to idle, retry is manual")
	assert.Equal(t, []string{deleteFailureMsg}, notifier.errors)

	_, _ = flow.vouchers.Get(ctx)
	assert.Equal(t, 1, *fetches, "no invalidation on failure")
}

func TestConfirmFlow_SecondRequestReplacesPending(t *testing.T) {
	flow, deleter, _, _ := newConfirmRig(t)

	flow.Request(entity.Voucher{ID: 7})
	flow.Request(entity.Voucher{ID: 8})
	require.True(t, flow.Confirm(context.Background()))
	assert.Equal(t, []int64{8}, deleter.ids)
}
