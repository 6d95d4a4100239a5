package cart

import (
	"testing"

	"localconnect/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serviceItem(id string, price float64) models.CartLineItem {
	return models.CartLineItem{ID: id, Kind: models.KindService, Price: price, ProviderName: "Ravi"}
}

func ticketItem(id string, price, fee float64, available int) models.CartLineItem {
	return models.CartLineItem{ID: id, Kind: models.KindTicket, Price: price, Fee: fee, Quantity: 1, AvailableTickets: available, EventName: "Sunburn"}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTotalServiceBooking(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.AddItem(models.CategoryService, serviceItem("w1", 500)))

	totals := c.ComputeTotal(models.CategoryService, DefaultFees())

	assert.True(t, totals.Subtotal.Equal(dec("500")), totals.Subtotal.String())
	assert.True(t, totals.Tax.Equal(dec("70.85")), totals.Tax.String())
	assert.True(t, totals.Total.Equal(dec("615.85")), totals.Total.String())
}

func TestComputeTotalInvariant(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.SetActive(models.CategoryEvent))
	require.NoError(t, c.AddItem(models.CategoryEvent, ticketItem("t1", 799.99, 49.5, 4)))
	require.NoError(t, c.SetQuantity(models.CategoryEvent, "t1", 3))
	_, err := c.ApplyPromoCode("welcome20", DefaultPromoPolicy())
	require.NoError(t, err)

	fees := DefaultFees()
	first := c.ComputeTotal(models.CategoryEvent, fees)
	second := c.ComputeTotal(models.CategoryEvent, fees)

	assert.True(t, first.Total.Equal(second.Total))
	expectedTax := first.Subtotal.Sub(first.Discount).Add(first.DeliveryFee).Add(first.PlatformFee).Mul(fees.TaxRate)
	assert.True(t, first.Tax.Equal(expectedTax))
	expectedTotal := first.Subtotal.Sub(first.Discount).Add(first.DeliveryFee).Add(first.PlatformFee).Add(first.Tax)
	assert.True(t, first.Total.Equal(expectedTotal))
	assert.True(t, first.Subtotal.Equal(dec("2548.47")), first.Subtotal.String())
}

func TestApplyPromoCodeFirst10(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.AddItem(models.CategoryService, serviceItem("w1", 500)))

	applied, err := c.ApplyPromoCode("FIRST10", DefaultPromoPolicy())
	require.NoError(t, err)
	assert.Equal(t, "FIRST10", applied.Code)

	totals := c.ComputeTotal(models.CategoryService, DefaultFees())
	assert.True(t, totals.Discount.Equal(dec("50")))
	// (500 - 50 + 35 + 10) * 0.13
	assert.True(t, totals.Tax.Equal(dec("64.35")), totals.Tax.String())
	assert.True(t, totals.Total.Equal(dec("559.35")), totals.Total.String())
}

func TestApplyPromoCodeIsCaseInsensitive(t *testing.T) {
	for _, code := range []string{"first10", "First10", " FIRST10 ", "SUPER"} {
		c := New(nil)
		_, err := c.ApplyPromoCode(code, DefaultPromoPolicy())
		assert.NoError(t, err, code)
	}
}

func TestApplyPromoCodeOnlyAffectsActiveCategory(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.AddItem(models.CategoryService, serviceItem("w1", 500)))
	require.NoError(t, c.AddItem(models.CategoryEvent, ticketItem("t1", 1000, 0, 2)))

	_, err := c.ApplyPromoCode("FIRST10", DefaultPromoPolicy())
	require.NoError(t, err)

	assert.True(t, c.ComputeTotal(models.CategoryService, DefaultFees()).Discount.Equal(dec("50")))
	assert.True(t, c.ComputeTotal(models.CategoryEvent, DefaultFees()).Discount.IsZero())
}

func TestApplyUnknownPromoResetsDiscount(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.AddItem(models.CategoryService, serviceItem("w1", 500)))
	_, err := c.ApplyPromoCode("FIRST10", DefaultPromoPolicy())
	require.NoError(t, err)

	_, err = c.ApplyPromoCode("BOGUS", DefaultPromoPolicy())
	assert.ErrorIs(t, err, ErrUnknownPromo)
	assert.True(t, c.ComputeTotal(models.CategoryService, DefaultFees()).Discount.IsZero())
}

func TestDiscountFollowsSubtotalChanges(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.AddItem(models.CategoryService, serviceItem("w1", 500)))
	_, err := c.ApplyPromoCode("FIRST10", DefaultPromoPolicy())
	require.NoError(t, err)
	require.NoError(t, c.AddItem(models.CategoryService, serviceItem("w2", 300)))

	assert.True(t, c.ComputeTotal(models.CategoryService, DefaultFees()).Discount.Equal(dec("80")))
}

func TestTicketQuantityIsClamped(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.AddItem(models.CategoryEvent, ticketItem("t1", 100, 10, 2)))

	require.NoError(t, c.AddItem(models.CategoryEvent, ticketItem("t1", 100, 10, 2)))
	assert.Equal(t, 2, c.Items(models.CategoryEvent)[0].Quantity)

	// Adding past availability is a no-op.
	require.NoError(t, c.AddItem(models.CategoryEvent, ticketItem("t1", 100, 10, 2)))
	assert.Equal(t, 2, c.Items(models.CategoryEvent)[0].Quantity)

	require.NoError(t, c.SetQuantity(models.CategoryEvent, "t1", 10))
	assert.Equal(t, 2, c.Items(models.CategoryEvent)[0].Quantity)

	require.NoError(t, c.SetQuantity(models.CategoryEvent, "t1", 0))
	assert.Equal(t, 1, c.Items(models.CategoryEvent)[0].Quantity)
}

func TestServiceItemsAreNormalised(t *testing.T) {
	c := New(nil)
	item := serviceItem("w1", 500)
	item.Quantity = 4
	item.Fee = 20
	require.NoError(t, c.AddItem(models.CategoryService, item))
	require.NoError(t, c.AddItem(models.CategoryService, item))
	require.NoError(t, c.SetQuantity(models.CategoryService, "w1", 3))

	items := c.Items(models.CategoryService)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Zero(t, items[0].Fee)
}

func TestAddItemRejectsBadInput(t *testing.T) {
	c := New(nil)
	assert.ErrorIs(t, c.AddItem(models.CategoryService, ticketItem("t1", 100, 0, 2)), ErrCategoryMismatch)
	assert.ErrorIs(t, c.AddItem(models.CategoryEvent, ticketItem("t2", 100, 0, 0)), ErrSoldOut)
	assert.ErrorIs(t, c.AddItem(models.CategoryService, serviceItem("", 100)), ErrInvalidItem)
	assert.ErrorIs(t, c.AddItem(models.Category("food"), serviceItem("w1", 100)), ErrUnknownCategory)
}

func TestRemoveAndClear(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.AddItem(models.CategoryService, serviceItem("w1", 500)))
	require.NoError(t, c.AddItem(models.CategoryEvent, ticketItem("t1", 100, 0, 2)))
	require.NoError(t, c.SetActive(models.CategoryEvent))

	require.NoError(t, c.RemoveItem(models.CategoryService, "missing"))
	assert.Len(t, c.Items(models.CategoryService), 1)
	require.NoError(t, c.RemoveItem(models.CategoryService, "w1"))
	assert.Empty(t, c.Items(models.CategoryService))

	c.Clear()
	assert.Empty(t, c.Items(models.CategoryEvent))
	assert.Equal(t, models.CategoryService, c.Active())
}
