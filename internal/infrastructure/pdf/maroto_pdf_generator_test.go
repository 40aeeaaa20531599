package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0.00", Money(decimal.Zero))
	assert.Equal(t, "$999.90", Money(decimal.RequireFromString("999.9")))
	assert.Equal(t, "$25,000.50", Money(decimal.RequireFromString("25000.5")))
	assert.Equal(t, "$1,000,000.00", Money(decimal.NewFromInt(1000000)))
	assert.Equal(t, "-$12.35", Money(decimal.RequireFromString("-12.345")))
}

func TestGenerateInvoicePDF_DevuelvePDF(t *testing.T) {
	inv := &entity.Invoice{
		ID: "i1", Number: "INV-000007", Status: entity.InvoiceStatusIssued,
		Subtotal: decimal.NewFromInt(9), Tax: decimal.RequireFromString("1.71"), Total: decimal.RequireFromString("10.71"),
		IssuedAt: time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
	}
	company := &entity.Company{ID: "c1", Name: "Fresh Breeze", Slug: "fresh"}
	order := &entity.Order{
		ID: "o1", ShippingName: "Ana", ShippingAddress: "Calle 1", ShippingCity: "Cali",
		Items: []entity.OrderItem{{Name: "Mango", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(3)}},
	}

	b, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), inv, company, order)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}
