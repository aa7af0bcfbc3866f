package postgresql

import (
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRows replays canned Scan calls so the collect loop can run without a
// database connection.
type stubRows struct {
	scans []func(dest ...any) error
	idx   int
}

func (r *stubRows) Next() bool {
	r.idx++
	return r.idx <= len(r.scans)
}

func (r *stubRows) Scan(dest ...any) error { return r.scans[r.idx-1](dest...) }

func (r *stubRows) Close()                                       {}
func (r *stubRows) Err() error                                   { return nil }
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) Values() ([]any, error)                       { return nil, nil }
func (r *stubRows) RawValues() [][]byte                          { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

// paymentScan fills the destinations in paymentColumns order.
func paymentScan(id, discountsJSON string) func(dest ...any) error {
	return func(dest ...any) error {
		*(dest[0].(*string)) = id
		*(dest[1].(*string)) = "e1"
		*(dest[2].(*string)) = "Rosa Quispe"
		*(dest[3].(*decimal.Decimal)) = decimal.NewFromInt(1200)
		*(dest[4].(*time.Time)) = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
		*(dest[5].(*int)) = 3
		*(dest[6].(*int)) = 2025
		*(dest[7].(*string)) = "Marzo 2025"
		*(dest[8].(*string)) = "CASH"
		*(dest[11].(*[]byte)) = []byte(discountsJSON)
		*(dest[14].(*string)) = "COMPLETED"
		*(dest[15].(*time.Time)) = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
		*(dest[16].(*string)) = "u1"
		return nil
	}
}

func TestCollectPaymentsSkipsMalformedRow(t *testing.T) {
	var scans []func(dest ...any) error
	for i := 0; i < 9; i++ {
		scans = append(scans, paymentScan(fmt.Sprintf("p%d", i), `[]`))
	}
	// Corrupted snapshot JSON in the middle of the result set.
	scans = append(scans[:4], append([]func(dest ...any) error{
		paymentScan("bad", `{corrupted`),
	}, scans[4:]...)...)

	payments, err := collectPayments(&stubRows{scans: scans})
	require.NoError(t, err)

	assert.Len(t, payments, 9)
	for _, p := range payments {
		assert.NotEqual(t, "bad", p.ID)
	}
}

func TestCollectPaymentsDecodesValidRows(t *testing.T) {
	snapshots := `[{"discount_id":"d1","type":"TARDANZA","amount":"50","reason":"Tardanza"}]`
	payments, err := collectPayments(&stubRows{scans: []func(dest ...any) error{
		paymentScan("p1", snapshots),
	}})
	require.NoError(t, err)
	require.Len(t, payments, 1)

	p := payments[0]
	assert.Equal(t, "p1", p.ID)
	require.Len(t, p.Discounts, 1)
	assert.True(t, p.Discounts[0].Amount.Equal(decimal.NewFromInt(50)))
	assert.True(t, p.NetAmount().Equal(decimal.NewFromInt(1150)))
}
