package extract

import (
	"testing"
	"time"
)

const purchaseOrderText = `
        PURCHASE ORDER
        PO Number: PO-538-003
        Date: 2024-03-15

        Supplier: Advanced Components Ltd.
        Customer No: CUST-001

        Line Items:
        Part#: VALVE-SS-1/4    Description: Stainless Steel Ball Valve 1/4"    Qty: 5    Price: $125.00
        Part#: GAUGE-VAC-001   Description: Vacuum Gauge 0-30 inHg            Qty: 2    Price: $89.50

        Total: $1,462.50 CAD
`

const categoryRowsText = `
        Part#: VALVE-001    Description: Stainless Steel Ball Valve    Qty: 1    Price: $125.00
        Part#: PUMP-001     Description: Vacuum Turbo Pump             Qty: 1    Price: $4500.00
        Part#: CABLE-001    Description: Power Cable 10 AWG           Qty: 10   Price: $25.00
`

const fallbackText = `PO Number: PO-100-200
Part: ABC-1
Part: ABC-2
Part: ABC-3
Qty: 4
Qty: 7
Price: $10.00
Price: $20.00
Price: $30.00
Price: $40.00
`

var fixedTime = time.Date(2024, 3, 20, 14, 30, 0, 0, time.UTC)

func fixClock(t *testing.T, ts time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = prev })
}
