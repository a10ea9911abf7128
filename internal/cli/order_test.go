package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/testutil"
)

func seedOrders(st *testutil.MockStore) {
	st.Orders.Orders = append(st.Orders.Orders,
		&domain.Order{ID: "o1", ClientID: "c1", Product: "Beans", Amount: 40, Status: domain.OrderCompleted, Date: testNow},
		&domain.Order{ID: "o2", ClientID: "c1", Product: "Grinder", Amount: 180.5, Status: domain.OrderPending, Date: testNow},
		&domain.Order{ID: "o3", ClientID: "c2", Product: "Mugs", Amount: 12, Status: domain.OrderCancelled, Date: testNow},
	)
}

func TestOrderAdd(t *testing.T) {
	// Setup
	c, st := newTestContainer(t)

	// Execute
	out, err := execute(t, newOrderCommand(c), "add", "--client", "c1", "--product", "Espresso beans", "--amount", "42.50")

	// Assert
	require.NoError(t, err)
	require.Len(t, st.Orders.Orders, 1)
	o := st.Orders.Orders[0]
	assert.Equal(t, 42.5, o.Amount)
	assert.Equal(t, domain.OrderPending, o.Status)
	assert.Equal(t, testNow, o.Date, "date defaults to now")
	assert.Equal(t, "Created order "+o.ID+" (42.50)\n", out)
}

func TestOrderAdd_WithDate(t *testing.T) {
	c, st := newTestContainer(t)

	_, err := execute(t, newOrderCommand(c),
		"add", "--client", "c1", "--product", "Grinder", "--amount", "180", "--date", "2026-02-14", "--status", "completed")

	require.NoError(t, err)
	o := st.Orders.Orders[0]
	assert.Equal(t, time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC), o.Date)
	assert.Equal(t, domain.OrderCompleted, o.Status)
}

func TestOrderAdd_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing amount", args: []string{"add", "--client", "c1", "--product", "x"}},
		{name: "negative amount", args: []string{"add", "--client", "c1", "--product", "x", "--amount", "-1"}},
		{name: "bad status", args: []string{"add", "--client", "c1", "--product", "x", "--amount", "1", "--status", "lost"}},
		{name: "bad date", args: []string{"add", "--client", "c1", "--product", "x", "--amount", "1", "--date", "feb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, st := newTestContainer(t)

			_, err := execute(t, newOrderCommand(c), tt.args...)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, st.Orders.Orders)
		})
	}
}

func TestOrderList_TotalExcludesCancelled(t *testing.T) {
	// Setup
	c, st := newTestContainer(t)
	seedOrders(st)

	// Execute
	out, err := execute(t, newOrderCommand(c), "list")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "Grinder")
	assert.Contains(t, out, "Mugs")
	assert.Contains(t, out, "Total: 220.50")
}

func TestOrderList_FilterYAML(t *testing.T) {
	c, st := newTestContainer(t)
	seedOrders(st)

	out, err := execute(t, newOrderCommand(c), "list", "--client", "c1", "--status", "pending", "-o", "yaml")

	require.NoError(t, err)
	var got []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "o2", got[0]["id"])
	assert.Equal(t, "Grinder", got[0]["product"])
}

func TestOrderUpdate(t *testing.T) {
	c, st := newTestContainer(t)
	seedOrders(st)

	out, err := execute(t, newOrderCommand(c), "update", "o2", "--status", "completed", "--amount", "175")

	require.NoError(t, err)
	assert.Equal(t, "Updated order o2\n", out)
	o := st.Orders.Orders[1]
	assert.Equal(t, domain.OrderCompleted, o.Status)
	assert.Equal(t, 175.0, o.Amount)
	assert.Equal(t, "Grinder", o.Product)
}

func TestOrderDelete(t *testing.T) {
	c, st := newTestContainer(t)
	seedOrders(st)

	_, err := execute(t, newOrderCommand(c), "delete", "o1")
	require.NoError(t, err)
	assert.Len(t, st.Orders.Orders, 2)

	_, err = execute(t, newOrderCommand(c), "delete", "o1")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
