package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/infra/tabular"
)

// Export column headers.
var (
	ClientExportHeaders = []string{"Name", "Email", "Phone", "Company", "Status", "Last Contact", "Tags", "Notes"}
	OrderExportHeaders  = []string{"Client", "Product", "Amount", "Date", "Status", "Description"}
)

// UnknownOrderClient names an order's client when the reference does not resolve.
const UnknownOrderClient = "Unknown"

// ExportDataInput contains the export options.
type ExportDataInput struct {
	Dialect       domain.Dialect
	IncludeOrders bool
}

// ExportDataOutput contains the rendered file.
type ExportDataOutput struct {
	Content  string
	FileName string // crm_export_<date>.csv or .xls
	MIMEType string
	Clients  int
	Orders   int
}

// ExportData serializes clients, and optionally orders, to delimited text.
type ExportData struct {
	clients    domain.ClientRepository
	orders     domain.OrderRepository
	clock      domain.Clock
	loc        *time.Location
	dateLayout string
}

// NewExportData creates a new ExportData use case. Dates are rendered in loc
// with dateLayout.
func NewExportData(clients domain.ClientRepository, orders domain.OrderRepository, clock domain.Clock, loc *time.Location, dateLayout string) *ExportData {
	if dateLayout == "" {
		dateLayout = domain.DefaultDateLayout
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ExportData{clients: clients, orders: orders, clock: clock, loc: loc, dateLayout: dateLayout}
}

// Execute renders the export. The client block always comes first; the
// order block follows a blank line only when requested and non-empty.
func (uc *ExportData) Execute(ctx context.Context, in ExportDataInput) (*ExportDataOutput, error) {
	dialect := in.Dialect
	if dialect == "" {
		dialect = domain.DialectCSV
	}

	clients, err := uc.clients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	var orders []*domain.Order
	if in.IncludeOrders {
		orders, err = uc.orders.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}
	}

	var b strings.Builder
	w := tabular.NewWriter(&b, dialect)

	w.Header(ClientExportHeaders...)
	for _, c := range clients {
		w.Row(
			c.Name,
			c.Email,
			c.Phone,
			c.Company,
			string(c.Status),
			uc.date(c.LastContact),
			strings.Join(c.Tags, "; "),
			c.Notes,
		)
	}

	if len(orders) > 0 {
		w.Blank()
		w.Header(OrderExportHeaders...)
		for _, o := range orders {
			name := UnknownOrderClient
			if c, ok := domain.FindClient(clients, o.ClientID); ok {
				name = c.Name
			}
			w.Row(
				name,
				o.Product,
				strconv.FormatFloat(o.Amount, 'f', -1, 64),
				uc.date(o.Date),
				string(o.Status),
				o.Description,
			)
		}
	}

	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("render export: %w", err)
	}

	return &ExportDataOutput{
		Content:  b.String(),
		FileName: dialect.ExportFileName(uc.clock.Now()),
		MIMEType: dialect.MIMEType(),
		Clients:  len(clients),
		Orders:   len(orders),
	}, nil
}

func (uc *ExportData) date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(uc.loc).Format(uc.dateLayout)
}
