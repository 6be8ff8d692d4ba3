package usecase

import (
	"strconv"
	"strings"

	"cayyap-notifier/internal/domain/model"
)

// Formatter maps a notification kind and its event to a title and body.
type Formatter struct {
	catalog Catalog
}

// NewFormatter builds a Formatter for the given locale, e.g. "en" or "tr".
func NewFormatter(locale string) *Formatter {
	return &Formatter{catalog: CatalogFor(locale)}
}

// Format is total over kinds; unknown kinds fall back to the event's own title and body.
func (f *Formatter) Format(kind model.Kind, event model.Event) model.FormattedMessage {
	event.Kind = kind
	c := f.catalog

	switch m := event.Variant().(type) {
	case model.OrderDecision:
		text := c.orderApproved
		if m.Decision == model.KindOrderCancelled {
			text = c.orderCancelled
		}
		body := joinItems(m.Items)
		if body == "" {
			body = text.body.render("")
		}
		return model.FormattedMessage{Title: text.title.render(m.BusinessName), Body: body}

	case model.BalanceChange:
		text := c.balanceAdded
		if m.Direction == model.KindBalanceDeducted {
			text = c.balanceDeducted
		}
		body := text.body.render(m.BusinessName)
		if m.Amount != nil {
			body = text.amountBody.render(m.BusinessName, c.Currency+FormatAmount(*m.Amount))
		}
		return model.FormattedMessage{Title: text.title.render(""), Body: body}

	case model.CustomerStatus:
		text := c.customerApproved
		if m.Status == model.KindCustomerRemoved {
			text = c.customerRemoved
		}
		return model.FormattedMessage{Title: text.title.render(""), Body: text.body.render(m.BusinessName)}

	case model.NewOrder:
		title := newOrderTitle(m.CustomerCompany, m.CustomerName)
		if title == "" {
			title = c.newOrder.title.render("")
		}
		body := joinItems(m.Items)
		if body == "" {
			body = c.newOrder.body.render("")
		}
		return model.FormattedMessage{Title: title, Body: body}

	case model.NewCustomerRequest:
		return model.FormattedMessage{
			Title: c.newCustomerRequest.title.render(""),
			Body:  c.newCustomerRequest.body.render(m.CustomerName),
		}

	case model.Generic:
		title := m.Title
		if title == "" {
			title = c.FallbackTitle
		}
		return model.FormattedMessage{Title: title, Body: m.Body}
	}

	return model.FormattedMessage{Title: c.FallbackTitle}
}

func newOrderTitle(company, name string) string {
	switch {
	case company != "" && name != "":
		return company + "\n" + name
	case name != "":
		return name
	default:
		return company
	}
}

// joinItems renders one "<quantity> X <name>" line per item.
func joinItems(items []model.Item) string {
	if len(items) == 0 {
		return ""
	}
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, FormatNumber(it.Quantity)+" X "+it.Name)
	}
	return strings.Join(lines, "\n")
}

// FormatAmount renders a currency amount with exactly two fractional digits.
// Values that round to zero render as "0.00", never "-0.00".
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}

// FormatNumber renders v in its shortest decimal form, e.g. 5, 5.5 or 0.1.
func FormatNumber(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
