package model

import "encoding/json"

// Item is a single order line. Raw holds the stored object when the item was
// read from a document; it is what gets encoded so clients see every field.
type Item struct {
	Name     string         `json:"name"`
	Quantity float64        `json:"quantity"`
	Raw      map[string]any `json:"-"`
}

// MarshalJSON encodes Raw when present, otherwise name and quantity.
func (i Item) MarshalJSON() ([]byte, error) {
	if i.Raw != nil {
		return json.Marshal(i.Raw)
	}
	type plain Item
	return json.Marshal(plain(i))
}

// Event describes one occurrence that should reach a device. Only Kind is
// required; nil Items means the source had no items field at all.
type Event struct {
	Kind            Kind
	Title           string
	Body            string
	BusinessName    string
	CustomerName    string
	CustomerCompany string
	Amount          *float64
	TotalPrice      *float64
	Items           []Item
	CustomerID      string
	BusinessID      string
	OrderID         string
}

// FormattedMessage is the human readable part of a notification.
type FormattedMessage struct {
	Title string
	Body  string
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}
