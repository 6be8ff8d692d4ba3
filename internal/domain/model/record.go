package model

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Record is the loose field set of a stored document.
type Record map[string]any

// CreatedEvent is delivered by event sources when a document is created.
type CreatedEvent struct {
	Collection string `json:"collection"`
	ID         string `json:"id"`
	Data       Record `json:"data"`
}

// String returns the field as text; non-string scalars are printed, absent
// and null values yield "".
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// Float returns the numeric field. ok is false when the value is present but
// not a number.
func (r Record) Float(key string) (value *float64, ok bool) {
	v, exists := r[key]
	if !exists || v == nil {
		return nil, true
	}
	f, ok := toFloat(v)
	if !ok {
		return nil, false
	}
	return &f, true
}

// Items decodes the order lines stored under key. nil means the field was
// absent or null. Elements that are not objects are skipped and counted in
// dropped; ok is false only when the field itself is not a list.
func (r Record) Items(key string) (items []Item, dropped int, ok bool) {
	v, exists := r[key]
	if !exists || v == nil {
		return nil, 0, true
	}
	switch t := v.(type) {
	case []Item:
		return t, 0, true
	case []map[string]any:
		out := make([]Item, 0, len(t))
		for _, m := range t {
			if m == nil {
				dropped++
				continue
			}
			out = append(out, itemFromMap(m))
		}
		return out, dropped, true
	case []any:
		out := make([]Item, 0, len(t))
		for _, raw := range t {
			m, isMap := raw.(map[string]any)
			if !isMap || m == nil {
				dropped++
				continue
			}
			out = append(out, itemFromMap(m))
		}
		return out, dropped, true
	default:
		return nil, 0, false
	}
}

func itemFromMap(m map[string]any) Item {
	item := Item{Raw: m}
	if name, ok := m["name"]; ok && name != nil {
		item.Name = fmt.Sprint(name)
	}
	if q, ok := m["quantity"]; ok && q != nil {
		if f, isNum := toFloat(q); isNum {
			item.Quantity = f
		}
	}
	return item
}

// toFloat accepts finite numbers only; NaN and infinities are malformed.
func toFloat(v any) (float64, bool) {
	f, ok := anyToFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func anyToFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// ValidationError lists the fields of a record that are missing or malformed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid record: " + strings.Join(e.Fields, ", ")
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func recordValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

func check(v any, malformed []string) error {
	fields := append([]string(nil), malformed...)
	if err := recordValidator().Struct(v); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("validate record: %w", err)
		}
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// NotificationRecord is a document of the notifications collection.
type NotificationRecord struct {
	Kind         Kind     `json:"type" validate:"required"`
	CustomerID   string   `json:"customerId" validate:"required"`
	Title        string   `json:"title"`
	Body         string   `json:"body"`
	BusinessID   string   `json:"businessId"`
	OrderID      string   `json:"orderId"`
	BusinessName string   `json:"businessName"`
	Amount       *float64 `json:"amount"`
	Items        []Item   `json:"items"`

	// DroppedItems counts item elements skipped because they were not objects.
	DroppedItems int `json:"-"`
}

// ParseNotificationRecord validates a notifications document. The kind is read
// from "type", falling back to "kind".
func ParseNotificationRecord(r Record) (NotificationRecord, error) {
	var malformed []string
	kind := r.String("type")
	if kind == "" {
		kind = r.String("kind")
	}
	amount, ok := r.Float("amount")
	if !ok {
		malformed = append(malformed, "amount")
	}
	items, dropped, ok := r.Items("items")
	if !ok {
		malformed = append(malformed, "items")
	}
	rec := NotificationRecord{
		Kind:         Kind(kind),
		CustomerID:   r.String("customerId"),
		Title:        r.String("title"),
		Body:         r.String("body"),
		BusinessID:   r.String("businessId"),
		OrderID:      r.String("orderId"),
		BusinessName: r.String("businessName"),
		Amount:       amount,
		Items:        items,
		DroppedItems: dropped,
	}
	return rec, check(rec, malformed)
}

// Event converts the record into a notification event.
func (n NotificationRecord) Event() Event {
	return Event{
		Kind:         n.Kind,
		Title:        n.Title,
		Body:         n.Body,
		CustomerID:   n.CustomerID,
		BusinessID:   n.BusinessID,
		OrderID:      n.OrderID,
		BusinessName: n.BusinessName,
		Amount:       n.Amount,
		Items:        n.Items,
	}
}

// OrderRecord is a document of the orders collection.
type OrderRecord struct {
	BusinessID string  `json:"businessId" validate:"required"`
	CustomerID string  `json:"customerId" validate:"required"`
	TotalPrice float64 `json:"totalPrice"`
	Items      []Item  `json:"items"`

	// DroppedItems counts item elements skipped because they were not objects.
	DroppedItems int `json:"-"`
}

// ParseOrderRecord validates an orders document. Missing totalPrice reads as 0
// and missing items as an empty list.
func ParseOrderRecord(r Record) (OrderRecord, error) {
	var malformed []string
	rec := OrderRecord{
		BusinessID: r.String("businessId"),
		CustomerID: r.String("customerId"),
		Items:      []Item{},
	}
	if total, ok := r.Float("totalPrice"); !ok {
		malformed = append(malformed, "totalPrice")
	} else if total != nil {
		rec.TotalPrice = *total
	}
	items, dropped, ok := r.Items("items")
	if !ok {
		malformed = append(malformed, "items")
	} else if items != nil {
		rec.Items = items
		rec.DroppedItems = dropped
	}
	return rec, check(rec, malformed)
}

// RelationStatusPending is the only relation status that triggers a request notification.
const RelationStatusPending = "pending"

// RelationRecord is a document of the relations collection.
type RelationRecord struct {
	Status     string `json:"status"`
	BusinessID string `json:"businessId" validate:"required"`
	CustomerID string `json:"customerId" validate:"required"`
}

// Pending reports whether the status is exactly "pending".
func (r RelationRecord) Pending() bool {
	return r.Status == RelationStatusPending
}

// ParseRelationRecord validates a relations document.
func ParseRelationRecord(r Record) (RelationRecord, error) {
	rec := RelationRecord{
		Status:     r.String("status"),
		BusinessID: r.String("businessId"),
		CustomerID: r.String("customerId"),
	}
	return rec, check(rec, nil)
}
