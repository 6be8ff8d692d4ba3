package model

// Message is the kind-specific view of an Event. Each variant carries only the
// fields its template reads.
type Message interface {
	Kind() Kind
}

// OrderDecision covers ORDER_APPROVED and ORDER_CANCELLED.
type OrderDecision struct {
	Decision     Kind
	BusinessName string
	Items        []Item
}

// Kind reports ORDER_APPROVED or ORDER_CANCELLED.
func (m OrderDecision) Kind() Kind { return m.Decision }

// BalanceChange covers BALANCE_ADDED and BALANCE_DEDUCTED.
type BalanceChange struct {
	Direction    Kind
	BusinessName string
	Amount       *float64
}

// Kind reports BALANCE_ADDED or BALANCE_DEDUCTED.
func (m BalanceChange) Kind() Kind { return m.Direction }

// CustomerStatus covers CUSTOMER_APPROVED and CUSTOMER_REMOVED.
type CustomerStatus struct {
	Status       Kind
	BusinessName string
}

// Kind reports CUSTOMER_APPROVED or CUSTOMER_REMOVED.
func (m CustomerStatus) Kind() Kind { return m.Status }

// NewOrder tells a business which customer ordered what.
type NewOrder struct {
	CustomerName    string
	CustomerCompany string
	Items           []Item
}

// Kind is always NEW_ORDER.
func (NewOrder) Kind() Kind { return KindNewOrder }

// NewCustomerRequest tells a business a customer asked to join.
type NewCustomerRequest struct {
	CustomerName string
}

// Kind is always NEW_CUSTOMER_REQUEST.
func (NewCustomerRequest) Kind() Kind { return KindNewCustomerRequest }

// Generic is used for kinds outside the known set; the source title and body
// are shown as-is.
type Generic struct {
	Raw   Kind
	Title string
	Body  string
}

// Kind returns the source kind unchanged.
func (m Generic) Kind() Kind { return m.Raw }

// Variant narrows the event into the message variant for its kind.
func (e Event) Variant() Message {
	switch e.Kind {
	case KindOrderApproved, KindOrderCancelled:
		return OrderDecision{Decision: e.Kind, BusinessName: e.BusinessName, Items: e.Items}
	case KindBalanceAdded, KindBalanceDeducted:
		return BalanceChange{Direction: e.Kind, BusinessName: e.BusinessName, Amount: e.Amount}
	case KindCustomerApproved, KindCustomerRemoved:
		return CustomerStatus{Status: e.Kind, BusinessName: e.BusinessName}
	case KindNewOrder:
		return NewOrder{CustomerName: e.CustomerName, CustomerCompany: e.CustomerCompany, Items: e.Items}
	case KindNewCustomerRequest:
		return NewCustomerRequest{CustomerName: e.CustomerName}
	default:
		return Generic{Raw: e.Kind, Title: e.Title, Body: e.Body}
	}
}
