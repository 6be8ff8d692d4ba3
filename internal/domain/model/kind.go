package model

// Kind identifies which notification template and payload rules apply.
type Kind string

const (
	KindOrderApproved      Kind = "ORDER_APPROVED"
	KindOrderCancelled     Kind = "ORDER_CANCELLED"
	KindBalanceAdded       Kind = "BALANCE_ADDED"
	KindBalanceDeducted    Kind = "BALANCE_DEDUCTED"
	KindCustomerApproved   Kind = "CUSTOMER_APPROVED"
	KindCustomerRemoved    Kind = "CUSTOMER_REMOVED"
	KindNewOrder           Kind = "NEW_ORDER"
	KindNewCustomerRequest Kind = "NEW_CUSTOMER_REQUEST"
)

var allKinds = []Kind{
	KindOrderApproved,
	KindOrderCancelled,
	KindBalanceAdded,
	KindBalanceDeducted,
	KindCustomerApproved,
	KindCustomerRemoved,
	KindNewOrder,
	KindNewCustomerRequest,
}

// AllKinds returns the closed set of known kinds.
func AllKinds() []Kind {
	out := make([]Kind, len(allKinds))
	copy(out, allKinds)
	return out
}

// Valid reports whether k belongs to the known set.
func (k Kind) Valid() bool {
	for _, known := range allKinds {
		if k == known {
			return true
		}
	}
	return false
}

// DataOnly reports whether notifications of this kind are delivered without a
// visible section so that the client runs its own handler in every app state.
func (k Kind) DataOnly() bool {
	return k == KindNewOrder
}

func (k Kind) String() string {
	return string(k)
}
