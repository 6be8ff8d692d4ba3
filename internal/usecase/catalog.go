package usecase

import (
	"fmt"

	"golang.org/x/text/language"
)

// phrase holds the wording used with and without a leading name.
type phrase struct {
	plain string
	named string
}

func (p phrase) render(name string, args ...any) string {
	if name == "" || p.named == "" {
		return fmt.Sprintf(p.plain, args...)
	}
	return fmt.Sprintf(p.named, append([]any{name}, args...)...)
}

type kindText struct {
	title      phrase
	body       phrase
	amountBody phrase
}

// Catalog is the set of user visible strings for one language.
type Catalog struct {
	Tag           language.Tag
	Currency      string
	FallbackTitle string

	orderApproved      kindText
	orderCancelled     kindText
	balanceAdded       kindText
	balanceDeducted    kindText
	customerApproved   kindText
	customerRemoved    kindText
	newOrder           kindText
	newCustomerRequest kindText
}

var englishCatalog = Catalog{
	Tag:           language.English,
	Currency:      "₺",
	FallbackTitle: "Notification",
	orderApproved: kindText{
		title: phrase{plain: "Approved the order.", named: "%s - Approved the order."},
		body:  phrase{plain: "Your order has been approved."},
	},
	orderCancelled: kindText{
		title: phrase{plain: "Cancelled the order.", named: "%s - Cancelled the order."},
		body:  phrase{plain: "Your order has been cancelled."},
	},
	balanceAdded: kindText{
		title:      phrase{plain: "Balance Added"},
		body:       phrase{plain: "Balance was added to your account.", named: "%s added balance to your account."},
		amountBody: phrase{plain: "%s balance was added to your account.", named: "%s added %s balance to your account."},
	},
	balanceDeducted: kindText{
		title:      phrase{plain: "Balance Removed"},
		body:       phrase{plain: "Balance was deducted from your account.", named: "%s deducted balance from your account."},
		amountBody: phrase{plain: "%s balance was deducted from your account.", named: "%s deducted %s balance from your account."},
	},
	customerApproved: kindText{
		title: phrase{plain: "Customer Approval"},
		body:  phrase{plain: "You have been approved as a customer.", named: "%s approved you as a customer."},
	},
	customerRemoved: kindText{
		title: phrase{plain: "Removed From Customer List"},
		body:  phrase{plain: "You have been removed from the customer list.", named: "%s removed you from its customer list."},
	},
	newOrder: kindText{
		title: phrase{plain: "New Order"},
		body:  phrase{plain: "A new order was received."},
	},
	newCustomerRequest: kindText{
		title: phrase{plain: "New Customer Request"},
		body:  phrase{plain: "There is a new customer registration request.", named: "%s wants to register as a customer."},
	},
}

var turkishCatalog = Catalog{
	Tag:           language.Turkish,
	Currency:      "₺",
	FallbackTitle: "Bildirim",
	orderApproved: kindText{
		title: phrase{plain: "Siparişi Onayladı.", named: "%s - Siparişi Onayladı."},
		body:  phrase{plain: "Siparişiniz onaylandı."},
	},
	orderCancelled: kindText{
		title: phrase{plain: "Siparişi İptal Etti.", named: "%s - Siparişi İptal Etti."},
		body:  phrase{plain: "Siparişiniz iptal edildi."},
	},
	balanceAdded: kindText{
		title:      phrase{plain: "Bakiye Eklendi"},
		body:       phrase{plain: "Hesabınıza bakiye eklendi.", named: "%s hesabınıza bakiye ekledi."},
		amountBody: phrase{plain: "Hesabınıza %s bakiye eklendi.", named: "%s hesabınıza %s bakiye ekledi."},
	},
	balanceDeducted: kindText{
		title:      phrase{plain: "Bakiye Çıkarıldı"},
		body:       phrase{plain: "Hesabınızdan bakiye çıkarıldı.", named: "%s hesabınızdan bakiye çıkardı."},
		amountBody: phrase{plain: "Hesabınızdan %s bakiye çıkarıldı.", named: "%s hesabınızdan %s bakiye çıkardı."},
	},
	customerApproved: kindText{
		title: phrase{plain: "Müşteri Onayı"},
		body:  phrase{plain: "Müşteri olarak onaylandınız.", named: "%s sizi müşteri olarak onayladı."},
	},
	customerRemoved: kindText{
		title: phrase{plain: "Müşteri Listesinden Çıkarıldınız"},
		body:  phrase{plain: "Müşteri listesinden çıkarıldınız.", named: "%s sizi müşteri listesinden çıkardı."},
	},
	newOrder: kindText{
		title: phrase{plain: "Yeni Sipariş"},
		body:  phrase{plain: "Yeni bir sipariş alındı"},
	},
	newCustomerRequest: kindText{
		title: phrase{plain: "Yeni Müşteri İsteği"},
		body:  phrase{plain: "Yeni bir müşteri kayıt isteği var", named: "%s müşteri olarak kayıt olmak istiyor"},
	},
}

var (
	catalogs       = []Catalog{englishCatalog, turkishCatalog}
	catalogMatcher = language.NewMatcher([]language.Tag{englishCatalog.Tag, turkishCatalog.Tag})
)

// CatalogFor returns the catalog best matching locale, English when nothing matches.
func CatalogFor(locale string) Catalog {
	tag, err := language.Parse(locale)
	if err != nil {
		return englishCatalog
	}
	_, idx, conf := catalogMatcher.Match(tag)
	if conf == language.No {
		return englishCatalog
	}
	return catalogs[idx]
}
