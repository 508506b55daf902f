package order

// Service-order categories.
const (
	CategoryQuote    = "orcamento"
	CategorySale     = "venda"
	CategoryWarranty = "garantia"
	CategoryVisit    = "visita"
)

// Service-order statuses. Orders are always created in StatusOpen. Any status
// may follow any other via edit: the product never constrained the transition
// graph, only membership in this set is enforced.
const (
	StatusOpen       = "aberta"
	StatusWaiting    = "aguardando"
	StatusInProgress = "em_andamento"
	StatusDone       = "concluida"
	StatusCanceled   = "cancelada"
)

// Payment methods. Empty means not defined yet.
var paymentMethods = map[string]bool{
	"":               true,
	"dinheiro":       true,
	"pix":            true,
	"cartao_debito":  true,
	"cartao_credito": true,
	"cheque":         true,
	"boleto":         true,
}

var categories = map[string]bool{
	CategoryQuote:    true,
	CategorySale:     true,
	CategoryWarranty: true,
	CategoryVisit:    true,
}

var statuses = map[string]bool{
	StatusOpen:       true,
	StatusWaiting:    true,
	StatusInProgress: true,
	StatusDone:       true,
	StatusCanceled:   true,
}

// ValidCategory reports whether the value is an enumerated category.
func ValidCategory(v string) bool { return categories[v] }

// ValidStatus reports whether the value is an enumerated status.
func ValidStatus(v string) bool { return statuses[v] }

// ValidPaymentMethod reports whether the value is an enumerated payment method.
func ValidPaymentMethod(v string) bool { return paymentMethods[v] }
