package domain

import "time"

const SaleNumberPrefix = "SAL"

type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusCancelled SaleStatus = "cancelled"
)

var saleTransitions = map[SaleStatus][]SaleStatus{
	SaleStatusPending: {SaleStatusCompleted, SaleStatusCancelled},
}

func (s SaleStatus) IsValid() bool {
	return s == SaleStatusPending || s == SaleStatusCompleted || s == SaleStatusCancelled
}

func (s SaleStatus) IsTerminal() bool {
	return len(saleTransitions[s]) == 0
}

func (s SaleStatus) CanTransitionTo(next SaleStatus) bool {
	for _, allowed := range saleTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type SaleItem struct {
	ProductID   ID
	ProductName string
	Quantity    int
	UnitPrice   Amount
}

func (i SaleItem) Subtotal() Amount {
	return i.UnitPrice.Multiply(i.Quantity)
}

type Sale struct {
	ID        ID
	Number    string
	Customer  string
	Items     []SaleItem
	Total     Amount
	Status    SaleStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func CalculateSaleTotal(items []SaleItem) Amount {
	total := Amount(0)
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func NewSale(customer string, status SaleStatus, items []SaleItem) *Sale {
	now := time.Now()
	return &Sale{
		Customer:  customer,
		Items:     items,
		Total:     CalculateSaleTotal(items),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Date is the sale day as rendered in listings and exports.
func (s *Sale) Date() string {
	return s.CreatedAt.Format(time.DateOnly)
}

// StockDeltas returns one delta per item, multiplied by sign (-1 to deduct, +1 to restore).
func (s *Sale) StockDeltas(sign int) []StockDelta {
	deltas := make([]StockDelta, len(s.Items))
	for i, item := range s.Items {
		deltas[i] = StockDelta{ProductID: item.ProductID, Delta: sign * item.Quantity}
	}
	return deltas
}

func (s *Sale) Clone() *Sale {
	c := *s
	c.Items = append([]SaleItem(nil), s.Items...)
	return &c
}

type SaleCreatedEvent struct {
	SaleID    ID         `json:"sale_id"`
	Number    string     `json:"number"`
	Customer  string     `json:"customer"`
	Total     Amount     `json:"total"`
	Status    SaleStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

func (e *SaleCreatedEvent) GetName() string {
	return "sale.created"
}

func (e *SaleCreatedEvent) GetEntityName() string {
	return "sale"
}

type SaleStatusChangedEvent struct {
	SaleID    ID         `json:"sale_id"`
	Number    string     `json:"number"`
	Status    SaleStatus `json:"status"`
	OldStatus SaleStatus `json:"old_status"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (e *SaleStatusChangedEvent) GetName() string {
	return "sale.status_changed"
}

func (e *SaleStatusChangedEvent) GetEntityName() string {
	return "sale"
}
