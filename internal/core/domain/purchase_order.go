package domain

import "time"

const PurchaseOrderNumberPrefix = "PO"

type PurchaseOrderStatus string

const (
	PurchaseOrderStatusPending  PurchaseOrderStatus = "pending"
	PurchaseOrderStatusOrdered  PurchaseOrderStatus = "ordered"
	PurchaseOrderStatusReceived PurchaseOrderStatus = "received"
)

// Purchase orders move strictly forward, one step at a time.
var purchaseOrderTransitions = map[PurchaseOrderStatus]PurchaseOrderStatus{
	PurchaseOrderStatusPending: PurchaseOrderStatusOrdered,
	PurchaseOrderStatusOrdered: PurchaseOrderStatusReceived,
}

func (s PurchaseOrderStatus) IsValid() bool {
	return s == PurchaseOrderStatusPending || s == PurchaseOrderStatusOrdered || s == PurchaseOrderStatusReceived
}

func (s PurchaseOrderStatus) IsTerminal() bool {
	_, ok := purchaseOrderTransitions[s]
	return !ok
}

func (s PurchaseOrderStatus) CanTransitionTo(next PurchaseOrderStatus) bool {
	allowed, ok := purchaseOrderTransitions[s]
	return ok && allowed == next
}

// IsOpen reports orders not yet received.
func (s PurchaseOrderStatus) IsOpen() bool {
	return s == PurchaseOrderStatusPending || s == PurchaseOrderStatusOrdered
}

type PurchaseItem struct {
	ProductID   ID
	ProductName string
	Quantity    int
	UnitCost    Amount
}

func (i PurchaseItem) Subtotal() Amount {
	return i.UnitCost.Multiply(i.Quantity)
}

type PurchaseOrder struct {
	ID        ID
	Number    string
	Supplier  string
	Items     []PurchaseItem
	Total     Amount
	Status    PurchaseOrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func CalculatePurchaseTotal(items []PurchaseItem) Amount {
	total := Amount(0)
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func NewPurchaseOrder(supplier string, items []PurchaseItem) *PurchaseOrder {
	now := time.Now()
	return &PurchaseOrder{
		Supplier:  supplier,
		Items:     items,
		Total:     CalculatePurchaseTotal(items),
		Status:    PurchaseOrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (o *PurchaseOrder) Date() string {
	return o.CreatedAt.Format(time.DateOnly)
}

// StockDeltas returns the stock increments applied when the order is received.
func (o *PurchaseOrder) StockDeltas() []StockDelta {
	deltas := make([]StockDelta, len(o.Items))
	for i, item := range o.Items {
		deltas[i] = StockDelta{ProductID: item.ProductID, Delta: item.Quantity}
	}
	return deltas
}

func (o *PurchaseOrder) Clone() *PurchaseOrder {
	c := *o
	c.Items = append([]PurchaseItem(nil), o.Items...)
	return &c
}

type PurchaseOrderCreatedEvent struct {
	PurchaseOrderID ID        `json:"purchase_order_id"`
	Number          string    `json:"number"`
	Supplier        string    `json:"supplier"`
	Total           Amount    `json:"total"`
	CreatedAt       time.Time `json:"created_at"`
}

func (e *PurchaseOrderCreatedEvent) GetName() string {
	return "purchase_order.created"
}

func (e *PurchaseOrderCreatedEvent) GetEntityName() string {
	return "purchase_order"
}

type PurchaseOrderStatusChangedEvent struct {
	PurchaseOrderID ID                  `json:"purchase_order_id"`
	Number          string              `json:"number"`
	Status          PurchaseOrderStatus `json:"status"`
	OldStatus       PurchaseOrderStatus `json:"old_status"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func (e *PurchaseOrderStatusChangedEvent) GetName() string {
	return "purchase_order.status_changed"
}

func (e *PurchaseOrderStatusChangedEvent) GetEntityName() string {
	return "purchase_order"
}
