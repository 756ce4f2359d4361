package seed

// Default is the demo data set shown on a fresh dashboard.
func Default() *Data {
	return &Data{
		Products: []Product{
			{Name: "Wireless Headphones", SKU: "WH-001", Category: "Electronics", Price: "99.99", Cost: "45.00", Stock: 45, MinStock: 10},
			{Name: "USB-C Cable", SKU: "USB-012", Category: "Electronics", Price: "12.99", Cost: "5.50", Stock: 5, MinStock: 20},
			{Name: "Laptop Stand", SKU: "LS-003", Category: "Accessories", Price: "49.99", Cost: "22.00", Stock: 32, MinStock: 15},
			{Name: "Mechanical Keyboard", SKU: "MK-007", Category: "Electronics", Price: "149.99", Cost: "65.00", Stock: 18, MinStock: 10},
			{Name: "Mouse Pad XL", SKU: "MP-015", Category: "Accessories", Price: "24.99", Cost: "8.00", Stock: 67, MinStock: 25},
			{Name: "Webcam HD", SKU: "WC-009", Category: "Electronics", Price: "79.99", Stock: 3, MinStock: 10},
			{Name: "Monitor Arm", SKU: "MA-022", Category: "Accessories", Price: "89.99", Stock: 12, MinStock: 8, Status: "inactive"},
			{Name: "Desk Lamp LED", SKU: "DL-033", Category: "Home", Price: "34.99", Stock: 28, MinStock: 15},
		},
		Sales: []Sale{
			{Number: "SAL-001", Customer: "John Smith", Status: "completed", Date: "2024-01-15", Items: []Line{
				{SKU: "WH-001", Quantity: 2},
				{SKU: "LS-003", Quantity: 1},
			}},
			{Number: "SAL-002", Customer: "Sarah Johnson", Status: "pending", Date: "2024-01-15", Items: []Line{
				{SKU: "MK-007", Quantity: 1},
			}},
			{Number: "SAL-003", Customer: "Mike Davis", Status: "completed", Date: "2024-01-14", Items: []Line{
				{SKU: "USB-012", Quantity: 5},
				{SKU: "MP-015", Quantity: 2},
			}},
		},
		PurchaseOrders: []PurchaseOrder{
			{Number: "PO-001", Supplier: "TechSupply Co.", Status: "ordered", Date: "2024-01-10", Items: []Line{
				{SKU: "WH-001", Quantity: 50},
				{SKU: "MK-007", Quantity: 25},
			}},
			{Number: "PO-002", Supplier: "AccessoriesPlus", Status: "pending", Date: "2024-01-12", Items: []Line{
				{SKU: "USB-012", Quantity: 100},
				{SKU: "MP-015", Quantity: 50},
			}},
			{Number: "PO-003", Supplier: "OfficeWorld", Status: "received", Date: "2024-01-08", Items: []Line{
				{SKU: "LS-003", Quantity: 30},
			}},
		},
		Users: []User{
			{Name: "John Doe", Email: "john@stockflow.com", Role: "admin", Status: "active", Joined: "2024-01-01"},
			{Name: "Sarah Johnson", Email: "sarah@stockflow.com", Role: "user", Status: "active", Joined: "2024-01-05"},
			{Name: "Mike Davis", Email: "mike@stockflow.com", Role: "user", Status: "active", Joined: "2024-01-08"},
			{Name: "Emily Brown", Email: "emily@stockflow.com", Role: "user", Status: "pending", Joined: "2024-01-12"},
		},
	}
}
