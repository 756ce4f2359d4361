package domain

const DefaultLowStockThreshold = 10

var SupportedCurrencies = []string{"USD", "EUR", "GBP", "JPY", "CAD"}

type Settings struct {
	LowStockThreshold  int
	Currency           string
	EmailNotifications bool
	LowStockAlerts     bool
}

func DefaultSettings() Settings {
	return Settings{
		LowStockThreshold:  DefaultLowStockThreshold,
		Currency:           "USD",
		EmailNotifications: true,
		LowStockAlerts:     true,
	}
}

func IsSupportedCurrency(currency string) bool {
	for _, c := range SupportedCurrencies {
		if c == currency {
			return true
		}
	}
	return false
}
