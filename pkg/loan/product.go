package loan

// ProductType identifies a loan product in the static rate table.
type ProductType string

const (
	ProductPersonal ProductType = "personal"
	ProductHome     ProductType = "home"
	ProductCar      ProductType = "car"
)

// ProductConfig carries the fixed commercial terms of one product.
type ProductConfig struct {
	Label        string
	InterestRate float64 // % per annum
	MaxTenure    int     // months
}

// Products is the static configuration keyed by product type.
var Products = map[ProductType]ProductConfig{
	ProductPersonal: {Label: "Personal Loan", InterestRate: 12, MaxTenure: 60},
	ProductHome:     {Label: "Home Loan", InterestRate: 8.5, MaxTenure: 240},
	ProductCar:      {Label: "Car Loan", InterestRate: 9.5, MaxTenure: 84},
}

// ProductFor maps a discovered loan purpose onto a product. Everything
// that is not explicitly a home or car purchase is sold as a personal loan.
func ProductFor(purpose string) ProductConfig {
	switch purpose {
	case "home":
		return Products[ProductHome]
	case "car":
		return Products[ProductCar]
	default:
		return Products[ProductPersonal]
	}
}
