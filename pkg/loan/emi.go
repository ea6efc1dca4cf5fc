// Package loan holds the numeric core: EMI amortization math, product
// rate configuration and the deterministic eligibility evaluator.
package loan

import "math"

// CalculateEMI returns the equated monthly installment for a principal at
// an annual percentage rate over a tenure in months, using the standard
// amortization formula EMI = P*r*(1+r)^n / ((1+r)^n - 1) with
// r = annualRate/12/100.
//
// The result is exact to sub-rupee precision; rounding is a presentation
// concern and must happen only at the output boundary.
func CalculateEMI(principal, annualRate float64, months int) float64 {
	r := annualRate / 12 / 100
	pow := math.Pow(1+r, float64(months))
	return principal * r * pow / (pow - 1)
}

// CalculateTotalInterest returns EMI*n - principal.
func CalculateTotalInterest(emi float64, months int, principal float64) float64 {
	return emi*float64(months) - principal
}
