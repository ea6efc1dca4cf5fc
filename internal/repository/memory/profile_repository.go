package memory

import (
	"loan-assistant-be/internal/entity"
)

// ProfileRepository is the static CRM lookup table keyed by phone number.
// Read-only; a failed lookup is recoverable (the caller re-prompts for a
// different number).
type ProfileRepository struct {
	profiles map[string]*entity.CustomerProfile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		profiles: seedProfiles(),
	}
}

func (r *ProfileRepository) FindByPhone(phone string) (*entity.CustomerProfile, bool) {
	p, ok := r.profiles[phone]
	return p, ok
}

func (r *ProfileRepository) All() []*entity.CustomerProfile {
	out := make([]*entity.CustomerProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	return out
}

func seedProfiles() map[string]*entity.CustomerProfile {
	return map[string]*entity.CustomerProfile{
		// High credit, no previous loans: instant approval candidate.
		"9876543210": {
			Name: "Rahul Sharma", Age: 32, Location: "Bengaluru",
			Phone: "9876543210", Email: "rahul.sharma@gmail.com",
			Salary: 75000, CreditScore: 820, PreApprovedLimit: 600000,
		},
		"9876543211": {
			Name: "Priya Nair", Age: 28, Location: "Mumbai",
			Phone: "9876543211", Email: "priya.nair@outlook.com",
			Salary: 60000, CreditScore: 780, PreApprovedLimit: 450000,
			PreviousLoans: []entity.PreviousLoan{
				{LoanName: "Education Loan", Amount: 300000, InterestRate: 10.5, TenureMonths: 60, MonthlyEMI: 6400, PendingInstallments: 24},
			},
		},
		"9876543212": {
			Name: "Amit Patel", Age: 38, Location: "Ahmedabad",
			Phone: "9876543212", Email: "amit.patel@yahoo.com",
			Salary: 125000, CreditScore: 850, PreApprovedLimit: 1000000,
			PreviousLoans: []entity.PreviousLoan{
				{LoanName: "Home Loan", Amount: 2500000, InterestRate: 8.5, TenureMonths: 240, MonthlyEMI: 24500, PendingInstallments: 180},
			},
		},
		// Moderate credit, salary slip verification band.
		"9876543213": {
			Name: "Sneha Reddy", Age: 26, Location: "Hyderabad",
			Phone: "9876543213", Email: "sneha.reddy@gmail.com",
			Salary: 45000, CreditScore: 720, PreApprovedLimit: 250000,
		},
		// Credit score below threshold: rejection candidate.
		"9876543214": {
			Name: "Vikram Singh", Age: 35, Location: "Delhi",
			Phone: "9876543214", Email: "vikram.singh@rediffmail.com",
			Salary: 55000, CreditScore: 650, PreApprovedLimit: 200000,
			PreviousLoans: []entity.PreviousLoan{
				{LoanName: "Personal Loan", Amount: 150000, InterestRate: 14.5, TenureMonths: 36, MonthlyEMI: 5200, PendingInstallments: 12},
			},
		},
		"9876543215": {
			Name: "Ananya Iyer", Age: 31, Location: "Chennai",
			Phone: "9876543215", Email: "ananya.iyer@gmail.com",
			Salary: 80000, CreditScore: 790, PreApprovedLimit: 500000,
			PreviousLoans: []entity.PreviousLoan{
				{LoanName: "Car Loan", Amount: 400000, InterestRate: 9.5, TenureMonths: 60, MonthlyEMI: 8400, PendingInstallments: 18},
				{LoanName: "Personal Loan", Amount: 100000, InterestRate: 12.5, TenureMonths: 24, MonthlyEMI: 4700, PendingInstallments: 8},
			},
		},
		"9876543216": {
			Name: "Rohan Mehta", Age: 24, Location: "Pune",
			Phone: "9876543216", Email: "rohan.mehta@gmail.com",
			Salary: 40000, CreditScore: 750, PreApprovedLimit: 200000,
		},
		"9876543217": {
			Name: "Deepak Kumar", Age: 42, Location: "Bengaluru",
			Phone: "9876543217", Email: "deepak.kumar@hotmail.com",
			Salary: 150000, CreditScore: 830, PreApprovedLimit: 1200000,
			PreviousLoans: []entity.PreviousLoan{
				{LoanName: "Home Loan", Amount: 3500000, InterestRate: 8.25, TenureMonths: 240, MonthlyEMI: 30500, PendingInstallments: 160},
			},
		},
		"9876543218": {
			Name: "Kavita Desai", Age: 29, Location: "Surat",
			Phone: "9876543218", Email: "kavita.desai@gmail.com",
			Salary: 50000, CreditScore: 740, PreApprovedLimit: 300000,
			PreviousLoans: []entity.PreviousLoan{
				{LoanName: "Two Wheeler Loan", Amount: 80000, InterestRate: 11.0, TenureMonths: 36, MonthlyEMI: 2600, PendingInstallments: 10},
			},
		},
		"9876543219": {
			Name: "Arjun Malhotra", Age: 36, Location: "Kolkata",
			Phone: "9876543219", Email: "arjun.malhotra@outlook.com",
			Salary: 95000, CreditScore: 810, PreApprovedLimit: 750000,
		},
	}
}
