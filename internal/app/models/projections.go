package models

import "github.com/shopspring/decimal"

// IDAndEmail is a read-only projection of an instructor
type IDAndEmail struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// CountPerSalary is one row of the instructors grouped by salary
type CountPerSalary struct {
	Salary decimal.Decimal `json:"salary"`
	Count  int64           `json:"count"`
}
