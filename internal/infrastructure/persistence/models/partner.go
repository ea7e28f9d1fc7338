package models

import (
	"github.com/puestoweb/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// CustomerModel is the persistence model for the Customer aggregate root
type CustomerModel struct {
	AggregateModel
	Name        string                 `gorm:"type:varchar(100);not null;index"`
	Surname     string                 `gorm:"type:varchar(100)"`
	Phone       string                 `gorm:"type:varchar(20);index"`
	Email       string                 `gorm:"type:varchar(255)"`
	Address     string                 `gorm:"type:varchar(500)"`
	CreditLimit decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	DebtTotal   decimal.Decimal        `gorm:"type:decimal(18,4);not null;index"`
	Status      partner.CustomerStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	Notes       string                 `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer aggregate
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Surname:           m.Surname,
		Phone:             m.Phone,
		Email:             m.Email,
		Address:           m.Address,
		CreditLimit:       m.CreditLimit,
		DebtTotal:         m.DebtTotal,
		Status:            m.Status,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Customer aggregate
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Surname = c.Surname
	m.Phone = c.Phone
	m.Email = c.Email
	m.Address = c.Address
	m.CreditLimit = c.CreditLimit
	m.DebtTotal = c.DebtTotal
	m.Status = c.Status
	m.Notes = c.Notes
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
