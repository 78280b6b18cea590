package postgres

import (
	"github.com/storefin/backend/internal/domain"
)

// toDomainOrder: maps db model to domain entity
func toDomainOrder(m OrderModel) *domain.Order {
	return &domain.Order{
		ID:                m.ID,
		Number:            m.Number,
		UserID:            m.UserID,
		ProductID:         m.ProductID,
		VoucherID:         m.VoucherID,
		Status:            domain.OrderStatus(m.Status),
		ExternalReference: m.ExternalReference,
		Gateway:           domain.Gateway(m.Gateway),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// toOrderModel: maps domain entity to db model
func toOrderModel(o *domain.Order) *OrderModel {
	return &OrderModel{
		ID:                o.ID,
		Number:            o.Number,
		UserID:            o.UserID,
		ProductID:         o.ProductID,
		VoucherID:         o.VoucherID,
		Status:            int16(o.Status),
		ExternalReference: o.ExternalReference,
		Gateway:           int16(o.Gateway),
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func toDomainProduct(m ProductModel) *domain.Product {
	return &domain.Product{
		ID:          m.ID,
		Title:       m.Title,
		Slug:        m.Slug,
		Description: m.Description,
		Price:       m.Price,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toDomainVoucher(m VoucherModel) *domain.Voucher {
	return &domain.Voucher{
		ID:        m.ID,
		Number:    m.Number,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toDomainTransaction(m TransactionModel) *domain.Transaction {
	return &domain.Transaction{
		ID:               m.ID,
		UserID:           m.UserID,
		CategoryID:       m.CategoryID,
		Title:            m.Title,
		Amount:           m.Amount,
		Type:             domain.TransactionType(m.Type),
		PaidOrReceivedAt: m.PaidOrReceivedAt,
		CreatedAt:        m.CreatedAt,
	}
}

func toTransactionModel(t *domain.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:               t.ID,
		UserID:           t.UserID,
		CategoryID:       t.CategoryID,
		Title:            t.Title,
		Amount:           t.Amount,
		Type:             int16(t.Type),
		PaidOrReceivedAt: t.PaidOrReceivedAt,
		CreatedAt:        t.CreatedAt,
	}
}
