package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/juud-8/buildledger02/models"
)

// DashboardStats is the landing-page summary for one account.
type DashboardStats struct {
	TotalInvoices      int64           `json:"total_invoices"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`      // Σ amount_paid over all invoices
	OutstandingAmount  decimal.Decimal `json:"outstanding_amount"` // Σ balance over open invoices
	OverdueInvoices    int64           `json:"overdue_invoices"`
	ClientCount        int64           `json:"client_count"`
	ProjectsInProgress int64           `json:"projects_in_progress"`
	QuotesAwaiting     int64           `json:"quotes_awaiting"` // sent, undecided
}

// Dashboard aggregates the account's numbers. Revenue and outstanding are
// summed in SQL from the same denormalized columns the ledger maintains.
func Dashboard(ctx context.Context, db *gorm.DB, userID uuid.UUID) (DashboardStats, error) {
	var stats DashboardStats
	now := time.Now()

	if err := db.WithContext(ctx).Model(&models.Invoice{}).
		Where("user_id = ?", userID).
		Count(&stats.TotalInvoices).Error; err != nil {
		return stats, err
	}

	type sums struct {
		Revenue     decimal.Decimal
		Outstanding decimal.Decimal
	}
	var s sums
	err := db.WithContext(ctx).Model(&models.Invoice{}).
		Select(`
			COALESCE(SUM(amount_paid), 0) AS revenue,
			COALESCE(SUM(CASE WHEN status = ? THEN total_amount - amount_paid ELSE 0 END), 0) AS outstanding`,
			models.InvoiceSent).
		Where("user_id = ?", userID).
		Scan(&s).Error
	if err != nil {
		return stats, err
	}
	stats.TotalRevenue = s.Revenue
	stats.OutstandingAmount = s.Outstanding

	if err := db.WithContext(ctx).Model(&models.Invoice{}).
		Where("user_id = ? AND status = ? AND due_date IS NOT NULL AND due_date < ?",
			userID, models.InvoiceSent, now).
		Count(&stats.OverdueInvoices).Error; err != nil {
		return stats, err
	}

	if err := db.WithContext(ctx).Model(&models.Client{}).
		Where("user_id = ?", userID).
		Count(&stats.ClientCount).Error; err != nil {
		return stats, err
	}

	if err := db.WithContext(ctx).Model(&models.Project{}).
		Where("user_id = ? AND status = ?", userID, models.ProjectInProgress).
		Count(&stats.ProjectsInProgress).Error; err != nil {
		return stats, err
	}

	if err := db.WithContext(ctx).Model(&models.Quote{}).
		Where("user_id = ? AND status = ?", userID, models.QuoteSent).
		Count(&stats.QuotesAwaiting).Error; err != nil {
		return stats, err
	}

	return stats, nil
}

// QuoteAnalytics is the quotes dashboard widget: conversion funnel counts
// plus the approved value over a trailing window.
type QuoteAnalytics struct {
	TotalQuotes   int64           `json:"total_quotes"`
	Sent          int64           `json:"sent"`
	Approved      int64           `json:"approved"`
	Rejected      int64           `json:"rejected"`
	ApprovedValue decimal.Decimal `json:"approved_value"`
	WindowDays    int             `json:"window_days"`
}

func QuotesAnalytics(ctx context.Context, db *gorm.DB, userID uuid.UUID, windowDays int) (QuoteAnalytics, error) {
	if windowDays <= 0 {
		windowDays = 90
	}
	out := QuoteAnalytics{WindowDays: windowDays}
	since := time.Now().AddDate(0, 0, -windowDays)

	base := func() *gorm.DB {
		return db.WithContext(ctx).Model(&models.Quote{}).
			Where("user_id = ? AND created_at >= ?", userID, since)
	}

	if err := base().Count(&out.TotalQuotes).Error; err != nil {
		return out, err
	}
	if err := base().Where("status = ?", models.QuoteSent).Count(&out.Sent).Error; err != nil {
		return out, err
	}
	if err := base().Where("status = ?", models.QuoteApproved).Count(&out.Approved).Error; err != nil {
		return out, err
	}
	if err := base().Where("status = ?", models.QuoteRejected).Count(&out.Rejected).Error; err != nil {
		return out, err
	}

	var approvedValue decimal.Decimal
	err := base().Where("status = ?", models.QuoteApproved).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&approvedValue).Error
	if err != nil {
		return out, err
	}
	out.ApprovedValue = approvedValue
	return out, nil
}
