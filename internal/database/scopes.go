package database

import (
	"gorm.io/gorm"

	"github.com/takamaro111/construction-management-app/internal/utils"
)

// TenantScope restricts a query to rows belonging to the given company.
// Every list and by-id lookup for tenant-scoped tables goes through this,
// so cross-tenant rows read as not-found even when requested directly.
func TenantScope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}
