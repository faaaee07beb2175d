package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/takamaro111/construction-management-app/internal/models"
	"github.com/takamaro111/construction-management-app/internal/repository"
)

type reportTestEnv struct {
	db      *gorm.DB
	service *ReportService
	company models.Company
	other   models.Company
}

func setupReportTestEnv(t *testing.T) reportTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Project{},
		&models.Report{},
	)
	require.NoError(t, err)

	company := models.Company{Name: "Tenant A", Email: "a@example.com"}
	require.NoError(t, db.Create(&company).Error)
	other := models.Company{Name: "Tenant B", Email: "b@example.com"}
	require.NoError(t, db.Create(&other).Error)

	service := NewReportService(repository.NewReportRepository(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return reportTestEnv{db: db, service: service, company: company, other: other}
}

func (env reportTestEnv) createReport(t *testing.T, reportType models.ReportType, title string, date time.Time) *models.Report {
	t.Helper()
	report, err := env.service.CreateReport(CreateReportInput{
		ProjectID:  "project-1",
		CompanyID:  env.company.ID,
		ReportedBy: "reporter-1",
		Type:       reportType,
		Title:      title,
		Content:    "work log",
		ReportDate: date,
	})
	require.NoError(t, err)
	return report
}

func TestReportService_CreateReport(t *testing.T) {
	env := setupReportTestEnv(t)

	progress := 45
	weather := "sunny"
	report, err := env.service.CreateReport(CreateReportInput{
		ProjectID:    "project-1",
		CompanyID:    env.company.ID,
		ReportedBy:   "reporter-1",
		Type:         models.ReportTypeDaily,
		Title:        "Day 12",
		Content:      "poured the east footing",
		ReportDate:   time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC),
		Weather:      &weather,
		WorkProgress: &progress,
	})
	require.NoError(t, err)
	require.NotEmpty(t, report.ID)
	require.Equal(t, 45, *report.WorkProgress)
}

func TestReportService_CreateReport_Validation(t *testing.T) {
	env := setupReportTestEnv(t)

	_, err := env.service.CreateReport(CreateReportInput{
		ProjectID:  "project-1",
		CompanyID:  env.company.ID,
		ReportedBy: "reporter-1",
		Type:       "weekly",
		Title:      "Bad type",
		ReportDate: time.Now(),
	})
	require.ErrorIs(t, err, ErrInvalidReportType)

	progress := 150
	_, err = env.service.CreateReport(CreateReportInput{
		ProjectID:    "project-1",
		CompanyID:    env.company.ID,
		ReportedBy:   "reporter-1",
		Type:         models.ReportTypeDaily,
		Title:        "Bad progress",
		ReportDate:   time.Now(),
		WorkProgress: &progress,
	})
	require.ErrorIs(t, err, ErrInvalidProgress)
}

func TestReportService_ListReports_Filters(t *testing.T) {
	env := setupReportTestEnv(t)

	env.createReport(t, models.ReportTypeDaily, "Day 1", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	env.createReport(t, models.ReportTypeDaily, "Day 2", time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC))
	env.createReport(t, models.ReportTypeMonthly, "August", time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))

	daily := models.ReportTypeDaily
	reports, err := env.service.ListReports(repository.ReportFilter{
		CompanyID: env.company.ID,
		Type:      &daily,
	})
	require.NoError(t, err)
	require.Len(t, reports, 2)

	from := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	reports, err = env.service.ListReports(repository.ReportFilter{
		CompanyID: env.company.ID,
		DateFrom:  &from,
	})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	require.Equal(t, "August", reports[0].Title)
}

func TestReportService_UpdateReport_RevalidatesProgress(t *testing.T) {
	env := setupReportTestEnv(t)

	report := env.createReport(t, models.ReportTypeDaily, "Day 1", time.Now())

	bad := -5
	_, err := env.service.UpdateReport(report.ID, env.company.ID, UpdateReportInput{
		WorkProgress: &bad,
	})
	require.ErrorIs(t, err, ErrInvalidProgress)

	good := 80
	updated, err := env.service.UpdateReport(report.ID, env.company.ID, UpdateReportInput{
		WorkProgress: &good,
	})
	require.NoError(t, err)
	require.Equal(t, 80, *updated.WorkProgress)
}

func TestReportService_TenantIsolation(t *testing.T) {
	env := setupReportTestEnv(t)

	report := env.createReport(t, models.ReportTypeDaily, "Private", time.Now())

	_, err := env.service.GetReport(report.ID, env.other.ID)
	require.ErrorIs(t, err, ErrReportNotFound)

	err = env.service.DeleteReport(report.ID, env.other.ID)
	require.ErrorIs(t, err, ErrReportNotFound)

	reports, err := env.service.ListReports(repository.ReportFilter{CompanyID: env.other.ID})
	require.NoError(t, err)
	require.Empty(t, reports)
}
