package ports

import "github.com/aalvaropc/roman/internal/domain"

// ReportStore persists batch reports.
type ReportStore interface {
	SaveReport(report domain.BatchReport) (id string, err error)
}
