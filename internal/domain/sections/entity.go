package sections

import (
	"time"
)

// Section is a user-defined grouping of reports. A report belongs to at
// most one section at a time; assignment is a move, never a multi-add.
type Section struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ReportIDs []string  `json:"report_ids"`
	CreatedAt time.Time `json:"created_at"`
}

// AddReport appends the report ID, deduplicated.
func (s *Section) AddReport(reportID string) {
	for _, id := range s.ReportIDs {
		if id == reportID {
			return
		}
	}
	s.ReportIDs = append(s.ReportIDs, reportID)
}

// RemoveReport drops the report ID if present; reports whether membership changed.
func (s *Section) RemoveReport(reportID string) bool {
	for i, id := range s.ReportIDs {
		if id == reportID {
			s.ReportIDs = append(s.ReportIDs[:i], s.ReportIDs[i+1:]...)
			return true
		}
	}
	return false
}
