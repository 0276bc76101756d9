package helper

import (
	"math"
	"time"

	"gorm.io/gorm"
)

type AttendanceReportRow struct {
	ExhibitionId     uint    `json:"exhibitionId"`
	Title            string  `json:"title"`
	EndDate          string  `json:"endDate"`
	TotalTickets     int     `json:"totalTickets"`
	ValidatedTickets int     `json:"validatedTickets"`
	NoShowTickets    int     `json:"noShowTickets"`
	AttendanceRate   float64 `json:"attendanceRate"`
}

type AttendanceReportSummary struct {
	TotalTickets     int     `json:"totalTickets"`
	ValidatedTickets int     `json:"validatedTickets"`
	NoShowTickets    int     `json:"noShowTickets"`
	// Weighted by tickets per exhibition, not a plain mean of the rates.
	AverageAttendanceRate float64 `json:"averageAttendanceRate"`
}

func roundFloat(val float64, precision int) float64 {
	p := math.Pow(10, float64(precision))
	return math.Round(val*p) / p
}

// GetAttendanceReport aggregates, per ended exhibition, how many reserved
// tickets were actually validated at the door.
func GetAttendanceReport(db *gorm.DB, from, to time.Time) ([]AttendanceReportRow, *AttendanceReportSummary, error) {
	var rows []AttendanceReportRow

	err := db.Raw(`
SELECT
    e.id AS exhibition_id,
    e.title,
    e.end_date,
    COALESCE(SUM(r.ticket_count), 0) AS total_tickets,
    COALESCE(SUM(CASE WHEN r.validated THEN r.ticket_count ELSE 0 END), 0) AS validated_tickets
FROM exhibitions e
JOIN registrations r ON r.exhibition_id = e.id AND r.deleted_at IS NULL
WHERE e.deleted_at IS NULL
  AND e.end_date >= ?
  AND e.end_date <= ?
GROUP BY e.id, e.title, e.end_date
ORDER BY e.end_date DESC`,
		from.Format("2006-01-02"), to.Format("2006-01-02")).
		Scan(&rows).Error
	if err != nil {
		return nil, nil, err
	}

	summary := &AttendanceReportSummary{}
	for i := range rows {
		rows[i].NoShowTickets = rows[i].TotalTickets - rows[i].ValidatedTickets
		if rows[i].TotalTickets > 0 {
			rows[i].AttendanceRate = roundFloat(float64(rows[i].ValidatedTickets)/float64(rows[i].TotalTickets)*100, 2)
		}
		summary.TotalTickets += rows[i].TotalTickets
		summary.ValidatedTickets += rows[i].ValidatedTickets
		summary.NoShowTickets += rows[i].NoShowTickets
	}
	if summary.TotalTickets > 0 {
		summary.AverageAttendanceRate = roundFloat(float64(summary.ValidatedTickets)/float64(summary.TotalTickets)*100, 2)
	}

	return rows, summary, nil
}
