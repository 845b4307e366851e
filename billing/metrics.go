package billing

import (
	"fmt"
	"sort"

	"github.com/fgiusti90/psico-app/ledger"
	"github.com/fgiusti90/psico-app/model"
	"github.com/shopspring/decimal"
)

// PeriodType selects which sessions a metrics query covers.
type PeriodType string

const (
	PeriodMonth PeriodType = "month"
	PeriodYear  PeriodType = "year"
	PeriodAll   PeriodType = "all"
)

// MetricsQuery filters the sessions a report is computed over. Month is only
// read for PeriodMonth. An empty PatientID means every patient.
type MetricsQuery struct {
	Period    PeriodType
	Year      int
	Month     int
	PatientID string
}

// Validate rejects periods that cannot match anything meaningful.
func (q MetricsQuery) Validate() error {
	switch q.Period {
	case PeriodAll:
	case PeriodYear:
		if q.Year < 1 {
			return &ledger.ValidationError{Field: "year", Msg: "must be a positive year"}
		}
	case PeriodMonth:
		if q.Year < 1 {
			return &ledger.ValidationError{Field: "year", Msg: "must be a positive year"}
		}
		if q.Month < 1 || q.Month > 12 {
			return &ledger.ValidationError{Field: "month", Msg: "must be between 1 and 12"}
		}
	default:
		return &ledger.ValidationError{Field: "period", Msg: fmt.Sprintf("unknown period %q", q.Period)}
	}
	return nil
}

// MonthlyMetrics aggregates the sessions of one YYYY-MM month.
type MonthlyMetrics struct {
	Month          string  `json:"month"`
	TotalSessions  int     `json:"total_sessions"`
	PaidSessions   int     `json:"paid_sessions"`
	TotalBilled    float64 `json:"total_billed"`
	TotalCollected float64 `json:"total_collected"`
	AverageFee     float64 `json:"average_fee"`
}

// PatientMetrics aggregates the sessions of one patient.
type PatientMetrics struct {
	PatientID     string  `json:"patient_id"`
	PatientName   string  `json:"patient_name"`
	TotalSessions int     `json:"total_sessions"`
	PaidSessions  int     `json:"paid_sessions"`
	TotalBilled   float64 `json:"total_billed"`
}

// Report is the practice overview for a period.
type Report struct {
	TotalSessions  int              `json:"total_sessions"`
	PaidSessions   int              `json:"paid_sessions"`
	TotalWorked    float64          `json:"total_worked"`
	TotalCollected float64          `json:"total_collected"`
	TotalPending   float64          `json:"total_pending"`
	AverageFee     float64          `json:"average_fee"`
	CollectionRate float64          `json:"collection_rate"`
	ByMonth        []MonthlyMetrics `json:"by_month"`
	ByPatient      []PatientMetrics `json:"by_patient"`
}

type tally struct {
	sessions, paid    int
	worked, collected decimal.Decimal
}

func (t *tally) add(s model.Session) {
	fee := decimal.NewFromFloat(s.FeeCharged)
	t.sessions++
	t.worked = t.worked.Add(fee)
	if s.IsPaid {
		t.paid++
		t.collected = t.collected.Add(fee)
	}
}

func (t tally) average() float64 {
	if t.sessions == 0 {
		return 0
	}
	return t.worked.Div(decimal.NewFromInt(int64(t.sessions))).Round(2).InexactFloat64()
}

func (q MetricsQuery) matches(s model.Session) bool {
	d, err := ledger.ParseDate(s.SessionDate)
	if err != nil {
		return false
	}
	switch q.Period {
	case PeriodMonth:
		return d.Year() == q.Year && int(d.Month()) == q.Month
	case PeriodYear:
		return d.Year() == q.Year
	}
	return true
}

// BuildReport computes the metrics of the sessions matching q.
func BuildReport(snap ledger.Snapshot, q MetricsQuery) (Report, error) {
	if err := q.Validate(); err != nil {
		return Report{}, err
	}

	patientOf := make(map[string]string, len(snap.Treatments))
	for _, t := range snap.Treatments {
		patientOf[t.ID] = t.PatientID
	}

	var total tally
	months := map[string]*tally{}
	patients := map[string]*tally{}
	for _, s := range snap.Sessions {
		patientID := patientOf[s.TreatmentID]
		if q.PatientID != "" && patientID != q.PatientID {
			continue
		}
		if !q.matches(s) {
			continue
		}
		total.add(s)

		key := s.SessionDate[:7]
		if months[key] == nil {
			months[key] = &tally{}
		}
		months[key].add(s)

		if patientID != "" {
			if patients[patientID] == nil {
				patients[patientID] = &tally{}
			}
			patients[patientID].add(s)
		}
	}

	report := Report{
		TotalSessions:  total.sessions,
		PaidSessions:   total.paid,
		TotalWorked:    total.worked.InexactFloat64(),
		TotalCollected: total.collected.InexactFloat64(),
		TotalPending:   total.worked.Sub(total.collected).InexactFloat64(),
		AverageFee:     total.average(),
		ByMonth:        make([]MonthlyMetrics, 0, len(months)),
		ByPatient:      make([]PatientMetrics, 0, len(patients)),
	}
	if total.worked.IsPositive() {
		report.CollectionRate = total.collected.Div(total.worked).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
	}

	for month, t := range months {
		report.ByMonth = append(report.ByMonth, MonthlyMetrics{
			Month:          month,
			TotalSessions:  t.sessions,
			PaidSessions:   t.paid,
			TotalBilled:    t.worked.InexactFloat64(),
			TotalCollected: t.collected.InexactFloat64(),
			AverageFee:     t.average(),
		})
	}
	sort.Slice(report.ByMonth, func(i, j int) bool { return report.ByMonth[i].Month < report.ByMonth[j].Month })

	for id, t := range patients {
		p, _ := snap.Patient(id)
		report.ByPatient = append(report.ByPatient, PatientMetrics{
			PatientID:     id,
			PatientName:   p.Name,
			TotalSessions: t.sessions,
			PaidSessions:  t.paid,
			TotalBilled:   t.worked.InexactFloat64(),
		})
	}
	sort.Slice(report.ByPatient, func(i, j int) bool {
		a, b := report.ByPatient[i], report.ByPatient[j]
		if a.TotalBilled != b.TotalBilled {
			return a.TotalBilled > b.TotalBilled
		}
		return a.PatientID < b.PatientID
	})
	return report, nil
}
