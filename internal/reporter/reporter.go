package reporter

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lockward/lockward/internal/database"
	"github.com/lockward/lockward/internal/models"
	"github.com/lockward/lockward/pkg/utils"

	"github.com/pkg/errors"
)

// Store is the part of the repository the reporter reads.
type Store interface {
	GetSessionsSince(since time.Time) ([]*models.LockSession, error)
}

var _ Store = (*database.Repository)(nil)

// Reporter handles report generation
type Reporter struct {
	store Store
	now   func() time.Time
}

// New creates a new reporter
func New(store Store) *Reporter {
	return &Reporter{
		store: store,
		now:   time.Now,
	}
}

// GenerateReport generates a report for the specified period
func (r *Reporter) GenerateReport(periodType string) (*models.Report, error) {
	now := r.now()
	period, err := getPeriod(periodType, now)
	if err != nil {
		return nil, err
	}

	sessions, err := r.store.GetSessionsSince(period.Start)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get lock sessions")
	}

	report := &models.Report{
		Period:      *period,
		GeneratedAt: now,
	}

	triggers := map[string]int{}
	for _, s := range sessions {
		if !s.StartedAt.Before(period.End) {
			continue
		}
		report.Sessions++
		report.FailedAttempts += s.FailedAttempts
		triggers[s.Trigger]++

		locked := lockedWithin(s, period.Start, period.End, now)
		if s.LockedAt != nil {
			report.Locked++
		}
		report.LockedSeconds += int64(locked / time.Second)
		if secs := int64(locked / time.Second); secs > report.Longest {
			report.Longest = secs
		}
	}
	report.LockedHours = float64(report.LockedSeconds) / 3600.0

	for trigger, n := range triggers {
		report.Triggers = append(report.Triggers, models.TriggerSummary{Trigger: trigger, Sessions: n})
	}
	sort.Slice(report.Triggers, func(i, j int) bool {
		if report.Triggers[i].Sessions != report.Triggers[j].Sessions {
			return report.Triggers[i].Sessions > report.Triggers[j].Sessions
		}
		return report.Triggers[i].Trigger < report.Triggers[j].Trigger
	})

	return report, nil
}

// lockedWithin clips the locked part of s to [start, end).
func lockedWithin(s *models.LockSession, start, end, now time.Time) time.Duration {
	if s.LockedAt == nil {
		return 0
	}
	from := *s.LockedAt
	to := now
	if s.EndedAt != nil {
		to = *s.EndedAt
	}
	if from.Before(start) {
		from = start
	}
	if to.After(end) {
		to = end
	}
	if !to.After(from) {
		return 0
	}
	return to.Sub(from)
}

// getPeriod calculates the time range for the report
func getPeriod(periodType string, now time.Time) (*models.ReportPeriod, error) {
	var start, end time.Time

	switch periodType {
	case "day", "today":
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 0, 1)

	case "week":
		// Weeks start on Monday
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(weekday - 1))
		end = start.AddDate(0, 0, 7)

	case "month":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, 0)

	default:
		return nil, errors.Errorf("invalid period type: %s (valid: day, week, month)", periodType)
	}

	return &models.ReportPeriod{
		Start: start,
		End:   end,
		Type:  periodType,
	}, nil
}

// FormatReportText formats the report as human-readable text
func FormatReportText(report *models.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Lock History - %s\n", report.Period.Type)
	fmt.Fprintf(&b, "Period: %s to %s\n",
		report.Period.Start.Format("2006-01-02 15:04"),
		report.Period.End.Format("2006-01-02 15:04"))

	if report.Sessions == 0 {
		b.WriteString("\nNo lock sessions recorded for this period.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Sessions: %d (%d locked)\n", report.Sessions, report.Locked)
	fmt.Fprintf(&b, "Locked Time: %s (%.2fh)\n",
		utils.FormatClock(time.Duration(report.LockedSeconds)*time.Second), report.LockedHours)
	fmt.Fprintf(&b, "Longest Lock: %s\n", utils.FormatRoundedUnit(time.Duration(report.Longest)*time.Second))
	fmt.Fprintf(&b, "Failed Attempts: %d\n\n", report.FailedAttempts)

	fmt.Fprintf(&b, "%-20s %10s\n", "Trigger", "Sessions")
	b.WriteString(strings.Repeat("-", 31) + "\n")
	for _, t := range report.Triggers {
		fmt.Fprintf(&b, "%-20s %10d\n", t.Trigger, t.Sessions)
	}

	return b.String()
}

// FormatReportJSON formats the report as JSON
func FormatReportJSON(report *models.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal JSON")
	}
	return string(data), nil
}
