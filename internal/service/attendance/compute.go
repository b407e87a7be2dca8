package attendance

import (
	"fmt"
	"math"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
)

// Reconcile joins every scheduled shift against at most one punch record
// sharing its calendar date and derives the day-level records plus the
// employee summary. It is a pure function: running it twice over the same
// inputs yields identical output.
func Reconcile(punches []attendance.PunchRecord, schedule []attendance.ScheduleRecord, policy attendance.PolicyConfig) ([]attendance.DayRecord, attendance.Summary, []string) {
	var warnings []string
	days := make([]attendance.DayRecord, 0, len(schedule))

	for _, sched := range schedule {
		schedMinutes := sched.End.Sub(sched.Start).Minutes()

		day := attendance.DayRecord{
			Date:             sched.Date,
			Shift:            sched.Shift,
			ScheduledStart:   sched.Start,
			ScheduledEnd:     sched.End,
			ScheduledMinutes: schedMinutes,
		}

		punch, duplicates := findPunch(punches, sched.Date)
		if duplicates {
			warnings = append(warnings, fmt.Sprintf("multiple punch records found for %s, using first one", sched.Date.Format("2006-01-02")))
		}

		if punch != nil {
			day.ActualIn = punch.In1
			day.ActualOut1 = punch.Out1
			day.ActualIn2 = punch.In2
			day.ActualOut = punch.Out2
			day.Present = punch.In1 != nil
		}

		if day.Present && day.ActualOut != nil {
			// Cross-midnight close-out is driven by the observed punch pair
			// itself, not by the schedule's cross-midnight flag.
			if day.ActualOut.Before(*day.ActualIn) {
				adj := day.ActualOut.Add(24 * time.Hour)
				day.ActualOut = &adj
			}

			lunchMinutes := 0.0
			if day.ActualOut1 != nil && day.ActualIn2 != nil {
				in2 := *day.ActualIn2
				if sched.Shift == attendance.ShiftPM && in2.Before(*day.ActualOut1) {
					in2 = in2.Add(24 * time.Hour)
					day.ActualIn2 = &in2
				}
				if in2.After(*day.ActualOut1) {
					lunchMinutes = in2.Sub(*day.ActualOut1).Minutes()
				}
			}

			day.WorkedMinutes = math.Max(0, day.ActualOut.Sub(*day.ActualIn).Minutes()-lunchMinutes)
		}

		day.WorkedMinutesClipped = clamp(day.WorkedMinutes, 0, schedMinutes)
		if schedMinutes > 0 {
			day.AttendanceFraction = day.WorkedMinutesClipped / schedMinutes
		}

		if day.Present {
			tardyLimit := sched.Start.Add(time.Duration(policy.TardyMinutes) * time.Minute)
			day.Tardy = day.ActualIn.After(tardyLimit)

			if day.ActualOut != nil {
				earlyLimit := sched.End.Add(-time.Duration(policy.EarlyMinutes) * time.Minute)
				day.EarlyDismissal = day.ActualOut.Before(earlyLimit)
			}
		}

		days = append(days, day)
	}

	return days, Summarize(days), warnings
}

// findPunch returns the first punch record on date and whether more than one
// exists.
func findPunch(punches []attendance.PunchRecord, date time.Time) (*attendance.PunchRecord, bool) {
	var found *attendance.PunchRecord
	count := 0
	for i := range punches {
		if punches[i].Date.Equal(date) {
			if found == nil {
				found = &punches[i]
			}
			count++
		}
	}
	return found, count > 1
}

// Summarize rolls day records into the employee summary. Percentages are
// rounded to two decimals and zero denominators resolve to 0.
func Summarize(days []attendance.DayRecord) attendance.Summary {
	var s attendance.Summary
	s.ScheduledShifts = len(days)

	var schedMinutes, workedMinutes float64
	for _, d := range days {
		if d.Present {
			s.ShiftsWorked++
		}
		if d.Tardy {
			s.TardyCount++
		}
		if d.EarlyDismissal {
			s.EarlyDismissalCount++
		}
		schedMinutes += d.ScheduledMinutes
		workedMinutes += d.WorkedMinutesClipped
	}

	s.ScheduledHours = roundTo2(schedMinutes / 60)
	s.WorkedHours = roundTo2(workedMinutes / 60)
	if s.ScheduledShifts > 0 {
		s.AttendancePctShifts = roundTo2(float64(s.ShiftsWorked) / float64(s.ScheduledShifts) * 100)
	}
	// The percentage comes from the raw minute sums; rounding only the final
	// value keeps it from drifting off the rounded hour figures.
	if schedMinutes > 0 {
		s.AttendancePctHours = roundTo2(workedMinutes / schedMinutes * 100)
	}

	return s
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
