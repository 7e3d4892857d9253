package analytics

import (
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

// Cell is one day slot of a heatmap grid. Cells outside the queried range
// are placeholders with a zero Activity.
type Cell struct {
	Date     time.Time
	InRange  bool
	Activity domain.DailyActivity
}

// MonthLabel marks the week column at which a month first appears.
type MonthLabel struct {
	Week  int
	Month time.Month
}

func (m MonthLabel) String() string {
	return m.Month.String()[:3]
}

// Grid is a week-major calendar layout. Each week runs Sunday to Saturday.
type Grid struct {
	Weeks  [][7]Cell
	Months []MonthLabel
}

// BuildGrid lays days out in week columns from the Sunday on or before start
// through the Saturday on or after end.
func BuildGrid(days []domain.DailyActivity, start, end time.Time) (Grid, error) {
	start, end = domain.NormalizeDate(start), domain.NormalizeDate(end)
	if end.Before(start) {
		return Grid{}, domain.ErrInvalidRange
	}

	byDate := make(map[time.Time]domain.DailyActivity, len(days))
	for _, d := range days {
		byDate[domain.NormalizeDate(d.Date)] = d
	}

	first := start.AddDate(0, 0, -int(start.Weekday()))
	last := end.AddDate(0, 0, int(time.Saturday-end.Weekday()))
	weeks := (domain.DaysBetween(first, last) + 1) / 7

	var g Grid
	g.Weeks = make([][7]Cell, weeks)
	var lastMonth time.Month
	for w := range g.Weeks {
		labeled := false
		for dow := 0; dow < 7; dow++ {
			date := first.AddDate(0, 0, w*7+dow)
			in := !date.Before(start) && !date.After(end)
			cell := Cell{Date: date, InRange: in}
			if in {
				if a, ok := byDate[date]; ok {
					cell.Activity = a
				}
				cell.Activity.Date = date
				if !labeled && date.Month() != lastMonth {
					g.Months = append(g.Months, MonthLabel{Week: w, Month: date.Month()})
					lastMonth = date.Month()
					labeled = true
				}
			}
			g.Weeks[w][dow] = cell
		}
	}
	return g, nil
}
