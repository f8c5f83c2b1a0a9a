package main

import (
	"fmt"
	"slices"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/br"

	"noshow/config"
)

// Official national holidays. br.Holidays also lists Carnaval and Corpus
// Christi, which are optional points rather than public holidays, and
// carries Consciência Negra for every year although it became national
// only in 2024.
var brazilNational = []*cal.Holiday{
	br.AnoNovo,
	br.SextaFeiraSanta,
	br.Tiradentes,
	br.Trabalhador,
	br.Independencia,
	br.NossaSenhoraAparecida,
	br.Finados,
	br.Republica,
	br.ConscienciaNegra.Clone(&cal.Holiday{StartYear: 2024}),
	br.Natal,
}

// penha is the Espírito Santo state holiday, the Monday eight days after
// Easter, observed since 2020.
var penha = &cal.Holiday{
	Name:      "Nossa Senhora da Penha",
	Type:      cal.ObservancePublic,
	Offset:    8,
	Func:      cal.CalcEasterOffset,
	StartYear: 2020,
}

// HolidayCalendar answers whether a civil date is a public holiday.
type HolidayCalendar struct {
	region   string
	calendar *cal.Calendar
}

func NewHolidayCalendar(region string) (*HolidayCalendar, error) {
	c := &cal.Calendar{Name: region, Cacheable: true}
	switch region {
	case config.RegionBrazil:
		c.AddHoliday(brazilNational...)
	case config.RegionBrazilEspiritoSanto:
		c.AddHoliday(brazilNational...)
		c.AddHoliday(penha)
	default:
		return nil, fmt.Errorf("unknown holiday region %q", region)
	}
	return &HolidayCalendar{region: region, calendar: c}, nil
}

// IsHoliday reports whether d (any time on that date) is a holiday.
func (c *HolidayCalendar) IsHoliday(d time.Time) bool {
	_, ok := c.Name(d)
	return ok
}

// Name returns the holiday's name for d.
func (c *HolidayCalendar) Name(d time.Time) (string, bool) {
	actual, observed, h := c.calendar.IsHoliday(civilDate(d))
	if !actual && !observed {
		return "", false
	}
	return h.Name, true
}

// Holiday is one dated holiday.
type Holiday struct {
	Date time.Time
	Name string
}

// List returns the holidays of year y in date order.
func (c *HolidayCalendar) List(y int) []Holiday {
	var out []Holiday
	for _, h := range c.calendar.Holidays {
		actual, _ := h.Calc(y)
		if actual.IsZero() {
			continue
		}
		out = append(out, Holiday{
			Date: time.Date(actual.Year(), actual.Month(), actual.Day(), 0, 0, 0, 0, time.UTC),
			Name: h.Name,
		})
	}
	slices.SortFunc(out, func(a, b Holiday) int { return a.Date.Compare(b.Date) })
	return out
}
