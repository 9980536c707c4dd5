package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/alpe/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEnrich(t *testing.T) {
	Convey("Given a well-formed raw record", t, func() {
		raw := model.RawRecord{
			Time:        "36:50",
			Place:       1,
			Seconds:     2210,
			Name:        "Marco Pantani",
			Year:        1995,
			Nationality: "ITA",
			Doping:      "Alleged drug use during 1995 due to high hematocrit levels",
			URL:         "https://en.wikipedia.org/wiki/Marco_Pantani#Alleged_drug_use",
		}

		Convey("When enriching it", func() {
			rec := model.Enrich(raw)

			Convey("Then the raw fields are preserved", func() {
				So(rec.RawRecord, ShouldResemble, raw)
			})

			Convey("And the time of day carries the parsed minute and second", func() {
				So(rec.TimeOfDay.Hour(), ShouldEqual, 0)
				So(rec.TimeOfDay.Minute(), ShouldEqual, 36)
				So(rec.TimeOfDay.Second(), ShouldEqual, 50)
				So(rec.Malformed, ShouldBeFalse)
			})

			Convey("And the year date is January 1 of the year", func() {
				So(rec.YearDate.Year(), ShouldEqual, 1995)
				So(rec.YearDate.Month(), ShouldEqual, time.January)
				So(rec.YearDate.Day(), ShouldEqual, 1)
			})

			Convey("And the record is flagged as doped", func() {
				So(rec.Doped(), ShouldBeTrue)
			})
		})

		Convey("When enriching it twice", func() {
			So(model.Enrich(raw), ShouldResemble, model.Enrich(raw))
		})
	})

	Convey("Given a record whose time lacks a colon", t, func() {
		raw := model.RawRecord{Time: "3640", Year: 1994}

		Convey("Then enriching does not panic and marks the record malformed", func() {
			var rec model.EnrichedRecord
			So(func() { rec = model.Enrich(raw) }, ShouldNotPanic)
			So(rec.Malformed, ShouldBeTrue)
			So(rec.YearDate.Year(), ShouldEqual, 1994)
		})
	})

	Convey("Given several raw records", t, func() {
		raws := []model.RawRecord{
			{Time: "36:40", Year: 1994},
			{Time: "36:50", Year: 1995, Doping: "Admitted"},
			{Time: "37:15", Year: 1996},
		}

		Convey("When enriching all of them", func() {
			recs := model.EnrichAll(raws)

			Convey("Then order and length are preserved", func() {
				So(len(recs), ShouldEqual, 3)
				for i := range raws {
					So(recs[i].RawRecord, ShouldResemble, raws[i])
				}
			})
		})

		Convey("When enriching an empty slice", func() {
			So(model.EnrichAll(nil), ShouldBeEmpty)
		})
	})
}

func TestCountDoping(t *testing.T) {
	Convey("Given records with mixed doping status", t, func() {
		recs := model.EnrichAll([]model.RawRecord{
			{Time: "36:40", Year: 1994},
			{Time: "36:50", Year: 1995, Doping: "Admitted"},
			{Time: "37:00", Year: 1996, Doping: "Alleged"},
			{Time: "37:10", Year: 1997},
			{Time: "37:20", Year: 1998},
		})

		Convey("When counting", func() {
			c := model.CountDoping(recs)

			Convey("Then both categories are counted", func() {
				So(c.Doped, ShouldEqual, 2)
				So(c.Clean, ShouldEqual, 3)
			})

			Convey("And the categories partition the records", func() {
				So(c.Total(), ShouldEqual, len(recs))
			})
		})

		Convey("When counting every prefix", func() {
			for n := 0; n <= len(recs); n++ {
				So(model.CountDoping(recs[:n]).Total(), ShouldEqual, n)
			}
		})
	})

	Convey("Given no records", t, func() {
		So(model.CountDoping(nil), ShouldResemble, model.Counts{})
	})
}

func TestParseTimeOfDayErrors(t *testing.T) {
	Convey("Given a non-numeric time", t, func() {
		tod, err := model.ParseTimeOfDay("ab:cd")

		Convey("Then an ErrMalformedTime is returned with a zero clock", func() {
			So(errors.Is(err, model.ErrMalformedTime), ShouldBeTrue)
			So(model.ClockSeconds(tod), ShouldEqual, 0)
		})
	})
}
