package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/utilkit/pkg/plastic"
)

type dateInfo struct {
	ISO8601  string `json:"iso8601"`
	DateTime string `json:"datetime"`
	Unix     int64  `json:"unix"`
	Weekday  string `json:"weekday"`
	Quarter  int    `json:"quarter"`
	Relative string `json:"relative"`
}

type dateDiff struct {
	Seconds  int64  `json:"seconds"`
	Minutes  int64  `json:"minutes"`
	Hours    int64  `json:"hours"`
	Days     int64  `json:"days"`
	Weeks    int64  `json:"weeks"`
	Months   int64  `json:"months"`
	Years    int64  `json:"years"`
	Relative string `json:"relative"`
}

func newDateCmd(a *app) *cobra.Command {
	var tz string

	location := func() (*time.Location, error) {
		if tz == "" {
			return time.UTC, nil
		}
		return time.LoadLocation(tz)
	}
	parse := func(value string) (plastic.Plastic, error) {
		loc, err := location()
		if err != nil {
			return plastic.Plastic{}, err
		}
		p, err := plastic.ParseInLocation(value, loc, plastic.WithClock(a.clock))
		if err != nil {
			return plastic.Plastic{}, err
		}
		return p, nil
	}
	describe := func(p plastic.Plastic) dateInfo {
		return dateInfo{
			ISO8601:  p.ToISO8601String(),
			DateTime: p.ToDateTimeString(),
			Unix:     p.Unix(),
			Weekday:  p.Weekday().String(),
			Quarter:  p.Quarter(),
			Relative: p.DiffForHumans(),
		}
	}

	cmd := &cobra.Command{
		Use:   "date",
		Short: "Parse, format and compare dates",
	}
	cmd.PersistentFlags().StringVar(&tz, "tz", "", "IANA time zone, UTC when empty")

	var layout string
	now := &cobra.Command{
		Use:   "now",
		Short: "Print the current time",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			loc, err := location()
			if err != nil {
				return err
			}
			p := plastic.Now(plastic.WithClock(a.clock), plastic.WithLocation(loc))
			if layout != "" {
				_, err = fmt.Fprintln(a.out, p.Format(layout))
				return err
			}
			return a.printJSON(describe(p))
		},
	}
	now.Flags().StringVar(&layout, "format", "", "Go time layout, e.g. 2006-01-02")

	parseCmd := &cobra.Command{
		Use:   "parse VALUE",
		Short: "Parse VALUE and print it in common formats",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			p, err := parse(args[0])
			if err != nil {
				return err
			}
			return a.printJSON(describe(p))
		},
	}

	diff := &cobra.Command{
		Use:   "diff FROM TO",
		Short: "Print the difference between two dates",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			from, err := parse(args[0])
			if err != nil {
				return err
			}
			to, err := parse(args[1])
			if err != nil {
				return err
			}
			return a.printJSON(dateDiff{
				Seconds:  from.DiffInSeconds(to),
				Minutes:  from.DiffInMinutes(to),
				Hours:    from.DiffInHours(to),
				Days:     from.DiffInDays(to),
				Weeks:    from.DiffInWeeks(to),
				Months:   from.DiffInMonths(to),
				Years:    from.DiffInYears(to),
				Relative: from.DiffForHumansFrom(to),
			})
		},
	}

	cmd.AddCommand(now, parseCmd, diff)
	return cmd
}
