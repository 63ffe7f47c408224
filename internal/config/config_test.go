package config_test

import (
	"errors"
	"testing"

	"github.com/okian/ekiden/internal/config"
	"github.com/okian/ekiden/internal/domain/ranking"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.Season, convey.ShouldEqual, "2025")
			convey.So(cfg.DefaultTopicsLimit, convey.ShouldEqual, 3)
			convey.So(cfg.MaxTopicsLimit, convey.ShouldEqual, 50)
			convey.So(cfg.Strict, convey.ShouldBeFalse)
			convey.So(cfg.SeasonDir(), convey.ShouldEqual, "data/2025")
		})

		convey.Convey("Then it should track the three championship distances", func() {
			convey.So(cfg.TrackedEvents, convey.ShouldResemble, []config.TrackedEvent{
				{Event: "5000m", File: "5000m.json"},
				{Event: "10000m", File: "10000m.json"},
				{Event: "Half Marathon", File: "half-marathon.json"},
			})
		})

		convey.Convey("Then it should validate", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then its ranking events should match the builder defaults", func() {
			convey.So(cfg.RankingEvents(), convey.ShouldResemble, ranking.DefaultEvents())
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with invalid fields", t, func() {
		cases := []struct {
			name   string
			mutate func(c *config.Config)
		}{
			{"empty addr", func(c *config.Config) { c.Addr = " " }},
			{"empty season", func(c *config.Config) { c.Season = "" }},
			{"empty data dir", func(c *config.Config) { c.DataDir = "" }},
			{"zero default limit", func(c *config.Config) { c.DefaultTopicsLimit = 0 }},
			{"max below default", func(c *config.Config) { c.MaxTopicsLimit = 2 }},
			{"event without file", func(c *config.Config) { c.TrackedEvents = []config.TrackedEvent{{Event: "5000m"}} }},
			{"file with a directory", func(c *config.Config) {
				c.TrackedEvents = []config.TrackedEvent{{Event: "5000m", File: "../5000m.json"}}
			}},
			{"duplicate file", func(c *config.Config) {
				c.TrackedEvents = []config.TrackedEvent{{Event: "5000m", File: "a.json"}, {Event: "10000m", File: "a.json"}}
			}},
		}

		for _, tc := range cases {
			cfg := config.New()
			tc.mutate(cfg)

			convey.Convey("Then "+tc.name+" should be rejected", func() {
				err := cfg.Validate()
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})
}
