package generate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/ekiden/internal/config"
	"github.com/okian/ekiden/internal/domain/ranking"
	"github.com/okian/ekiden/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const rosterJSON = `{"members":[
  {"fullName":"Aoi Sato","highSchool":"Kita","personalBests":[{"event":"5000m","time":"14:10.22"}]},
  {"fullName":"Ren Ito","highSchool":"Minami","personalBests":[{"event":"5000m","time":"14:02.50"},{"event":"10000m","time":"29:40.00"}]},
  {"fullName":"Yui Kato","highSchool":"Higashi","personalBests":[{"event":"5000m","time":"DNF"}]}
]}`

func TestParseArgs(t *testing.T) {
	Convey("Given command-line arguments", t, func() {
		t.Setenv("EKIDEN_CONFIG", "")

		Convey("When no arguments are passed", func() {
			opts, err := ParseArgs(nil)

			Convey("Then every override should be unset", func() {
				So(err, ShouldBeNil)
				So(*opts, ShouldResemble, Options{})
			})
		})

		Convey("When every override is passed", func() {
			opts, err := ParseArgs([]string{"--config", "ekiden.yaml", "--roster", "m.json", "--out-dir", "out", "--strict", "--log-level", "debug"})

			Convey("Then they should be parsed", func() {
				So(err, ShouldBeNil)
				So(*opts, ShouldResemble, Options{
					Config: "ekiden.yaml", Roster: "m.json", OutDir: "out", Strict: true, LogLevel: "debug",
				})
			})
		})

		Convey("When the config file comes from the environment", func() {
			t.Setenv("EKIDEN_CONFIG", "from-env.yaml")
			opts, err := ParseArgs(nil)

			Convey("Then it should be used", func() {
				So(err, ShouldBeNil)
				So(opts.Config, ShouldEqual, "from-env.yaml")
			})
		})

		Convey("When an unknown flag is passed", func() {
			_, err := ParseArgs([]string{"--bogus"})

			Convey("Then ErrUsage should be returned", func() {
				So(errors.Is(err, ErrUsage), ShouldBeTrue)
			})
		})
	})
}

func TestResolve(t *testing.T) {
	Convey("Given a config file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "ekiden.yaml")
		So(os.WriteFile(path, []byte("roster_file: file-roster.json\nrankings_dir: file-out\n"), 0o600), ShouldBeNil)

		Convey("When no overrides are given", func() {
			cfg, err := Resolve(context.Background(), &Options{Config: path})

			Convey("Then file values should be kept", func() {
				So(err, ShouldBeNil)
				So(cfg.RosterFile, ShouldEqual, "file-roster.json")
				So(cfg.RankingsDir, ShouldEqual, "file-out")
				So(cfg.Strict, ShouldBeFalse)
			})
		})

		Convey("When overrides are given", func() {
			cfg, err := Resolve(context.Background(), &Options{Config: path, Roster: "flag.json", OutDir: "flag-out", Strict: true})

			Convey("Then they should win over the file", func() {
				So(err, ShouldBeNil)
				So(cfg.RosterFile, ShouldEqual, "flag.json")
				So(cfg.RankingsDir, ShouldEqual, "flag-out")
				So(cfg.Strict, ShouldBeTrue)
			})
		})

		Convey("When the config file does not exist", func() {
			_, err := Resolve(context.Background(), &Options{Config: filepath.Join(dir, "missing.yaml")})

			Convey("Then ErrLoadConfig should be returned", func() {
				So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
			})
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a roster and an output directory", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		cfg := config.New()
		cfg.RosterFile = filepath.Join(dir, "members.json")
		cfg.RankingsDir = filepath.Join(dir, "rankings")
		So(os.WriteFile(cfg.RosterFile, []byte(rosterJSON), 0o600), ShouldBeNil)

		Convey("When rankings are generated", func() {
			summary, err := Run(ctx, cfg, logger.NewNop())

			Convey("Then only events with records should be written", func() {
				So(err, ShouldBeNil)
				So(summary.Written, ShouldHaveLength, 2)
				So(summary.Skipped, ShouldResemble, []string{"Half Marathon"})
				_, statErr := os.Stat(filepath.Join(cfg.RankingsDir, "half-marathon.json"))
				So(os.IsNotExist(statErr), ShouldBeTrue)
			})

			Convey("Then the unparseable time should be reported and ranked last", func() {
				So(summary.Anomalies, ShouldHaveLength, 1)
				So(summary.Written[0].Event, ShouldEqual, "5000m")
				So(summary.Written[0].Records, ShouldEqual, 3)
			})
		})

		Convey("When strict mode is on", func() {
			cfg.Strict = true
			_, err := Run(ctx, cfg, logger.NewNop())

			Convey("Then the build should fail with ErrMalformedInput", func() {
				So(errors.Is(err, ranking.ErrMalformedInput), ShouldBeTrue)
			})
		})

		Convey("When the roster is missing", func() {
			cfg.RosterFile = filepath.Join(dir, "nope.json")
			_, err := Run(ctx, cfg, logger.NewNop())

			Convey("Then ErrRosterRead should be returned", func() {
				So(errors.Is(err, ranking.ErrRosterRead), ShouldBeTrue)
			})
		})
	})
}
