package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/ekiden/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars(t)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.DataDir, convey.ShouldEqual, "data")
				convey.So(cfg.TrackedEvents, convey.ShouldHaveLength, 3)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			clearConfigEnvVars(t)
			t.Setenv("EKIDEN_ADDR", ":8080")
			t.Setenv("EKIDEN_SEASON", "2024")
			t.Setenv("EKIDEN_DATA_DIR", "/srv/data")
			t.Setenv("EKIDEN_MAX_TOPICS_LIMIT", "20")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Season, convey.ShouldEqual, "2024")
				convey.So(cfg.DataDir, convey.ShouldEqual, "/srv/data")
				convey.So(cfg.MaxTopicsLimit, convey.ShouldEqual, 20)
				convey.So(cfg.SeasonDir(), convey.ShouldEqual, "/srv/data/2024")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			clearConfigEnvVars(t)
			yamlContent := `
addr: ":9090"
season: "2023"
strict: true
tracked_events:
  - event: "1500m"
    file: "1500m.json"
`
			t.Setenv("EKIDEN_CONFIG", createTempConfigFile(t, yamlContent))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.Season, convey.ShouldEqual, "2023")
				convey.So(cfg.Strict, convey.ShouldBeTrue)
				convey.So(cfg.TrackedEvents, convey.ShouldResemble, []config.TrackedEvent{
					{Event: "1500m", File: "1500m.json"},
				})
				convey.So(cfg.DefaultTopicsLimit, convey.ShouldEqual, 3) // From defaults
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			clearConfigEnvVars(t)
			yamlContent := `
addr: ":9090"
season: "2023"
`
			t.Setenv("EKIDEN_CONFIG", createTempConfigFile(t, yamlContent))
			t.Setenv("EKIDEN_ADDR", ":8080")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")  // Overridden by env
				convey.So(cfg.Season, convey.ShouldEqual, "2023") // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			clearConfigEnvVars(t)
			t.Setenv("EKIDEN_CONFIG", createTempConfigFile(t, `invalid: yaml: content: [`))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			clearConfigEnvVars(t)
			t.Setenv("EKIDEN_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			clearConfigEnvVars(t)
			t.Setenv("EKIDEN_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
			})
		})

		convey.Convey("When loading an explicit file path", func() {
			clearConfigEnvVars(t)
			path := createTempConfigFile(t, "rankings_dir: out/rankings\n")

			cfg, err := config.LoadFile(ctx, path)

			convey.Convey("Then it should ignore EKIDEN_CONFIG and read the path", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.RankingsDir, convey.ShouldEqual, "out/rankings")
			})
		})
	})
}

// clearConfigEnvVars unsets every variable Load reads for the rest of the test.
func clearConfigEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"EKIDEN_CONFIG", "EKIDEN_ADDR", "EKIDEN_SEASON", "EKIDEN_DATA_DIR",
		"EKIDEN_MAX_TOPICS_LIMIT", "EKIDEN_DEFAULT_TOPICS_LIMIT", "EKIDEN_LOG_LEVEL",
		"EKIDEN_ROSTER_FILE", "EKIDEN_RANKINGS_DIR", "EKIDEN_PUBLIC_DIR", "EKIDEN_STRICT",
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
