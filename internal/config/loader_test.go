package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/orbit/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.FetchLimit, convey.ShouldEqual, 200)
				convey.So(cfg.DefaultLayers, convey.ShouldResemble, []int{8, 15, 26})
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("ORBIT_ADDR", ":8080")
			_ = os.Setenv("ORBIT_FETCH_LIMIT", "50")
			_ = os.Setenv("ORBIT_BEARER_TOKEN", "test-token")
			_ = os.Setenv("ORBIT_MAX_ATTEMPTS", "3")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.FetchLimit, convey.ShouldEqual, 50)
				convey.So(cfg.BearerToken, convey.ShouldEqual, "test-token")
				convey.So(cfg.MaxAttempts, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":7070"
api_base_url: "https://example.test/2"
fetch_limit: 120
requests_per_second: 4.5
default_layers: [4, 9]
cache_enabled: false
`
			tmpFile := createTempConfigFile(t, yamlContent)

			_ = os.Setenv("ORBIT_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.APIBaseURL, convey.ShouldEqual, "https://example.test/2")
				convey.So(cfg.FetchLimit, convey.ShouldEqual, 120)
				convey.So(cfg.RequestsPerSecond, convey.ShouldEqual, 4.5)
				convey.So(cfg.DefaultLayers, convey.ShouldResemble, []int{4, 9})
				convey.So(cfg.CacheEnabled, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When env vars override file values", func() {
			yamlContent := `
addr: ":7070"
`
			tmpFile := createTempConfigFile(t, yamlContent)

			_ = os.Setenv("ORBIT_CONFIG", tmpFile)
			_ = os.Setenv("ORBIT_ADDR", ":6060")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then env wins over file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
			})
		})

		convey.Convey("When the config is invalid", func() {
			_ = os.Setenv("ORBIT_ADDR", "")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should return ErrInvalidConfig", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("ORBIT_CONFIG", "/nonexistent/orbit.yaml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should return ErrLoadConfig", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"ORBIT_CONFIG",
		"ORBIT_ADDR",
		"ORBIT_API_BASE_URL",
		"ORBIT_BEARER_TOKEN",
		"ORBIT_FETCH_LIMIT",
		"ORBIT_FOLLOWER_LIMIT",
		"ORBIT_REQUESTS_PER_SECOND",
		"ORBIT_BURST",
		"ORBIT_MAX_ATTEMPTS",
		"ORBIT_CACHE_ENABLED",
		"ORBIT_CACHE_TTL_SECONDS",
		"ORBIT_CACHE_MAX_ENTRIES",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orbit.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}
