package config_test

import (
	"os"
	"path/filepath"
	"testing"

	config "github.com/DubjamMusic/hustlecodex/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad_Defaults(t *testing.T) {
	Convey("Given no file and no env overrides", t, func() {
		cfg, err := config.Load()
		So(err, ShouldBeNil)

		Convey("Then the defaults apply", func() {
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.ConfigDir, ShouldEqual, "config")
			So(cfg.RetentionHours, ShouldEqual, 24)
			So(cfg.DefaultRuleset, ShouldEqual, "default-rules")
			So(cfg.MaxDirectiveChars, ShouldEqual, 5000)
		})
	})
}

func TestLoad_EnvOverrides(t *testing.T) {
	Convey("Given environment overrides", t, func() {
		t.Setenv("HUSTLE_ADDR", ":7777")
		t.Setenv("HUSTLE_LOG_LEVEL", "debug")
		t.Setenv("HUSTLE_RETENTION_HOURS", "48")

		cfg, err := config.Load()
		So(err, ShouldBeNil)

		Convey("Then env values win over defaults", func() {
			So(cfg.Addr, ShouldEqual, ":7777")
			So(cfg.LogLevel, ShouldEqual, "debug")
			So(cfg.RetentionHours, ShouldEqual, 48)
		})
	})
}

func TestLoad_File(t *testing.T) {
	Convey("Given a YAML config file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "hustle.yaml")
		body := "addr: \":6060\"\nadmin_code: \"topsecret\"\nmock_latency_min_ms: 1\nmock_latency_max_ms: 2\n"
		So(os.WriteFile(path, []byte(body), 0o600), ShouldBeNil)
		t.Setenv("HUSTLE_CONFIG", path)

		cfg, err := config.Load()
		So(err, ShouldBeNil)

		Convey("Then file values layer over defaults", func() {
			So(cfg.Addr, ShouldEqual, ":6060")
			So(cfg.AdminCode, ShouldEqual, "topsecret")
			So(cfg.MockLatencyMinMS, ShouldEqual, 1)
			So(cfg.MockLatencyMaxMS, ShouldEqual, 2)
		})

		Convey("And env still wins over the file", func() {
			t.Setenv("HUSTLE_ADDR", ":5050")
			cfg, err := config.Load()
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":5050")
		})
	})
}

func TestLoad_Validation(t *testing.T) {
	Convey("Given invalid settings", t, func() {
		Convey("An empty addr is rejected", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "bad.yaml")
			So(os.WriteFile(path, []byte("addr: \"\"\n"), 0o600), ShouldBeNil)
			t.Setenv("HUSTLE_CONFIG", path)

			_, err := config.Load()
			So(err, ShouldNotBeNil)
		})

		Convey("Inverted latency bounds are rejected", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "bad.yaml")
			So(os.WriteFile(path, []byte("mock_latency_min_ms: 100\nmock_latency_max_ms: 1\n"), 0o600), ShouldBeNil)
			t.Setenv("HUSTLE_CONFIG", path)

			_, err := config.Load()
			So(err, ShouldNotBeNil)
		})
	})
}
