package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func writeConfig(dir, content string) string {
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		panic(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	Convey("Given a config directory", t, func() {
		dir, err := os.MkdirTemp("", "config_test")
		So(err, ShouldBeNil)
		defer os.RemoveAll(dir)

		Convey("When the file only names the console config", func() {
			cfg, err := Load(writeConfig(dir, "console:\n  config_file: /etc/bacula/bconsole.conf\n"))

			Convey("It should fill in defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Console.Binary, ShouldEqual, "bconsole")
				So(cfg.Console.ConfigFile, ShouldEqual, "/etc/bacula/bconsole.conf")
				So(cfg.Console.Timeout, ShouldEqual, 10*time.Second)
				So(cfg.HTTP.Addr, ShouldEqual, ":8080")
				So(cfg.Dashboard.ListDays, ShouldEqual, 10)
				So(cfg.History.SkipThreshold, ShouldEqual, 2)
				So(cfg.Report.Enabled, ShouldBeFalse)
				So(cfg.Report.Schedule, ShouldEqual, "0 0 6 * * *")
			})
		})

		Convey("When every section is set", func() {
			cfg, err := Load(writeConfig(dir, `
app:
  name: bacula
  log_level: debug
console:
  binary: /usr/sbin/bconsole
  timeout: 3s
  location: UTC
  extra_args: ["-D", "bacula-dir"]
http:
  addr: 127.0.0.1:9000
dashboard:
  list_days: 30
  show_time: true
history:
  skip_threshold: 5
  status_gate: T
report:
  enabled: true
  schedule: "0 15 7 * * *"
  upload_targets:
    - type: s3
      enabled: true
      bucket: reports
    - type: telegram
      enabled: false
      chat_id: "-100123"
`))

			Convey("It should read all values", func() {
				So(err, ShouldBeNil)
				So(cfg.App.Name, ShouldEqual, "bacula")
				So(cfg.Console.Timeout, ShouldEqual, 3*time.Second)
				So(cfg.Console.ExtraArgs, ShouldResemble, []string{"-D", "bacula-dir"})
				So(cfg.HTTP.Addr, ShouldEqual, "127.0.0.1:9000")
				So(cfg.Dashboard.ShowTime, ShouldBeTrue)
				So(cfg.History.StatusGate, ShouldEqual, "T")
				So(len(cfg.Report.UploadTargets), ShouldEqual, 2)

				loc, err := cfg.Console.TimeLocation()
				So(err, ShouldBeNil)
				So(loc, ShouldEqual, time.UTC)
			})

			Convey("GetEnabledUploadTargets should skip disabled targets", func() {
				targets := cfg.GetEnabledUploadTargets()
				So(len(targets), ShouldEqual, 1)
				So(targets[0].Bucket, ShouldEqual, "reports")
			})
		})

		Convey("When the file does not exist", func() {
			_, err := Load(filepath.Join(dir, "missing.yaml"))

			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "failed to read config")
		})

		Convey("When a value is invalid", func() {
			_, err := Load(writeConfig(dir, "history:\n  skip_threshold: 0\n"))

			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "skip_threshold")
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given a valid config", t, func() {
		cfg := &Config{
			Console:   ConsoleConfig{Binary: "bconsole", Timeout: time.Second},
			HTTP:      HTTPConfig{Addr: ":8080"},
			Dashboard: DashboardConfig{ListDays: 10},
			History:   HistoryConfig{SkipThreshold: 2},
		}
		So(cfg.Validate(), ShouldBeNil)

		Convey("An unknown time zone is rejected", func() {
			cfg.Console.Location = "Mars/Olympus"
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("A zero timeout is rejected", func() {
			cfg.Console.Timeout = 0
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("Reports need a six-field schedule", func() {
			cfg.Report = ReportConfig{Enabled: true, LocalPath: "reports", Schedule: "0 6 * * *"}
			So(cfg.Validate(), ShouldNotBeNil)

			cfg.Report.Schedule = "0 0 6 * * *"
			So(cfg.Validate(), ShouldBeNil)
		})

		Convey("Upload targets need a type", func() {
			cfg.Report = ReportConfig{Enabled: true, LocalPath: "reports", Schedule: "0 0 6 * * *",
				UploadTargets: []UploadTarget{{Enabled: true}}}
			err := cfg.Validate()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "upload_targets[0]")
		})
	})
}
