package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLocalStorage(t *testing.T) {
	Convey("Given a LocalStorage", t, func() {
		ctx := context.Background()
		tempDir, err := os.MkdirTemp("", "local_storage_test")
		So(err, ShouldBeNil)
		defer os.RemoveAll(tempDir)

		reportDir := filepath.Join(tempDir, "reports")
		storage, err := NewLocal(reportDir)
		So(err, ShouldBeNil)

		Convey("NewLocal should create nested directories", func() {
			info, err := os.Stat(reportDir)
			So(err, ShouldBeNil)
			So(info.IsDir(), ShouldBeTrue)
		})

		Convey("Upload", func() {
			source := filepath.Join(tempDir, "bacula_report_20240317_030000.json")
			So(os.WriteFile(source, []byte(`{"jobs":[]}`), 0644), ShouldBeNil)

			Convey("When uploading a report", func() {
				err := storage.Upload(ctx, source, "bacula_report_20240317_030000.json")

				Convey("It should copy the file and leave no temp files behind", func() {
					So(err, ShouldBeNil)
					content, err := os.ReadFile(storage.GetPath("bacula_report_20240317_030000.json"))
					So(err, ShouldBeNil)
					So(string(content), ShouldEqual, `{"jobs":[]}`)

					entries, err := os.ReadDir(reportDir)
					So(err, ShouldBeNil)
					So(len(entries), ShouldEqual, 1)
				})
			})

			Convey("When the source is missing", func() {
				err := storage.Upload(ctx, filepath.Join(tempDir, "missing.json"), "report.json")

				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "failed to open source")
			})

			Convey("When the name escapes the directory", func() {
				err := storage.Upload(ctx, source, "../escape.json")

				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "invalid report name")
				_, statErr := os.Stat(filepath.Join(tempDir, "escape.json"))
				So(os.IsNotExist(statErr), ShouldBeTrue)
			})

			Convey("When the context is already canceled", func() {
				canceled, cancel := context.WithCancel(ctx)
				cancel()

				err := storage.Upload(canceled, source, "report.json")

				So(err, ShouldEqual, context.Canceled)
				_, statErr := os.Stat(storage.GetPath("report.json"))
				So(os.IsNotExist(statErr), ShouldBeTrue)
			})
		})

		Convey("List", func() {
			So(os.WriteFile(filepath.Join(reportDir, "b.json"), []byte("{}"), 0644), ShouldBeNil)
			So(os.WriteFile(filepath.Join(reportDir, "a.json.gz"), []byte("{}"), 0644), ShouldBeNil)
			So(os.WriteFile(filepath.Join(reportDir, ".upload-123"), []byte("{}"), 0644), ShouldBeNil)
			So(os.Mkdir(filepath.Join(reportDir, "subdir"), 0755), ShouldBeNil)

			files, err := storage.List(ctx)

			Convey("It should list sorted report files only", func() {
				So(err, ShouldBeNil)
				So(files, ShouldResemble, []string{"a.json.gz", "b.json"})
			})
		})

		Convey("Delete", func() {
			So(os.WriteFile(filepath.Join(reportDir, "old.json"), []byte("{}"), 0644), ShouldBeNil)

			Convey("When the file exists", func() {
				So(storage.Delete(ctx, "old.json"), ShouldBeNil)
				_, err := os.Stat(filepath.Join(reportDir, "old.json"))
				So(os.IsNotExist(err), ShouldBeTrue)
			})

			Convey("When the file does not exist", func() {
				err := storage.Delete(ctx, "nonexistent.json")

				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "failed to delete file")
			})
		})

		Convey("GetOldFiles", func() {
			oldFile := filepath.Join(reportDir, "old.json")
			So(os.WriteFile(oldFile, []byte("{}"), 0644), ShouldBeNil)
			oldTime := time.Now().Add(-10 * 24 * time.Hour)
			So(os.Chtimes(oldFile, oldTime, oldTime), ShouldBeNil)
			So(os.WriteFile(filepath.Join(reportDir, "new.json"), []byte("{}"), 0644), ShouldBeNil)

			oldFiles, err := storage.GetOldFiles(ctx, time.Now().Add(-7*24*time.Hour))

			So(err, ShouldBeNil)
			So(oldFiles, ShouldResemble, []string{"old.json"})
		})

		Convey("GetPath should stay inside the directory", func() {
			So(storage.GetPath("report.json"), ShouldEqual, filepath.Join(reportDir, "report.json"))
			So(storage.GetPath("../report.json"), ShouldEqual, filepath.Join(reportDir, "report.json"))
		})
	})
}
