package compressor

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGzipCompressor(t *testing.T) {
	Convey("Given a GzipCompressor", t, func() {
		compressor := NewGzip()

		tempDir, err := os.MkdirTemp("", "gzip_test")
		So(err, ShouldBeNil)
		defer os.RemoveAll(tempDir)

		Convey("When compressing a report", func() {
			content := []byte(`{"name":"bacula","overview":{"jobs":[]}}`)
			source := filepath.Join(tempDir, "bacula_report_20240317_030000.json")
			So(os.WriteFile(source, content, 0644), ShouldBeNil)

			dest := source + ".gz"
			err := compressor.Compress(source, dest)
			So(err, ShouldBeNil)

			Convey("It should produce a gzip stream with the original name", func() {
				f, err := os.Open(dest)
				So(err, ShouldBeNil)
				defer f.Close()

				reader, err := gzip.NewReader(f)
				So(err, ShouldBeNil)
				defer reader.Close()

				So(reader.Name, ShouldEqual, "bacula_report_20240317_030000.json")
				So(reader.ModTime.IsZero(), ShouldBeFalse)

				decompressed, err := io.ReadAll(reader)
				So(err, ShouldBeNil)
				So(decompressed, ShouldResemble, content)
			})
		})

		Convey("When the source file does not exist", func() {
			err := compressor.Compress(filepath.Join(tempDir, "missing.json"), filepath.Join(tempDir, "out.gz"))

			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "failed to open source file")
		})

		Convey("When the destination directory does not exist", func() {
			source := filepath.Join(tempDir, "report.json")
			So(os.WriteFile(source, []byte("{}"), 0644), ShouldBeNil)

			err := compressor.Compress(source, filepath.Join(tempDir, "missing", "out.gz"))

			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "failed to create dest file")
		})
	})
}
