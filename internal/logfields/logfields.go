package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field names shared by every package.
const (
	KeyPath       = "path"
	KeyFile       = "file"
	KeyPackage    = "package"
	KeyUnits      = "units"
	KeyRecords    = "records"
	KeyCount      = "count"
	KeyBytes      = "bytes"
	KeySize       = "size"
	KeyOutput     = "output"
	KeyFormat     = "format"
	KeyEvent      = "event"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

func Path(p string) slog.Attr      { return slog.String(KeyPath, p) }
func File(f string) slog.Attr      { return slog.String(KeyFile, f) }
func Package(p string) slog.Attr   { return slog.String(KeyPackage, p) }
func Units(n int) slog.Attr        { return slog.Int(KeyUnits, n) }
func Records(n int) slog.Attr      { return slog.Int(KeyRecords, n) }
func Count(n int) slog.Attr        { return slog.Int(KeyCount, n) }
func Bytes(n int) slog.Attr        { return slog.Int(KeyBytes, n) }
func Size(human string) slog.Attr  { return slog.String(KeySize, human) }
func Output(path string) slog.Attr { return slog.String(KeyOutput, path) }
func Format(f string) slog.Attr    { return slog.String(KeyFormat, f) }
func Event(e string) slog.Attr     { return slog.String(KeyEvent, e) }

// Duration reports d in fractional milliseconds.
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d)/float64(time.Millisecond))
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
