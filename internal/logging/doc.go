// Package logging provides structured logging for egypt.
//
// This package wraps Go's log/slog to provide JSON-formatted logs with
// context propagation. The decomposition engine logs one DEBUG entry per
// pipeline stage and the batch runner tags entries with the input line.
//
// # Thread Safety
//
// All types in this package are safe for concurrent use. Child loggers
// created via With* methods share the underlying writer safely.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/tmp/egypt.log", "DEBUG", logging.DefaultRotationConfig())
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.WithLine(3).WithStage("dedupe").Debug("pass complete", "terms", 12)
//
// Output:
//
//	{"time":"...","level":"DEBUG","msg":"pass complete","line":3,"stage":"dedupe","terms":12}
//
// # Testing
//
// Use [NopLogger] to discard all log output, or [NewWriterLogger] with a
// bytes.Buffer to assert on entries.
//
// # Configuration
//
//	logging:
//	  level: debug
//	  file: /tmp/egypt.log
//	  max_size_mb: 10
//	  max_backups: 3
//	  compress: false
//
// When logging.level is empty the CLI uses [NopLogger].
//
// # Rotation
//
// A log file is written through a [RotatingWriter]. Once the next entry would
// take it past max_size_mb it is renamed to file.1, older backups shift up
// to file.max_backups, and a fresh file is opened. A long batch run at DEBUG
// writes one entry per input line, so the file stays bounded.
package logging
