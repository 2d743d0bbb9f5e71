package obs

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/AlexKimmel/CrptLite/internal/crpt"
)

func SetupLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(lvl)

	return logger
}

// Logger returns outbound middleware that logs each registry call with
// duration and status.
func Logger(logger zerolog.Logger) crpt.Middleware {
	return func(next crpt.Doer) crpt.Doer {
		return crpt.DoerFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.Do(r)

			status := 0
			if resp != nil {
				status = resp.StatusCode
			}
			ev := logger.Info()
			if err != nil {
				ev = logger.Error().Err(err)
			}
			ev.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("host", r.URL.Host).
				Int("status", status).
				Dur("dur", time.Since(start)).
				Msg("req")
			return resp, err
		})
	}
}
