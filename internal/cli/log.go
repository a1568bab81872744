package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// resolveLevel 决定最终日志级别：-v 强制 debug，否则使用配置中的级别。
func resolveLevel(configured log.Level, verbose bool) log.Level {
	if verbose {
		return log.DebugLevel
	}
	return configured
}

// newLogger 创建写往 stderr 的 logger。debug 级别下额外输出毫秒时间戳与调用位置，
// 便于对照 --trace 记录排查版式问题。
func newLogger(w io.Writer, level log.Level) *log.Logger {
	debug := level <= log.DebugLevel
	return log.NewWithOptions(w, log.Options{
		Prefix:          "pdfform",
		Level:           level,
		ReportTimestamp: debug,
		TimeFormat:      "15:04:05.000",
		ReportCaller:    debug,
	})
}

// job 记录一次生成任务的起始时间，结束时以 elapsed 字段输出耗时。
type job struct {
	logger *log.Logger
	start  time.Time
}

func startJob(l *log.Logger) *job {
	return &job{logger: l, start: time.Now()}
}

func (j *job) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(j.start).Round(time.Millisecond))
	j.logger.Info(msg, keyvals...)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext 取出 ctx 中的 logger；没有时返回 log.Default()。
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
