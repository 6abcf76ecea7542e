package crossval

import "log/slog"

// DebugSink receives one record per comparator call for diagnostics. The
// literal compared values are logged only when the sink was built with
// literal enabled; otherwise only match flags and similarity scores go
// out. This is a logging sink, not part of the pass/fail contract.
type DebugSink struct {
	logger  *slog.Logger
	literal bool
}

func NewDebugSink(logger *slog.Logger, literal bool) *DebugSink {
	return &DebugSink{logger: logger, literal: literal}
}

// Record logs one comparison. safe attrs carry flags and scores only;
// debug is the full snapshot including literal values.
func (s *DebugSink) Record(comparator string, debug any, safe ...any) {
	if s == nil || s.logger == nil {
		return
	}
	attrs := append([]any{"comparator", comparator}, safe...)
	if s.literal {
		attrs = append(attrs, slog.Any("debug", debug))
	}
	s.logger.Debug("comparison", attrs...)
}
