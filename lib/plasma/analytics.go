// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package plasma

import (
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/plasma/lib/ids"
	"github.com/bureau-foundation/plasma/lib/metrics"
	"github.com/bureau-foundation/plasma/lib/names"
	"github.com/bureau-foundation/plasma/lib/wire"
)

// FilteredMetrics is the Engine metrics of one population.
type FilteredMetrics struct {
	Filter metrics.Filter `json:"filter"`
	Engine metrics.Engine `json:"engine"`
}

// filteredMetricsMinSize is the "all" filter tag plus an empty Engine.
const filteredMetricsMinSize = 1 + metrics.EngineMinSize

func decodeFilteredMetrics(d *wire.Decoder) FilteredMetrics {
	return FilteredMetrics{
		Filter: metrics.DecodeFilter(d, "analytics_snapshot.filter"),
		Engine: metrics.DecodeEngine(d, "analytics_snapshot.engine"),
	}
}

// AnalyticsSnapshot reports the metrics a server accumulated over
// [Start, End], broken down by population. Each filter appears at most
// once. The visitor counts inside are cardinality snapshots, so the
// backend can merge snapshots from many servers and intervals.
type AnalyticsSnapshot struct {
	Server  ids.ServerID                              `json:"server"`
	Start   Millis                                    `json:"start"`
	End     Millis                                    `json:"end"`
	Metrics wire.Bounded[FilteredMetrics, wire.Cap16] `json:"metrics"`
}

func (AnalyticsSnapshot) Kind() Kind { return KindAnalyticsSnapshot }

func (m AnalyticsSnapshot) validate(v *validator) {
	v.check("server", m.Server.Validate())
	v.timestamp("start", m.Start)
	v.timestamp("end", m.End)
	v.require("end", m.End >= m.Start, "interval ends before it starts")
	seen := make(map[metrics.Filter]bool, m.Metrics.Len())
	for i, entry := range m.Metrics.All() {
		v.check(fmt.Sprintf("metrics[%d].filter", i), entry.Filter.Validate())
		v.require(fmt.Sprintf("metrics[%d].filter", i), !seen[entry.Filter], "duplicate filter "+entry.Filter.String())
		v.check(fmt.Sprintf("metrics[%d].engine", i), entry.Engine.Validate())
		seen[entry.Filter] = true
	}
}

func (m AnalyticsSnapshot) encode(e *wire.Encoder) {
	m.Server.Encode(e)
	m.Start.Encode(e)
	m.End.Encode(e)
	m.Metrics.Encode(e, func(e *wire.Encoder, entry FilteredMetrics) {
		entry.Filter.Encode(e)
		entry.Engine.Encode(e)
	})
}

func decodeAnalyticsSnapshot(d *wire.Decoder) Message {
	return AnalyticsSnapshot{
		Server:  ids.DecodeServerID(d, "analytics_snapshot.server"),
		Start:   decodeMillis(d, "analytics_snapshot.start"),
		End:     decodeMillis(d, "analytics_snapshot.end"),
		Metrics: wire.DecodeBounded[FilteredMetrics, wire.Cap16](d, "analytics_snapshot.metrics", filteredMetricsMinSize, decodeFilteredMetrics),
	}
}

// Lookup returns the metrics recorded for filter.
func (m AnalyticsSnapshot) Lookup(filter metrics.Filter) (metrics.Engine, bool) {
	for _, entry := range m.Metrics.All() {
		if entry.Filter == filter {
			return entry.Engine, true
		}
	}
	return metrics.Engine{}, false
}

func (m AnalyticsSnapshot) classify(names.Classifier) Message { return m }

func (m AnalyticsSnapshot) dispatch(h Handler) error { return h.AnalyticsSnapshot(m) }

// LogLevel is the severity of a ServerLog entry.
type LogLevel uint8

const (
	LogDebug LogLevel = iota
	LogInfo
	LogWarn
	LogError

	logLevelCount
)

var logLevelNames = [logLevelCount]string{"debug", "info", "warn", "error"}

func (l LogLevel) String() string {
	if l < logLevelCount {
		return logLevelNames[l]
	}
	return fmt.Sprintf("LogLevel(%d)", l)
}

func (l LogLevel) MarshalText() ([]byte, error) { return marshalEnum(l, l < logLevelCount) }

func (l *LogLevel) UnmarshalText(text []byte) error {
	return unmarshalEnum(l, "log level", logLevelNames[:], text)
}

// LogLevelFromSlog maps a slog level onto the nearest LogLevel at or
// below it.
func LogLevelFromSlog(level slog.Level) LogLevel {
	switch {
	case level >= slog.LevelError:
		return LogError
	case level >= slog.LevelWarn:
		return LogWarn
	case level >= slog.LevelInfo:
		return LogInfo
	}
	return LogDebug
}

// Slog returns the slog level for l.
func (l LogLevel) Slog() slog.Level {
	switch l {
	case LogError:
		return slog.LevelError
	case LogWarn:
		return slog.LevelWarn
	case LogInfo:
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

// MaxLogMessage is the capacity of LogEntry.Message in bytes.
const MaxLogMessage = 200

// LogEntry is one line of server log. Messages are written by the
// server, not by players, so they are plain bounded strings rather
// than classified text.
type LogEntry struct {
	At      Millis   `json:"at"`
	Level   LogLevel `json:"level"`
	Message string   `json:"message"`
}

// logEntryMinSize is a timestamp, a level and an empty message.
const logEntryMinSize = 3

func decodeLogEntry(d *wire.Decoder) LogEntry {
	return LogEntry{
		At:      decodeMillis(d, "server_log.at"),
		Level:   LogLevel(d.Tag("server_log.level", uint64(logLevelCount))),
		Message: d.String("server_log.message", MaxLogMessage),
	}
}

// ServerLog forwards recent log entries from a server, oldest first.
type ServerLog struct {
	Server  ids.ServerID                       `json:"server"`
	Entries wire.Bounded[LogEntry, wire.Cap64] `json:"entries"`
}

func (ServerLog) Kind() Kind { return KindServerLog }

func (m ServerLog) validate(v *validator) {
	v.check("server", m.Server.Validate())
	v.require("entries", m.Entries.Len() > 0, "no entries")
	var previous Millis
	for i, entry := range m.Entries.All() {
		field := fmt.Sprintf("entries[%d]", i)
		v.timestamp(field+".at", entry.At)
		v.require(field+".at", entry.At >= previous, "entries out of order")
		v.require(field+".level", entry.Level < logLevelCount, "unknown level "+entry.Level.String())
		v.require(field+".message", entry.Message != "", "empty")
		v.bounded(field+".message", entry.Message, MaxLogMessage)
		previous = entry.At
	}
}

func (m ServerLog) encode(e *wire.Encoder) {
	m.Server.Encode(e)
	m.Entries.Encode(e, func(e *wire.Encoder, entry LogEntry) {
		entry.At.Encode(e)
		e.Uvarint(uint64(entry.Level))
		e.String(entry.Message)
	})
}

func decodeServerLog(d *wire.Decoder) Message {
	return ServerLog{
		Server:  ids.DecodeServerID(d, "server_log.server"),
		Entries: wire.DecodeBounded[LogEntry, wire.Cap64](d, "server_log.entries", logEntryMinSize, decodeLogEntry),
	}
}

func (m ServerLog) classify(names.Classifier) Message { return m }

func (m ServerLog) dispatch(h Handler) error { return h.ServerLog(m) }
