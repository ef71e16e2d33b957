// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"github.com/bureau-foundation/plasma/lib/cardinality"
	"github.com/bureau-foundation/plasma/lib/wire"
)

// Bucket counts of the Engine histograms.
const (
	activesPerIPBuckets    = 10
	minutesPerVisitBuckets = 30
)

// Engine is the set of metrics a game server reports for one
// interval. Engines from successive intervals or from several servers
// combine with Add.
type Engine struct {
	// Active abuse reports.
	AbuseReports Discrete `json:"abuse_reports"`
	// Active clients admitted per IP address.
	ActivesPerIP Histogram `json:"actives_per_ip"`
	// Arenas held in cache.
	ArenasCached Discrete `json:"arenas_cached"`
	// Megabits per second received and transmitted.
	BandwidthRx ContinuousExtrema `json:"bandwidth_rx"`
	BandwidthTx ContinuousExtrema `json:"bandwidth_tx"`
	// New players who left without playing.
	Bounce Ratio `json:"bounce"`
	// Concurrent players.
	Concurrent ContinuousExtrema `json:"concurrent"`
	// Connections admitted.
	Connections ContinuousExtrema `json:"connections"`
	// Fraction of CPU time in use, 0 to 1.
	CPU ContinuousExtrema `json:"cpu"`
	// Client crashes reported.
	Crashes Discrete `json:"crashes"`
	// Client frames per second.
	FPS ContinuousExtrema `json:"fps"`
	// Clients below the frame rate floor.
	LowFPS Ratio `json:"low_fps"`
	// Minutes per visit, as statistics and as a histogram.
	MinutesPerVisit          ContinuousExtrema `json:"minutes_per_visit"`
	MinutesPerVisitHistogram Histogram         `json:"minutes_per_visit_histogram"`
	// First-time visitors among all visitors.
	New Ratio `json:"new"`
	// Plays started.
	Plays Discrete `json:"plays"`
	// Fraction of memory in use, 0 to 1.
	RAM ContinuousExtrema `json:"ram"`
	// Round trip time in milliseconds.
	RTT ContinuousExtrema `json:"rtt"`
	// Final score per play.
	Score ContinuousExtrema `json:"score"`
	// Players who joined a team.
	Teamed Ratio `json:"teamed"`
	// Chat messages classified as anything but clean.
	Toxicity Ratio `json:"toxicity"`
	// Server ticks per second.
	TPS ContinuousExtrema `json:"tps"`
	// Server uptime in hours.
	Uptime ContinuousExtrema `json:"uptime"`
	// Distinct visitors.
	Visitors cardinality.Snapshot `json:"visitors"`
	// Visits started.
	Visits Discrete `json:"visits"`
}

// NewEngine returns an empty Engine with its histograms sized.
func NewEngine() Engine {
	return Engine{
		ActivesPerIP:             NewHistogram(activesPerIPBuckets),
		MinutesPerVisitHistogram: NewHistogram(minutesPerVisitBuckets),
	}
}

// Add combines two engines field by field. Visitors are merged as a
// set union.
func (m Engine) Add(other Engine) Engine {
	return Engine{
		AbuseReports:             m.AbuseReports.Add(other.AbuseReports),
		ActivesPerIP:             m.ActivesPerIP.Add(other.ActivesPerIP),
		ArenasCached:             m.ArenasCached.Add(other.ArenasCached),
		BandwidthRx:              m.BandwidthRx.Add(other.BandwidthRx),
		BandwidthTx:              m.BandwidthTx.Add(other.BandwidthTx),
		Bounce:                   m.Bounce.Add(other.Bounce),
		Concurrent:               m.Concurrent.Add(other.Concurrent),
		Connections:              m.Connections.Add(other.Connections),
		CPU:                      m.CPU.Add(other.CPU),
		Crashes:                  m.Crashes.Add(other.Crashes),
		FPS:                      m.FPS.Add(other.FPS),
		LowFPS:                   m.LowFPS.Add(other.LowFPS),
		MinutesPerVisit:          m.MinutesPerVisit.Add(other.MinutesPerVisit),
		MinutesPerVisitHistogram: m.MinutesPerVisitHistogram.Add(other.MinutesPerVisitHistogram),
		New:                      m.New.Add(other.New),
		Plays:                    m.Plays.Add(other.Plays),
		RAM:                      m.RAM.Add(other.RAM),
		RTT:                      m.RTT.Add(other.RTT),
		Score:                    m.Score.Add(other.Score),
		Teamed:                   m.Teamed.Add(other.Teamed),
		Toxicity:                 m.Toxicity.Add(other.Toxicity),
		TPS:                      m.TPS.Add(other.TPS),
		Uptime:                   m.Uptime.Add(other.Uptime),
		Visitors:                 m.Visitors.Merge(other.Visitors),
		Visits:                   m.Visits.Add(other.Visits),
	}
}

// EngineSummary is Engine reduced for display.
type EngineSummary struct {
	AbuseReports             DiscreteSummary   `json:"abuse_reports"`
	ActivesPerIP             HistogramSummary  `json:"actives_per_ip"`
	ArenasCached             DiscreteSummary   `json:"arenas_cached"`
	BandwidthRx              ContinuousSummary `json:"bandwidth_rx"`
	BandwidthTx              ContinuousSummary `json:"bandwidth_tx"`
	Bounce                   RatioSummary      `json:"bounce"`
	Concurrent               ContinuousSummary `json:"concurrent"`
	Connections              ContinuousSummary `json:"connections"`
	CPU                      ContinuousSummary `json:"cpu"`
	Crashes                  DiscreteSummary   `json:"crashes"`
	FPS                      ContinuousSummary `json:"fps"`
	LowFPS                   RatioSummary      `json:"low_fps"`
	MinutesPerVisit          ContinuousSummary `json:"minutes_per_visit"`
	MinutesPerVisitHistogram HistogramSummary  `json:"minutes_per_visit_histogram"`
	New                      RatioSummary      `json:"new"`
	Plays                    DiscreteSummary   `json:"plays"`
	RAM                      ContinuousSummary `json:"ram"`
	RTT                      ContinuousSummary `json:"rtt"`
	Score                    ContinuousSummary `json:"score"`
	Teamed                   RatioSummary      `json:"teamed"`
	Toxicity                 RatioSummary      `json:"toxicity"`
	TPS                      ContinuousSummary `json:"tps"`
	Uptime                   ContinuousSummary `json:"uptime"`
	Visitors                 uint64            `json:"visitors"`
	Visits                   DiscreteSummary   `json:"visits"`
}

func (m Engine) Summarize() EngineSummary {
	return EngineSummary{
		AbuseReports:             m.AbuseReports.Summarize(),
		ActivesPerIP:             m.ActivesPerIP.Summarize(),
		ArenasCached:             m.ArenasCached.Summarize(),
		BandwidthRx:              m.BandwidthRx.Summarize(),
		BandwidthTx:              m.BandwidthTx.Summarize(),
		Bounce:                   m.Bounce.Summarize(),
		Concurrent:               m.Concurrent.Summarize(),
		Connections:              m.Connections.Summarize(),
		CPU:                      m.CPU.Summarize(),
		Crashes:                  m.Crashes.Summarize(),
		FPS:                      m.FPS.Summarize(),
		LowFPS:                   m.LowFPS.Summarize(),
		MinutesPerVisit:          m.MinutesPerVisit.Summarize(),
		MinutesPerVisitHistogram: m.MinutesPerVisitHistogram.Summarize(),
		New:                      m.New.Summarize(),
		Plays:                    m.Plays.Summarize(),
		RAM:                      m.RAM.Summarize(),
		RTT:                      m.RTT.Summarize(),
		Score:                    m.Score.Summarize(),
		Teamed:                   m.Teamed.Summarize(),
		Toxicity:                 m.Toxicity.Summarize(),
		TPS:                      m.TPS.Summarize(),
		Uptime:                   m.Uptime.Summarize(),
		Visitors:                 m.Visitors.Estimate(),
		Visits:                   m.Visits.Summarize(),
	}
}

// Encode writes every field in declaration order.
func (m Engine) Encode(e *wire.Encoder) {
	m.AbuseReports.Encode(e)
	m.ActivesPerIP.Encode(e)
	m.ArenasCached.Encode(e)
	m.BandwidthRx.Encode(e)
	m.BandwidthTx.Encode(e)
	m.Bounce.Encode(e)
	m.Concurrent.Encode(e)
	m.Connections.Encode(e)
	m.CPU.Encode(e)
	m.Crashes.Encode(e)
	m.FPS.Encode(e)
	m.LowFPS.Encode(e)
	m.MinutesPerVisit.Encode(e)
	m.MinutesPerVisitHistogram.Encode(e)
	m.New.Encode(e)
	m.Plays.Encode(e)
	m.RAM.Encode(e)
	m.RTT.Encode(e)
	m.Score.Encode(e)
	m.Teamed.Encode(e)
	m.Toxicity.Encode(e)
	m.TPS.Encode(e)
	m.Uptime.Encode(e)
	m.Visitors.Encode(e)
	m.Visits.Encode(e)
}

// EngineMinSize is the smallest encoding of an Engine: one byte per
// scalar field, two per ratio, three per histogram and the empty
// visitor snapshot.
const EngineMinSize = 36

func DecodeEngine(d *wire.Decoder, field string) Engine {
	var m Engine
	m.AbuseReports = DecodeDiscrete(d, field+".abuse_reports")
	m.ActivesPerIP = DecodeHistogram(d, field+".actives_per_ip")
	m.ArenasCached = DecodeDiscrete(d, field+".arenas_cached")
	m.BandwidthRx = DecodeContinuousExtrema(d, field+".bandwidth_rx")
	m.BandwidthTx = DecodeContinuousExtrema(d, field+".bandwidth_tx")
	m.Bounce = DecodeRatio(d, field+".bounce")
	m.Concurrent = DecodeContinuousExtrema(d, field+".concurrent")
	m.Connections = DecodeContinuousExtrema(d, field+".connections")
	m.CPU = DecodeContinuousExtrema(d, field+".cpu")
	m.Crashes = DecodeDiscrete(d, field+".crashes")
	m.FPS = DecodeContinuousExtrema(d, field+".fps")
	m.LowFPS = DecodeRatio(d, field+".low_fps")
	m.MinutesPerVisit = DecodeContinuousExtrema(d, field+".minutes_per_visit")
	m.MinutesPerVisitHistogram = DecodeHistogram(d, field+".minutes_per_visit_histogram")
	m.New = DecodeRatio(d, field+".new")
	m.Plays = DecodeDiscrete(d, field+".plays")
	m.RAM = DecodeContinuousExtrema(d, field+".ram")
	m.RTT = DecodeContinuousExtrema(d, field+".rtt")
	m.Score = DecodeContinuousExtrema(d, field+".score")
	m.Teamed = DecodeRatio(d, field+".teamed")
	m.Toxicity = DecodeRatio(d, field+".toxicity")
	m.TPS = DecodeContinuousExtrema(d, field+".tps")
	m.Uptime = DecodeContinuousExtrema(d, field+".uptime")
	m.Visitors = cardinality.DecodeSnapshot(d, field+".visitors")
	m.Visits = DecodeDiscrete(d, field+".visits")
	if d.Err() != nil {
		return Engine{}
	}
	return m
}
