// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package plasma

import (
	"fmt"

	"github.com/bureau-foundation/plasma/lib/entityid"
	"github.com/bureau-foundation/plasma/lib/ids"
	"github.com/bureau-foundation/plasma/lib/names"
	"github.com/bureau-foundation/plasma/lib/wire"
)

// MaxBuild is the capacity of RegisterServer.Build in bytes.
const MaxBuild = 40

// RegisterServer announces a server process to the backend. Instance
// is generated once per process start and distinguishes restarts of
// the same Server.
type RegisterServer struct {
	Server   ids.ServerID    `json:"server"`
	Instance entityid.ID     `json:"instance"`
	Token    ids.ServerToken `json:"token"`
	Region   ids.RegionID    `json:"region"`
	Name     names.Text      `json:"name"`
	// Build identifies the server binary, typically a revision hash.
	Build    string `json:"build,omitempty"`
	Capacity uint16 `json:"capacity"`
	Started  Millis `json:"started"`
}

func (RegisterServer) Kind() Kind { return KindRegisterServer }

func (m RegisterServer) validate(v *validator) {
	v.check("server", m.Server.Validate())
	v.entity("instance", m.Instance)
	v.require("token", !m.Token.IsZero(), "zero token")
	v.check("region", m.Region.Validate())
	v.text("name", m.Name, names.ServerName)
	v.bounded("build", m.Build, MaxBuild)
	v.require("capacity", m.Capacity > 0, "zero capacity")
	v.timestamp("started", m.Started)
}

func (m RegisterServer) encode(e *wire.Encoder) {
	m.Server.Encode(e)
	m.Instance.Encode(e)
	m.Token.Encode(e)
	m.Region.Encode(e)
	m.Name.Encode(e)
	e.String(m.Build)
	e.Uvarint(uint64(m.Capacity))
	m.Started.Encode(e)
}

func decodeRegisterServer(d *wire.Decoder) Message {
	return RegisterServer{
		Server:   ids.DecodeServerID(d, "register_server.server"),
		Instance: entityid.DecodeRequired(d, "register_server.instance"),
		Token:    ids.DecodeServerToken(d, "register_server.token"),
		Region:   ids.DecodeRegionID(d, "register_server.region"),
		Name:     names.Decode(d, "register_server.name", names.ServerName),
		Build:    d.String("register_server.build", MaxBuild),
		Capacity: d.Uint16("register_server.capacity"),
		Started:  decodeMillis(d, "register_server.started"),
	}
}

func (m RegisterServer) classify(classifier names.Classifier) Message {
	m.Name = m.Name.Classify(names.ServerName, classifier)
	return m
}

func (m RegisterServer) dispatch(h Handler) error { return h.RegisterServer(m) }

// UnregisterServer tells the backend a server is shutting down.
type UnregisterServer struct {
	Server   ids.ServerID `json:"server"`
	Instance entityid.ID  `json:"instance"`
	// Reason is optional operator-supplied text.
	Reason names.Text `json:"reason,omitzero"`
	At     Millis     `json:"at"`
}

func (UnregisterServer) Kind() Kind { return KindUnregisterServer }

func (m UnregisterServer) validate(v *validator) {
	v.check("server", m.Server.Validate())
	v.entity("instance", m.Instance)
	v.optionalText("reason", m.Reason, names.Diagnostic)
	v.timestamp("at", m.At)
}

func (m UnregisterServer) encode(e *wire.Encoder) {
	m.Server.Encode(e)
	m.Instance.Encode(e)
	e.Bool(!m.Reason.IsZero())
	if !m.Reason.IsZero() {
		m.Reason.Encode(e)
	}
	m.At.Encode(e)
}

func decodeUnregisterServer(d *wire.Decoder) Message {
	m := UnregisterServer{
		Server:   ids.DecodeServerID(d, "unregister_server.server"),
		Instance: entityid.DecodeRequired(d, "unregister_server.instance"),
	}
	if d.Bool("unregister_server.has_reason") {
		m.Reason = names.Decode(d, "unregister_server.reason", names.Diagnostic)
	}
	m.At = decodeMillis(d, "unregister_server.at")
	return m
}

func (m UnregisterServer) classify(classifier names.Classifier) Message {
	m.Reason = m.Reason.Classify(names.Diagnostic, classifier)
	return m
}

func (m UnregisterServer) dispatch(h Handler) error { return h.UnregisterServer(m) }

// RealmHeartbeat is the population of one realm hosted by a server.
type RealmHeartbeat struct {
	Realm   ids.RealmID `json:"realm"`
	Players uint32      `json:"players"`
	Bots    uint32      `json:"bots"`
}

func (r RealmHeartbeat) encode(e *wire.Encoder) {
	r.Realm.Encode(e)
	e.Uvarint(uint64(r.Players))
	e.Uvarint(uint64(r.Bots))
}

// realmHeartbeatMinSize is a public realm with no population.
const realmHeartbeatMinSize = 3

func decodeRealmHeartbeat(d *wire.Decoder) RealmHeartbeat {
	return RealmHeartbeat{
		Realm:   ids.DecodeRealmID(d, "heartbeat.realm"),
		Players: d.Uint32("heartbeat.players"),
		Bots:    d.Uint32("heartbeat.bots"),
	}
}

// Heartbeat reports a server's health. CPU, RAM and MissedTicks are
// fractions in [0, 1]. CertificateExpiry is zero when the server does
// not terminate TLS itself.
type Heartbeat struct {
	Server            ids.ServerID                             `json:"server"`
	Instance          entityid.ID                              `json:"instance"`
	At                Millis                                   `json:"at"`
	CPU               float32                                  `json:"cpu"`
	RAM               float32                                  `json:"ram"`
	MissedTicks       float32                                  `json:"missed_ticks"`
	CertificateExpiry Millis                                   `json:"certificate_expiry,omitempty"`
	Realms            wire.Bounded[RealmHeartbeat, wire.Cap32] `json:"realms"`
}

func (Heartbeat) Kind() Kind { return KindHeartbeat }

func (m Heartbeat) validate(v *validator) {
	v.check("server", m.Server.Validate())
	v.entity("instance", m.Instance)
	v.timestamp("at", m.At)
	v.unit("cpu", m.CPU)
	v.unit("ram", m.RAM)
	v.unit("missed_ticks", m.MissedTicks)
	v.deadline("certificate_expiry", m.CertificateExpiry)
	seen := make(map[ids.RealmID]bool, m.Realms.Len())
	for i, realm := range m.Realms.All() {
		field := fmt.Sprintf("realms[%d].realm", i)
		v.check(field, realm.Realm.Validate())
		v.require(field, !seen[realm.Realm], "duplicate realm "+realm.Realm.String())
		seen[realm.Realm] = true
	}
}

func (m Heartbeat) encode(e *wire.Encoder) {
	m.Server.Encode(e)
	m.Instance.Encode(e)
	m.At.Encode(e)
	e.Float32(m.CPU)
	e.Float32(m.RAM)
	e.Float32(m.MissedTicks)
	e.Bool(m.CertificateExpiry != 0)
	if m.CertificateExpiry != 0 {
		m.CertificateExpiry.Encode(e)
	}
	m.Realms.Encode(e, func(e *wire.Encoder, realm RealmHeartbeat) { realm.encode(e) })
}

func decodeHeartbeat(d *wire.Decoder) Message {
	m := Heartbeat{
		Server:      ids.DecodeServerID(d, "heartbeat.server"),
		Instance:    entityid.DecodeRequired(d, "heartbeat.instance"),
		At:          decodeMillis(d, "heartbeat.at"),
		CPU:         d.Float32("heartbeat.cpu"),
		RAM:         d.Float32("heartbeat.ram"),
		MissedTicks: d.Float32("heartbeat.missed_ticks"),
	}
	if d.Bool("heartbeat.has_certificate_expiry") {
		m.CertificateExpiry = decodeMillis(d, "heartbeat.certificate_expiry")
		if d.Err() == nil && m.CertificateExpiry == 0 {
			d.Fail(wire.UnknownVariant, "heartbeat.certificate_expiry", "present but zero")
		}
	}
	m.Realms = wire.DecodeBounded[RealmHeartbeat, wire.Cap32](d, "heartbeat.realms", realmHeartbeatMinSize, decodeRealmHeartbeat)
	return m
}

func (m Heartbeat) classify(names.Classifier) Message { return m }

func (m Heartbeat) dispatch(h Handler) error { return h.Heartbeat(m) }
