package event

// Kind is the closed set of event types. Branching business rules hang off
// the trait table below instead of scattered string comparisons.
type Kind string

const (
	KindRehearsal           Kind = "rehearsal"
	KindPerformance         Kind = "performance"
	KindFestival            Kind = "festival"
	KindOpenSlot            Kind = "open_slot"
	KindPersonalUnavailable Kind = "personal_unavailable"
)

// Traits drive validation and conflict classification per kind.
type Traits struct {
	// GroupCommitting kinds claim the whole band's time and participate in
	// the same-kind conflict check.
	GroupCommitting bool
	// Personal kinds are owned by a principal, never by a band.
	Personal bool
	// AlwaysAllDay forces IsAllDay regardless of supplied times.
	AlwaysAllDay bool
}

var kindTraits = map[Kind]Traits{
	KindRehearsal:           {GroupCommitting: true},
	KindPerformance:         {GroupCommitting: true},
	KindFestival:            {},
	KindOpenSlot:            {},
	KindPersonalUnavailable: {Personal: true, AlwaysAllDay: true},
}

func (k Kind) Valid() bool {
	_, ok := kindTraits[k]
	return ok
}

func (k Kind) Traits() Traits {
	return kindTraits[k]
}

// GroupKinds lists the kinds a band-owned event may use.
func GroupKinds() []Kind {
	return []Kind{KindRehearsal, KindPerformance, KindFestival, KindOpenSlot}
}
