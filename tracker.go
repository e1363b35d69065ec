package emitorcsv

import "time"

// State is the tracker's position in the element stream.
type State int

const (
	// StateIdle: no group element is open, the tag stack is empty.
	StateIdle State = iota
	// StateInGroup: below a recognized group element, stack depth >= 1.
	StateInGroup
	// StateValueCaptured: a leaf was processed and its record emitted;
	// close events are still unwinding the stack.
	StateValueCaptured
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateInGroup:
		return "InGroup"
	case StateValueCaptured:
		return "ValueCaptured"
	default:
		return "Unknown"
	}
}

// OverflowPolicy decides what happens to a record whose fields exceed the
// configured bounds. Either way the parse continues.
type OverflowPolicy int

const (
	// PolicyTruncate clamps oversized fields and surplus path depth.
	PolicyTruncate OverflowPolicy = iota
	// PolicyReject drops the offending record entirely.
	PolicyReject
)

const (
	defaultMaxDepth    = 16
	defaultMaxFieldLen = 256
)

// Tracker is the streaming element-context state machine. It consumes
// OpenElement/CloseElement events from the parser callback, maintains the
// current emitter name, the tag stack and the pending measurement value,
// and appends one record to the output buffer per recognized leaf element.
//
// A Tracker is scoped to one document parse and is not safe for concurrent
// use; the parser invokes it from a single strictly ordered callback
// sequence.
type Tracker struct {
	buf *RecordBuffer
	now func() time.Time

	maxDepth    int
	maxFieldLen int
	policy      OverflowPolicy

	state      State
	emitor     string
	stack      tagStack
	value      string
	typePushed bool
	dropped    int
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithClock replaces the wall clock used to timestamp records.
func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) {
		t.now = now
	}
}

// WithMaxDepth bounds the number of tag tokens allowed into one record
// path. Zero means unbounded.
func WithMaxDepth(n int) TrackerOption {
	return func(t *Tracker) {
		t.maxDepth = n
	}
}

// WithMaxFieldLen bounds the byte length of the emitter name, each tag
// token and the value. Zero means unbounded.
func WithMaxFieldLen(n int) TrackerOption {
	return func(t *Tracker) {
		t.maxFieldLen = n
	}
}

// WithOverflowPolicy selects how records over the configured bounds are
// handled. The default is PolicyTruncate.
func WithOverflowPolicy(p OverflowPolicy) TrackerOption {
	return func(t *Tracker) {
		t.policy = p
	}
}

// NewTracker creates a tracker appending to buf.
func NewTracker(buf *RecordBuffer, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		buf:         buf,
		now:         time.Now,
		maxDepth:    defaultMaxDepth,
		maxFieldLen: defaultMaxFieldLen,
		policy:      PolicyTruncate,
		state:       StateIdle,
		stack:       newTagStack(),
	}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// OpenElement handles one element-open event.
//
// An emitor element may appear at any depth and only updates the emitter
// name; when the nazwa attribute repeats, the last occurrence wins. A group
// element is recognized only at top level: it resets the stack, pushes its
// own name and, when a typ attribute is present, the type value as a second
// token. Below a group every element is pushed so that intermediate wrapper
// elements keep the path intact, but a record fires only for names in the
// leaf vocabulary. A pkt attribute on the leaf replaces the pending value;
// a leaf without one emits the previous value unchanged, which is a known
// limitation of the format rather than an error.
func (t *Tracker) OpenElement(name string, attrs []Attr) {
	switch Classify(name, t.stack.depth() > 0) {
	case KindEmitor:
		for _, a := range attrs {
			if a.Name == attrName {
				t.emitor = a.Value
			}
		}
	case KindGroup:
		t.stack.reset()
		t.stack.push(name)
		t.typePushed = false
		if typ, ok := attrValue(attrs, attrType); ok {
			t.stack.push(typ)
			t.typePushed = true
		}
		t.state = StateInGroup
	case KindLeaf:
		t.stack.push(name)
		if pkt, ok := attrValue(attrs, attrPoint); ok {
			t.value = pkt
		}
		t.emit()
		t.state = StateValueCaptured
	default:
		if t.stack.depth() > 0 {
			t.stack.push(name)
		}
	}
}

// CloseElement handles one element-close event. The element name is not
// consulted: the stack mirrors document nesting, so one close pops one
// token. The group element is the exception, it occupies one nesting level
// but pushed two tokens when a typ attribute was present; reaching that
// level pops both. Closing with an empty stack is a no-op.
//
// Closes are not matched against opens. An emitor element nested inside an
// open group pushes nothing but its close still pops, unwinding the group
// early. The source format never nests emitor inside a group, and the
// original implementation had the same unbalanced pop.
func (t *Tracker) CloseElement(string) {
	if _, ok := t.stack.pop(); !ok {
		return
	}
	if t.typePushed && t.stack.depth() == 1 {
		t.stack.pop()
	}
	if t.stack.depth() == 0 {
		t.typePushed = false
		t.state = StateIdle
	}
}

// State reports the tracker's current state.
func (t *Tracker) State() State {
	return t.state
}

// Emitor reports the current emitter name.
func (t *Tracker) Emitor() string {
	return t.emitor
}

// Depth reports the current tag stack depth.
func (t *Tracker) Depth() int {
	return t.stack.depth()
}

// Dropped reports how many records were discarded by PolicyReject.
func (t *Tracker) Dropped() int {
	return t.dropped
}

func (t *Tracker) emit() {
	rec, ok := t.record(t.now())
	if !ok {
		t.dropped++
		return
	}
	t.buf.Append(rec)
}

// record builds the record for the current context, applying the overflow
// policy. Under PolicyTruncate oversized fields are clamped and surplus
// tokens cut; under PolicyReject any overflow discards the record.
func (t *Tracker) record(ts time.Time) (Record, bool) {
	emitor, ok := t.bound(t.emitor)
	if !ok {
		return Record{}, false
	}
	value, ok := t.bound(t.value)
	if !ok {
		return Record{}, false
	}

	tags := t.stack.tokens
	if t.maxDepth > 0 && len(tags) > t.maxDepth {
		if t.policy == PolicyReject {
			return Record{}, false
		}
		tags = tags[:t.maxDepth]
	}
	bounded := make([]string, len(tags))
	for i, tag := range tags {
		tok, ok := t.bound(tag)
		if !ok {
			return Record{}, false
		}
		bounded[i] = tok
	}

	return newRecord(ts, emitor, bounded, value), true
}

func (t *Tracker) bound(s string) (string, bool) {
	if t.maxFieldLen <= 0 || len(s) <= t.maxFieldLen {
		return s, true
	}
	if t.policy == PolicyReject {
		return "", false
	}

	return s[:t.maxFieldLen], true
}
