package types

import "time"

// ExecOptions is the fully resolved set of options one statement executes
// with. Values are produced by layering Profiles over a base with Override;
// an ExecOptions is never modified after construction, so it is safe to share
// across goroutines and to hold as a session's defaults.
//
// Optional fields use natural zero sentinels: a zero PageSize means the
// driver default, a zero Timeout means no client-side deadline, a zero
// SerialConsistency means unset, and nil slices or maps mean absent.
//
// Accessors return internal references; callers must treat them as read-only.
type ExecOptions struct {
	consistency       Consistency
	serialConsistency Consistency
	pageSize          int
	trace             bool
	timeout           time.Duration
	pagingState       []byte
	arguments         []any
	namedArguments    map[string]any
	typeHints         []string
	idempotent        bool
	payload           map[string][]byte
	profileName       string
}

// DefaultExecOptions returns the baseline options every session starts from:
// LocalOne consistency, page size 10000, request timeout 12s, everything else
// unset. These match the upstream driver defaults.
func DefaultExecOptions() *ExecOptions {
	return &ExecOptions{
		consistency: LocalOne,
		pageSize:    10000,
		timeout:     12 * time.Second,
	}
}

// Override returns a new ExecOptions with every field explicitly set in the
// given layers applied on top of o, later layers winning. Nil layers are
// skipped. The receiver is never modified.
//
// Parameters:
//   - layers: Sparse option bundles in ascending priority order
//
// Returns:
//   - *ExecOptions: A fresh resolved options value
func (o *ExecOptions) Override(layers ...*Profile) *ExecOptions {
	merged := *o
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		layer.applyTo(&merged)
	}

	return &merged
}

// Consistency returns the consistency level.
func (o *ExecOptions) Consistency() Consistency { return o.consistency }

// SerialConsistency returns the serial-phase consistency level for
// lightweight transactions. Zero means unset.
func (o *ExecOptions) SerialConsistency() Consistency { return o.serialConsistency }

// PageSize returns the requested page size. Zero means the driver default.
func (o *ExecOptions) PageSize() int { return o.pageSize }

// Trace reports whether request tracing is enabled.
func (o *ExecOptions) Trace() bool { return o.trace }

// RequestTimeout returns the per-request timeout. Zero means no client-side
// deadline; honoring the value is the collaborator client's responsibility.
func (o *ExecOptions) RequestTimeout() time.Duration { return o.timeout }

// PagingState returns the paging token to resume from, or nil.
func (o *ExecOptions) PagingState() []byte { return o.pagingState }

// Arguments returns the positional values to bind, or nil.
func (o *ExecOptions) Arguments() []any { return o.arguments }

// NamedArguments returns the name-to-value bindings, or nil.
func (o *ExecOptions) NamedArguments() map[string]any { return o.namedArguments }

// TypeHints returns CQL type names guiding value serialization, or nil.
func (o *ExecOptions) TypeHints() []string { return o.typeHints }

// Idempotent reports whether the statement is safe to retry or speculatively
// execute.
func (o *ExecOptions) Idempotent() bool { return o.idempotent }

// Payload returns the custom outgoing protocol payload, or nil.
func (o *ExecOptions) Payload() map[string][]byte { return o.payload }

// ProfileName returns the name of the execution profile applied during
// resolution, or "" when none was named.
func (o *ExecOptions) ProfileName() string { return o.profileName }

// Profile is a sparse bundle of execution settings. Fields left unset inherit
// from the lower layer during resolution. Profiles serve two roles: named
// execution profiles registered with a session, and validated per-call
// overrides reduced to the same shape.
//
// Build profiles with NewProfile and the With* options; once built, treat
// them as immutable.
type Profile struct {
	consistency       *Consistency
	serialConsistency *Consistency
	pageSize          *int
	trace             *bool
	timeout           *time.Duration
	pagingState       []byte
	arguments         []any
	namedArguments    map[string]any
	typeHints         []string
	idempotent        *bool
	payload           map[string][]byte
	profileName       *string
}

// ProfileOption configures a Profile.
type ProfileOption func(*Profile)

// NewProfile creates a Profile from the given options.
//
// Parameters:
//   - opts: Settings to set explicitly in this profile
//
// Returns:
//   - *Profile: The built profile
func NewProfile(opts ...ProfileOption) *Profile {
	p := &Profile{}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// WithConsistency sets the consistency level.
func WithConsistency(c Consistency) ProfileOption {
	return func(p *Profile) { p.consistency = &c }
}

// WithSerialConsistency sets the serial-phase consistency level for
// lightweight transactions. Valid values are Serial and LocalSerial.
func WithSerialConsistency(c Consistency) ProfileOption {
	return func(p *Profile) { p.serialConsistency = &c }
}

// WithPageSize sets the number of rows fetched per page.
func WithPageSize(n int) ProfileOption {
	return func(p *Profile) { p.pageSize = &n }
}

// WithTrace enables or disables request tracing.
func WithTrace(enabled bool) ProfileOption {
	return func(p *Profile) { p.trace = &enabled }
}

// WithRequestTimeout sets the per-request timeout carried to the collaborator
// client.
func WithRequestTimeout(d time.Duration) ProfileOption {
	return func(p *Profile) { p.timeout = &d }
}

// WithPagingState sets the paging token to resume a result set from.
func WithPagingState(state []byte) ProfileOption {
	return func(p *Profile) { p.pagingState = state }
}

// WithArguments sets the positional values bound when raw text or a bare
// prepared handle is executed.
func WithArguments(args ...any) ProfileOption {
	return func(p *Profile) { p.arguments = args }
}

// WithNamedArguments sets name-to-value bindings used instead of positional
// arguments.
func WithNamedArguments(args map[string]any) ProfileOption {
	return func(p *Profile) { p.namedArguments = args }
}

// WithTypeHints sets CQL type names guiding serialization of ambiguous
// argument values.
func WithTypeHints(hints ...string) ProfileOption {
	return func(p *Profile) { p.typeHints = hints }
}

// WithIdempotent marks statements as safe to retry or speculatively execute.
func WithIdempotent(idempotent bool) ProfileOption {
	return func(p *Profile) { p.idempotent = &idempotent }
}

// WithPayload sets the custom outgoing protocol payload.
func WithPayload(payload map[string][]byte) ProfileOption {
	return func(p *Profile) { p.payload = payload }
}

// WithProfileName records the execution profile name on the resolved options.
// The resolver sets this when a per-call override names a profile; it carries
// no settings of its own.
func WithProfileName(name string) ProfileOption {
	return func(p *Profile) { p.profileName = &name }
}

// applyTo copies every explicitly set field of p onto o.
func (p *Profile) applyTo(o *ExecOptions) {
	if p.consistency != nil {
		o.consistency = *p.consistency
	}
	if p.serialConsistency != nil {
		o.serialConsistency = *p.serialConsistency
	}
	if p.pageSize != nil {
		o.pageSize = *p.pageSize
	}
	if p.trace != nil {
		o.trace = *p.trace
	}
	if p.timeout != nil {
		o.timeout = *p.timeout
	}
	if p.pagingState != nil {
		o.pagingState = p.pagingState
	}
	if p.arguments != nil {
		o.arguments = p.arguments
	}
	if p.namedArguments != nil {
		o.namedArguments = p.namedArguments
	}
	if p.typeHints != nil {
		o.typeHints = p.typeHints
	}
	if p.idempotent != nil {
		o.idempotent = *p.idempotent
	}
	if p.payload != nil {
		o.payload = p.payload
	}
	if p.profileName != nil {
		o.profileName = *p.profileName
	}
}
