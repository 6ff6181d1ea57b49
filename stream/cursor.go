package stream

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/Neumenon/etfer/etf"
)

// Cursor tracks per-SID state while consuming frames. It is safe for
// concurrent use.
type Cursor struct {
	mu      sync.RWMutex
	streams map[uint64]*SIDState
}

// SIDState holds the state of a single stream.
type SIDState struct {
	SID       uint64
	LastSeq   uint64     // last sequence number accepted
	LastAcked uint64     // last sequence number acknowledged
	Digest    Digest     // digest of State, valid when HasState
	HasState  bool       // whether Digest is valid
	State     *etf.Value // current state term, if the caller keeps one
	Final     bool       // whether the stream has ended
}

// NewCursor creates an empty cursor.
func NewCursor() *Cursor {
	return &Cursor{
		streams: make(map[uint64]*SIDState),
	}
}

// get returns the state for sid, creating it. Callers hold mu.
func (c *Cursor) get(sid uint64) *SIDState {
	state, ok := c.streams[sid]
	if !ok {
		state = &SIDState{SID: sid}
		c.streams[sid] = state
	}
	return state
}

// State returns a copy of the state for sid and whether it exists.
func (c *Cursor) State(sid uint64) (SIDState, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	state, ok := c.streams[sid]
	if !ok {
		return SIDState{SID: sid}, false
	}
	return *state, true
}

// Delete forgets sid.
func (c *Cursor) Delete(sid uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.streams, sid)
}

// SIDs returns every tracked SID in ascending order.
func (c *Cursor) SIDs() []uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sids := make([]uint64, 0, len(c.streams))
	for sid := range c.streams {
		sids = append(sids, sid)
	}
	slices.Sort(sids)
	return sids
}

// Process validates f against the state of its SID and advances it.
//
// Sequence 0 is unordered and always accepted. Any other sequence must
// be exactly one past the last accepted one, except for the first
// frame of a stream, which may start anywhere. A frame with a base
// digest requires a matching state.
func (c *Cursor) Process(f *Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	state := c.get(f.SID)

	if f.Seq != 0 && state.LastSeq > 0 && f.Seq != state.LastSeq+1 {
		return &SequenceError{SID: f.SID, Expected: state.LastSeq + 1, Got: f.Seq}
	}
	if err := checkBase(state, f); err != nil {
		return err
	}

	if f.Seq != 0 {
		state.LastSeq = f.Seq
	}
	if f.IsFinal() {
		state.Final = true
	}
	return nil
}

func checkBase(state *SIDState, f *Frame) error {
	if f.Base == nil {
		return nil
	}
	if !state.HasState || state.Digest != *f.Base {
		return &DigestMismatchError{SID: f.SID, Expected: *f.Base, Got: state.Digest}
	}
	return nil
}

// SetState records v as the current state of sid and its digest.
func (c *Cursor) SetState(sid uint64, v *etf.Value) error {
	digest, err := StateDigest(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	state := c.get(sid)
	state.State = v
	state.Digest = digest
	state.HasState = true
	return nil
}

// SetDigest records a precomputed state digest for sid.
func (c *Cursor) SetDigest(sid uint64, d Digest) {
	c.mu.Lock()
	defer c.mu.Unlock()
	state := c.get(sid)
	state.Digest = d
	state.HasState = true
}

// Ack marks seq as acknowledged.
func (c *Cursor) Ack(sid, seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	state := c.get(sid)
	if seq > state.LastAcked {
		state.LastAcked = seq
	}
}

// PendingAcks returns the sequences accepted but not yet acknowledged.
func (c *Cursor) PendingAcks(sid uint64) []uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	state, ok := c.streams[sid]
	if !ok || state.LastSeq <= state.LastAcked {
		return nil
	}
	pending := make([]uint64, 0, state.LastSeq-state.LastAcked)
	for seq := state.LastAcked + 1; seq <= state.LastSeq; seq++ {
		pending = append(pending, seq)
	}
	return pending
}

// NeedsResync reports whether sid has no known state.
func (c *Cursor) NeedsResync(sid uint64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	state, ok := c.streams[sid]
	return !ok || !state.HasState
}

// ============================================================
// Handler
// ============================================================

// Handler decodes frames and dispatches their terms to callbacks,
// tracking state in a Cursor. Unlike Cursor.Process it tolerates
// duplicates and gaps: stale frames are dropped and gaps are reported
// to OnSeqGap.
type Handler struct {
	Cursor  *Cursor
	Decoder *etf.Decoder
	Logger  *slog.Logger

	// OnValue receives each decoded term with a snapshot of its
	// stream's state taken before the frame was applied.
	OnValue func(f *Frame, v *etf.Value, state SIDState) error

	// OnFinal runs after the last frame of a stream.
	OnFinal func(sid uint64, state SIDState) error

	// OnSeqGap decides whether a gap is fatal. Without it gaps are
	// logged and the frame is accepted.
	OnSeqGap func(sid, expected, got uint64) error

	// OnDigestMismatch handles a base digest that does not match. Without
	// it the mismatch is returned as a *DigestMismatchError.
	OnDigestMismatch func(f *Frame, err *DigestMismatchError) error
}

// NewHandler creates a handler with a fresh cursor and default decode
// options. A nil logger discards log output.
func NewHandler(logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		Cursor:  NewCursor(),
		Decoder: etf.NewDecoder(etf.DefaultDecodeOptions()),
		Logger:  logger,
	}
}

// Handle processes one frame.
func (h *Handler) Handle(f *Frame) error {
	h.Cursor.mu.Lock()
	state := h.Cursor.get(f.SID)

	if f.Seq != 0 && state.LastSeq > 0 {
		if last := state.LastSeq; f.Seq <= last {
			h.Cursor.mu.Unlock()
			h.Logger.Debug("dropping stale frame", "sid", f.SID, "seq", f.Seq, "last_seq", last)
			return nil
		}
		if expected := state.LastSeq + 1; f.Seq != expected {
			h.Cursor.mu.Unlock()
			if h.OnSeqGap != nil {
				if err := h.OnSeqGap(f.SID, expected, f.Seq); err != nil {
					return err
				}
			} else {
				h.Logger.Warn("sequence gap", "sid", f.SID, "expected", expected, "got", f.Seq)
			}
			h.Cursor.mu.Lock()
		}
	}

	if err := checkBase(state, f); err != nil {
		h.Cursor.mu.Unlock()
		var mismatch *DigestMismatchError
		if errors.As(err, &mismatch) && h.OnDigestMismatch != nil {
			return h.OnDigestMismatch(f, mismatch)
		}
		return err
	}

	snapshot := *state
	if f.Seq != 0 {
		state.LastSeq = f.Seq
	}
	h.Cursor.mu.Unlock()

	v, err := h.Decoder.Value(f.Payload)
	if err != nil {
		h.Logger.Error("undecodable frame", "sid", f.SID, "seq", f.Seq, "error", err)
		return err
	}
	if h.OnValue != nil {
		if err := h.OnValue(f, v, snapshot); err != nil {
			return err
		}
	}

	if f.IsFinal() {
		h.Cursor.mu.Lock()
		state.Final = true
		snapshot = *state
		h.Cursor.mu.Unlock()
		h.Logger.Debug("stream finished", "sid", f.SID, "last_seq", snapshot.LastSeq)
		if h.OnFinal != nil {
			return h.OnFinal(f.SID, snapshot)
		}
	}
	return nil
}

// Run handles frames from r until EOF, an error, or ctx is done.
// Cancellation is checked between frames.
func (h *Handler) Run(ctx context.Context, r *Reader) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		f, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := h.Handle(f); err != nil {
			return err
		}
	}
}
