package main

import (
	"errors"
	"fmt"
)

// DetectionPolicy decides which controller connections end the detecting phase.
type DetectionPolicy string

const (
	// DetectRecognized resolves detection only when a controller classifies
	// as ds4 or xbox-one.
	DetectRecognized DetectionPolicy = "recognized"
	// DetectAnyController resolves detection on any connection. Unrecognized
	// controllers still leave the skin on auto.
	DetectAnyController DetectionPolicy = "any-controller"
)

func parseDetectionPolicy(s string) (DetectionPolicy, error) {
	switch p := DetectionPolicy(s); p {
	case DetectRecognized, DetectAnyController:
		return p, nil
	}
	return "", fmt.Errorf("unknown detection policy %q (want %q or %q)", s, DetectRecognized, DetectAnyController)
}

// ErrDetectionPending is returned for skin and color requests rejected while
// the first controller has not been classified yet.
var ErrDetectionPending = errors.New("controller detection pending")

const maxPendingCommands = 64

// SkinState is the host-side view of what the display surface renders.
type SkinState struct {
	Mode                 SkinMode
	DetectionPending     bool
	ManualOverride       bool
	ColorName            string
	BackgroundStyle      string
	TriggersMeterEnabled bool
}

type followUp int

const (
	followNone followUp = iota
	followRebuild
	// followReselect re-selects the active controller once the surface has
	// applied the change, then rebuilds.
	followReselect
)

// snapshotField is a piece of surface state the host mutates. A reply only
// updates a field when no newer mutation of that field is in flight.
type snapshotField int

const (
	fieldSkin snapshotField = iota
	fieldColor
	fieldBackground
	fieldTriggers
	numSnapshotFields
)

var mutatedField = map[CommandKind]snapshotField{
	CmdChangeSkin:       fieldSkin,
	CmdChangeColor:      fieldColor,
	CmdChangeBackground: fieldBackground,
	CmdToggleTriggers:   fieldTriggers,
}

type pendingCommand struct {
	kind   CommandKind
	follow followUp
}

// Coordinator owns SkinState and decides what skin the display surface shows.
// All methods must be called from the control loop.
type Coordinator struct {
	state   SkinState
	policy  DetectionPolicy
	surface Surface

	seq     uint64
	pending map[uint64]pendingCommand
	// appearanceSeq is the latest skin or color change posted; acks for
	// older ones do not re-select.
	appearanceSeq uint64

	snapshot    *SurfaceSnapshot
	activeIndex int
	// surfaceSkin is the skin the surface last reported; skinNone until
	// the first reply.
	surfaceSkin SkinMode
	// fieldSeq holds the seq of the latest delivered mutation per field.
	fieldSeq [numSnapshotFields]uint64

	onRebuild  func()
	onResolved func(SkinMode)
}

func NewCoordinator(surface Surface, policy DetectionPolicy) *Coordinator {
	if policy == "" {
		policy = DetectRecognized
	}
	return &Coordinator{
		state: SkinState{
			Mode:             SkinAuto,
			DetectionPending: true,
			BackgroundStyle:  backgroundStyles[0],
		},
		policy:      policy,
		surface:     surface,
		pending:     make(map[uint64]pendingCommand),
		activeIndex: -1,
	}
}

func (c *Coordinator) State() SkinState { return c.state }

func (c *Coordinator) Detecting() bool { return c.state.DetectionPending }

// DisplayedMode is the skin the surface renders: the last read-back, or the
// requested mode before the surface has replied. Override decisions use
// State().Mode instead.
func (c *Coordinator) DisplayedMode() SkinMode {
	if c.surfaceSkin != skinNone {
		return c.surfaceSkin
	}
	return c.state.Mode
}

// Snapshot returns the last state read back from the surface, or nil.
func (c *Coordinator) Snapshot() *SurfaceSnapshot { return c.snapshot }

func (c *Coordinator) OnRebuild(fn func()) { c.onRebuild = fn }

// OnResolved registers fn to run once when detection resolves. mode is
// skinNone when the any-controller policy resolved on an unknown controller.
func (c *Coordinator) OnResolved(fn func(SkinMode)) { c.onResolved = fn }

func (c *Coordinator) RequestSkinChange(mode SkinMode) error {
	if !mode.Valid() {
		return fmt.Errorf("unknown skin %q", mode)
	}
	if c.state.DetectionPending && mode != SkinAuto {
		logger.Printf("[DETECT] skin %s ignored: detection pending", mode)
		return ErrDetectionPending
	}
	if mode != SkinAuto && !c.state.ManualOverride {
		c.state.ManualOverride = true
		logger.Printf("[DETECT] manual override: %s", mode)
	}
	c.state.Mode = mode
	if seq, ok := c.post(Command{Kind: CmdChangeSkin, Skin: mode}, followReselect); ok {
		c.appearanceSeq = seq
	} else {
		c.rebuild()
	}
	return nil
}

func (c *Coordinator) RequestColorChange(color string) error {
	if !validColor(color) {
		return fmt.Errorf("unknown color %q", color)
	}
	if c.state.DetectionPending {
		logger.Printf("[DETECT] color %q ignored: detection pending", color)
		return ErrDetectionPending
	}
	c.state.ColorName = color
	if seq, ok := c.post(Command{Kind: CmdChangeColor, Color: color}, followReselect); ok {
		c.appearanceSeq = seq
	} else {
		c.rebuild()
	}
	return nil
}

func (c *Coordinator) RequestBackgroundChange(name string) error {
	if !validBackground(name) {
		return fmt.Errorf("unknown background %q", name)
	}
	c.state.BackgroundStyle = name
	if _, ok := c.post(Command{Kind: CmdChangeBackground, Background: name}, followRebuild); !ok {
		c.rebuild()
	}
	return nil
}

func (c *Coordinator) RequestTriggersMeter(on bool) {
	c.state.TriggersMeterEnabled = on
	if _, ok := c.post(Command{Kind: CmdToggleTriggers, On: on}, followRebuild); !ok {
		c.rebuild()
	}
}

// Notify sends a command whose reply only refreshes the snapshot.
func (c *Coordinator) Notify(cmd Command) {
	c.post(cmd, followNone)
}

// Sync asks the surface for a snapshot and rebuilds when it arrives.
func (c *Coordinator) Sync() {
	if _, ok := c.post(Command{Kind: CmdSnapshot}, followRebuild); !ok {
		c.rebuild()
	}
}

func (c *Coordinator) OnControllerConnected(id GamepadIdentity) {
	if id.Index >= 0 {
		c.activeIndex = id.Index
	}
	if c.state.ManualOverride {
		logger.Printf("[DETECT] controller %d %q connected; manual override keeps %s", id.Index, id.RawID, c.state.Mode)
		return
	}
	mode := classifyController(id.RawID)
	if mode == skinNone {
		logger.Printf("[DETECT] controller %d %q not recognized", id.Index, id.RawID)
		if c.state.DetectionPending && c.policy == DetectAnyController {
			c.resolve(skinNone)
			c.rebuild()
		}
		return
	}
	logger.Printf("[DETECT] controller %d %q classified as %s", id.Index, id.RawID, mode)
	c.state.Mode = mode
	_, ok := c.post(Command{Kind: CmdChangeSkin, Skin: mode}, followRebuild)
	if c.state.DetectionPending {
		c.resolve(mode)
	}
	if !ok {
		c.rebuild()
	}
}

// OnDetectionFinished handles the surface's own request to end detection
// and refresh the menu.
func (c *Coordinator) OnDetectionFinished() {
	if c.state.DetectionPending {
		c.resolve(c.state.Mode)
	}
	c.rebuild()
}

func (c *Coordinator) HandleReply(r Reply) {
	p, ok := c.pending[r.Seq]
	if !ok {
		logger.Printf("[SURFACE] reply for unknown seq %d", r.Seq)
		return
	}
	delete(c.pending, r.Seq)

	if r.State != nil {
		c.applySnapshot(r.Seq, r.State)
	}
	if !r.OK {
		logger.Printf("[SURFACE] %s (seq %d) failed: %s", p.kind, r.Seq, r.Error)
		if p.follow != followNone {
			c.rebuild()
		}
		return
	}

	switch p.follow {
	case followRebuild:
		c.rebuild()
	case followReselect:
		if r.Seq != c.appearanceSeq {
			logger.Printf("[SURFACE] %s (seq %d) superseded by seq %d", p.kind, r.Seq, c.appearanceSeq)
			return
		}
		if !c.snapshot.hasGamepad(c.activeIndex) {
			c.rebuild()
			return
		}
		if _, ok := c.post(Command{Kind: CmdSetActiveGamepad, Index: c.activeIndex}, followRebuild); !ok {
			c.rebuild()
		}
	}
}

// applySnapshot stores the read-back of the reply with sequence seq. Fields
// with a newer mutation still in flight keep their local value.
func (c *Coordinator) applySnapshot(seq uint64, s *SurfaceSnapshot) {
	c.snapshot = s
	if c.settled(fieldSkin, seq) && s.Skin.Valid() {
		c.surfaceSkin = s.Skin
	}
	if c.settled(fieldColor, seq) {
		c.state.ColorName = s.ColorName
	}
	if c.settled(fieldBackground, seq) && s.BackgroundStyle != "" {
		c.state.BackgroundStyle = s.BackgroundStyle
	}
	if c.settled(fieldTriggers, seq) {
		c.state.TriggersMeterEnabled = s.TriggersMeter
	}
	if s.ActiveGamepadIndex >= 0 {
		c.activeIndex = s.ActiveGamepadIndex
	}
}

func (c *Coordinator) settled(f snapshotField, seq uint64) bool {
	return c.fieldSeq[f] <= seq
}

func (c *Coordinator) resolve(mode SkinMode) {
	c.state.DetectionPending = false
	logger.Printf("[DETECT] detection resolved (%s)", mode.Label())
	if c.onResolved != nil {
		c.onResolved(mode)
	}
}

func (c *Coordinator) rebuild() {
	if c.onRebuild != nil {
		c.onRebuild()
	}
}

// post assigns a sequence number and hands cmd to the surface. Failures are
// logged and swallowed; ok reports whether a reply can be expected.
func (c *Coordinator) post(cmd Command, follow followUp) (uint64, bool) {
	if c.surface == nil {
		return 0, false
	}
	c.seq++
	cmd.Seq = c.seq
	if err := c.surface.Post(cmd); err != nil {
		logger.Printf("[SURFACE] %s (seq %d) not delivered: %v", cmd.Kind, cmd.Seq, err)
		return cmd.Seq, false
	}
	if len(c.pending) >= maxPendingCommands {
		c.dropOldestPending()
	}
	c.pending[cmd.Seq] = pendingCommand{kind: cmd.Kind, follow: follow}
	if f, ok := mutatedField[cmd.Kind]; ok {
		c.fieldSeq[f] = cmd.Seq
	}
	return cmd.Seq, true
}

func (c *Coordinator) dropOldestPending() {
	var oldest uint64
	for seq := range c.pending {
		if oldest == 0 || seq < oldest {
			oldest = seq
		}
	}
	logger.Printf("[SURFACE] no reply for seq %d; dropping", oldest)
	delete(c.pending, oldest)
}
