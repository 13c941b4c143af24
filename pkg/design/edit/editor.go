package edit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"mercator-hq/folio/pkg/design/containment"
	designErrors "mercator-hq/folio/pkg/design/errors"
	"mercator-hq/folio/pkg/design/meta"
	"mercator-hq/folio/pkg/design/model"
	"mercator-hq/folio/pkg/telemetry/logging"
)

// Operations reported in decisions.
const (
	OpCanInsert = "can_insert"
	OpCheck     = "check"
	OpInsert    = "insert"
	OpMove      = "move"
	OpRemove    = "remove"
)

var (
	// ErrReadOnly is returned for any edit of a read-only module.
	ErrReadOnly = errors.New("module is read-only")

	// ErrNotFound is returned when an element ID does not resolve.
	ErrNotFound = errors.New("element not found")

	// ErrFrozen is returned when removing from a virtual, extended or
	// included container.
	ErrFrozen = errors.New("container is frozen")
)

// Editor applies structural edits to one module.
type Editor struct {
	mu       sync.Mutex
	module   *model.Module
	dict     *meta.Dictionary
	logger   *slog.Logger
	observer Observer
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logging.Component(logger, "edit")
	}
}

// WithObserver sets the observer notified of every decision.
func WithObserver(o Observer) Option {
	return func(e *Editor) {
		e.observer = o
	}
}

// NewEditor creates an editor for module.
func NewEditor(module *model.Module, dict *meta.Dictionary, opts ...Option) (*Editor, error) {
	if module == nil {
		return nil, fmt.Errorf("editor requires a module")
	}
	if dict == nil {
		return nil, fmt.Errorf("editor requires a dictionary")
	}

	e := &Editor{
		module:   module,
		dict:     dict,
		logger:   logging.Discard(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Module returns the edited module. Callers must not mutate it directly
// while edits are in flight.
func (e *Editor) Module() *model.Module {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.module
}

// Reset replaces the edited module, e.g. after the document was reloaded.
func (e *Editor) Reset(module *model.Module) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.module = module
}

// NewElement creates a detached element of a concrete dictionary type.
func (e *Editor) NewElement(typeName, name string) (*model.Element, error) {
	defn := e.dict.Element(typeName)
	if defn == nil {
		return nil, fmt.Errorf("unknown element type %q", typeName)
	}
	if defn.IsAbstract() {
		return nil, fmt.Errorf("element type %q is abstract", typeName)
	}
	return model.NewElement(defn, name), nil
}

// CanInsert reports whether an element of typeName may be inserted into
// the slot of the container. It runs the type-only check.
func (e *Editor) CanInsert(ctx context.Context, containerID, slot, typeName string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	focus, err := e.focus(containerID, slot)
	if err != nil {
		return false, err
	}

	d := e.newDecision(OpCanInsert, focus)
	d.ElementType = typeName

	started := time.Now()
	allowed := containment.NewProvider(focus, e.dict).CanContainType(e.module, typeName)
	d.Duration = time.Since(started)
	d.Checked = true
	d.Allowed = allowed
	if !allowed {
		d.Err = fmt.Errorf("%s cannot be contained in %s", typeName, focus)
	}

	e.report(ctx, d)
	return allowed, nil
}

// Check returns the violations that would refuse moving the existing
// element into the slot of the container. Nothing is changed.
func (e *Editor) Check(ctx context.Context, elementID, containerID, slot string) (designErrors.Violations, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	element := e.module.FindElement(elementID)
	if element == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, elementID)
	}
	focus, err := e.focus(containerID, slot)
	if err != nil {
		return nil, err
	}

	d := e.newDecision(OpCheck, focus)
	d.setElement(element)

	var violations designErrors.Violations
	if source := element.Container(); source.Equal(focus) {
		// Asking about the slot that already holds the element: it must
		// not count against itself.
		if !e.detached(ctx, source, element, func() { violations = e.check(d, focus, element) }) {
			violations = e.check(d, focus, element)
		}
	} else {
		violations = e.check(d, focus, element)
	}
	e.report(ctx, d)
	return violations, nil
}

// Insert places a detached element at pos in the slot of the container.
// A negative pos appends. Violations are returned as designErrors.Violations.
func (e *Editor) Insert(ctx context.Context, containerID, slot string, element *model.Element, pos int) error {
	if element == nil {
		return fmt.Errorf("cannot insert a nil element")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.writable(); err != nil {
		return err
	}
	focus, err := e.focus(containerID, slot)
	if err != nil {
		return err
	}
	if element.ID != "" && e.module.FindElement(element.ID) != nil {
		return fmt.Errorf("duplicate element ID %q", element.ID)
	}

	d := e.newDecision(OpInsert, focus)
	d.setElement(element)

	if violations := e.check(d, focus, element); len(violations) > 0 {
		e.report(ctx, d)
		return violations.ToError()
	}
	if err := focus.Add(element, pos); err != nil {
		d.Allowed = false
		d.Err = err
		e.report(ctx, d)
		return err
	}

	e.report(ctx, d)
	return nil
}

// Move relocates an element to pos in the slot of the container. Moving
// within the same slot only reorders and skips the containment check.
func (e *Editor) Move(ctx context.Context, elementID, containerID, slot string, pos int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.writable(); err != nil {
		return err
	}
	element := e.module.FindElement(elementID)
	if element == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, elementID)
	}
	source := element.Container()
	if source == nil {
		return fmt.Errorf("cannot move module root %s", element)
	}
	focus, err := e.focus(containerID, slot)
	if err != nil {
		return err
	}

	d := e.newDecision(OpMove, focus)
	d.setElement(element)

	if err := removable(source); err != nil {
		d.Err = err
		e.report(ctx, d)
		return err
	}

	if source.Equal(focus) {
		d.Allowed = true
		if err := reorder(source, element, pos); err != nil {
			d.Allowed = false
			d.Err = err
		}
		e.report(ctx, d)
		return d.Err
	}

	if violations := e.check(d, focus, element); len(violations) > 0 {
		e.report(ctx, d)
		return violations.ToError()
	}

	idx := source.IndexOf(element)
	if err := source.Remove(element); err != nil {
		d.Allowed = false
		d.Err = err
		e.report(ctx, d)
		return err
	}
	if err := focus.Add(element, pos); err != nil {
		// Put it back where it was.
		if rerr := source.Add(element, idx); rerr != nil {
			e.logger.ErrorContext(ctx, "failed to restore element after move", "element", element.ID, "error", rerr)
			err = errors.Join(err, fmt.Errorf("failed to restore %s: %w", element, rerr))
		}
		d.Allowed = false
		d.Err = err
		e.report(ctx, d)
		return err
	}

	e.report(ctx, d)
	return nil
}

// Remove detaches an element from its container.
func (e *Editor) Remove(ctx context.Context, elementID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.writable(); err != nil {
		return err
	}
	element := e.module.FindElement(elementID)
	if element == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, elementID)
	}
	source := element.Container()
	if source == nil {
		return fmt.Errorf("cannot remove module root %s", element)
	}

	d := e.newDecision(OpRemove, source)
	d.setElement(element)

	if err := removable(source); err != nil {
		d.Err = err
		e.report(ctx, d)
		return err
	}
	if err := source.Remove(element); err != nil {
		d.Err = err
		e.report(ctx, d)
		return err
	}

	d.Allowed = true
	e.report(ctx, d)
	return nil
}

// Audit checks every element of the module against the slot that holds
// it, as if it were being inserted there now. Contents of frozen or included
// containers are skipped. The tree is unchanged when Audit returns.
func (e *Editor) Audit(ctx context.Context) designErrors.Violations {
	e.mu.Lock()
	defer e.mu.Unlock()

	started := time.Now()
	var (
		found   designErrors.Violations
		checked int
	)
	for _, element := range model.Descendants(e.module, e.module.Root()) {
		slot := element.Container()
		if slot == nil || removable(slot) != nil {
			continue
		}

		// The element must not count against its own slot.
		if !e.detached(ctx, slot, element, func() {
			found = append(found, containment.NewProvider(slot, e.dict).CheckContainmentContext(e.module, element)...)
		}) {
			continue
		}
		checked++
	}

	e.logger.InfoContext(ctx, "document audited",
		"document", documentName(e.module),
		"elements", checked,
		"violations", len(found),
		"duration", time.Since(started),
	)
	return found
}

func (e *Editor) writable() error {
	if e.module.IsReadOnly() {
		return ErrReadOnly
	}
	return nil
}

func (e *Editor) focus(containerID, slot string) (*model.ContainerContext, error) {
	container := e.module.FindElement(containerID)
	if container == nil {
		return nil, fmt.Errorf("%w: container %s", ErrNotFound, containerID)
	}
	focus := container.Slot(slot)
	if focus.SlotDefn() == nil {
		return nil, fmt.Errorf("%s has no slot %q", container, slot)
	}
	return focus, nil
}

// check runs the element check and fills in the decision.
func (e *Editor) check(d *Decision, focus *model.ContainerContext, element *model.Element) designErrors.Violations {
	started := time.Now()
	violations := containment.NewProvider(focus, e.dict).CheckContainmentContext(e.module, element)
	d.Duration = time.Since(started)
	d.Checked = true
	d.Allowed = len(violations) == 0
	d.Violations = violations
	return violations
}

func (e *Editor) newDecision(op string, focus *model.ContainerContext) *Decision {
	container := focus.Element()
	return &Decision{
		Operation:     op,
		Document:      documentName(e.module),
		ContainerID:   container.ID,
		ContainerType: container.TypeName(),
		Slot:          focus.SlotID(),
	}
}

func (e *Editor) report(ctx context.Context, d *Decision) {
	attrs := []any{
		"operation", d.Operation,
		"container", d.ContainerID,
		"slot", d.Slot,
		"element_type", d.ElementType,
		"allowed", d.Allowed,
	}
	switch {
	case d.Operation == OpCanInsert || d.Operation == OpCheck:
		e.logger.DebugContext(ctx, "containment queried", attrs...)
	case d.Allowed:
		e.logger.InfoContext(ctx, "edit applied", attrs...)
	default:
		attrs = append(attrs, "codes", d.Violations.Codes())
		if d.Err != nil {
			attrs = append(attrs, "error", d.Err)
		}
		e.logger.WarnContext(ctx, "edit refused", attrs...)
	}
	e.observer.Observe(ctx, *d)
}

// removable refuses changes to the contents of a frozen or included slot.
func removable(source *model.ContainerContext) error {
	container := source.Element()
	if container.IsRootIncludedByModule() {
		return fmt.Errorf("%w: %s belongs to an included library", ErrFrozen, container)
	}
	if container.Virtual || container.ExtendsName != "" {
		return fmt.Errorf("%w: %s is virtual or extends another element", ErrFrozen, container)
	}
	return nil
}

// reorder moves element to its final index pos within its own slot.
func reorder(slot *model.ContainerContext, element *model.Element, pos int) error {
	if err := slot.Remove(element); err != nil {
		return err
	}
	return slot.Add(element, pos)
}

func documentName(m *model.Module) string {
	if m.FileName() != "" {
		return m.FileName()
	}
	return m.Root().Name
}

// detached runs fn with element taken out of slot, then restores it at the
// same index. It reports false, without running fn, when the element could
// not be detached.
func (e *Editor) detached(ctx context.Context, slot *model.ContainerContext, element *model.Element, fn func()) bool {
	idx := slot.IndexOf(element)
	if err := slot.Remove(element); err != nil {
		return false
	}
	fn()
	if err := slot.Add(element, idx); err != nil {
		e.logger.ErrorContext(ctx, "failed to restore element", "element", element.ID, "error", err)
	}
	return true
}
