package formats

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/tmfkit/pkg/math"
)

// ReferenceError reports a component or build item naming an unknown object.
type ReferenceError struct {
	From string // Referring object id, empty for a build item
	ID   string // Missing object id
}

// Error returns the error string.
func (e *ReferenceError) Error() string {
	if e.From == "" {
		return fmt.Sprintf("%s %q in build item", ErrUnknownObject, e.ID)
	}
	return fmt.Sprintf("%s %q in object %q", ErrUnknownObject, e.ID, e.From)
}

// Unwrap returns ErrUnknownObject.
func (e *ReferenceError) Unwrap() error {
	return ErrUnknownObject
}

// CycleError reports objects that reference themselves through components.
type CycleError struct {
	Cycle []string // Object ids along the cycle; first and last are equal
}

// Error returns the error string.
func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCyclicReference, strings.Join(e.Cycle, " -> "))
}

// Unwrap returns ErrCyclicReference.
func (e *CycleError) Unwrap() error {
	return ErrCyclicReference
}

type visitState uint8

const (
	stateVisiting visitState = iota + 1
	stateDone
)

// tmfResolver turns component objects into meshes and places build items.
type tmfResolver struct {
	doc   *tmfDocument
	log   *zap.Logger
	state map[string]visitState
	stack []string
}

func newTMFResolver(doc *tmfDocument, log *zap.Logger) *tmfResolver {
	return &tmfResolver{
		doc:   doc,
		log:   log,
		state: make(map[string]visitState, len(doc.order)),
	}
}

// resolveAll gives every object a mesh, in document order.
func (r *tmfResolver) resolveAll() error {
	for _, id := range r.doc.order {
		if _, err := r.resolve(id); err != nil {
			return err
		}
	}
	return nil
}

// resolve returns the mesh of an existing object, composing it from its
// components on first use. Each object is composed at most once.
func (r *tmfResolver) resolve(id string) ([]float32, error) {
	obj := r.doc.objects[id]

	switch r.state[id] {
	case stateDone:
		return obj.Mesh, nil
	case stateVisiting:
		return nil, &CycleError{Cycle: r.cycleTo(id)}
	}

	if obj.IsMesh {
		r.state[id] = stateDone
		return obj.Mesh, nil
	}

	r.state[id] = stateVisiting
	r.stack = append(r.stack, id)

	var mesh []float32
	for _, c := range obj.Components {
		if _, ok := r.doc.objects[c.ObjectID]; !ok {
			return nil, &ReferenceError{From: id, ID: c.ObjectID}
		}
		sub, err := r.resolve(c.ObjectID)
		if err != nil {
			return nil, err
		}

		start := len(mesh)
		mesh = append(mesh, sub...)
		if c.Transform == "" {
			continue
		}
		m, err := parseTMFTransform(c.Transform)
		if err != nil {
			return nil, fmt.Errorf("object %q component %q: %w", id, c.ObjectID, err)
		}
		if !m.IsIdentity() {
			m.TransformPoints(mesh[start:])
		}
	}

	r.stack = r.stack[:len(r.stack)-1]
	r.state[id] = stateDone
	obj.Mesh = mesh

	r.log.Debug("composed object",
		zap.String("id", id),
		zap.Int("components", len(obj.Components)),
		zap.Int("triangles", len(mesh)/9))
	return mesh, nil
}

// cycleTo returns the resolution stack from the first visit of id, closed with id.
func (r *tmfResolver) cycleTo(id string) []string {
	for i, s := range r.stack {
		if s == id {
			cycle := make([]string, 0, len(r.stack)-i+1)
			cycle = append(cycle, r.stack[i:]...)
			return append(cycle, id)
		}
	}
	return []string{id, id}
}

// assemble places every build item in declaration order. Each item owns its
// faces; nothing aliases the resolved object meshes.
func (r *tmfResolver) assemble() ([]TMFItem, error) {
	items := make([]TMFItem, 0, len(r.doc.items))
	for i, ref := range r.doc.items {
		obj, ok := r.doc.objects[ref.ObjectID]
		if !ok {
			return nil, &ReferenceError{ID: ref.ObjectID}
		}
		mesh, err := r.resolve(obj.ID)
		if err != nil {
			return nil, err
		}

		faces := make([]float32, len(mesh))
		copy(faces, mesh)
		if ref.Transform != "" {
			m, err := parseTMFTransform(ref.Transform)
			if err != nil {
				return nil, fmt.Errorf("build item %d: %w", i, err)
			}
			if !m.IsIdentity() {
				m.TransformPoints(faces)
			}
		}

		name := obj.Name
		if name == "" {
			name = obj.ID
		}
		items = append(items, TMFItem{ObjectID: obj.ID, Name: name, Faces: faces})
	}
	return items, nil
}

func parseTMFTransform(s string) (math.Mat4, error) {
	m, err := math.ParseAffine(s)
	if err != nil {
		return math.Mat4{}, fmt.Errorf("%w %q: %w", ErrInvalidTransform, s, err)
	}
	return m, nil
}
