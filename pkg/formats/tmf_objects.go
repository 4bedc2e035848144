package formats

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/tmfkit/pkg/xmlquery"
)

// Query paths over the model part. Paths starting below <model> are
// evaluated against an already matched node.
var (
	tmfResourcesPath = xmlquery.MustCompile("+model", "resources", "+object")
	tmfBuildPath     = xmlquery.MustCompile("build", "+item")
	tmfMetadataPath  = xmlquery.MustCompile("+metadata")
	tmfVertexPath    = xmlquery.MustCompile("vertices", "+vertex")
	tmfTrianglePath  = xmlquery.MustCompile("triangles", "+triangle")
	tmfComponentPath = xmlquery.MustCompile("components", "+component")
)

// tmfRef points at an object, optionally through a transform.
// An empty Transform means the referenced mesh is used as is.
type tmfRef struct {
	ObjectID  string
	Transform string
}

// tmfObject is a resource object. Mesh objects carry their triangles from
// the start; component objects get Mesh filled in by the resolver.
type tmfObject struct {
	ID         string
	Name       string
	Mesh       []float32
	IsMesh     bool
	Components []tmfRef
}

// tmfDocument holds everything collected from one model part.
type tmfDocument struct {
	unit     string
	scale    float64
	metadata map[string]string
	objects  map[string]*tmfObject
	order    []string // object ids in document order
	items    []tmfRef
}

type tmfReader struct {
	log *zap.Logger
	doc *tmfDocument
}

// readTMFDocument walks the model tree once and records objects and build items
// without resolving any reference.
func readTMFDocument(root *xmlquery.Node, log *zap.Logger) (*tmfDocument, error) {
	r := &tmfReader{
		log: log,
		doc: &tmfDocument{
			scale:    1,
			metadata: make(map[string]string),
			objects:  make(map[string]*tmfObject),
		},
	}

	log.Debug("reading model", zap.Stringer("query", tmfResourcesPath))

	// <model> is collected before its objects, so the unit scale is known
	// before the first vertex is read.
	err := xmlquery.Query(root, tmfResourcesPath, func(tag string, n *xmlquery.Node) error {
		switch tag {
		case "model":
			return r.readModel(n)
		case "object":
			return r.readObject(n)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.doc, nil
}

func (r *tmfReader) readModel(n *xmlquery.Node) error {
	if unit, ok := n.Attr("unit"); ok {
		r.doc.unit = unit
		r.doc.scale = UnitScale(unit)
	}

	for _, meta := range xmlquery.Collect(n, tmfMetadataPath) {
		if name, ok := meta.Attr("name"); ok {
			r.doc.metadata[name] = meta.Text
		}
	}

	return xmlquery.Query(n, tmfBuildPath, func(_ string, item *xmlquery.Node) error {
		r.doc.items = append(r.doc.items, readTMFRef(item))
		return nil
	})
}

func (r *tmfReader) readObject(n *xmlquery.Node) error {
	id, _ := n.Attr("id")
	if id == "" {
		return fmt.Errorf("%w: object %d has no id", ErrInvalidObject, len(r.doc.order)+1)
	}
	if _, dup := r.doc.objects[id]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateObject, id)
	}

	obj := &tmfObject{ID: id, Name: n.AttrOr("name", "")}
	r.doc.objects[id] = obj
	r.doc.order = append(r.doc.order, id)

	if mesh := n.Child("mesh"); mesh != nil {
		faces, err := readTMFMesh(mesh, r.doc.scale)
		if err != nil {
			return fmt.Errorf("object %q: %w", id, err)
		}
		obj.Mesh = faces
		obj.IsMesh = true
		r.log.Debug("mesh object",
			zap.String("id", id),
			zap.Int("triangles", len(faces)/9))
		return nil
	}

	for _, c := range xmlquery.Collect(n, tmfComponentPath) {
		obj.Components = append(obj.Components, readTMFRef(c))
	}
	r.log.Debug("component object",
		zap.String("id", id),
		zap.Int("components", len(obj.Components)))
	return nil
}

func readTMFRef(n *xmlquery.Node) tmfRef {
	return tmfRef{
		ObjectID:  n.AttrOr("objectid", ""),
		Transform: strings.TrimSpace(n.AttrOr("transform", "")),
	}
}

// readTMFMesh expands a vertex/triangle mesh into a flat triangle buffer.
// Vertices are scaled once here and never again.
func readTMFMesh(mesh *xmlquery.Node, scale float64) ([]float32, error) {
	var vertices [][3]float32
	err := xmlquery.Query(mesh, tmfVertexPath, func(_ string, v *xmlquery.Node) error {
		var p [3]float32
		for i, axis := range [3]string{"x", "y", "z"} {
			f, err := parseTMFFloat(v, axis)
			if err != nil {
				return fmt.Errorf("vertex %d: %w", len(vertices), err)
			}
			p[i] = float32(f * scale)
			if math.IsInf(float64(p[i]), 0) {
				return fmt.Errorf("vertex %d: %w: %s=%g out of range", len(vertices), ErrInvalidMesh, axis, f)
			}
		}
		vertices = append(vertices, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	faces := make([]float32, 0, len(vertices)*18)
	triangle := 0
	err = xmlquery.Query(mesh, tmfTrianglePath, func(_ string, t *xmlquery.Node) error {
		for _, key := range [3]string{"v1", "v2", "v3"} {
			idx, err := parseTMFIndex(t, key, len(vertices))
			if err != nil {
				return fmt.Errorf("triangle %d: %w", triangle, err)
			}
			faces = append(faces, vertices[idx][:]...)
		}
		triangle++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return faces, nil
}

func parseTMFFloat(n *xmlquery.Node, name string) (float64, error) {
	s, ok := n.Attr(name)
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", ErrInvalidMesh, name)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidMesh, name, s)
	}
	return f, nil
}

func parseTMFIndex(n *xmlquery.Node, name string, count int) (int, error) {
	s, ok := n.Attr(name)
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", ErrInvalidMesh, name)
	}
	idx, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidMesh, name, s)
	}
	if idx < 0 || idx >= count {
		return 0, fmt.Errorf("%w: %s=%d out of range (%d vertices)", ErrInvalidMesh, name, idx, count)
	}
	return idx, nil
}
