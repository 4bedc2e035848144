// Package formats provides parsers for 3D model interchange formats.
// 3MF (3D Manufacturing Format) package parser.
package formats

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/tmfkit/pkg/archive"
	"github.com/Faultbox/tmfkit/pkg/encoding"
	"github.com/Faultbox/tmfkit/pkg/math"
	"github.com/Faultbox/tmfkit/pkg/xmlquery"
)

// 3MF format errors.
var (
	ErrNotArchive       = errors.New("3MF package is not a zip archive")
	ErrModelNotFound    = errors.New("3MF model part not found")
	ErrUnreadablePart   = errors.New("3MF model part cannot be read")
	ErrMalformedXML     = errors.New("malformed 3MF model XML")
	ErrInvalidObject    = errors.New("invalid 3MF object")
	ErrDuplicateObject  = errors.New("duplicate 3MF object id")
	ErrInvalidMesh      = errors.New("invalid 3MF mesh data")
	ErrInvalidTransform = errors.New("invalid 3MF transform")
	ErrUnknownObject    = errors.New("unknown object reference")
	ErrCyclicReference  = errors.New("cyclic object reference")
)

// tmfUnitScale maps a model unit to a millimeter multiplier.
// The table matches the established importer; inch, foot and centimeter
// divide where a physical conversion would multiply.
var tmfUnitScale = map[string]float64{
	"inch":       1 / 25.4,
	"foot":       1 / 304.8,
	"micron":     1.0 / 1000,
	"meter":      1000,
	"millimeter": 1,
	"centimeter": 1.0 / 10,
}

// UnitScale returns the multiplier for a model unit name.
// Unknown or empty units scale by 1.
func UnitScale(unit string) float64 {
	if s, ok := tmfUnitScale[unit]; ok {
		return s
	}
	return 1
}

// IsModelPart reports whether an archive entry name looks like a model part:
// it contains ".model" somewhere after its first character.
func IsModelPart(name string) bool {
	return strings.Index(name, ".model") > 0
}

// TMFItem is one placed build item with its fully transformed triangles.
type TMFItem struct {
	ObjectID string    // Referenced object id
	Name     string    // Object name, or its id when unnamed
	Faces    []float32 // 9 floats per triangle: x,y,z of each corner
}

// TriangleCount returns the number of triangles in Faces.
func (it TMFItem) TriangleCount() int {
	return len(it.Faces) / 9
}

// Bounds returns the axis-aligned bounding box of the item.
// Both corners are zero for an empty item.
func (it TMFItem) Bounds() (min, max math.Vec3) {
	min, max, _ = math.Bounds(it.Faces)
	return min, max
}

// TMF is a decoded 3MF package.
type TMF struct {
	Part     string            // Archive entry the model was read from
	Unit     string            // Declared unit (empty when absent)
	Scale    float64           // Millimeter multiplier applied to vertices
	Metadata map[string]string // <metadata name="...">value</metadata>
	Objects  int               // Number of resource objects
	Items    []TMFItem         // Build items in declaration order
}

// TMFOption configures 3MF decoding.
type TMFOption func(*tmfConfig)

type tmfConfig struct {
	log       *zap.Logger
	modelPart func(name string) bool
}

// WithLogger sets the logger used for debug output.
func WithLogger(log *zap.Logger) TMFOption {
	return func(c *tmfConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// WithModelPart overrides how the model part is chosen among archive entries.
func WithModelPart(match func(name string) bool) TMFOption {
	return func(c *tmfConfig) {
		if match != nil {
			c.modelPart = match
		}
	}
}

func newTMFConfig(opts []TMFOption) tmfConfig {
	cfg := tmfConfig{
		log:       zap.NewNop(),
		modelPart: IsModelPart,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// ParseTMF parses a 3MF package and returns its build items.
func ParseTMF(data []byte, opts ...TMFOption) ([]TMFItem, error) {
	tmf, err := DecodeTMF(data, opts...)
	if err != nil {
		return nil, err
	}
	return tmf.Items, nil
}

// ParseTMFFile parses a 3MF package from a file path.
func ParseTMFFile(path string, opts ...TMFOption) (*TMF, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return DecodeTMF(data, opts...)
}

// DecodeTMF parses a 3MF package and returns the model with its document details.
func DecodeTMF(data []byte, opts ...TMFOption) (*TMF, error) {
	cfg := newTMFConfig(opts)

	pkg, err := archive.OpenBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotArchive, err)
	}
	defer pkg.Close()

	part, ok := pkg.Find(cfg.modelPart)
	if !ok {
		return nil, ErrModelNotFound
	}

	raw, err := pkg.Read(part)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadablePart, err)
	}
	cfg.log.Debug("model part found", zap.String("part", part), zap.Int("bytes", len(raw)))

	tmf, err := decodeTMFModel(raw, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", part, err)
	}
	tmf.Part = part
	return tmf, nil
}

// ParseTMFModel parses the XML of a model part directly.
func ParseTMFModel(data []byte, opts ...TMFOption) (*TMF, error) {
	return decodeTMFModel(data, newTMFConfig(opts))
}

func decodeTMFModel(data []byte, cfg tmfConfig) (*TMF, error) {
	text, err := encoding.DecodeText(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedXML, err)
	}

	root, err := xmlquery.Parse(bytes.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedXML, err)
	}
	if name := root.Root().Name; name != "model" {
		return nil, fmt.Errorf("%w: root element is <%s>, want <model>", ErrMalformedXML, name)
	}

	doc, err := readTMFDocument(root, cfg.log)
	if err != nil {
		return nil, err
	}

	res := newTMFResolver(doc, cfg.log)
	if err := res.resolveAll(); err != nil {
		return nil, err
	}
	items, err := res.assemble()
	if err != nil {
		return nil, err
	}

	cfg.log.Debug("model resolved",
		zap.String("unit", doc.unit),
		zap.Int("objects", len(doc.order)),
		zap.Int("items", len(items)))

	return &TMF{
		Unit:     doc.unit,
		Scale:    doc.scale,
		Metadata: doc.metadata,
		Objects:  len(doc.order),
		Items:    items,
	}, nil
}
