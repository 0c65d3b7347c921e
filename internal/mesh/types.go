package mesh

import "robot3d/internal/mathutil"

// Triangle holds polygon type and vertex indices.
// Polygon == 4 means quad (two triangles: 0-1-2 and 0-2-3).
type Triangle struct {
	Polygon int
	VI      [4]int32
}

// Mesh holds tessellated geometry in the primitive's local frame.
// UVs are parallel to Verts.
type Mesh struct {
	Verts []mathutil.Vec3
	UVs   [][2]float64
	Tris  []Triangle
}

func (m *Mesh) addVert(v mathutil.Vec3, u, w float64) int32 {
	m.Verts = append(m.Verts, v)
	m.UVs = append(m.UVs, [2]float64{u, w})
	return int32(len(m.Verts) - 1)
}

func (m *Mesh) tri(a, b, c int32) {
	m.Tris = append(m.Tris, Triangle{Polygon: 3, VI: [4]int32{a, b, c}})
}

func (m *Mesh) quad(a, b, c, d int32) {
	m.Tris = append(m.Tris, Triangle{Polygon: 4, VI: [4]int32{a, b, c, d}})
}

// TriangleCount returns the number of triangles after splitting quads.
func (m *Mesh) TriangleCount() int {
	n := 0
	for _, t := range m.Tris {
		if t.Polygon == 4 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (m *Mesh) Bounds() (lo, hi mathutil.Vec3) {
	if len(m.Verts) == 0 {
		return
	}
	lo, hi = m.Verts[0], m.Verts[0]
	for _, v := range m.Verts[1:] {
		for k := 0; k < 3; k++ {
			if v[k] < lo[k] {
				lo[k] = v[k]
			}
			if v[k] > hi[k] {
				hi[k] = v[k]
			}
		}
	}
	return lo, hi
}

// Kind names a primitive solid.
type Kind uint8

const (
	KindCube Kind = iota + 1
	KindCylinder
	KindDisk
	KindCone
	KindTorus
	KindGrid
)

func (k Kind) String() string {
	switch k {
	case KindCube:
		return "cube"
	case KindCylinder:
		return "cylinder"
	case KindDisk:
		return "disk"
	case KindCone:
		return "cone"
	case KindTorus:
		return "torus"
	case KindGrid:
		return "grid"
	}
	return "unknown"
}

// Primitive describes one unit solid with its construction parameters.
// It is comparable and used as a cache key.
type Primitive struct {
	Kind Kind
	// Cube edge, grid side length.
	Size float64
	// Cylinder/cone base radius, disk and torus inner radius.
	Radius float64
	// Cylinder top radius, disk and torus outer radius.
	Radius2 float64
	// Cylinder/cone height.
	Height float64
	// Slices around the axis (torus: sides), stacks along it (torus: rings,
	// disk: loops, grid: cells per side).
	Slices, Stacks int
}

// Cube is glutSolidCube: an axis-aligned cube centred on the origin.
func Cube(size float64) Primitive {
	return Primitive{Kind: KindCube, Size: size}
}

// Cylinder is gluCylinder: an open tube along +Z from z=0 to z=height.
func Cylinder(base, top, height float64, slices, stacks int) Primitive {
	return Primitive{Kind: KindCylinder, Radius: base, Radius2: top, Height: height, Slices: slices, Stacks: stacks}
}

// Disk is gluDisk: an annulus in the z=0 plane facing +Z.
func Disk(inner, outer float64, slices, loops int) Primitive {
	return Primitive{Kind: KindDisk, Radius: inner, Radius2: outer, Slices: slices, Stacks: loops}
}

// Cone is glutSolidCone: base at z=0, apex at z=height, capped base.
func Cone(base, height float64, slices, stacks int) Primitive {
	return Primitive{Kind: KindCone, Radius: base, Height: height, Slices: slices, Stacks: stacks}
}

// Torus is glutSolidTorus: tube radius inner swept at distance outer around Z.
func Torus(inner, outer float64, sides, rings int) Primitive {
	return Primitive{Kind: KindTorus, Radius: inner, Radius2: outer, Slices: sides, Stacks: rings}
}

// Grid is a flat n×n quad mesh of side size in the y=0 plane, centred on the
// origin, facing +Y.
func Grid(n int, size float64) Primitive {
	return Primitive{Kind: KindGrid, Size: size, Stacks: n}
}
