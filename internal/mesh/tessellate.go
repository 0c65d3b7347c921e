package mesh

import (
	"math"

	"robot3d/internal/mathutil"
)

// Build tessellates p. Unknown kinds and non-positive segment counts yield an
// empty mesh.
func Build(p Primitive) *Mesh {
	switch p.Kind {
	case KindCube:
		return buildCube(p.Size)
	case KindCylinder:
		return buildCylinder(p.Radius, p.Radius2, p.Height, p.Slices, p.Stacks)
	case KindDisk:
		return buildDisk(p.Radius, p.Radius2, p.Slices, p.Stacks)
	case KindCone:
		return buildCone(p.Radius, p.Height, p.Slices, p.Stacks)
	case KindTorus:
		return buildTorus(p.Radius, p.Radius2, p.Slices, p.Stacks)
	case KindGrid:
		return buildGrid(p.Stacks, p.Size)
	}
	return &Mesh{}
}

// cubeFaces lists the four corner indices of each face, counter-clockwise
// seen from outside. Corner i has bit0=x, bit1=y, bit2=z set to +half.
var cubeFaces = [6][4]int32{
	{1, 3, 7, 5}, // +X
	{0, 4, 6, 2}, // -X
	{2, 6, 7, 3}, // +Y
	{0, 1, 5, 4}, // -Y
	{4, 5, 7, 6}, // +Z
	{0, 2, 3, 1}, // -Z
}

func buildCube(size float64) *Mesh {
	h := size / 2
	m := &Mesh{}
	for i := 0; i < 8; i++ {
		v := mathutil.Vec3{-h, -h, -h}
		if i&1 != 0 {
			v[0] = h
		}
		if i&2 != 0 {
			v[1] = h
		}
		if i&4 != 0 {
			v[2] = h
		}
		m.addVert(v, float64(i&1), float64((i>>1)&1))
	}
	for _, f := range cubeFaces {
		m.quad(f[0], f[1], f[2], f[3])
	}
	return m
}

func buildCylinder(base, top, height float64, slices, stacks int) *Mesh {
	m := &Mesh{}
	if slices < 3 || stacks < 1 {
		return m
	}
	for j := 0; j <= stacks; j++ {
		t := float64(j) / float64(stacks)
		r := base + (top-base)*t
		for i := 0; i <= slices; i++ {
			a := 2 * math.Pi * float64(i) / float64(slices)
			m.addVert(mathutil.Vec3{r * math.Cos(a), r * math.Sin(a), height * t}, float64(i)/float64(slices), t)
		}
	}
	ringQuads(m, 0, slices, stacks)
	return m
}

func buildDisk(inner, outer float64, slices, loops int) *Mesh {
	m := &Mesh{}
	if slices < 3 || loops < 1 {
		return m
	}
	for j := 0; j <= loops; j++ {
		t := float64(j) / float64(loops)
		r := inner + (outer-inner)*t
		for i := 0; i <= slices; i++ {
			a := 2 * math.Pi * float64(i) / float64(slices)
			c, s := math.Cos(a), math.Sin(a)
			m.addVert(mathutil.Vec3{r * c, r * s, 0}, 0.5+0.5*c*t, 0.5+0.5*s*t)
		}
	}
	ringQuads(m, 0, slices, loops)
	return m
}

func buildCone(base, height float64, slices, stacks int) *Mesh {
	m := buildCylinder(base, 0, height, slices, stacks)
	if slices < 3 || stacks < 1 {
		return m
	}
	// Base cap faces -Z: fan around the centre with reversed winding.
	centre := m.addVert(mathutil.Vec3{0, 0, 0}, 0.5, 0.5)
	first := m.addVert(mathutil.Vec3{base, 0, 0}, 1, 0.5)
	prev := first
	for i := 1; i <= slices; i++ {
		a := 2 * math.Pi * float64(i) / float64(slices)
		cur := m.addVert(mathutil.Vec3{base * math.Cos(a), base * math.Sin(a), 0}, 0.5+0.5*math.Cos(a), 0.5+0.5*math.Sin(a))
		m.tri(centre, cur, prev)
		prev = cur
	}
	return m
}

func buildTorus(inner, outer float64, sides, rings int) *Mesh {
	m := &Mesh{}
	if sides < 3 || rings < 3 {
		return m
	}
	for j := 0; j <= rings; j++ {
		theta := 2 * math.Pi * float64(j) / float64(rings)
		ct, st := math.Cos(theta), math.Sin(theta)
		for i := 0; i <= sides; i++ {
			phi := 2 * math.Pi * float64(i) / float64(sides)
			d := outer + inner*math.Cos(phi)
			m.addVert(mathutil.Vec3{d * ct, d * st, inner * math.Sin(phi)},
				float64(j)/float64(rings), float64(i)/float64(sides))
		}
	}
	ringQuads(m, 0, sides, rings)
	return m
}

func buildGrid(n int, size float64) *Mesh {
	m := &Mesh{}
	if n < 1 {
		return m
	}
	half := size / 2
	step := size / float64(n)
	for j := 0; j <= n; j++ {
		for i := 0; i <= n; i++ {
			x := -half + step*float64(i)
			z := half - step*float64(j)
			m.addVert(mathutil.Vec3{x, 0, z}, float64(i)/float64(n), float64(j)/float64(n))
		}
	}
	row := int32(n + 1)
	for j := int32(0); j < int32(n); j++ {
		for i := int32(0); i < int32(n); i++ {
			a := j*row + i
			// +X then -Z from a: counter-clockwise seen from +Y.
			m.quad(a, a+1, a+row+1, a+row)
		}
	}
	return m
}

// ringQuads stitches consecutive rings of segs+1 vertices (the seam vertex
// is duplicated) starting at vertex offset off.
func ringQuads(m *Mesh, off int32, segs, rings int) {
	row := int32(segs + 1)
	for j := int32(0); j < int32(rings); j++ {
		for i := int32(0); i < int32(segs); i++ {
			a := off + j*row + i
			m.quad(a, a+1, a+row+1, a+row)
		}
	}
}
