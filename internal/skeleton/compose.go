// Package skeleton turns a pose into the ordered draw commands of one frame.
package skeleton

import (
	"robot3d/internal/material"
	"robot3d/internal/mathutil"
	"robot3d/internal/mesh"
	"robot3d/internal/pose"
	"robot3d/internal/xform"
)

// DrawCmd draws one primitive with a world transform and material.
type DrawCmd struct {
	Part      string
	Prim      mesh.Primitive
	Transform mathutil.Mat4
	Material  material.Material
	// Texture names an optional texture resolved by the renderer.
	Texture string
}

// Ground placement.
const (
	GroundCells = 16
	GroundSize  = 32.0
	GroundY     = -20.0
)

type composer struct {
	st   *xform.Stack
	mat  material.Material
	cmds []DrawCmd
}

// Compose returns the robot's draw commands for p. It does not modify p.
func Compose(p *pose.State) []DrawCmd {
	c := &composer{st: xform.New(), cmds: make([]DrawCmd, 0, 24)}
	st := c.st

	st.Scope(func() {
		st.Rotate(p.RootHeading, 0, 1, 0)

		// Torso and cannons tilt together at the waist.
		st.Scope(func() {
			st.Rotate(p.TorsoTilt, 1, 0, 0)
			c.torso()
			for _, cn := range Cannons {
				c.cannon(cn, p.CannonSpin)
			}
		})

		for _, lg := range Legs {
			c.leg(lg, p)
		}
	})
	return c.cmds
}

// Ground returns the flat floor mesh under the robot.
func Ground(texture string) DrawCmd {
	return DrawCmd{
		Part:      "ground",
		Prim:      mesh.Grid(GroundCells, GroundSize),
		Transform: mathutil.Translation(mathutil.Vec3{0, GroundY, 0}),
		Material:  material.Grass,
		Texture:   texture,
	}
}

// Scene returns the robot followed by the ground.
func Scene(p *pose.State, groundTexture string) []DrawCmd {
	return append(Compose(p), Ground(groundTexture))
}

// Find returns the first command for part.
func Find(cmds []DrawCmd, part string) (DrawCmd, bool) {
	for _, c := range cmds {
		if c.Part == part {
			return c, true
		}
	}
	return DrawCmd{}, false
}

func (c *composer) bind(m material.Material) {
	c.mat = m
}

func (c *composer) draw(part string, p mesh.Primitive) {
	c.cmds = append(c.cmds, DrawCmd{
		Part:      part,
		Prim:      p,
		Transform: c.st.Top(),
		Material:  c.mat,
	})
}

func (c *composer) torso() {
	c.bind(material.CyanRubber)
	c.st.Scope(func() {
		c.st.Scale(BodyWidth, BodyLength, 2*BodyDepth)
		c.draw("torso", mesh.Cube(1))
	})
}

// cannon draws a barrel ring followed by a chain of parts, each placed
// relative to the one before it.
func (c *composer) cannon(cn CannonSpec, spin float64) {
	st := c.st
	c.bind(material.BlackRubber)

	st.Scope(func() {
		st.Sandwich(cn.Pivot, spin, mathutil.AxisZ, cn.Pivot.Neg())
		st.Translate(cn.Mount[0], cn.Mount[1], cn.Mount[2])

		st.Scope(func() {
			st.Scale(1, 1, 7)
			c.draw(cn.Name+"/ring", mesh.Torus(0.7, 1.0, RoundSlices, RoundStacks))
		})

		c.bind(material.Chrome)
		st.Scope(func() {
			st.Translate(0, 0, -5)
			c.draw(cn.Name+"/cylinder", mesh.Cylinder(2.5, 2.5, 1.0, RoundSlices, RoundStacks))

			st.Scope(func() {
				c.draw(cn.Name+"/back-disk", mesh.Disk(0, 2.5, RoundSlices, 1))

				st.Scope(func() {
					st.Translate(0, 0, 1)
					c.draw(cn.Name+"/front-disk", mesh.Disk(0, 2.5, RoundSlices, 1))

					st.Scope(func() {
						st.Rotate(270, 1, 0, 0)
						st.Translate(0, -7, 1.2)
						c.draw(cn.Name+"/muzzle", mesh.Cone(1, 1, RoundSlices, RoundStacks))
					})
				})
			})
		})
	})
}

func (c *composer) leg(lg LegSpec, p *pose.State) {
	c.st.Scope(func() {
		if lg.HipDriven {
			c.st.Sandwich(lg.HipPre, p.HipAngle, mathutil.AxisX, lg.HipPost)
		}
		c.upperLeg(lg)
		c.lowerLeg(lg, lg.KneeAngle(p))
	})
}

func (c *composer) upperLeg(lg LegSpec) {
	st := c.st
	c.bind(material.Chrome)

	st.Scope(func() {
		st.Translate(lg.Mount[0], lg.Mount[1], lg.Mount[2])

		st.Scope(func() {
			st.Scale(1, 2, 2)
			c.draw(lg.Name+"/hip", mesh.Cube(1))
		})

		st.Scope(func() {
			st.Rotate(lg.ThighTilt, 0, 0, 1)
			st.Translate(0, -1.5, 0)
			st.Scale(1, 2, 1)
			c.draw(lg.Name+"/thigh", mesh.Cube(2))
		})
	})
}

func (c *composer) lowerLeg(lg LegSpec, knee float64) {
	st := c.st
	c.bind(material.BlackRubber)

	st.Scope(func() {
		st.Sandwich(lg.KneePre, knee, mathutil.AxisX, lg.KneePost)
		st.Translate(lg.ShinOffset[0], lg.ShinOffset[1], lg.ShinOffset[2])

		st.Scope(func() {
			st.Scale(1, 4, 1)
			c.draw(lg.Name+"/shin", mesh.Cube(3))
		})

		c.bind(material.Chrome)
		st.Scope(func() {
			st.Translate(0, footDrop, 0)
			// Negative factors flatten and mirror the foot.
			st.Scale(4, -2, -2)
			c.draw(lg.Name+"/foot", mesh.Cube(1))
		})
	})
}
