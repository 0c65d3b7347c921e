// Package xform implements a scoped stack of composed affine transforms.
//
// Every operation right-multiplies the top of the stack, so the last call
// made before drawing is the first applied to a primitive's vertices.
package xform

import "robot3d/internal/mathutil"

// Stack is a mutable stack of 4×4 transforms. The zero value is not usable;
// call New.
type Stack struct {
	frames []mathutil.Mat4
}

// New returns a stack holding a single identity transform.
func New() *Stack {
	return NewAt(mathutil.Mat4Identity())
}

// NewAt returns a stack whose root transform is m.
func NewAt(m mathutil.Mat4) *Stack {
	s := &Stack{frames: make([]mathutil.Mat4, 1, 16)}
	s.frames[0] = m
	return s
}

// Top returns the current transform.
func (s *Stack) Top() mathutil.Mat4 {
	return s.frames[len(s.frames)-1]
}

// Depth returns the number of transforms on the stack (1 at the root).
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Push duplicates the top transform.
func (s *Stack) Push() {
	s.frames = append(s.frames, s.Top())
}

// Pop discards the top transform. The root is never popped.
func (s *Stack) Pop() {
	if len(s.frames) > 1 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// Scope runs fn between a Push and a Pop. The Pop is deferred, so the parent
// transform is restored even if fn panics.
func (s *Stack) Scope(fn func()) {
	s.Push()
	defer s.Pop()
	fn()
}

// Mul right-multiplies the top by m.
func (s *Stack) Mul(m mathutil.Mat4) {
	i := len(s.frames) - 1
	s.frames[i] = mathutil.Mat4Mul(s.frames[i], m)
}

func (s *Stack) Translate(x, y, z float64) {
	s.Mul(mathutil.Translation(mathutil.Vec3{x, y, z}))
}

// Rotate applies deg degrees about the axis (ax, ay, az).
func (s *Stack) Rotate(deg, ax, ay, az float64) {
	s.Mul(mathutil.Rotation(deg, mathutil.Vec3{ax, ay, az}))
}

func (s *Stack) Scale(x, y, z float64) {
	s.Mul(mathutil.Scaling(mathutil.Vec3{x, y, z}))
}

// Sandwich applies translate(pre), rotate(deg, axis), translate(post).
// With post == -pre this rotates about the point pre; the rig also uses
// sandwiches whose halves do not cancel, so both offsets are explicit.
func (s *Stack) Sandwich(pre mathutil.Vec3, deg float64, axis mathutil.Vec3, post mathutil.Vec3) {
	s.Translate(pre[0], pre[1], pre[2])
	s.Rotate(deg, axis[0], axis[1], axis[2])
	s.Translate(post[0], post[1], post[2])
}
