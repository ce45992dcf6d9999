// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package camera provides an orbiting perspective camera that looks
// at a target point from a given distance, yaw, and pitch.
package camera

import (
	"fmt"

	"cogentcore.org/volume/math32"
)

// PanScale is the fraction of the orbit distance moved per unit of pan delta.
const PanScale = 0.001

// Camera defines the viewing state for rendering. The Position and Up
// are always derived from Target, Distance, Yaw, and Pitch, and are only
// updated by [Camera.Orbit], [Camera.Zoom], [Camera.Pan], and [Camera.Reset].
type Camera struct {

	// Position is the eye location, derived from the orbit parameters.
	Position math32.Vector3

	// Target is the point the camera looks at and orbits around;
	// it moves with panning.
	Target math32.Vector3

	// Up is the up direction of the camera, derived from the orbit parameters.
	Up math32.Vector3

	// FOV is the vertical field of view in radians.
	FOV float32

	// Near is the distance to the near clipping plane.
	Near float32

	// Far is the distance to the far clipping plane.
	Far float32

	// Yaw is the horizontal orbit angle about the world Y axis,
	// in radians, kept in [0, 2π) by a single wrapping step.
	Yaw float32

	// Pitch is the vertical orbit angle in radians; positive values
	// raise the camera above the target. It is not clamped.
	Pitch float32

	// Distance from the Target to the Position; at least 2*Near.
	Distance float32
}

// New returns a new camera with default values.
func New() *Camera {
	cm := &Camera{}
	cm.Defaults()
	return cm
}

// Defaults sets the default viewing parameters: looking at the origin
// from a distance of 5, with a 45 degree field of view, no yaw,
// and a pitch of π/4.
func (cm *Camera) Defaults() {
	cm.Position = math32.Vec3(0, 0, 5)
	cm.Target = math32.Vector3{}
	cm.Up = math32.Vec3(0, 1, 0)
	cm.FOV = math32.DegToRad(45)
	cm.Near = 0.1
	cm.Far = 100
	cm.Yaw = 0
	cm.Pitch = math32.Pi / 4
	cm.Distance = 5
	cm.updatePosition()
}

// Reset restores the default viewing parameters.
func (cm *Camera) Reset() {
	cm.Defaults()
}

func (cm *Camera) String() string {
	return fmt.Sprintf("Camera{pos: %v, target: %v, yaw: %g, pitch: %g, dist: %g}", cm.Position, cm.Target, cm.Yaw, cm.Pitch, cm.Distance)
}

// ViewMatrix returns the right-handed look-at view matrix.
func (cm *Camera) ViewMatrix() *math32.Matrix4 {
	return math32.NewLookAtView(cm.Position, cm.Target, cm.Up)
}

// ProjectionMatrix returns the perspective projection matrix for
// the given aspect ratio (width / height), mapping depth to [-1, 1].
func (cm *Camera) ProjectionMatrix(aspect float32) *math32.Matrix4 {
	m := &math32.Matrix4{}
	m.SetPerspective(math32.RadToDeg(cm.FOV), aspect, cm.Near, cm.Far)
	return m
}

// Forward returns the normalized direction from the Position to the Target.
func (cm *Camera) Forward() math32.Vector3 {
	return cm.Target.Sub(cm.Position).Normal()
}

// Orbit rotates the camera around the Target by the given yaw and pitch
// deltas, in radians. Yaw is brought back into [0, 2π) by adding or
// subtracting 2π once, so a delta larger than 2π in magnitude leaves it
// out of that range.
func (cm *Camera) Orbit(dYaw, dPitch float32) {
	cm.Yaw += dYaw
	cm.Pitch += dPitch
	if cm.Yaw < 0 {
		cm.Yaw += math32.TwoPi
		// a tiny negative yaw rounds up to a full turn
		if cm.Yaw >= math32.TwoPi {
			cm.Yaw = 0
		}
	} else if cm.Yaw >= math32.TwoPi {
		cm.Yaw -= math32.TwoPi
	}
	cm.updatePosition()
}

// Zoom scales the Distance by 1+d, stopping at 2*Near.
func (cm *Camera) Zoom(d float32) {
	cm.Distance = math32.Max(cm.Distance*(1+d), 2*cm.Near)
	cm.updatePosition()
}

// Pan moves the Target in the plane of the view, by dx along the camera
// right vector and dy along the camera up vector, scaled by the Distance
// and [PanScale].
func (cm *Camera) Pan(dx, dy float32) {
	fwd := cm.Forward()
	right := fwd.Cross(cm.Up).Normal()
	up := right.Cross(fwd).Normal()
	s := cm.Distance * PanScale
	cm.Target.SetAdd(right.MulScalar(dx * s).Add(up.MulScalar(dy * s)))
	cm.updatePosition()
}

// rotation returns the orbit rotation: pitch about the X axis, then yaw about Y.
func (cm *Camera) rotation() math32.Quat {
	qyaw := math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), cm.Yaw)
	qpitch := math32.NewQuatAxisAngle(math32.Vec3(1, 0, 0), -cm.Pitch)
	return qyaw.Mul(qpitch)
}

// updatePosition derives Position and Up from the orbit parameters.
func (cm *Camera) updatePosition() {
	rot := cm.rotation()
	cm.Position = cm.Target.Add(math32.Vec3(0, 0, cm.Distance).MulQuat(rot))
	cm.Up = math32.Vec3(0, 1, 0).MulQuat(rot)
}
