// Package playerbody owns the player's physical simulation: position,
// velocity, water/air integration, swept-AABB collision resolution, and the
// camera-height smoothing that rides on top of it. It knows nothing about
// input devices or rendering — Update takes a plain Intent each tick.
package playerbody

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxelcraft/internal/profiling"
	"voxelcraft/internal/world"
)

const (
	HalfWidth = 0.3
	Height    = 1.62
	EyeHeight = 1.52

	maxDT = 0.1

	walkSpeed   = 4.3
	sprintSpeed = 7.0
	swimSpeed   = 3.0

	airGravity   = 25.0
	airJumpSpeed = 9.0
	waterGravity = 5.0
	waterDamping = 0.85
	waterJumpVY  = 3.0
	waterSneakVY = -3.0
	waterVYClamp = 3.0

	cameraLerpRate = 15.0
)

// Intent is the per-tick movement request handed to the body by whatever
// reads input — kept entirely separate from the simulation itself.
type Intent struct {
	Forward, Strafe float32 // in [-1,1], camera-relative
	Sprint          bool
	Jump            bool
	Sneak           bool
	Yaw             float32 // degrees, for camera-relative movement
}

// Body is the player's physical state: feet position, velocity, and the
// smoothed camera Y used for eye-bob-free rendering.
type Body struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	OnGround bool

	// InWater is sampled from the four foot corners (feet and just-below-feet
	// cells) and drives which integration branch §4.6 step 3 takes.
	// HeadInWater is sampled separately at eye height; it has no effect on
	// integration (a player can wade with feet submerged and head in air).
	InWater     bool
	HeadInWater bool

	// CameraY lags Position.Y by a 15*dt lerp, decoupled from the physics
	// step so stair and step-up snaps don't visibly jerk the camera.
	CameraY float32
}

// New places a body with its feet at pos.
func New(pos mgl32.Vec3) *Body {
	return &Body{Position: pos, CameraY: pos.Y()}
}

// EyePosition returns the camera's world position this frame.
func (b *Body) EyePosition() mgl32.Vec3 {
	return mgl32.Vec3{b.Position.X(), b.CameraY + EyeHeight, b.Position.Z()}
}

// Update advances the body by dt (clamped to maxDT) given intent and store.
func (b *Body) Update(store *world.Store, intent Intent, dt float64) {
	defer profiling.Track("playerbody.Update")()
	if dt > maxDT {
		dt = maxDT
	}
	fdt := float32(dt)

	b.InWater = feetInWater(store, b.Position, HalfWidth)
	b.HeadInWater = headInWater(store, b.Position, EyeHeight)
	b.integrateVertical(b.InWater, intent, fdt)
	b.integrateHorizontal(b.InWater, intent, fdt)
	b.resolveCollisions(store, fdt)

	lerpT := cameraLerpRate * fdt
	if lerpT > 1 {
		lerpT = 1
	}
	b.CameraY += (b.Position.Y() - b.CameraY) * lerpT
}

func (b *Body) integrateVertical(inWater bool, intent Intent, dt float32) {
	if inWater {
		b.Velocity[1] -= waterGravity * dt
		b.Velocity[1] *= waterDamping
		if b.Velocity[1] > waterVYClamp {
			b.Velocity[1] = waterVYClamp
		}
		if b.Velocity[1] < -waterVYClamp {
			b.Velocity[1] = -waterVYClamp
		}
		if intent.Jump {
			b.Velocity[1] = waterJumpVY
		} else if intent.Sneak {
			b.Velocity[1] = waterSneakVY
		}
		return
	}

	b.Velocity[1] -= airGravity * dt
	if intent.Jump && b.OnGround {
		b.Velocity[1] = airJumpSpeed
	}
}

func (b *Body) integrateHorizontal(inWater bool, intent Intent, dt float32) {
	forward := intent.Forward
	strafe := intent.Strafe
	if forward == 0 && strafe == 0 {
		b.Velocity[0] = 0
		b.Velocity[2] = 0
		return
	}

	speed := walkSpeed
	switch {
	case inWater:
		speed = swimSpeed
	case intent.Sprint:
		speed = sprintSpeed
	}

	yawRad := mgl32.DegToRad(intent.Yaw)
	frontX, frontZ := cos32(yawRad), sin32(yawRad)
	rightX, rightZ := cos32(yawRad+mgl32.DegToRad(90)), sin32(yawRad+mgl32.DegToRad(90))

	dirX := frontX*forward + rightX*strafe
	dirZ := frontZ*forward + rightZ*strafe
	length := sqrt32(dirX*dirX + dirZ*dirZ)
	if length > 0 {
		dirX /= length
		dirZ /= length
	}

	b.Velocity[0] = dirX * speed
	b.Velocity[2] = dirZ * speed
}
