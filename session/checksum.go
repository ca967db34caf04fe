package session

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/world"
	"github.com/zeebo/xxh3"
)

// Checksum hashes the parts of a body that the simulation evolves: its controller state, velocity
// and placement. Two bodies fed the same input produce the same checksum on the same tick.
func Checksum(snap world.Snapshot) uint64 {
	buf := make([]byte, 0, 96)
	st := snap.State
	buf = appendFloats(buf, st.Height, st.Pitch, st.Yaw)
	buf = append(buf, st.GroundTick, byte(st.MoveMode), boolByte(st.Grounded), boolByte(st.EnableInput))
	buf = appendVec3(buf, snap.Velocity)
	buf = appendVec3(buf, snap.Transform.Translation)
	buf = appendFloats(buf, snap.Transform.Rotation.W)
	buf = appendVec3(buf, snap.Transform.Rotation.V)
	return xxh3.Hash(buf)
}

func appendVec3(buf []byte, v mgl32.Vec3) []byte {
	return appendFloats(buf, v[0], v[1], v[2])
}

func appendFloats(buf []byte, values ...float32) []byte {
	for _, v := range values {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	return buf
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
