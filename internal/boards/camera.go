package boards

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/srobo/sbot-simulator/internal/devices"
)

// CameraBoard implements the long dialect for the Student Robotics camera
// board (spec.md §4.3.1, §6).
type CameraBoard struct {
	Identity
	camera        *devices.Camera
	width         int
	height        int
	horizontalFOV float64 // radians
}

func NewCameraBoard(assetTag string, camera *devices.Camera, width, height int, horizontalFOV float64) *CameraBoard {
	return &CameraBoard{
		Identity:      Identity{BoardCode: "CAMv1a", AssetTag: assetTag},
		camera:        camera,
		width:         width,
		height:        height,
		horizontalFOV: horizontalFOV,
	}
}

func (b *CameraBoard) Handle(cmd string) Reply {
	toks := splitTokens(cmd)
	switch toks[0] {
	case "*IDN?":
		return b.IDN()
	case "*STATUS?":
		return ACK()
	case "*RESET":
		return ACK()
	case "CAM":
		return b.handleCam(toks)
	default:
		return NACK("Unknown command")
	}
}

func (b *CameraBoard) handleCam(toks []string) Reply {
	if len(toks) < 2 {
		return NACK("Unknown command")
	}
	switch toks[1] {
	case "CALIBRATION?":
		return TextReply(b.calibration())
	case "RESOLUTION?":
		return TextReply(strconv.Itoa(b.width) + ":" + strconv.Itoa(b.height))
	case "FRAME!":
		return b.frame()
	default:
		return NACK("Unknown command")
	}
}

// calibration derives fx=fy=(w/2)/tan(fov/2), cx=w//2, cy=h//2 (spec.md
// §4.2), formatted with Go's default float formatting as the spec allows.
func (b *CameraBoard) calibration() string {
	fx := (float64(b.width) / 2) / math.Tan(b.horizontalFOV/2)
	cx := b.width / 2
	cy := b.height / 2
	return strconv.FormatFloat(fx, 'g', -1, 64) + ":" +
		strconv.FormatFloat(fx, 'g', -1, 64) + ":" +
		strconv.Itoa(cx) + ":" + strconv.Itoa(cy)
}

// frame acquires one fresh frame and packages it as a TLV binary reply:
// tag byte 0x00, big-endian u32 length, then raw BGRA pixel data.
func (b *CameraBoard) frame() Reply {
	img := b.camera.Image()
	length := len(img)
	out := make([]byte, 0, 5+length)
	out = append(out, 0x00)
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(length))
	out = append(out, lenBuf[:]...)
	out = append(out, img...)
	return BinaryReply(out)
}
