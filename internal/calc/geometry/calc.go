package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"Radiant/internal/calc/check"
)

type Input struct {
	DxM        float64 `json:"dx_m"`
	DyM        float64 `json:"dy_m"`
	DzM        float64 `json:"dz_m"`
	AngleDeg   float64 `json:"angle_deg"`
	AHandM2    float64 `json:"a_hand_m2"`
	ADeviceM2  float64 `json:"a_device_m2"`
	ViewFactor float64 `json:"view_factor"`
}

// Point is a position in meters, serialized as [x, y, z].
type Point [3]float64

func pointOf(v r3.Vec) Point {
	return Point{v.X, v.Y, v.Z}
}

// Surface is one square panel. Triangles index into Corners and split the
// panel for mesh rendering.
type Surface struct {
	Name      string    `json:"name"`
	SideM     float64   `json:"side_m"`
	Center    Point     `json:"center"`
	Normal    Point     `json:"normal"`
	Corners   [4]Point  `json:"corners"`
	Triangles [2][3]int `json:"triangles"`
}

type Layout struct {
	XRange [2]float64 `json:"x_range"`
	YRange [2]float64 `json:"y_range"`
	ZRange [2]float64 `json:"z_range"`
	Aspect string     `json:"aspect"`
}

type Scene struct {
	Hand       Surface  `json:"hand"`
	Device     Surface  `json:"device"`
	Centerline [2]Point `json:"centerline"`
	Label      string   `json:"label"`
	Layout     Layout   `json:"layout"`
}

// DefaultLayout is the fixed plot volume, meters.
var DefaultLayout = Layout{
	XRange: [2]float64{-0.2, 0.2},
	YRange: [2]float64{-0.2, 0.2},
	ZRange: [2]float64{0, 0.2},
	Aspect: "cube",
}

// corner sign pattern, counter-clockwise seen from +z
var signs = [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

var panelTriangles = [2][3]int{{0, 1, 2}, {0, 2, 3}}

// BuildScene reconstructs both panels for plotting. The view factor only
// feeds the label.
func BuildScene(dx, dy, dz, angleDeg, aHand, aDevice, viewFactor float64) (Scene, error) {
	if err := check.Finite("dx_m", dx, "dy_m", dy, "dz_m", dz, "angle_deg", angleDeg, "view_factor", viewFactor); err != nil {
		return Scene{}, err
	}
	if err := check.Area("a_hand_m2", aHand); err != nil {
		return Scene{}, err
	}
	if err := check.Area("a_device_m2", aDevice); err != nil {
		return Scene{}, err
	}

	theta := angleDeg * (math.Pi / 180)
	center := r3.Vec{X: dx, Y: dy, Z: dz}

	hand := square("hand", math.Sqrt(aHand), r3.Vec{}, 0)
	device := square("device", math.Sqrt(aDevice), center, theta)

	return Scene{
		Hand:       hand,
		Device:     device,
		Centerline: [2]Point{pointOf(r3.Vec{}), pointOf(center)},
		Label:      fmt.Sprintf("F12 = %.2f", viewFactor),
		Layout:     DefaultLayout,
	}, nil
}

// square lays out a panel of the given side in the xy plane, tilts it by
// theta about the x axis and moves it to center.
func square(name string, side float64, center r3.Vec, theta float64) Surface {
	half := side / 2
	s := Surface{
		Name:      name,
		SideM:     side,
		Center:    pointOf(center),
		Normal:    pointOf(rotateX(r3.Vec{Z: 1}, theta)),
		Triangles: panelTriangles,
	}
	for i, sg := range signs {
		local := rotateX(r3.Vec{X: sg[0] * half, Y: sg[1] * half}, theta)
		s.Corners[i] = pointOf(r3.Add(center, local))
	}
	return s
}

// rotateX turns v about the x axis. Kept explicit so an untilted panel stays
// exactly flat.
func rotateX(v r3.Vec, theta float64) r3.Vec {
	if theta == 0 {
		return v
	}
	c, s := math.Cos(theta), math.Sin(theta)
	return r3.Vec{
		X: v.X,
		Y: v.Y*c - v.Z*s,
		Z: v.Y*s + v.Z*c,
	}
}

func Calculate(in Input) (Scene, error) {
	scene, err := BuildScene(in.DxM, in.DyM, in.DzM, in.AngleDeg, in.AHandM2, in.ADeviceM2, in.ViewFactor)
	if err != nil {
		return Scene{}, fmt.Errorf("geometry: %w", err)
	}
	return scene, nil
}

// Mesh flattens the scene into vertex columns and triangle index columns,
// the shape 3-D mesh plotting libraries take. Device vertices follow the
// four hand vertices.
type Mesh struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
	Z []float64 `json:"z"`
	I []int     `json:"i"`
	J []int     `json:"j"`
	K []int     `json:"k"`
}

func (s Scene) Mesh() Mesh {
	var m Mesh
	for n, surf := range []Surface{s.Hand, s.Device} {
		base := n * len(surf.Corners)
		for _, c := range surf.Corners {
			m.X = append(m.X, c[0])
			m.Y = append(m.Y, c[1])
			m.Z = append(m.Z, c[2])
		}
		for _, tri := range surf.Triangles {
			m.I = append(m.I, base+tri[0])
			m.J = append(m.J, base+tri[1])
			m.K = append(m.K, base+tri[2])
		}
	}
	return m
}
