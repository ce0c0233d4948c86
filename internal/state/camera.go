package state

import "math"

// Azimuth rotates the camera position about the view-up vector centered at
// the focal point. Positive angles rotate counterclockwise looking down view-up.
func (c Camera) Azimuth(degrees float64) Camera {
	axis, ok := normalize(c.ViewUp)
	if !ok {
		return c
	}
	rel := c.Position.Sub(c.FocalPoint)
	c.Position = c.FocalPoint.Add(rotate(rel, axis, degrees*math.Pi/180))
	return c
}

// OrthogonalizeViewUp makes view-up perpendicular to the direction of
// projection. A view-up parallel to the view direction is left unchanged.
func (c Camera) OrthogonalizeViewUp() Camera {
	dir, ok := normalize(c.FocalPoint.Sub(c.Position))
	if !ok {
		return c
	}
	right, ok := normalize(dir.Cross(c.ViewUp))
	if !ok {
		return c
	}
	c.ViewUp = right.Cross(dir)
	return c
}

// rotate applies Rodrigues' rotation of v about unit axis k by theta radians.
func rotate(v, k Vec3, theta float64) Vec3 {
	cos, sin := math.Cos(theta), math.Sin(theta)
	return v.Scale(cos).
		Add(k.Cross(v).Scale(sin)).
		Add(k.Scale(k.Dot(v) * (1 - cos)))
}

func normalize(v Vec3) (Vec3, bool) {
	n := math.Sqrt(v.Dot(v))
	if n == 0 || math.IsNaN(n) {
		return v, false
	}
	return v.Scale(1 / n), true
}
