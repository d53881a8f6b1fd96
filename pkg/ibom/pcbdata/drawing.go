package pcbdata

import "encoding/json"

// Drawing is a render-ready primitive: Segment, Circle, Arc, Polygon or Text.
// Every drawing serializes with a "type" tag.
type Drawing interface {
	Type() string
}

// Segment is a straight stroke.
type Segment struct {
	Start Point   `json:"start"`
	End   Point   `json:"end"`
	Width float64 `json:"width"`
}

// Circle is a stroked circle; Start is the centre.
type Circle struct {
	Start  Point   `json:"start"`
	Radius float64 `json:"radius"`
	Width  float64 `json:"width"`
}

// Arc is a stroked arc around Start. StartAngle <= EndAngle always holds.
type Arc struct {
	Start      Point   `json:"start"`
	Radius     float64 `json:"radius"`
	StartAngle float64 `json:"startangle"`
	EndAngle   float64 `json:"endangle"`
	Width      float64 `json:"width"`
}

// Polygon is a filled polygon set drawn at Pos, rotated by Angle.
type Polygon struct {
	Pos      Point     `json:"pos"`
	Angle    float64   `json:"angle"`
	Polygons [][]Point `json:"polygons"`
}

// Text is a stroked text label.
type Text struct {
	Pos          Point   `json:"pos"`
	Text         string  `json:"text"`
	Height       float64 `json:"height"`
	Width        float64 `json:"width"`
	HorizJustify int     `json:"horiz_justify"`
	Angle        float64 `json:"angle"`
}

func (Segment) Type() string { return "segment" }
func (Circle) Type() string  { return "circle" }
func (Arc) Type() string     { return "arc" }
func (Polygon) Type() string { return "polygon" }
func (Text) Type() string    { return "text" }

func (d Segment) MarshalJSON() ([]byte, error) {
	type plain Segment
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{d.Type(), plain(d)})
}

func (d Circle) MarshalJSON() ([]byte, error) {
	type plain Circle
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{d.Type(), plain(d)})
}

func (d Arc) MarshalJSON() ([]byte, error) {
	type plain Arc
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{d.Type(), plain(d)})
}

func (d Polygon) MarshalJSON() ([]byte, error) {
	type plain Polygon
	polygons := d.Polygons
	if polygons == nil {
		polygons = [][]Point{}
	}
	d.Polygons = polygons
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{d.Type(), plain(d)})
}

func (d Text) MarshalJSON() ([]byte, error) {
	type plain Text
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{d.Type(), plain(d)})
}
