// Package geo contiene el filtro de cercanía por bounding box usado en la búsqueda de candidatos.
package geo

import "math"

const earthRadiusKm = 6371.0

type Point struct {
	Lat float64
	Lng float64
}

// Valid reporta si el punto está dentro de los rangos WGS-84.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// BoundingBox es un rectángulo lat/lng aproximando un radio alrededor de un centro.
// No hay wrap en el antimeridiano.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64

	// AllLongitudes: en los polos el delta de longitud diverge, no se restringe lng.
	AllLongitudes bool
}

// NewBoundingBox calcula la caja:
//
//	latDelta = radius / R              (rad -> grados)
//	lngDelta = radius / (R * cos(lat)) (rad -> grados)
func NewBoundingBox(center Point, radiusKm float64) BoundingBox {
	latDelta := radiansToDegrees(radiusKm / earthRadiusKm)
	lngDelta := radiansToDegrees(radiusKm / (earthRadiusKm * math.Cos(degreesToRadians(center.Lat))))

	b := BoundingBox{
		MinLat: center.Lat - latDelta,
		MaxLat: center.Lat + latDelta,
	}

	if math.IsInf(lngDelta, 0) || math.IsNaN(lngDelta) || math.Abs(lngDelta) >= 180 {
		b.AllLongitudes = true
		b.MinLng, b.MaxLng = -180, 180
		return b
	}

	lngDelta = math.Abs(lngDelta)
	b.MinLng = center.Lng - lngDelta
	b.MaxLng = center.Lng + lngDelta
	return b
}

func (b BoundingBox) Contains(p Point) bool {
	if p.Lat < b.MinLat || p.Lat > b.MaxLat {
		return false
	}
	if b.AllLongitudes {
		return true
	}
	return p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// Filter devuelve los items dentro de la caja centrada en center.
// Si center es nil o radiusKm <= 0 devuelve la entrada sin filtrar.
func Filter[T any](items []T, center *Point, radiusKm float64, position func(T) Point) []T {
	if center == nil || !(radiusKm > 0) {
		return items
	}

	box := NewBoundingBox(*center, radiusKm)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if box.Contains(position(it)) {
			out = append(out, it)
		}
	}
	return out
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func radiansToDegrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
