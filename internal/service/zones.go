package service

// LatitudeBand maps a closed latitude interval to a ward. Real boundary data
// would be polygon geometry; the one-dimensional table is enough for the
// two-ward city split. Bands are evaluated in order and the first match wins.
type LatitudeBand struct {
	WardID string
	MinLat float64
	MaxLat float64
}

// ZoneResolver maps coordinates to an administrative ward. Resolution is total:
// coordinates outside every band fall back to the default ward so that every
// issue stays routable.
type ZoneResolver struct {
	bands         []LatitudeBand
	defaultWardID string
}

func NewZoneResolver(bands []LatitudeBand, defaultWardID string) *ZoneResolver {
	return &ZoneResolver{bands: bands, defaultWardID: defaultWardID}
}

func (r *ZoneResolver) Resolve(lat, lon float64) string {
	for _, b := range r.bands {
		if lat >= b.MinLat && lat <= b.MaxLat {
			return b.WardID
		}
	}
	return r.defaultWardID
}
