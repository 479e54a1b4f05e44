package models

// Island identifies a jurisdiction whose lottery results are tracked.
// The set of islands is reference data fixed at process start.
type Island struct {
	Key  string `json:"key" bson:"key"`
	Name string `json:"name" bson:"name"`
	Flag string `json:"flag" bson:"flag"`
}

// DefaultIslands is the compiled-in island registry. Config may replace
// it at startup but nothing mutates it afterwards.
var DefaultIslands = []Island{
	{Key: "st-lucia", Name: "Saint Lucia", Flag: "🇱🇨"},
	{Key: "dominica", Name: "Dominica", Flag: "🇩🇲"},
	{Key: "st-vincent", Name: "Saint Vincent & the Grenadines", Flag: "🇻🇨"},
	{Key: "grenada", Name: "Grenada", Flag: "🇬🇩"},
	{Key: "antigua", Name: "Antigua & Barbuda", Flag: "🇦🇬"},
	{Key: "st-kitts", Name: "Saint Kitts & Nevis", Flag: "🇰🇳"},
	{Key: "barbados", Name: "Barbados", Flag: "🇧🇧"},
}

// FindIsland looks up an island by key in the given registry.
func FindIsland(islands []Island, key string) (Island, bool) {
	for _, island := range islands {
		if island.Key == key {
			return island, true
		}
	}
	return Island{}, false
}
