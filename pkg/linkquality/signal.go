package linkquality

// Signal level bucket bounds in dBm.
const (
	LevelMinRSSI = -100
	LevelMaxRSSI = -55

	// DefaultLevels is the number of signal level buckets.
	DefaultLevels = 5
)

// SignalLevel maps rssi onto levels buckets, 0 being the weakest.
func SignalLevel(rssi, levels int) int {
	if levels < 2 {
		return 0
	}
	switch {
	case rssi <= LevelMinRSSI:
		return 0
	case rssi >= LevelMaxRSSI:
		return levels - 1
	}
	return (rssi - LevelMinRSSI) * (levels - 1) / (LevelMaxRSSI - LevelMinRSSI)
}
