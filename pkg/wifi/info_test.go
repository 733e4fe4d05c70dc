package wifi

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoReset(t *testing.T) {
	i := NewInfo()
	i.MACAddress = "02:00:00:00:00:01"
	i.SSID = "home"
	i.BSSID = "aa:bb:cc:dd:ee:ff"
	i.NetworkID = 5
	i.RSSI = -60
	i.IPAddress = netip.MustParseAddr("192.168.1.20")

	i.Reset()

	assert.Equal(t, "", i.SSID)
	assert.Equal(t, "", i.BSSID)
	assert.Equal(t, InvalidNetworkID, i.NetworkID)
	assert.Equal(t, InvalidRSSI, i.RSSI)
	assert.False(t, i.IPAddress.IsValid())
	assert.Equal(t, "02:00:00:00:00:01", i.MACAddress, "MAC address belongs to the interface")
}

func TestInfoSnapshotDoesNotAlias(t *testing.T) {
	i := NewInfo()
	i.SSID = "home"

	snap := i.Snapshot()
	i.SSID = "work"

	assert.Equal(t, "home", snap.SSID)
}

func TestRSSIHelpers(t *testing.T) {
	t.Run("validity bounds", func(t *testing.T) {
		assert.False(t, ValidRSSI(InvalidRSSI))
		assert.True(t, ValidRSSI(-126))
		assert.True(t, ValidRSSI(-40))
		assert.False(t, ValidRSSI(MaxRSSI))
	})

	t.Run("positive readings are corrected", func(t *testing.T) {
		assert.Equal(t, -56, NormalizeRSSI(200))
		assert.Equal(t, -100, NormalizeRSSI(156))
		assert.Equal(t, -70, NormalizeRSSI(-70))
		assert.Equal(t, InvalidRSSI, NormalizeRSSI(InvalidRSSI))
	})
}

func TestParseNames(t *testing.T) {
	for _, s := range []Security{SecurityOpen, SecurityWPA2PSK, SecurityWPA3SAE, SecurityEAP} {
		got, ok := ParseSecurity(s.String())
		assert.True(t, ok, s.String())
		assert.Equal(t, s, got)
	}
	got, ok := ParseSecurity("psk")
	assert.True(t, ok)
	assert.Equal(t, SecurityWPA2PSK, got)
	_, ok = ParseSecurity("wep")
	assert.False(t, ok)

	mode, ok := ParseOperationalMode("Connect")
	assert.True(t, ok)
	assert.Equal(t, ModeConnect, mode)
	_, ok = ParseOperationalMode("monitor")
	assert.False(t, ok)
}
