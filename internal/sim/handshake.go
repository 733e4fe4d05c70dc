package sim

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"
)

const (
	pmkIterations = 4096
	pmkLen        = 32
	kckLen        = 16
	nonceLen      = 32
)

var kckInfo = []byte("stactl four-way handshake kck")

// derivePMK computes the pairwise master key for a WPA2 passphrase.
func derivePMK(passphrase, ssid string) []byte {
	return pbkdf2.Key([]byte(passphrase), []byte(ssid), pmkIterations, pmkLen, sha1.New)
}

// handshakeMIC derives a key confirmation key from the PMK and both nonces
// and authenticates msg with it.
func handshakeMIC(pmk, anonce, snonce, msg []byte) ([]byte, error) {
	salt := make([]byte, 0, len(anonce)+len(snonce))
	salt = append(salt, anonce...)
	salt = append(salt, snonce...)

	kck := make([]byte, kckLen)
	if _, err := io.ReadFull(hkdf.New(sha256.New, pmk, salt, kckInfo), kck); err != nil {
		return nil, fmt.Errorf("derive kck: %w", err)
	}
	mac := hmac.New(sha256.New, kck)
	mac.Write(msg)
	return mac.Sum(nil), nil
}

// fourWayHandshake runs the key confirmation between a station holding
// passphrase and ap. It reports whether both sides derived the same keys.
func fourWayHandshake(passphrase string, ap AccessPoint) (bool, error) {
	anonce := make([]byte, nonceLen)
	snonce := make([]byte, nonceLen)
	if _, err := rand.Read(anonce); err != nil {
		return false, fmt.Errorf("anonce: %w", err)
	}
	if _, err := rand.Read(snonce); err != nil {
		return false, fmt.Errorf("snonce: %w", err)
	}
	msg := []byte(ap.BSSID)

	sta, err := handshakeMIC(derivePMK(passphrase, ap.SSID), anonce, snonce, msg)
	if err != nil {
		return false, err
	}
	auth, err := handshakeMIC(derivePMK(ap.Passphrase, ap.SSID), anonce, snonce, msg)
	if err != nil {
		return false, err
	}
	return hmac.Equal(sta, auth), nil
}
