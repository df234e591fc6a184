package utils

import (
	"crypto/rand"
	"fmt"
	"time"
)

const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const referenceSuffixLength = 6

// MaxReferenceLength is the upper bound on a sender reference, matching the
// width of the swift_transactions.reference column. The longest generated
// form is SBLC + YYYYMMDD + 6 = 18 characters, well inside the bound.
const MaxReferenceLength = 32

// rejection sampling threshold: bytes at or above this value would wrap
// unevenly onto the 36-character alphabet and are redrawn.
const maxUnbiasedByte = byte(len(referenceAlphabet) * (256 / len(referenceAlphabet)))

// GenerateMessageReference builds a SWIFT sender reference of the form
// <prefix><YYYYMMDD><6 random uppercase-alphanumeric characters>, e.g.
// SBLC20250115X7K2Q9. Randomness comes from crypto/rand so references are
// not guessable across instances.
func GenerateMessageReference(prefix string, now time.Time) (string, error) {
	suffix := make([]byte, 0, referenceSuffixLength)
	buf := make([]byte, referenceSuffixLength)
	for len(suffix) < referenceSuffixLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if b >= maxUnbiasedByte {
				continue
			}
			suffix = append(suffix, referenceAlphabet[int(b)%len(referenceAlphabet)])
			if len(suffix) == referenceSuffixLength {
				break
			}
		}
	}
	return fmt.Sprintf("%s%s%s", prefix, now.Format("20060102"), string(suffix)), nil
}
