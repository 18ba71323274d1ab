package usecase

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// DefaultReferencePrefix is used when no prefix is configured.
const DefaultReferencePrefix = "TT"

// ReferenceGenerator produces the human-facing order number and the payment
// reference handed to the payment provider. Uniqueness is enforced by storage.
type ReferenceGenerator interface {
	OrderNumber(now time.Time) string
	PaymentReference(now time.Time) string
}

type randomReferenceGenerator struct {
	prefix string
}

func NewReferenceGenerator(prefix string) ReferenceGenerator {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		prefix = DefaultReferencePrefix
	}
	return randomReferenceGenerator{prefix: prefix}
}

// OrderNumber renders PREFIX-<last 6 digits of unix ms><3 random digits>.
func (g randomReferenceGenerator) OrderNumber(now time.Time) string {
	ms := now.UnixMilli() % 1_000_000
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		n = big.NewInt(now.UnixNano() % 1000)
	}
	return fmt.Sprintf("%s-%06d%03d", g.prefix, ms, n.Int64())
}

// PaymentReference renders PREFIX-<unix ms>-<8 uppercase hex>.
func (g randomReferenceGenerator) PaymentReference(now time.Time) string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%s-%d-%08X", g.prefix, now.UnixMilli(), uint32(now.UnixNano()))
	}
	return fmt.Sprintf("%s-%d-%s", g.prefix, now.UnixMilli(), strings.ToUpper(hex.EncodeToString(b)))
}
