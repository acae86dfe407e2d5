package order

import (
	"math/rand"
	"strconv"
	"time"
)

const orderNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewOrderNumber generates the public tracking token: "JF" + the last six
// digits of the epoch-millis timestamp + four random base36 characters,
// e.g. JF123456AB7C. The database enforces uniqueness.
func NewOrderNumber() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	ts = ts[len(ts)-6:]

	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = orderNumberAlphabet[rand.Intn(len(orderNumberAlphabet))]
	}

	return "JF" + ts + string(suffix)
}
