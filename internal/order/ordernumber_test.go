package order

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOrderNumberFormat(t *testing.T) {
	format := regexp.MustCompile(`^JF\d{6}[0-9A-Z]{4}$`)

	for i := 0; i < 100; i++ {
		number := NewOrderNumber()
		assert.Regexp(t, format, number)
		assert.Len(t, number, 12)
	}
}
