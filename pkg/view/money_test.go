package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	cases := map[int64]string{
		0:       "R$ 0,00",
		5:       "R$ 0,05",
		800:     "R$ 8,00",
		2100:    "R$ 21,00",
		123456:  "R$ 1.234,56",
		-1500:   "-R$ 15,00",
		1000000: "R$ 10.000,00",
	}
	for cents, want := range cases {
		assert.Equal(t, want, FormatBRL(cents), "cents=%d", cents)
	}
}
