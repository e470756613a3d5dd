package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromName(t *testing.T) {
	cases := map[string]string{
		"Espresso":        "espresso",
		"Pão de Queijo":   "pao-de-queijo",
		"Reserva de Mesa": "reserva-de-mesa",
		"  Café  com leite!  ": "cafe-com-leite",
		"":    "item",
		"***": "item",
	}
	for in, want := range cases {
		assert.Equal(t, want, FromName(in), "input %q", in)
	}
}
