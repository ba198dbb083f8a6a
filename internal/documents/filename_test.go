package documents

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilename(t *testing.T) {
	cases := []struct {
		business, client, want string
	}{
		{"lumen", "maria jose", "contrato-lumen-maria-jose.pdf"},
		{"lumen", "Maria José", "contrato-lumen-maria-josé.pdf"},
		{"lumen", "  Ana   Paula\tSouza ", "contrato-lumen-ana-paula-souza.pdf"},
		{"Lumen Fotografia", "Ana/..\\\"x\"", "contrato-lumen-fotografia-ana..x.pdf"},
		{"lumen", "", "contrato-lumen-cliente.pdf"},
		{"", "Ana", "contrato-studio-ana.pdf"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Filename(tc.business, tc.client), "client %q", tc.client)
	}
}

func TestSlugifyNormalizesComposedAccents(t *testing.T) {
	decomposed := "Jose\u0301"
	assert.Equal(t, "jos\u00e9", Slugify(decomposed))
}
