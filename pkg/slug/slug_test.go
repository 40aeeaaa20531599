package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/freshbreeze-api/pkg/slug"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Frutas Doña Inés":         "frutas-dona-ines",
		"  Acme  Groceries, Inc. ": "acme-groceries-inc",
		"Fresh-Breeze":             "fresh-breeze",
		"Café & Pan":               "cafe-pan",
		"":                         "",
	}
	for in, want := range cases {
		assert.Equal(t, want, slug.Make(in), "entrada %q", in)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, slug.Valid("acme"))
	assert.True(t, slug.Valid("fresh-breeze-2"))
	assert.False(t, slug.Valid("www"), "www está reservado")
	assert.False(t, slug.Valid("-acme"))
	assert.False(t, slug.Valid("Acme"))
	assert.False(t, slug.Valid(""))
}
