package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Women's Hair":      "womens-hair",
		"Add-on Services":   "add-on-services",
		"  Men’s Grooming ": "mens-grooming",
		"Kids  &  Teens":    "kids-teens",
		"洗剪吹":               "xi-jian-chui",
		"Color 染发":          "color-ran-fa",
		"":                  "",
	}

	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}
