package seed

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCategories(t *testing.T) {
	categories := DefaultCategories()
	require.Len(t, categories, 8)

	slugs := make([]string, 0, len(categories))
	for i, c := range categories {
		assert.Equal(t, int32(i+1), c.SortOrder)
		assert.True(t, c.IsActive)
		slugs = append(slugs, c.Slug)
	}

	assert.Equal(t, []string{
		"womens-hair",
		"color-services",
		"treatment-services",
		"mens-grooming",
		"specialty-services",
		"texture-services",
		"kids-services",
		"add-on-services",
	}, slugs)
}

func TestDefaultCategoriesReturnsCopies(t *testing.T) {
	first := DefaultCategories()
	first[0].Name = "changed"

	assert.Equal(t, "Women's Hair", DefaultCategories()[0].Name)
}

func TestDefaultServicesCoverEveryCategory(t *testing.T) {
	for _, c := range DefaultCategories() {
		id := uuid.New()
		services := DefaultServices(c.Slug, id)
		require.NotEmpty(t, services, c.Slug)

		for _, s := range services {
			require.NotNil(t, s.CategoryID)
			assert.Equal(t, id, *s.CategoryID)
			assert.Positive(t, s.Duration)
			assert.GreaterOrEqual(t, s.Price, 0.0)
		}
	}
}

func TestDefaultServicesUnknownCategory(t *testing.T) {
	assert.Empty(t, DefaultServices("does-not-exist", uuid.New()))
}
