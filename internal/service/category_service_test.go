package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategoryCreateDerivesSlug(t *testing.T) {
	svc := setupServiceTest(t)

	category, err := svc.category.Create(CreateCategoryInput{Title: "Running Shoes"})
	require.NoError(t, err)
	require.Equal(t, "running-shoes", category.Slug)
	require.Equal(t, "Running Shoes", category.String())

	explicit, err := svc.category.Create(CreateCategoryInput{Title: "Hats", Slug: "all-hats"})
	require.NoError(t, err)
	require.Equal(t, "all-hats", explicit.Slug)

	_, err = svc.category.Create(CreateCategoryInput{Title: "Running Shoes"})
	require.ErrorIs(t, err, ErrSlugExists)

	loaded, err := svc.category.GetBySlug("all-hats")
	require.NoError(t, err)
	require.Equal(t, explicit.ID, loaded.ID)

	list, err := svc.category.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Hats", list[0].Title)
}

func TestCategoryDeleteDetachesProducts(t *testing.T) {
	svc := setupServiceTest(t)
	category, err := svc.category.Create(CreateCategoryInput{Title: "Bags"})
	require.NoError(t, err)
	product, err := svc.product.Create(CreateProductInput{Name: "Tote", CategoryID: &category.ID})
	require.NoError(t, err)

	require.NoError(t, svc.category.Delete(category.ID))
	_, err = svc.category.Get(category.ID)
	require.ErrorIs(t, err, ErrCategoryNotFound)

	loaded, err := svc.product.Get(product.ID)
	require.NoError(t, err)
	require.Nil(t, loaded.CategoryID)
	require.Nil(t, loaded.Category)
}

func TestCategoryUpdateRejectsTakenSlug(t *testing.T) {
	svc := setupServiceTest(t)
	_, err := svc.category.Create(CreateCategoryInput{Title: "Bags"})
	require.NoError(t, err)
	other, err := svc.category.Create(CreateCategoryInput{Title: "Belts"})
	require.NoError(t, err)

	_, err = svc.category.Update(other.ID, CreateCategoryInput{Title: "Bags"})
	require.ErrorIs(t, err, ErrSlugExists)

	updated, err := svc.category.Update(other.ID, CreateCategoryInput{Title: "Leather Belts"})
	require.NoError(t, err)
	require.Equal(t, "leather-belts", updated.Slug)
}
