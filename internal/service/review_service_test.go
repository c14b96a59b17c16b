package service

import (
	"testing"

	"github.com/elkdev72/ecommerce-prj/internal/repository"

	"github.com/stretchr/testify/require"
)

func TestReviewInactiveUntilActivated(t *testing.T) {
	svc := setupServiceTest(t)
	user := svc.mustUser(t, "reviewer")
	product := svc.mustProduct(t, "Kettle", "25.00", nil)

	review, err := svc.review.Submit(SubmitReviewInput{
		UserID:    &user.ID,
		ProductID: product.ID,
		Review:    strPtr("Boils fast"),
		Rating:    3,
	})
	require.NoError(t, err)
	require.False(t, review.Active)
	require.Equal(t, "★★★☆☆", review.RatingLabel())

	active, err := svc.review.ListActive()
	require.NoError(t, err)
	require.Empty(t, active)

	rating, err := svc.review.ProductRating(product.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, rating.Count)

	_, err = svc.review.Activate(review.ID)
	require.NoError(t, err)

	active, err = svc.review.ListActive()
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, review.ID, active[0].ID)

	rating, err = svc.review.ProductRating(product.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, rating.Count)
	require.InDelta(t, 3.0, rating.Average, 0.001)

	_, err = svc.review.Deactivate(review.ID)
	require.NoError(t, err)
	onlyActive, err := svc.review.ListByProduct(product.ID, true)
	require.NoError(t, err)
	require.Empty(t, onlyActive)
	all, err := svc.review.ListByProduct(product.ID, false)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestReviewAverageIgnoresHidden(t *testing.T) {
	svc := setupServiceTest(t)
	product := svc.mustProduct(t, "Toaster", "40.00", nil)

	for _, rating := range []int{5, 4, 1} {
		review, err := svc.review.Submit(SubmitReviewInput{ProductID: product.ID, Rating: rating})
		require.NoError(t, err)
		if rating != 1 {
			_, err = svc.review.Activate(review.ID)
			require.NoError(t, err)
		}
	}

	rating, err := svc.review.ProductRating(product.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, rating.Count)
	require.InDelta(t, 4.5, rating.Average, 0.001)

	reviews, total, err := svc.review.List(repository.ReviewListFilter{ProductID: &product.ID})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, reviews, 3)
}

func TestReviewValidationAndReply(t *testing.T) {
	svc := setupServiceTest(t)
	product := svc.mustProduct(t, "Blender", "60.00", nil)

	for _, rating := range []int{0, 6} {
		_, err := svc.review.Submit(SubmitReviewInput{ProductID: product.ID, Rating: rating})
		requireValidationError(t, err, "Rating", ErrRatingInvalid)
	}

	_, err := svc.review.Submit(SubmitReviewInput{ProductID: 4242, Rating: 5})
	require.ErrorIs(t, err, ErrProductNotFound)

	review, err := svc.review.Submit(SubmitReviewInput{ProductID: product.ID, Rating: 5})
	require.NoError(t, err)

	_, err = svc.review.Reply(review.ID, "  ")
	requireValidationError(t, err, "Reply", ErrInvalidInput)

	replied, err := svc.review.Reply(review.ID, "Thanks!")
	require.NoError(t, err)
	require.Equal(t, "Thanks!", *replied.Reply)

	loaded, err := svc.review.Get(review.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Reply)
	require.Equal(t, "Thanks!", *loaded.Reply)

	require.NoError(t, svc.review.Delete(review.ID))
	_, err = svc.review.Get(review.ID)
	require.ErrorIs(t, err, ErrReviewNotFound)
}
