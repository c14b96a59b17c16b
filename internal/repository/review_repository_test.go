package repository

import (
	"math"
	"testing"

	"github.com/elkdev72/ecommerce-prj/internal/models"
)

func TestReviewInactiveByDefault(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewReviewRepository(db)
	product := createTestProduct(t, db, "Red Shoes", nil)

	review := &models.Review{ProductID: &product.ID, Rating: 3, Review: strPtr("Nice")}
	if err := repo.Create(review); err != nil {
		t.Fatalf("create review failed: %v", err)
	}
	active, err := repo.ListActive()
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("new review should not be active")
	}
	all, err := repo.ListByProduct(product.ID, false)
	if err != nil || len(all) != 1 {
		t.Fatalf("list by product want 1 got %d (%v)", len(all), err)
	}

	if err := repo.SetActive(review.ID, true); err != nil {
		t.Fatalf("activate review failed: %v", err)
	}
	active, err = repo.ListByProduct(product.ID, true)
	if err != nil || len(active) != 1 {
		t.Fatalf("activated review should be listed, got %d (%v)", len(active), err)
	}
}

func TestReviewReplyAndAverage(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewReviewRepository(db)
	product := createTestProduct(t, db, "Red Shoes", nil)

	for _, rating := range []int{5, 4, 1} {
		review := &models.Review{ProductID: &product.ID, Rating: rating}
		if err := repo.Create(review); err != nil {
			t.Fatalf("create review failed: %v", err)
		}
		if rating != 1 {
			if err := repo.SetActive(review.ID, true); err != nil {
				t.Fatalf("activate review failed: %v", err)
			}
		}
		if rating == 5 {
			if err := repo.Reply(review.ID, "Thanks!"); err != nil {
				t.Fatalf("reply failed: %v", err)
			}
			got, err := repo.GetByID(review.ID)
			if err != nil || got == nil || got.Reply == nil || *got.Reply != "Thanks!" {
				t.Fatalf("reply not stored: %v", err)
			}
		}
	}

	avg, total, err := repo.AverageRating(product.ID)
	if err != nil {
		t.Fatalf("average rating failed: %v", err)
	}
	if total != 2 || math.Abs(avg-4.5) > 0.001 {
		t.Fatalf("average want 4.5 over 2 got %.2f over %d", avg, total)
	}
}
