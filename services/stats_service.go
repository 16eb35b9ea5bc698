package services

import (
	"context"
	"sort"

	"github.com/anjiri1684/college_review/models"
)

// Summarize groups reviews by college name and averages their ratings.
//
// Names are compared exactly, so "MIT" and "mit" are two colleges. Unrated
// reviews (rating 0) are counted and averaged like any other. The result is
// ordered by review count, largest first; colleges with equal counts keep the
// order in which they first appear in reviews.
func Summarize(reviews []models.Review) []models.CollegeStats {
	type group struct {
		total float64
		count int
	}

	groups := make(map[string]*group)
	order := []string{}
	for _, r := range reviews {
		g, ok := groups[r.CollegeName]
		if !ok {
			g = &group{}
			groups[r.CollegeName] = g
			order = append(order, r.CollegeName)
		}
		g.total += r.Rating
		g.count++
	}

	stats := make([]models.CollegeStats, 0, len(order))
	for _, name := range order {
		g := groups[name]
		stats = append(stats, models.CollegeStats{
			CollegeName:   name,
			AverageRating: g.total / float64(g.count),
			ReviewCount:   g.count,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].ReviewCount > stats[j].ReviewCount
	})
	return stats
}

// SortByRating returns a copy of stats ordered by average rating, best first.
func SortByRating(stats []models.CollegeStats) []models.CollegeStats {
	sorted := make([]models.CollegeStats, len(stats))
	copy(sorted, stats)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AverageRating > sorted[j].AverageRating
	})
	return sorted
}

// ReviewsFor keeps the reviews of one college, preserving their order.
func ReviewsFor(reviews []models.Review, collegeName string) []models.Review {
	out := []models.Review{}
	for _, r := range reviews {
		if r.CollegeName == collegeName {
			out = append(out, r)
		}
	}
	return out
}

type ReviewFeed interface {
	ObserveAll(ctx context.Context) (<-chan []models.Review, error)
}

// ObserveStats recomputes the summary every time the review list changes.
// Like the review feed, a slow reader only gets the latest summary.
func ObserveStats(ctx context.Context, feed ReviewFeed) (<-chan []models.CollegeStats, error) {
	reviews, err := feed.ObserveAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan []models.CollegeStats, 1)
	go func() {
		defer close(out)
		for snapshot := range reviews {
			stats := Summarize(snapshot)
			select {
			case <-out:
			default:
			}
			out <- stats
		}
	}()
	return out, nil
}
