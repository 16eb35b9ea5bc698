package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/anjiri1684/college_review/assets"
	"github.com/anjiri1684/college_review/models"
)

var (
	categoriesOnce sync.Once
	categories     []string
	categoriesErr  error
)

// GetInstitutions returns the college names from the ledger in ascending
// order. Results are cached for CollegesTTL. On failure the list is empty and
// the error says why.
func (s *SyncService) GetInstitutions(ctx context.Context) ([]string, error) {
	s.collegesMu.RLock()
	if s.colleges != nil && s.now().Sub(s.collegesFetched) < s.opts.CollegesTTL {
		names := append(s.colleges[:0:0], s.colleges...)
		s.collegesMu.RUnlock()
		return names, nil
	}
	s.collegesMu.RUnlock()

	docs, err := s.ledger.List(ctx, models.CollectionColleges)
	if err != nil {
		log.Printf("🔥 Failed to fetch colleges: %v", err)
		return []string{}, fmt.Errorf("fetch colleges: %w", err)
	}

	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		if name := stringField(doc.Data, "name"); name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	s.collegesMu.Lock()
	s.colleges = names
	s.collegesFetched = s.now()
	s.collegesMu.Unlock()

	return append(names[:0:0], names...), nil
}

// GetCategories returns the bundled category labels, sorted. The bundle is
// parsed once per process.
func (s *SyncService) GetCategories() ([]string, error) {
	categoriesOnce.Do(func() {
		categories, categoriesErr = ParseCategories(assets.Categories)
		if categoriesErr != nil {
			log.Printf("🔥 Failed to load bundled categories: %v", categoriesErr)
		}
	})
	if categoriesErr != nil {
		return []string{}, categoriesErr
	}
	return append(categories[:0:0], categories...), nil
}

// ImportColleges uploads the bundled college list into the ledger in one
// batch and drops the cached names.
func (s *SyncService) ImportColleges(ctx context.Context) (int, error) {
	colleges, err := ParseColleges(assets.Colleges)
	if err != nil {
		return 0, err
	}

	bodies := make([]map[string]interface{}, 0, len(colleges))
	for _, c := range colleges {
		bodies = append(bodies, collegeDocument(c))
	}

	n, err := s.ledger.AddBatch(ctx, models.CollectionColleges, bodies)
	if err != nil {
		return 0, fmt.Errorf("import colleges: %w", err)
	}

	s.collegesMu.Lock()
	s.colleges = nil
	s.collegesMu.Unlock()

	log.Printf("✅ Imported %d college(s)", n)
	return n, nil
}

func ParseCategories(raw []byte) ([]string, error) {
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}
	sort.Strings(list)
	return list, nil
}

// ParseColleges reads a JSON array of colleges. Entries without a name are
// dropped.
func ParseColleges(raw []byte) ([]models.College, error) {
	var list []models.College
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("parse colleges: %w", err)
	}

	out := make([]models.College, 0, len(list))
	for _, c := range list {
		if c.Name == "" {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func collegeDocument(c models.College) map[string]interface{} {
	body := map[string]interface{}{"name": c.Name}
	if c.Type != "" {
		body["type"] = c.Type
	}
	if c.Location != nil {
		loc := map[string]interface{}{}
		if c.Location.City != "" {
			loc["city"] = c.Location.City
		}
		if c.Location.State != "" {
			loc["state"] = c.Location.State
		}
		if c.Location.Country != "" {
			loc["country"] = c.Location.Country
		}
		body["location"] = loc
	}
	return body
}
