package utils

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"
)

// Slugify turns a product name into a URL slug ("Gold Ring" → "gold-ring").
func Slugify(name string) string {
	return slug.Make(name)
}

// UniqueSlug derives a slug from name and, when taken reports a collision,
// disambiguates with a numeric suffix (gold-ring, gold-ring-2, gold-ring-3…).
func UniqueSlug(ctx context.Context, name string, taken func(ctx context.Context, slug string) (bool, error)) (string, error) {
	base := Slugify(name)
	candidate := base

	for n := 2; ; n++ {
		exists, err := taken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}
