// Package icebreaker supplies the personalized opening sentence inserted
// into every template. Two interchangeable strategies exist: an external
// AI provider with retry and a deterministic local fallback. Neither
// strategy ever surfaces an error to the caller.
package icebreaker

import (
	"context"

	"leadgen/internal/models"
)

// Provider generates one icebreaker sentence for an assignment.
type Provider interface {
	Generate(ctx context.Context, assignment models.Assignment) string
}
