package ui

import "splittests/internal/domain"

// Viewer displays a split plan interactively
type Viewer interface {
	View(plan *domain.PlanOutput) error
}
