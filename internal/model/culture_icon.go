// Package model defines the core data structures for the cultiva application.
package model

import "time"

// CultureIcon is a curated mapping from a crop name to its icon and category.
type CultureIcon struct {
	CreatedAt   time.Time `json:"created_at" yaml:"-"`
	CultureName string    `json:"culture_name" yaml:"culture_name"`
	IconName    string    `json:"icon_name" yaml:"icon_name"`
	Category    string    `json:"category" yaml:"category"`
	ID          int64     `json:"id" yaml:"-"`
}
