// Package entity defines the domain models for the assets feature.
package entity

import "time"

// Asset represents a club token registered on a network. The pricing
// pipeline only resolves prices for registered, active assets.
type Asset struct {
	ID        uint      `gorm:"primaryKey"`
	Symbol    string    `gorm:"size:32;not null;uniqueIndex:asset_sym_net,priority:1"`
	Network   string    `gorm:"size:32;not null;uniqueIndex:asset_sym_net,priority:2"`
	Name      string    `gorm:"size:255;not null"`
	IsActive  bool      `gorm:"not null;default:true"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
