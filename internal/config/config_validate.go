// Discograph - Music Catalog Analytics and Discovery
// Copyright 2026 Discograph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/discograph/discograph

package config

import (
	"fmt"

	"github.com/discograph/discograph/internal/validation"
)

// Validate checks the configuration for invalid or inconsistent values.
// Struct-tag rules run first; cross-field rules that tags cannot express
// follow.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	if c.Recommend.CacheTTL <= 0 {
		return fmt.Errorf("recommend.cache_ttl must be positive, got %s", c.Recommend.CacheTTL)
	}
	if c.Recommend.RecentWindow <= 0 {
		return fmt.Errorf("recommend.recent_window must be positive, got %s", c.Recommend.RecentWindow)
	}
	if c.Mongo.ConnectTimeout <= 0 {
		return fmt.Errorf("mongo.connect_timeout must be positive, got %s", c.Mongo.ConnectTimeout)
	}
	for _, g := range c.Collab.TargetGenres {
		if g == "" {
			return fmt.Errorf("collab.target_genres must not contain empty entries")
		}
	}
	if c.Analytics.DefaultLabelLimit > c.Analytics.MaxLabelLimit {
		return fmt.Errorf("analytics.default_label_limit %d exceeds max_label_limit %d",
			c.Analytics.DefaultLabelLimit, c.Analytics.MaxLabelLimit)
	}

	return nil
}
