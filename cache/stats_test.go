// Copyright (c) 2025 The GildCoin developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsEmpty(t *testing.T) {
	var cs Stats

	changed, hit, miss := cs.Stats()
	assert.False(t, changed)
	assert.Zero(t, hit)
	assert.Zero(t, miss)
}

func TestStatsHitRate(t *testing.T) {
	var cs Stats

	assert.Equal(t, int64(1), cs.Hit())

	changed, hit, miss := cs.Stats()
	assert.True(t, changed)
	assert.Equal(t, int64(1), hit)
	assert.Equal(t, int64(0), miss)

	// rate unchanged until the next lookup
	changed, _, _ = cs.Stats()
	assert.False(t, changed)

	assert.Equal(t, int64(1), cs.Miss())

	changed, hit, miss = cs.Stats()
	assert.True(t, changed)
	assert.Equal(t, int64(1), hit)
	assert.Equal(t, int64(1), miss)
}
