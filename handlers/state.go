package handlers

import (
	"giftsleuth/cache"
	"giftsleuth/models"
)

// stateFlag reads one app_state flag through the cache. A missing key
// reads as false.
func stateFlag(c *cache.Cache, key string) (bool, error) {
	rows, err := c.ReadAll(models.TabAppState)
	if err != nil {
		return false, err
	}
	return models.IsTrue(models.FlagValue(rows, key)), nil
}
