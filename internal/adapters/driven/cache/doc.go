// Package cache provides a decorator that caches location search results
// in memory so repeated queries within the TTL skip the network.
package cache
