package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 identifier of the given column name.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}
