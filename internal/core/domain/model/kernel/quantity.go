package kernel

import "math"

// MaxQuantity is the largest quantity or sequence index the store can hold
// (a 4-byte integer column).
const MaxQuantity = math.MaxInt32
