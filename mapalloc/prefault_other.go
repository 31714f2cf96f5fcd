//go:build !linux

package mapalloc

// prefaultRegion leaves scratch pages to be faulted on first write.
func prefaultRegion([]byte) {}
