//go:build windows

package scan

// KillOrphanPlugins is a no-op on Windows; stale plugin processes must
// be cleaned up manually.
func KillOrphanPlugins() (int, error) {
	return 0, nil
}
