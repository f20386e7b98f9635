package ports

// ConfigLocator finds the directory holding statemelt.yaml starting from an arbitrary directory.
type ConfigLocator interface {
	FindRoot(startDir string) (string, error)
}
